package random

import (
	"crypto/rand"
	"math/big"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandStr returns a random string of the given length from a crypto source.
func RandStr(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 正常情况下不会失败
			panic(err)
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf)
}
