package encode

import (
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// EncodePassword derives an argon2id digest of password under salt.
// The same (salt, password) pair always yields the same digest, so
// verification is a plain string comparison against the stored hash.
func EncodePassword(salt, password string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}
