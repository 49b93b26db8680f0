package imghash

import (
	"bytes"
	"errors"
	"image"
	"math/bits"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// HashBits is the size of an average-hash fingerprint.
const HashBits = 64

const gridSize = 8

var (
	ErrImageTooSmall  = errors.New("image payload too small")
	ErrImageUndecoded = errors.New("image decode failed")
)

// MinImageBytes is the sanity floor for an encoded payload. Anything
// shorter cannot be a real capture and is rejected before decoding.
const MinImageBytes = 100

// FromBytes decodes an encoded image and returns its average-hash
// fingerprint. Payloads below minBytes (MinImageBytes when <= 0) fail
// with ErrImageTooSmall; undecodable payloads fail with ErrImageUndecoded.
func FromBytes(data []byte, minBytes int) (uint64, error) {
	if minBytes <= 0 {
		minBytes = MinImageBytes
	}
	if len(data) < minBytes {
		return 0, ErrImageTooSmall
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, ErrImageUndecoded
	}
	return AverageHash(img), nil
}

// AverageHash downsamples the image to an 8x8 intensity grid and sets
// bit i iff cell i is brighter than the mean cell. Visually similar
// images land within a few bits of each other.
func AverageHash(img image.Image) uint64 {
	var cells [HashBits]float64

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	for row := 0; row < gridSize; row++ {
		y0 := b.Min.Y + row*h/gridSize
		y1 := b.Min.Y + (row+1)*h/gridSize
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for col := 0; col < gridSize; col++ {
			x0 := b.Min.X + col*w/gridSize
			x1 := b.Min.X + (col+1)*w/gridSize
			if x1 <= x0 {
				x1 = x0 + 1
			}

			var sum, n float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					r, g, bl, _ := img.At(x, y).RGBA()
					// ITU-R 601 luma, same weights as a grayscale convert
					sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
					n++
				}
			}
			cells[row*gridSize+col] = sum / n
		}
	}

	var mean float64
	for _, v := range cells {
		mean += v
	}
	mean /= HashBits

	var hash uint64
	for i, v := range cells {
		if v > mean {
			hash |= 1 << uint(HashBits-1-i)
		}
	}
	return hash
}

// Distance is the Hamming distance between two fingerprints, in [0, 64].
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
