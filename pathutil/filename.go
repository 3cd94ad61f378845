package pathutil

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// RandomTokenLength is the number of characters RandomFilename generates.
const RandomTokenLength = 16

const readableCharacters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// UniqueFilename returns prefix, a 128-bit random token formatted as two
// 16-digit hex halves, and suffix.
func UniqueFilename(prefix, suffix string) string {
	id := uuid.New()
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	return fmt.Sprintf("%s%016x%016x%s", prefix, hi, lo, suffix)
}

// RandomFilename returns prefix, RandomTokenLength readable alphanumeric
// characters drawn from r, and suffix. A nil r uses the global source.
func RandomFilename(r *rand.Rand, prefix, suffix string) string {
	token := make([]byte, RandomTokenLength)
	for i := range token {
		var n int
		if r != nil {
			n = r.IntN(len(readableCharacters))
		} else {
			n = rand.IntN(len(readableCharacters))
		}
		token[i] = readableCharacters[n]
	}
	return prefix + string(token) + suffix
}
