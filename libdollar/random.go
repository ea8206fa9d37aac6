package libdollar

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/pkg/errors"
)

// NewSeed returns a high-entropy seed read from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "read random seed")
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a pseudo-random source for the given seed.
//
// Given the same seed, generation is fully reproducible.  A zero seed draws a fresh seed via NewSeed().
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			panic(err)
		}
	}
	return rand.New(rand.NewSource(seed))
}
