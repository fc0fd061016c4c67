// Package prng provides a seedable random source for reproducible
// randomized testing of S-box properties.
package prng

import (
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/crypto/sha3"
)

// Source is a math/rand/v2 Source reading from a SHAKE256 stream keyed by
// a seed. Two sources with the same seed yield the same sequence.
type Source struct {
	xof sha3.ShakeHash
	buf [8]byte
}

var _ rand.Source = (*Source)(nil)

// NewShake returns a Source seeded with seed.
func NewShake(seed []byte) *Source {
	xof := sha3.NewShake256()
	xof.Write([]byte("sboxkit/prng/v1"))
	xof.Write(seed)
	return &Source{xof: xof}
}

// Uint64 returns the next 64 bits of the stream.
func (s *Source) Uint64() uint64 {
	// ShakeHash.Read never fails.
	_, _ = s.xof.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// New returns a *rand.Rand over a Source seeded with seed.
func New(seed []byte) *rand.Rand {
	return rand.New(NewShake(seed))
}

// FromUint64 returns a *rand.Rand seeded with the little-endian encoding
// of seed.
func FromUint64(seed uint64) *rand.Rand {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return New(b[:])
}
