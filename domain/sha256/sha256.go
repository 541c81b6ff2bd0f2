// Package sha256 implements the SHA-256 digest defined in FIPS 180-4, block by
// block, so that every intermediate value (padded blocks, message schedules,
// round states) can be exported as a test vector for a hardware
// implementation.
//
// All functions are pure and safe for concurrent use.
package sha256

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Digest is a 256-bit SHA-256 output, in the byte order produced by the
// compression function.
type Digest [DigestSize]byte

// String returns the digest as hex in its natural byte order.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Reversed returns a copy of the digest with its bytes in reverse order.
func (d Digest) Reversed() Digest {
	var reversed Digest
	for i, b := range d {
		reversed[DigestSize-1-i] = b
	}
	return reversed
}

// DisplayString returns the digest as hex with its bytes reversed, the way
// block hashes are displayed by Bitcoin-derived software.
func (d Digest) DisplayString() string {
	return d.Reversed().String()
}

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) Digest {
	state := InitialState
	blocks := Pad(data)
	for i := range blocks {
		state = Compress(state, &blocks[i])
	}
	return state.Digest()
}

// DoubleSum returns SHA-256(SHA-256(data)).
func DoubleSum(data []byte) Digest {
	first := Sum(data)
	return Sum(first[:])
}

// NewDigestFromString parses a 64-character hex string in natural byte order.
func NewDigestFromString(s string) (Digest, error) {
	var digest Digest
	if len(s) != DigestSize*2 {
		return digest, errors.Errorf("digest string length is %d, while it should be %d",
			len(s), DigestSize*2)
	}
	_, err := hex.Decode(digest[:], []byte(s))
	if err != nil {
		return digest, errors.Wrap(err, "couldn't decode digest hex")
	}
	return digest, nil
}

// NewDigestFromDisplayString parses a hex string written in display (reversed)
// byte order, as produced by DisplayString.
func NewDigestFromDisplayString(s string) (Digest, error) {
	digest, err := NewDigestFromString(s)
	if err != nil {
		return digest, err
	}
	return digest.Reversed(), nil
}
