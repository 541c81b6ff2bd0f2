// Package pow implements the proof-of-work rules shared by the software
// verifier and the hardware miner: compact target decoding, the hash to
// integer mapping and the target comparison.
package pow

import (
	"math/big"

	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/pkg/errors"
)

// TargetSize is the width in bytes of the miner's target register.
const TargetSize = 32

// ErrTargetOverflow indicates that a target does not fit in TargetSize bytes.
var ErrTargetOverflow = errors.New("target does not fit in 256 bits")

// HashToBig converts a digest into the big integer used for the proof of work
// comparison. The digest bytes are read as a little-endian number, which is
// the same value as the big-endian reading of its display form.
func HashToBig(digest sha256.Digest) *big.Int {
	reversed := digest.Reversed()
	return new(big.Int).SetBytes(reversed[:])
}

// NaturalHashToBig reads the digest bytes as a big-endian number, in the order
// the compression function produced them.
func NaturalHashToBig(digest sha256.Digest) *big.Int {
	return new(big.Int).SetBytes(digest[:])
}

// MeetsTarget returns true iff hashValue is strictly below target.
func MeetsTarget(hashValue, target *big.Int) bool {
	return hashValue.Cmp(target) < 0
}

// CheckProofOfWork returns true iff digest is below the target encoded by bits.
func CheckProofOfWork(digest sha256.Digest, bits uint32) bool {
	return MeetsTarget(HashToBig(digest), CompactToBig(bits))
}

// TargetToBytes lays target out as 32 little-endian bytes, the format of the
// miner's TARGET registers.
func TargetToBytes(target *big.Int) ([TargetSize]byte, error) {
	var out [TargetSize]byte
	if target.Sign() < 0 {
		return out, errors.Errorf("target %s is negative", target)
	}
	if target.BitLen() > TargetSize*8 {
		return out, errors.Wrapf(ErrTargetOverflow, "target %s is %d bits long", target.Text(16), target.BitLen())
	}
	bigEndian := target.Bytes()
	for i, b := range bigEndian {
		out[len(bigEndian)-1-i] = b
	}
	return out, nil
}

// CompactToTargetBytes decodes bits straight into the TARGET register layout.
func CompactToTargetBytes(bits uint32) ([TargetSize]byte, error) {
	return TargetToBytes(CompactToBig(bits))
}

// TargetFromBytes is the inverse of TargetToBytes.
func TargetFromBytes(targetBytes [TargetSize]byte) *big.Int {
	var bigEndian [TargetSize]byte
	for i, b := range targetBytes {
		bigEndian[TargetSize-1-i] = b
	}
	return new(big.Int).SetBytes(bigEndian[:])
}
