package miner

import (
	"math/big"

	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
)

// Criterion decides whether a header hash solves the search.
type Criterion func(hash sha256.Digest) bool

// LeadingZeroBytes accepts hashes whose first n bytes, in natural byte order,
// are zero.
func LeadingZeroBytes(n int) Criterion {
	return func(hash sha256.Digest) bool {
		return CountLeadingZeroBytes(hash) >= n
	}
}

// BelowTarget accepts hashes that meet target under the proof-of-work rules.
func BelowTarget(target *big.Int) Criterion {
	target = new(big.Int).Set(target)
	return func(hash sha256.Digest) bool {
		return pow.MeetsTarget(pow.HashToBig(hash), target)
	}
}

// BelowCompactTarget is BelowTarget for a target given in compact form.
func BelowCompactTarget(bits uint32) Criterion {
	return BelowTarget(pow.CompactToBig(bits))
}

// CountLeadingZeroBytes returns the number of zero bytes at the start of hash,
// in natural byte order.
func CountLeadingZeroBytes(hash sha256.Digest) int {
	for i, b := range hash {
		if b != 0 {
			return i
		}
	}
	return len(hash)
}
