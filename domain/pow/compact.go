// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math/big"
)

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 256-bit-or-wider number. The representation is similar to IEEE754
// floating point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa. Unlike the Bitcoin reference encoding, the
// hardware miner has no sign bit, so all 24 low bits are mantissa:
//
//	-------------------------------------------------
//	|   Exponent     |        Mantissa (24 bits)    |
//	-------------------------------------------------
//	| 8 bits [31-24] |         24 bits [23-00]      |
//	-------------------------------------------------
//
// The formula to calculate N is:
//
//	N = mantissa * 256^(exponent-3)
//
// Exponents of 3 or less shift the mantissa right instead, so no negative
// shift is ever performed.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x00ffffff
	exponent := uint(compact >> 24)

	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		return new(big.Int).SetUint64(uint64(mantissa))
	}

	bn := new(big.Int).SetUint64(uint64(mantissa))
	return bn.Lsh(bn, 8*(exponent-3))
}

// BigToCompact converts a non-negative whole number n to a compact
// representation using an unsigned 32-bit number. The compact representation
// only provides 23 bits of precision, so values larger than (2^23 - 1) only
// encode the most significant digits of the number. Negative numbers encode
// as zero. See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	// No need to do any work if it's zero or negative.
	if n.Sign() <= 0 {
		return 0
	}

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes. So, shift the number right or left
	// accordingly. This is equivalent to:
	// mantissa = mantissa / 256^(exponent-3)
	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's original number.
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the 0x00800000 bit set, shift it right
	// and bump the exponent so the encoding stays compatible with decoders
	// that treat that bit as the sign.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	return uint32(exponent<<24) | mantissa
}
