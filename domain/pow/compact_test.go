// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math/big"
	"testing"
)

// TestBigToCompact ensures BigToCompact converts big integers to the expected
// compact representation.
func TestBigToCompact(t *testing.T) {
	tests := []struct {
		in  string
		out uint32
	}{
		{"0", 0},
		{"-1", 0},
		{"128", 0x02008000},
		{"65535", 0x0300ffff},
		{"9223372036854775807", 142606335},
		{"922337203685477580712312312123487", 237861256},
		{"00000000ffff0000000000000000000000000000000000000000000000000000", 0x1d00ffff},
	}

	for x, test := range tests {
		n := new(big.Int)
		base := 10
		if len(test.in) == 64 {
			base = 16
		}
		n.SetString(test.in, base)
		r := BigToCompact(n)
		if r != test.out {
			t.Errorf("TestBigToCompact test #%d failed: got %d want %d\n",
				x, r, test.out)
			return
		}
	}
}

// TestCompactToBig ensures CompactToBig converts numbers using the compact
// representation to the expected big integers.
func TestCompactToBig(t *testing.T) {
	tests := []struct {
		in  uint32
		out string
	}{
		{0, "0"},
		{10000000, "0"},
		{0x00123456, "0"},
		{0x01123456, "18"},
		{0x02123456, "4660"},
		{0x03123456, "1193046"},
		{0x04123456, "305419776"},
		// The hardware format has no sign bit.
		{25231360, "129"},
		{142606335, "9223370937343148032"},
		{237861256, "922337129789886856855791696084992"},
	}

	for i, test := range tests {
		n := CompactToBig(test.in)
		if n.String() != test.out {
			t.Errorf("TestCompactToBig test #%d failed: got %s want %s",
				i, n, test.out)
			return
		}
	}
}

func TestCompactToBigGenesisBits(t *testing.T) {
	const want = "00000000ffff0000000000000000000000000000000000000000000000000000"
	target := CompactToBig(0x1d00ffff)
	got := target.Text(16)
	for len(got) < 64 {
		got = "0" + got
	}
	if got != want {
		t.Errorf("CompactToBig(0x1d00ffff): got %s, want %s", got, want)
	}
}

// TestCompactRoundTrip makes sure a target encoded by BigToCompact decodes
// back to the same value, for values that fit in the 23 bits of precision.
func TestCompactRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0x1d00ffff, 0x1b0404cb, 0x207fffff, 0x1900896c, 0x03000001, 0x0300ffff} {
		target := CompactToBig(bits)
		encoded := BigToCompact(target)
		if CompactToBig(encoded).Cmp(target) != 0 {
			t.Errorf("round trip of %08x: got %08x which decodes to %s, want %s",
				bits, encoded, CompactToBig(encoded), target)
		}
	}
}
