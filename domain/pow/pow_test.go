package pow

import (
	"math/big"
	"testing"

	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/pkg/errors"
)

var genesisDigest = sha256.Digest{
	0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
	0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
	0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
	0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func TestHashToBig(t *testing.T) {
	want, _ := new(big.Int).SetString("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f", 16)
	if HashToBig(genesisDigest).Cmp(want) != 0 {
		t.Errorf("HashToBig: got %x, want %x", HashToBig(genesisDigest), want)
	}

	natural, _ := new(big.Int).SetString("6fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000", 16)
	if NaturalHashToBig(genesisDigest).Cmp(natural) != 0 {
		t.Errorf("NaturalHashToBig: got %x, want %x", NaturalHashToBig(genesisDigest), natural)
	}
}

func TestCheckProofOfWork(t *testing.T) {
	if !CheckProofOfWork(genesisDigest, 0x1d00ffff) {
		t.Errorf("CheckProofOfWork: genesis digest should meet its own target")
	}
	// The natural byte order reading is far above the target.
	if MeetsTarget(NaturalHashToBig(genesisDigest), CompactToBig(0x1d00ffff)) {
		t.Errorf("MeetsTarget: natural order genesis value should not meet the target")
	}
	// A target just under the genesis hash must reject it.
	if CheckProofOfWork(genesisDigest, 0x1b19d668) {
		t.Errorf("CheckProofOfWork: genesis digest should not meet a target below it")
	}
}

func TestMeetsTarget(t *testing.T) {
	tests := []struct {
		hash   int64
		target int64
		want   bool
	}{
		{0, 1, true},
		{1, 1, false},
		{2, 1, false},
		{0, 0, false},
	}
	for i, test := range tests {
		got := MeetsTarget(big.NewInt(test.hash), big.NewInt(test.target))
		if got != test.want {
			t.Errorf("MeetsTarget test #%d: got %t, want %t", i, got, test.want)
		}
	}
}

func TestTargetToBytes(t *testing.T) {
	targetBytes, err := CompactToTargetBytes(0x1d00ffff)
	if err != nil {
		t.Fatalf("CompactToTargetBytes: %v", err)
	}
	for i, b := range targetBytes {
		want := byte(0)
		if i == 26 || i == 27 {
			want = 0xff
		}
		if b != want {
			t.Errorf("target byte %d: got %#x, want %#x", i, b, want)
		}
	}
	if TargetFromBytes(targetBytes).Cmp(CompactToBig(0x1d00ffff)) != 0 {
		t.Errorf("TargetFromBytes does not invert TargetToBytes")
	}

	// 0xffff << 240 uses exactly 256 bits.
	_, err = CompactToTargetBytes(0x2100ffff)
	if err != nil {
		t.Errorf("CompactToTargetBytes(0x2100ffff): unexpected error %v", err)
	}

	_, err = CompactToTargetBytes(0x2200ffff)
	if !errors.Is(err, ErrTargetOverflow) {
		t.Errorf("CompactToTargetBytes(0x2200ffff): got %v, want ErrTargetOverflow", err)
	}

	_, err = TargetToBytes(big.NewInt(-1))
	if err == nil {
		t.Errorf("TargetToBytes(-1): expected an error")
	}
}
