package testvectors

import (
	"context"
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/shapow/dagconfig"
	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/pkg/errors"
)

func TestDigests(t *testing.T) {
	vectors := Digests()
	if len(vectors) != 4 {
		t.Fatalf("got %d vectors, want 4", len(vectors))
	}
	for _, vector := range vectors {
		if !vector.Matches() {
			t.Errorf("%s: got %s, want %s", vector.Name, vector.Hash, vector.Expected)
		}
	}
	if !vectors[3].Double || vectors[3].Hash != sha256.Sum(vectors[2].Hash[:]) {
		t.Errorf("double hello is not the hash of the hello hash: %s", spew.Sdump(vectors[3]))
	}
}

func TestVerilogLiteral(t *testing.T) {
	got := VerilogLiteral(sha256.Sum([]byte("abc")))
	want := "256'hba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenesisReport(t *testing.T) {
	for _, params := range dagconfig.AllParams {
		report := NewGenesisReport(params)
		if !report.MatchesKnownHash() {
			t.Errorf("%s: got hash %s, want %s", params.Name,
				report.Hash.DisplayString(), report.ExpectedDisplayHash)
		}
		if !report.Valid {
			t.Errorf("%s: genesis header fails proof of work", params.Name)
		}
		if report.Bits != params.PowLimitBits {
			t.Errorf("%s: got bits 0x%08x, want 0x%08x", params.Name, report.Bits, params.PowLimitBits)
		}
		if report.Target.Cmp(params.PowLimit) != 0 {
			t.Errorf("%s: got target %x, want %x", params.Name, report.Target, params.PowLimit)
		}
		if report.HashValue.Cmp(report.Target) >= 0 {
			t.Errorf("%s: hash value %x is not below target %x", params.Name, report.HashValue, report.Target)
		}
	}
}

func TestMainnetGenesisReport(t *testing.T) {
	report := NewGenesisReport(&dagconfig.MainnetParams)

	wantHeader := "0100000000000000000000000000000000000000000000000000000000000000" +
		"000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa" +
		"4b1e5e4a29ab5f49ffff001d1dac2b7c"
	if report.HeaderHex() != wantHeader {
		t.Errorf("got header %s, want %s", report.HeaderHex(), wantHeader)
	}
	if report.LeadingZeroBytes != 0 {
		t.Errorf("got %d natural leading zero bytes, want 0", report.LeadingZeroBytes)
	}
	if report.DisplayLeadingZeroBytes != 5 {
		t.Errorf("got %d display leading zero bytes, want 5", report.DisplayLeadingZeroBytes)
	}
	wantTarget := "00000000ffff0000000000000000000000000000000000000000000000000000"
	if got := fmt.Sprintf("%064x", report.Target); got != wantTarget {
		t.Errorf("got target %s, want %s", got, wantTarget)
	}
	// Read in natural order, the genesis hash is far above its target.
	if report.NaturalHashValue.Cmp(report.Target) < 0 {
		t.Errorf("natural hash value %x is below target", report.NaturalHashValue)
	}
}

func TestHeaderBlockLayout(t *testing.T) {
	raw := dagconfig.MainnetParams.GenesisHeader.Serialize()
	layout := NewBlockLayout(raw[:])

	if len(layout.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(layout.Blocks))
	}
	if layout.CompressionsPerDoubleHash != 3 {
		t.Errorf("got %d compressions, want 3", layout.CompressionsPerDoubleHash)
	}
	tests := []struct {
		block int
		want  int
	}{
		{0, 64},
		{1, 16},
		{2, 0},
	}
	for _, test := range tests {
		got := layout.MessageBytesIn(test.block)
		if got != test.want {
			t.Errorf("MessageBytesIn(%d): got %d, want %d", test.block, got, test.want)
		}
	}

	second := layout.Blocks[1]
	if second[header.Size-sha256.BlockSize] != 0x80 {
		t.Errorf("got padding byte 0x%02x, want 0x80", second[16])
	}
	// 640 bits, big-endian.
	if second[62] != 0x02 || second[63] != 0x80 {
		t.Errorf("got length bytes %02x%02x, want 0280", second[62], second[63])
	}
	wantFirst := "01000000" + "0000000000000000000000000000000000000000000000000000000000000000" +
		"3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa"
	if layout.BlockHex(0) != wantFirst {
		t.Errorf("got first block %s, want %s", layout.BlockHex(0), wantFirst)
	}
}

func TestShortMessageLayout(t *testing.T) {
	tests := []struct {
		length     int
		wantBlocks int
	}{
		{0, 1},
		{55, 1},
		{56, 2},
		{64, 2},
		{119, 2},
		{120, 3},
	}
	for _, test := range tests {
		layout := NewBlockLayout(make([]byte, test.length))
		if len(layout.Blocks) != test.wantBlocks {
			t.Errorf("length %d: got %d blocks, want %d", test.length, len(layout.Blocks), test.wantBlocks)
		}
		if layout.CompressionsPerDoubleHash != test.wantBlocks+1 {
			t.Errorf("length %d: got %d compressions, want %d", test.length,
				layout.CompressionsPerDoubleHash, test.wantBlocks+1)
		}
	}
}

func TestTrace(t *testing.T) {
	trace := NewTrace([]byte("abc"))

	wantLast := sha256.RoundState{
		0x506e3058, 0xd39a2165, 0x04d24d6c, 0xb85e2ce9,
		0x5ef50f24, 0xfb121210, 0x948d25b6, 0x961f4894,
	}
	if trace.Rounds[63] != wantLast {
		t.Errorf("round 63: got %s, want %s", spew.Sdump(trace.Rounds[63]), spew.Sdump(wantLast))
	}
	if trace.State.Digest() != sha256.Sum([]byte("abc")) {
		t.Errorf("final state digest %s doesn't match Sum", trace.State.Digest())
	}
	if trace.Schedule[0] != 0x61626380 {
		t.Errorf("w[0]: got %08x, want 61626380", trace.Schedule[0])
	}
}

func TestMineMini(t *testing.T) {
	result, err := MineMini(context.Background(), MiniMiningZeroBytes, MiniMiningMaxNonce, 4)
	if err != nil {
		t.Fatalf("MineMini: %v", err)
	}
	if result.Nonce != 178 {
		t.Errorf("got nonce %d, want 178", result.Nonce)
	}

	_, err = MineMini(context.Background(), MiniMiningZeroBytes, 100, 4)
	if !errors.Is(err, miner.ErrNonceSpaceExhausted) {
		t.Errorf("got error %v, want %v", err, miner.ErrNonceSpaceExhausted)
	}
}
