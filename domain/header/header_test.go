package header

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/pkg/errors"
)

// genesisHeaderHex is the serialized Bitcoin main network genesis header.
const genesisHeaderHex = "01000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
	"29ab5f49" +
	"ffff001d" +
	"1dac2b7c"

const genesisDisplayHash = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

func TestGenesisHeader(t *testing.T) {
	h, err := FromHex(genesisHeaderHex)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}

	if h.Version != 1 {
		t.Errorf("Version: got %d, want 1", h.Version)
	}
	if h.Timestamp != 0x495fab29 {
		t.Errorf("Timestamp: got %08x, want 495fab29", h.Timestamp)
	}
	if h.Bits != 0x1d00ffff {
		t.Errorf("Bits: got %08x, want 1d00ffff", h.Bits)
	}
	if h.Nonce != 0x7c2bac1d {
		t.Errorf("Nonce: got %08x, want 7c2bac1d", h.Nonce)
	}

	hash := h.BlockHash()
	if hash.DisplayString() != genesisDisplayHash {
		t.Errorf("BlockHash: got %s, want %s", hash.DisplayString(), genesisDisplayHash)
	}
	if !h.CheckProofOfWork() {
		t.Errorf("CheckProofOfWork: genesis header should be valid")
	}
	if h.Hex() != genesisHeaderHex {
		t.Errorf("Hex: got %s, want %s", h.Hex(), genesisHeaderHex)
	}
}

func TestVerifyRaw(t *testing.T) {
	h, err := FromHex(genesisHeaderHex)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	raw := h.Serialize()

	hash, valid, err := VerifyRaw(raw[:])
	if err != nil {
		t.Fatalf("VerifyRaw: %v", err)
	}
	if !valid {
		t.Errorf("VerifyRaw: genesis header should be valid")
	}
	if hash != sha256.DoubleSum(raw[:]) {
		t.Errorf("VerifyRaw: returned hash is not the double SHA-256 of the header")
	}

	// Changing the nonce breaks the proof of work.
	h.Nonce++
	raw = h.Serialize()
	_, valid, err = VerifyRaw(raw[:])
	if err != nil {
		t.Fatalf("VerifyRaw: %v", err)
	}
	if valid {
		t.Errorf("VerifyRaw: header with modified nonce should be invalid")
	}
}

func TestBitsFromRaw(t *testing.T) {
	h, err := FromHex(genesisHeaderHex)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	raw := h.Serialize()
	bits, err := BitsFromRaw(raw[:])
	if err != nil {
		t.Fatalf("BitsFromRaw: %v", err)
	}
	if bits != 0x1d00ffff {
		t.Errorf("BitsFromRaw: got %08x, want 1d00ffff", bits)
	}
	if pow.CompactToBig(bits).Cmp(h.Target()) != 0 {
		t.Errorf("BitsFromRaw: decoded target differs from header target")
	}
}

func TestInvalidLength(t *testing.T) {
	for _, length := range []int{0, 1, Size - 1, Size + 1, 2 * Size} {
		raw := make([]byte, length)
		_, err := FromBytes(raw)
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("FromBytes(%d bytes): got %v, want ErrInvalidLength", length, err)
		}
		_, err = BitsFromRaw(raw)
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("BitsFromRaw(%d bytes): got %v, want ErrInvalidLength", length, err)
		}
		_, _, err = VerifyRaw(raw)
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("VerifyRaw(%d bytes): got %v, want ErrInvalidLength", length, err)
		}
	}
}

func TestBtcEncodeDecode(t *testing.T) {
	h := &BlockHeader{
		Version:    0x20000000,
		PrevHash:   sha256.Sum([]byte("prev")),
		MerkleRoot: sha256.Sum([]byte("merkle")),
		Timestamp:  1700000000,
		Bits:       0x1b0404cb,
		Nonce:      0xdeadbeef,
	}

	var buf bytes.Buffer
	err := h.BtcEncode(&buf)
	if err != nil {
		t.Fatalf("BtcEncode: %v", err)
	}
	raw := h.Serialize()
	if !bytes.Equal(buf.Bytes(), raw[:]) {
		t.Errorf("BtcEncode and Serialize disagree:\n%x\n%x", buf.Bytes(), raw)
	}

	decoded := &BlockHeader{}
	err = decoded.BtcDecode(&buf)
	if err != nil {
		t.Fatalf("BtcDecode: %v", err)
	}
	if !reflect.DeepEqual(decoded, h) {
		t.Errorf("BtcDecode: got %s, want %s", spew.Sdump(decoded), spew.Sdump(h))
	}

	// A truncated stream fails.
	err = (&BlockHeader{}).BtcDecode(bytes.NewReader(raw[:Size-1]))
	if err == nil {
		t.Errorf("BtcDecode: expected an error for a truncated header")
	}
}

func TestSerializeLayout(t *testing.T) {
	h := &BlockHeader{Version: 1, Timestamp: 2, Bits: 3, Nonce: 4}
	h.PrevHash[0] = 0xaa
	h.MerkleRoot[31] = 0xbb
	raw := h.Serialize()

	checks := []struct {
		offset int
		want   byte
	}{
		{VersionOffset, 1},
		{PrevHashOffset, 0xaa},
		{MerkleRootOffset + 31, 0xbb},
		{TimestampOffset, 2},
		{BitsOffset, 3},
		{NonceOffset, 4},
	}
	for _, check := range checks {
		if raw[check.offset] != check.want {
			t.Errorf("byte at offset %d: got %#x, want %#x", check.offset, raw[check.offset], check.want)
		}
	}
}
