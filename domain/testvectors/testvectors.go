// Package testvectors assembles the reference values used to verify a
// hardware SHA-256 core and miner: known digests, the genesis header checks,
// the block layout of a message and per-round compression traces.
package testvectors

import (
	"encoding/hex"
	"math/big"

	"github.com/kaspanet/shapow/dagconfig"
	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
)

// DigestVector is a message with its computed and published digests.
type DigestVector struct {
	Name     string
	Input    []byte
	Double   bool
	Hash     sha256.Digest
	Expected sha256.Digest
}

// Matches returns true iff the computed digest equals the published one.
func (v *DigestVector) Matches() bool {
	return v.Hash == v.Expected
}

var publishedDigests = []struct {
	name     string
	input    string
	double   bool
	expected string
}{
	{"empty", "", false, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{"abc", "abc", false, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	{"hello", "hello", false, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	{"double hello", "hello", true, "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50"},
}

// Digests computes the published digest vectors.
func Digests() []*DigestVector {
	vectors := make([]*DigestVector, len(publishedDigests))
	for i, published := range publishedDigests {
		expected, err := sha256.NewDigestFromString(published.expected)
		if err != nil {
			panic(err)
		}
		input := []byte(published.input)
		hash := sha256.Sum(input)
		if published.double {
			hash = sha256.DoubleSum(input)
		}
		vectors[i] = &DigestVector{
			Name:     published.name,
			Input:    input,
			Double:   published.double,
			Hash:     hash,
			Expected: expected,
		}
	}
	return vectors
}

// VerilogLiteral formats a digest as a 256-bit Verilog hex literal.
func VerilogLiteral(digest sha256.Digest) string {
	return "256'h" + digest.String()
}

// GenesisReport is the proof-of-work check of a network's genesis header.
type GenesisReport struct {
	Network string
	Header  [header.Size]byte

	Hash                sha256.Digest
	ExpectedDisplayHash string

	// LeadingZeroBytes counts zero bytes at the start of Hash, in natural
	// order. DisplayLeadingZeroBytes counts them in display order.
	LeadingZeroBytes        int
	DisplayLeadingZeroBytes int

	Bits   uint32
	Target *big.Int

	// HashValue is the integer compared against Target. NaturalHashValue is
	// the big-endian reading of the natural byte order, for reference.
	HashValue        *big.Int
	NaturalHashValue *big.Int

	Valid bool
}

// NewGenesisReport hashes the genesis header of params and checks it against
// the target in its bits field.
func NewGenesisReport(params *dagconfig.Params) *GenesisReport {
	raw := params.GenesisHeader.Serialize()
	hash, valid, err := header.VerifyRaw(raw[:])
	if err != nil {
		panic(err)
	}
	bits, err := header.BitsFromRaw(raw[:])
	if err != nil {
		panic(err)
	}
	return &GenesisReport{
		Network:                 params.Name,
		Header:                  raw,
		Hash:                    hash,
		ExpectedDisplayHash:     params.GenesisHash.DisplayString(),
		LeadingZeroBytes:        miner.CountLeadingZeroBytes(hash),
		DisplayLeadingZeroBytes: miner.CountLeadingZeroBytes(hash.Reversed()),
		Bits:                    bits,
		Target:                  pow.CompactToBig(bits),
		HashValue:               pow.HashToBig(hash),
		NaturalHashValue:        pow.NaturalHashToBig(hash),
		Valid:                   valid,
	}
}

// HeaderHex returns the serialized genesis header as hex.
func (r *GenesisReport) HeaderHex() string {
	return hex.EncodeToString(r.Header[:])
}

// MatchesKnownHash returns true iff the computed hash is the network's known
// genesis hash.
func (r *GenesisReport) MatchesKnownHash() bool {
	return r.Hash.DisplayString() == r.ExpectedDisplayHash
}
