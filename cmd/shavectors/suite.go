package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/shapow/dagconfig"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/testvectors"
	"github.com/pkg/errors"
)

// vectorSuite is everything shavectors prints, in the shape of its YAML
// document.
type vectorSuite struct {
	Digests []digestDoc `yaml:"digests" cbor:"digests"`
	Genesis genesisDoc  `yaml:"genesis" cbor:"genesis"`
	Layout  layoutDoc   `yaml:"headerLayout" cbor:"headerLayout"`
	Mining  *miningDoc  `yaml:"mining,omitempty" cbor:"mining,omitempty"`
	Trace   *traceDoc   `yaml:"trace,omitempty" cbor:"trace,omitempty"`
}

type digestDoc struct {
	Name     string `yaml:"name" cbor:"name"`
	Input    string `yaml:"input" cbor:"input"`
	Double   bool   `yaml:"double" cbor:"double"`
	Hash     string `yaml:"hash" cbor:"hash"`
	Expected string `yaml:"expected" cbor:"expected"`
	Matches  bool   `yaml:"matches" cbor:"matches"`
}

type genesisDoc struct {
	Network                 string `yaml:"network" cbor:"network"`
	Header                  string `yaml:"header" cbor:"header"`
	Hash                    string `yaml:"hash" cbor:"hash"`
	DisplayHash             string `yaml:"displayHash" cbor:"displayHash"`
	ExpectedDisplayHash     string `yaml:"expectedDisplayHash" cbor:"expectedDisplayHash"`
	MatchesKnownHash        bool   `yaml:"matchesKnownHash" cbor:"matchesKnownHash"`
	LeadingZeroBytes        int    `yaml:"leadingZeroBytes" cbor:"leadingZeroBytes"`
	DisplayLeadingZeroBytes int    `yaml:"displayLeadingZeroBytes" cbor:"displayLeadingZeroBytes"`
	Bits                    string `yaml:"bits" cbor:"bits"`
	Target                  string `yaml:"target" cbor:"target"`
	HashValue               string `yaml:"hashValue" cbor:"hashValue"`
	Valid                   bool   `yaml:"valid" cbor:"valid"`
}

type layoutDoc struct {
	MessageLength             int        `yaml:"messageLength" cbor:"messageLength"`
	Blocks                    []blockDoc `yaml:"blocks" cbor:"blocks"`
	CompressionsPerDoubleHash int        `yaml:"compressionsPerDoubleHash" cbor:"compressionsPerDoubleHash"`
}

type blockDoc struct {
	Data         string `yaml:"data" cbor:"data"`
	MessageBytes int    `yaml:"messageBytes" cbor:"messageBytes"`
}

type miningDoc struct {
	ZeroBytes   int    `yaml:"zeroBytes" cbor:"zeroBytes"`
	MaxNonce    uint32 `yaml:"maxNonce" cbor:"maxNonce"`
	Found       bool   `yaml:"found" cbor:"found"`
	Nonce       uint32 `yaml:"nonce" cbor:"nonce"`
	Hash        string `yaml:"hash,omitempty" cbor:"hash,omitempty"`
	HashesTried uint64 `yaml:"hashesTried,omitempty" cbor:"hashesTried,omitempty"`
}

type traceDoc struct {
	Message  string     `yaml:"message" cbor:"message"`
	Block    string     `yaml:"block" cbor:"block"`
	Schedule []string   `yaml:"schedule" cbor:"schedule"`
	Rounds   [][]string `yaml:"rounds" cbor:"rounds"`
	State    []string   `yaml:"state" cbor:"state"`
}

func wordsHex(words []uint32) []string {
	out := make([]string, len(words))
	for i, word := range words {
		out[i] = fmt.Sprintf("%08x", word)
	}
	return out
}

// buildSuite computes the vectors selected by cfg. Mining is the only part
// that can take long, and it stops when ctx is done.
func buildSuite(ctx context.Context, cfg *configFlags) (*vectorSuite, error) {
	suite := &vectorSuite{
		Genesis: newGenesisDoc(cfg.NetParams()),
	}

	for _, vector := range testvectors.Digests() {
		suite.Digests = append(suite.Digests, digestDoc{
			Name:     vector.Name,
			Input:    string(vector.Input),
			Double:   vector.Double,
			Hash:     vector.Hash.String(),
			Expected: vector.Expected.String(),
			Matches:  vector.Matches(),
		})
	}

	raw := cfg.NetParams().GenesisHeader.Serialize()
	layout := testvectors.NewBlockLayout(raw[:])
	suite.Layout = layoutDoc{
		MessageLength:             layout.MessageLength,
		CompressionsPerDoubleHash: layout.CompressionsPerDoubleHash,
	}
	for i := range layout.Blocks {
		suite.Layout.Blocks = append(suite.Layout.Blocks, blockDoc{
			Data:         layout.BlockHex(i),
			MessageBytes: layout.MessageBytesIn(i),
		})
	}

	if cfg.Trace != "" {
		trace := testvectors.NewTrace([]byte(cfg.Trace))
		doc := &traceDoc{
			Message:  cfg.Trace,
			Block:    hex.EncodeToString(trace.Block[:]),
			Schedule: wordsHex(trace.Schedule[:]),
			State:    wordsHex(trace.State[:]),
		}
		for _, round := range trace.Rounds {
			doc.Rounds = append(doc.Rounds, wordsHex(round[:]))
		}
		suite.Trace = doc
	}

	if cfg.Mine {
		mining, err := mine(ctx, cfg)
		if err != nil {
			return nil, err
		}
		suite.Mining = mining
	}

	return suite, nil
}

func newGenesisDoc(params *dagconfig.Params) genesisDoc {
	report := testvectors.NewGenesisReport(params)
	return genesisDoc{
		Network:                 report.Network,
		Header:                  report.HeaderHex(),
		Hash:                    report.Hash.String(),
		DisplayHash:             report.Hash.DisplayString(),
		ExpectedDisplayHash:     report.ExpectedDisplayHash,
		MatchesKnownHash:        report.MatchesKnownHash(),
		LeadingZeroBytes:        report.LeadingZeroBytes,
		DisplayLeadingZeroBytes: report.DisplayLeadingZeroBytes,
		Bits:                    fmt.Sprintf("0x%08x", report.Bits),
		Target:                  fmt.Sprintf("%064x", report.Target),
		HashValue:               fmt.Sprintf("%064x", report.HashValue),
		Valid:                   report.Valid,
	}
}

func mine(ctx context.Context, cfg *configFlags) (*miningDoc, error) {
	log.Infof("Finding a hash with %d leading zero bytes in %d nonces", cfg.ZeroBytes, cfg.MaxNonce)
	doc := &miningDoc{ZeroBytes: cfg.ZeroBytes, MaxNonce: cfg.MaxNonce}

	result, err := testvectors.MineMini(ctx, cfg.ZeroBytes, cfg.MaxNonce, cfg.Workers)
	if errors.Is(err, miner.ErrNonceSpaceExhausted) {
		log.Infof("No nonce found in %d attempts", cfg.MaxNonce)
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	log.Infof("Found nonce %d", result.Nonce)
	doc.Found = true
	doc.Nonce = result.Nonce
	doc.Hash = result.Hash.String()
	doc.HashesTried = result.HashesTried
	return doc, nil
}
