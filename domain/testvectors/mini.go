package testvectors

import (
	"context"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/miner"
)

// Defaults of the mini mining example.
const (
	MiniMiningZeroBytes = 1
	MiniMiningMaxNonce  = 1000000
)

// MiniMiningTemplate is a version 1 header with every other field zero.
func MiniMiningTemplate() header.BlockHeader {
	return header.BlockHeader{Version: 1}
}

// MineMini searches nonces [0, maxNonce) of MiniMiningTemplate for a hash
// starting with zeroBytes zero bytes. A maxNonce of zero searches every
// nonce.
func MineMini(ctx context.Context, zeroBytes int, maxNonce uint32, workers int) (*miner.Result, error) {
	return miner.Search(ctx, &miner.SearchConfig{
		Template:   MiniMiningTemplate(),
		NonceRange: uint64(maxNonce),
		Workers:    workers,
		Criterion:  miner.LeadingZeroBytes(zeroBytes),
	})
}
