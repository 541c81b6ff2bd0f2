// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"math/big"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
)

// Params defines a network by its genesis block and proof-of-work limit.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisHeader defines the first block header of the network.
	GenesisHeader *header.BlockHeader

	// GenesisHash is the double SHA-256 of GenesisHeader, in natural byte
	// order.
	GenesisHash *sha256.Digest

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:          "mainnet",
	GenesisHeader: &genesisHeader,
	GenesisHash:   &genesisHash,
	PowLimit:      pow.CompactToBig(0x1d00ffff),
	PowLimitBits:  0x1d00ffff,
}

// TestnetParams defines the network parameters for the test network
// (version 3).
var TestnetParams = Params{
	Name:          "testnet3",
	GenesisHeader: &testnetGenesisHeader,
	GenesisHash:   &testnetGenesisHash,
	PowLimit:      pow.CompactToBig(0x1d00ffff),
	PowLimitBits:  0x1d00ffff,
}

// RegtestParams defines the network parameters for the regression test
// network. Its target is high enough for about half of all hashes to pass.
var RegtestParams = Params{
	Name:          "regtest",
	GenesisHeader: &regtestGenesisHeader,
	GenesisHash:   &regtestGenesisHash,
	PowLimit:      pow.CompactToBig(0x207fffff),
	PowLimitBits:  0x207fffff,
}

// AllParams lists every known network, mainnet first.
var AllParams = []*Params{&MainnetParams, &TestnetParams, &RegtestParams}
