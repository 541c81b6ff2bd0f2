// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/sha256"
)

// genesisMerkleRoot is the hash of the first transaction in the genesis block
// for all networks, in natural byte order.
var genesisMerkleRoot = sha256.Digest([sha256.DigestSize]byte{ // Make go vet happy.
	0x3b, 0xa3, 0xed, 0xfd, 0x7a, 0x7b, 0x12, 0xb2,
	0x7a, 0xc7, 0x2c, 0x3e, 0x67, 0x76, 0x8f, 0x61,
	0x7f, 0xc8, 0x1b, 0xc3, 0x88, 0x8a, 0x51, 0x32,
	0x3a, 0x9f, 0xb8, 0xaa, 0x4b, 0x1e, 0x5e, 0x4a,
})

// genesisHash is the hash of the first block in the block chain for the main
// network (genesis block).
var genesisHash = sha256.Digest([sha256.DigestSize]byte{ // Make go vet happy.
	0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
	0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
	0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
	0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
})

// genesisHeader defines the genesis block header of the main network.
var genesisHeader = header.BlockHeader{
	Version:    1,
	PrevHash:   sha256.Digest{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  0x495fab29, // 2009-01-03 18:15:05 +0000 UTC
	Bits:       0x1d00ffff,
	Nonce:      0x7c2bac1d, // 2083236893
}

// testnetGenesisHash is the hash of the first block in the block chain for the
// test network (version 3).
var testnetGenesisHash = sha256.Digest([sha256.DigestSize]byte{ // Make go vet happy.
	0x43, 0x49, 0x7f, 0xd7, 0xf8, 0x26, 0x95, 0x71,
	0x08, 0xf4, 0xa3, 0x0f, 0xd9, 0xce, 0xc3, 0xae,
	0xba, 0x79, 0x97, 0x20, 0x84, 0xe9, 0x0e, 0xad,
	0x01, 0xea, 0x33, 0x09, 0x00, 0x00, 0x00, 0x00,
})

// testnetGenesisHeader defines the genesis block header of the test network.
var testnetGenesisHeader = header.BlockHeader{
	Version:    1,
	PrevHash:   sha256.Digest{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  0x4d49e5da, // 2011-02-02 23:16:42 +0000 UTC
	Bits:       0x1d00ffff,
	Nonce:      0x18aea41a, // 414098458
}

// regtestGenesisHash is the hash of the first block in the block chain for the
// regression test network.
var regtestGenesisHash = sha256.Digest([sha256.DigestSize]byte{ // Make go vet happy.
	0x06, 0x22, 0x6e, 0x46, 0x11, 0x1a, 0x0b, 0x59,
	0xca, 0xaf, 0x12, 0x60, 0x43, 0xeb, 0x5b, 0xbf,
	0x28, 0xc3, 0x4f, 0x3a, 0x5e, 0x33, 0x2a, 0x1f,
	0xc7, 0xb2, 0xb7, 0x3c, 0xf1, 0x88, 0x91, 0x0f,
})

// regtestGenesisHeader defines the genesis block header of the regression
// test network.
var regtestGenesisHeader = header.BlockHeader{
	Version:    1,
	PrevHash:   sha256.Digest{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  0x4d49e5da, // 2011-02-02 23:16:42 +0000 UTC
	Bits:       0x207fffff,
	Nonce:      2,
}
