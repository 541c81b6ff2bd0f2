package testvectors

import (
	"encoding/hex"

	"github.com/kaspanet/shapow/domain/sha256"
)

// BlockLayout is how a message is split into compression blocks.
type BlockLayout struct {
	MessageLength int
	Blocks        []sha256.Block

	// CompressionsPerDoubleHash is the number of compressions needed to
	// double hash the message. The second hash always takes one block.
	CompressionsPerDoubleHash int
}

// NewBlockLayout pads input and reports its blocks.
func NewBlockLayout(input []byte) *BlockLayout {
	blocks := sha256.Pad(input)
	return &BlockLayout{
		MessageLength:             len(input),
		Blocks:                    blocks,
		CompressionsPerDoubleHash: len(blocks) + len(sha256.Pad(make([]byte, sha256.DigestSize))),
	}
}

// BlockHex returns block i as hex.
func (l *BlockLayout) BlockHex(i int) string {
	return hex.EncodeToString(l.Blocks[i][:])
}

// MessageBytesIn returns how many bytes of the message block i holds. The
// rest of the block is padding.
func (l *BlockLayout) MessageBytesIn(i int) int {
	remaining := l.MessageLength - i*sha256.BlockSize
	switch {
	case remaining <= 0:
		return 0
	case remaining > sha256.BlockSize:
		return sha256.BlockSize
	}
	return remaining
}

// Trace is the compression of a message's first block from the initial state.
type Trace struct {
	Block    sha256.Block
	Schedule sha256.MessageSchedule

	// Rounds holds the working variables a through h after each round.
	Rounds [64]sha256.RoundState

	// State is the hash state after the block, including the final addition.
	State sha256.HashState
}

// NewTrace compresses the first padded block of input.
func NewTrace(input []byte) *Trace {
	block := sha256.Pad(input)[0]
	state, rounds := sha256.CompressTrace(sha256.InitialState, &block)
	return &Trace{
		Block:    block,
		Schedule: sha256.NewMessageSchedule(&block),
		Rounds:   rounds,
		State:    state,
	}
}
