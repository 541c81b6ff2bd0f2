package sha256

import (
	"encoding/binary"
	"math/bits"
)

// HashState is the running 8-word accumulator of a digest computation.
type HashState [stateWords]uint32

// MessageSchedule is the 64-word expansion of a single block.
type MessageSchedule [scheduleWords]uint32

// RoundState holds the working variables a..h after one compression round.
type RoundState [stateWords]uint32

// Digest serializes the state as 8 big-endian words.
func (s HashState) Digest() Digest {
	var digest Digest
	for i, word := range s {
		binary.BigEndian.PutUint32(digest[i*4:], word)
	}
	return digest
}

func bigSigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -2) ^ bits.RotateLeft32(x, -13) ^ bits.RotateLeft32(x, -22)
}

func bigSigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -6) ^ bits.RotateLeft32(x, -11) ^ bits.RotateLeft32(x, -25)
}

func smallSigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func smallSigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

func choose(e, f, g uint32) uint32 {
	return (e & f) ^ (^e & g)
}

func majority(a, b, c uint32) uint32 {
	return (a & b) ^ (a & c) ^ (b & c)
}

// NewMessageSchedule expands block into the 64 words consumed by the
// compression rounds.
func NewMessageSchedule(block *Block) MessageSchedule {
	var w MessageSchedule
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < scheduleWords; i++ {
		w[i] = smallSigma1(w[i-2]) + w[i-7] + smallSigma0(w[i-15]) + w[i-16]
	}
	return w
}

// Compress runs the SHA-256 compression function over a single block and
// returns the resulting state. state is taken by value and left untouched.
func Compress(state HashState, block *Block) HashState {
	return compress(state, block, nil)
}

// CompressTrace is like Compress but also returns the working variables
// after every round, in the a..h order.
func CompressTrace(state HashState, block *Block) (HashState, [scheduleWords]RoundState) {
	var trace [scheduleWords]RoundState
	next := compress(state, block, &trace)
	return next, trace
}

func compress(state HashState, block *Block, trace *[scheduleWords]RoundState) HashState {
	w := NewMessageSchedule(block)

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < scheduleWords; i++ {
		t1 := h + bigSigma1(e) + choose(e, f, g) + roundConstants[i] + w[i]
		t2 := bigSigma0(a) + majority(a, b, c)

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2

		if trace != nil {
			trace[i] = RoundState{a, b, c, d, e, f, g, h}
		}
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
	return state
}
