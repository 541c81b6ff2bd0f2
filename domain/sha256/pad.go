package sha256

import "encoding/binary"

// Block is a single 512-bit compression function input.
type Block [BlockSize]byte

// PaddedLength returns the number of bytes an input of inputLength bytes
// occupies once padded: the input, the 0x80 marker, the zero fill and the
// 64-bit length field, rounded up to a whole number of blocks.
func PaddedLength(inputLength int) int {
	withTrailer := inputLength + 1 + lengthFieldSize
	return (withTrailer + BlockSize - 1) / BlockSize * BlockSize
}

// Pad applies the SHA-256 padding rule to input and splits the result into
// blocks. The returned slice always holds at least one block and input is
// never modified.
//
// The length field holds the bit length of input modulo 2^64. Inputs longer
// than 2^61-1 bytes are not supported.
func Pad(input []byte) []Block {
	paddedLength := PaddedLength(len(input))
	message := make([]byte, paddedLength)
	copy(message, input)
	message[len(input)] = 0x80
	binary.BigEndian.PutUint64(message[paddedLength-lengthFieldSize:], uint64(len(input))<<3)

	blocks := make([]Block, paddedLength/BlockSize)
	for i := range blocks {
		copy(blocks[i][:], message[i*BlockSize:])
	}
	return blocks
}
