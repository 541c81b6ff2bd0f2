// Package binaryserializer reads and writes the fixed-width little-endian
// fields used by block headers and the miner register file.
package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Uint32 reads four bytes from r and returns them as a little-endian uint32.
func Uint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// PutUint32 writes val to w as four little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// Bytes fills dst from r, failing unless all of dst could be read.
func Bytes(r io.Reader, dst []byte) error {
	_, err := io.ReadFull(r, dst)
	return errors.WithStack(err)
}

// PutBytes writes src to w.
func PutBytes(w io.Writer, src []byte) error {
	_, err := w.Write(src)
	return errors.WithStack(err)
}

// Words splits data into little-endian 32-bit words. len(data) must be a
// multiple of 4.
func Words(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, errors.Errorf("data length %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// PutWords writes words into dst as little-endian bytes. dst must hold at
// least 4*len(words) bytes.
func PutWords(dst []byte, words []uint32) {
	for i, word := range words {
		binary.LittleEndian.PutUint32(dst[i*4:], word)
	}
}
