// Package header implements the 80-byte Bitcoin block header layout consumed
// by the miner, and its proof-of-work validation.
package header

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/kaspanet/shapow/util/binaryserializer"
	"github.com/pkg/errors"
)

// Size is the serialized size of a block header.
// Version 4 bytes + PrevHash 32 bytes + MerkleRoot 32 bytes +
// Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes.
const Size = 80

// Field offsets within a serialized header.
const (
	VersionOffset    = 0
	PrevHashOffset   = 4
	MerkleRootOffset = 36
	TimestampOffset  = 68
	BitsOffset       = 72
	NonceOffset      = 76
)

// ErrInvalidLength indicates a serialized header that is not exactly Size bytes.
var ErrInvalidLength = errors.New("invalid block header length")

// BlockHeader defines the fields of a block header. All integer fields are
// serialized little-endian; the hashes are serialized in their natural
// digest byte order.
type BlockHeader struct {
	// Version of the block.
	Version uint32

	// Hash of the previous block header.
	PrevHash sha256.Digest

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot sha256.Digest

	// Time the block was created, in seconds since the unix epoch.
	Timestamp uint32

	// Difficulty target for the block, in compact form.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// Serialize returns the 80-byte encoding of the header.
func (h *BlockHeader) Serialize() [Size]byte {
	var raw [Size]byte
	binary.LittleEndian.PutUint32(raw[VersionOffset:], h.Version)
	copy(raw[PrevHashOffset:], h.PrevHash[:])
	copy(raw[MerkleRootOffset:], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(raw[TimestampOffset:], h.Timestamp)
	binary.LittleEndian.PutUint32(raw[BitsOffset:], h.Bits)
	binary.LittleEndian.PutUint32(raw[NonceOffset:], h.Nonce)
	return raw
}

// BtcEncode writes the header encoding to w.
func (h *BlockHeader) BtcEncode(w io.Writer) error {
	err := binaryserializer.PutUint32(w, h.Version)
	if err != nil {
		return err
	}
	err = binaryserializer.PutBytes(w, h.PrevHash[:])
	if err != nil {
		return err
	}
	err = binaryserializer.PutBytes(w, h.MerkleRoot[:])
	if err != nil {
		return err
	}
	for _, field := range []uint32{h.Timestamp, h.Bits, h.Nonce} {
		err = binaryserializer.PutUint32(w, field)
		if err != nil {
			return err
		}
	}
	return nil
}

// BtcDecode reads a header encoding from r into the receiver.
func (h *BlockHeader) BtcDecode(r io.Reader) error {
	var err error
	h.Version, err = binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	err = binaryserializer.Bytes(r, h.PrevHash[:])
	if err != nil {
		return err
	}
	err = binaryserializer.Bytes(r, h.MerkleRoot[:])
	if err != nil {
		return err
	}
	for _, field := range []*uint32{&h.Timestamp, &h.Bits, &h.Nonce} {
		*field, err = binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
	}
	return nil
}

// FromBytes decodes a header from exactly Size bytes.
func FromBytes(raw []byte) (*BlockHeader, error) {
	if len(raw) != Size {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d bytes, want %d", len(raw), Size)
	}
	h := &BlockHeader{}
	err := h.BtcDecode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return h, nil
}

// FromHex decodes a header from its hex encoding.
func FromHex(s string) (*BlockHeader, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode header hex")
	}
	return FromBytes(raw)
}

// BitsFromRaw extracts the compact target from a serialized header.
func BitsFromRaw(raw []byte) (uint32, error) {
	if len(raw) != Size {
		return 0, errors.Wrapf(ErrInvalidLength, "got %d bytes, want %d", len(raw), Size)
	}
	return binary.LittleEndian.Uint32(raw[BitsOffset:]), nil
}

// BlockHash computes the double SHA-256 of the serialized header.
func (h *BlockHeader) BlockHash() sha256.Digest {
	writer := sha256.NewDoubleHashWriter()
	err := h.BtcEncode(writer)
	if err != nil {
		// BtcEncode only fails when the writer does, and DoubleHashWriter never does.
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}
	return writer.Finalize()
}

// Target returns the proof-of-work target encoded in Bits.
func (h *BlockHeader) Target() *big.Int {
	return pow.CompactToBig(h.Bits)
}

// CheckProofOfWork returns true iff the header hash is below its own target.
func (h *BlockHeader) CheckProofOfWork() bool {
	return pow.CheckProofOfWork(h.BlockHash(), h.Bits)
}

// Hex returns the serialized header as hex.
func (h *BlockHeader) Hex() string {
	raw := h.Serialize()
	return hex.EncodeToString(raw[:])
}

// VerifyRaw double hashes a serialized header and checks it against the
// target in its bits field.
func VerifyRaw(raw []byte) (hash sha256.Digest, valid bool, err error) {
	bits, err := BitsFromRaw(raw)
	if err != nil {
		return sha256.Digest{}, false, err
	}
	hash = sha256.DoubleSum(raw)
	return hash, pow.CheckProofOfWork(hash, bits), nil
}
