package hwminer

import (
	"fmt"

	"github.com/pkg/errors"
)

// BaseAddress is where the miner's register file is mapped on the bus.
const BaseAddress uint32 = 0x80000000

// Register offsets from BaseAddress.
const (
	CtrlOffset     uint32 = 0x00
	MaxNonceOffset uint32 = 0x04
	NonceOutOffset uint32 = 0x08
	HashOutOffset  uint32 = 0x0C
	TargetOffset   uint32 = 0x30
	HeaderOffset   uint32 = 0x50
)

// Register file dimensions, in 32-bit words.
const (
	HashOutWords = 8
	TargetWords  = 8
	HeaderWords  = 20

	registerFileSize = HeaderOffset + HeaderWords*4
)

// headerNonceWord is the HEADER word holding the nonce, and so the first nonce
// the miner tries.
const headerNonceWord = HeaderWords - 1

// CTRL register bits. Only Start is writable, the rest are status bits.
const (
	CtrlStart     uint32 = 1 << 0
	CtrlBusy      uint32 = 1 << 1
	CtrlFound     uint32 = 1 << 2
	CtrlExhausted uint32 = 1 << 3
)

var (
	// ErrUnmappedRegister is returned for an address outside the register file.
	ErrUnmappedRegister = errors.New("address is not mapped to a miner register")

	// ErrMisaligned is returned for an address that is not word aligned.
	ErrMisaligned = errors.New("misaligned register access")

	// ErrReadOnlyRegister is returned for a write to NONCE_OUT or HASH_OUT.
	ErrReadOnlyRegister = errors.New("register is read-only")

	// ErrBusy is returned for a write that would disturb a running search.
	ErrBusy = errors.New("miner is busy")
)

// Bus performs 32-bit accesses to memory-mapped registers.
type Bus interface {
	Read32(address uint32) (uint32, error)
	Write32(address uint32, value uint32) error
}

// CtrlAddress is the address of the control and status register.
func CtrlAddress() uint32 { return BaseAddress + CtrlOffset }

// MaxNonceAddress is the address of the register bounding the search. The
// search stops before reaching its value.
func MaxNonceAddress() uint32 { return BaseAddress + MaxNonceOffset }

// NonceOutAddress is the address of the winning nonce register.
func NonceOutAddress() uint32 { return BaseAddress + NonceOutOffset }

// HashOutAddress is the address of word i of the winning hash.
func HashOutAddress(i int) uint32 { return BaseAddress + HashOutOffset + uint32(i)*4 }

// TargetAddress is the address of word i of the target.
func TargetAddress(i int) uint32 { return BaseAddress + TargetOffset + uint32(i)*4 }

// HeaderAddress is the address of word i of the block header.
func HeaderAddress(i int) uint32 { return BaseAddress + HeaderOffset + uint32(i)*4 }

// register identifies a decoded address.
type register struct {
	offset uint32
	index  int
}

func decodeAddress(address uint32) (register, error) {
	if address < BaseAddress || address-BaseAddress >= registerFileSize {
		return register{}, errors.Wrapf(ErrUnmappedRegister, "address 0x%08x", address)
	}
	if address%4 != 0 {
		return register{}, errors.Wrapf(ErrMisaligned, "address 0x%08x", address)
	}
	offset := address - BaseAddress
	switch {
	case offset >= HeaderOffset:
		return register{HeaderOffset, int(offset-HeaderOffset) / 4}, nil
	case offset >= TargetOffset:
		return register{TargetOffset, int(offset-TargetOffset) / 4}, nil
	case offset >= HashOutOffset+HashOutWords*4:
		return register{}, errors.Wrapf(ErrUnmappedRegister, "address 0x%08x", address)
	case offset >= HashOutOffset:
		return register{HashOutOffset, int(offset-HashOutOffset) / 4}, nil
	default:
		return register{offset, 0}, nil
	}
}

func (r register) String() string {
	switch r.offset {
	case CtrlOffset:
		return "CTRL"
	case MaxNonceOffset:
		return "MAX_NONCE"
	case NonceOutOffset:
		return "NONCE_OUT"
	case HashOutOffset:
		return fmt.Sprintf("HASH_OUT(%d)", r.index)
	case TargetOffset:
		return fmt.Sprintf("TARGET(%d)", r.index)
	case HeaderOffset:
		return fmt.Sprintf("HEADER(%d)", r.index)
	}
	return fmt.Sprintf("register 0x%02x", r.offset)
}
