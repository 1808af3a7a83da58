// Package mapper implements cartridge address translation. Only mapper 0
// (NROM) is implemented; every other mapper number is rejected by Get, per
// spec.md's Non-goal of extended mapper support.
package mapper

import (
	"errors"
	"fmt"

	"github.com/tpaxton/nesgo/internal/cartridge"
)

// ErrUnsupportedMapper is returned by Get for any mapper number this core
// does not implement (spec.md §7, category 3).
var ErrUnsupportedMapper = errors.New("mapper: unsupported mapper number")

// Mapper translates CPU and PPU addresses onto cartridge PRG/CHR bytes, and
// the CPU's 0x6000-0x7FFF cartridge-RAM window onto battery-backed or
// volatile work RAM.
type Mapper interface {
	PRGRead(addr uint16) uint8
	PRGWrite(addr uint16, val uint8)
	CHRRead(addr uint16) uint8
	CHRWrite(addr uint16, val uint8)
	RAMRead(addr uint16) uint8
	RAMWrite(addr uint16, val uint8)
	Mirror() cartridge.Mirror
}

// Get returns the mapper implementation for the cartridge's declared mapper
// number, or ErrUnsupportedMapper if this core doesn't implement it.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	switch n := c.MapperNumber(); n {
	case 0:
		return newNROM(c), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, n)
	}
}
