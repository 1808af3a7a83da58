package mapper

import "github.com/tpaxton/nesgo/internal/cartridge"

const chrRAMSize = 8192
const defaultRAMSize = 8192 // one 8KiB unit, present even if not battery-backed

// nrom implements mapper 0: a direct, unbanked view of PRG ROM mirrored
// across the CPU's 0x8000-0xFFFF window, CHR ROM (or, for carts that
// declare zero CHR blocks, a flat 8 KiB of CHR RAM) in the PPU's pattern
// table window, and a flat cartridge-RAM window at 0x6000-0x7FFF.
type nrom struct {
	cart   *cartridge.Cartridge
	chrRAM []byte // only populated when the cartridge has no CHR ROM
	ram    []byte
}

func newNROM(c *cartridge.Cartridge) *nrom {
	n := &nrom{cart: c}
	if c.CHRLen() == 0 {
		n.chrRAM = make([]byte, chrRAMSize)
	}
	size := defaultRAMSize
	if n := int(c.PRGRAMSize()) * 8192; n > size {
		size = n
	}
	n.ram = make([]byte, size)
	return n
}

func (n *nrom) RAMRead(addr uint16) uint8 {
	return n.ram[int(addr-0x6000)%len(n.ram)]
}

func (n *nrom) RAMWrite(addr uint16, val uint8) {
	n.ram[int(addr-0x6000)%len(n.ram)] = val
}

// PRGRead implements spec.md §4.3: PRG ROM at (addr-0x8000) mod len(PRG).
func (n *nrom) PRGRead(addr uint16) uint8 {
	return n.cart.PRGByte(int(addr - 0x8000))
}

// PRGWrite is a no-op: PRG ROM is read-only under NROM.
func (n *nrom) PRGWrite(addr uint16, val uint8) {}

func (n *nrom) CHRRead(addr uint16) uint8 {
	if n.chrRAM != nil {
		return n.chrRAM[addr%chrRAMSize]
	}
	return n.cart.CHRByte(int(addr))
}

func (n *nrom) CHRWrite(addr uint16, val uint8) {
	if n.chrRAM != nil {
		n.chrRAM[addr%chrRAMSize] = val
	}
	// CHR ROM carts ignore writes; the cartridge is immutable.
}

func (n *nrom) Mirror() cartridge.Mirror {
	return n.cart.Mirror()
}
