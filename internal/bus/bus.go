// Package bus implements the NES's CPU-visible address space: 2KiB
// internal RAM mirrored four times, PPU registers mirrored every 8 bytes
// across 0x2000-0x3FFF, controller ports at 0x4016/0x4017, OAM DMA at
// 0x4014, and cartridge PRG space from 0x8000 up (spec.md §4.3).
package bus

import (
	"errors"
	"fmt"

	"github.com/tpaxton/nesgo/internal/input"
	"github.com/tpaxton/nesgo/internal/mapper"
	"github.com/tpaxton/nesgo/internal/ppu"
)

const (
	ramSize      = 0x0800
	ramMirrorEnd = 0x1FFF
	ppuMirrorEnd = 0x3FFF
	ctrlPort1    = 0x4016
	ctrlPort2    = 0x4017
	oamDMAReg    = 0x4014
	apuIOEnd     = 0x4017
	cartStart    = 0x6000
)

// ErrUnsupportedFeature marks a behavior spec.md explicitly declines to
// support (category 3 in spec.md §7): a nonzero OAMADDR at the time of an
// OAM DMA. The DMA still runs, starting at OAMADDR and wrapping around
// OAM, and the condition is reported through TakeError.
var ErrUnsupportedFeature = errors.New("bus: unsupported feature")

// BusFault reports an access to an address this core doesn't map. Real
// hardware has no such fault; spec.md treats it as a fatal bug in the
// emulator itself rather than something to recover from, so Read and Write
// panic with it.
type BusFault struct {
	Addr  uint16
	Write bool
}

func (e *BusFault) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("bus: unmapped %s at %#04x", op, e.Addr)
}

// CPU is the subset of internal/cpu.CPU the bus needs to deliver the OAM
// DMA stall cycles onto.
type CPU interface {
	StallCycles(n uint64)
}

// Bus wires RAM, the PPU, the cartridge mapper, and both controller ports
// behind the CPU's flat 16-bit address space, and drives the PPU's
// catch-up ticking spec.md §5 requires on every CPU-visible access.
type Bus struct {
	ram  [ramSize]uint8
	ppu  *ppu.PPU
	mp   mapper.Mapper
	pad1 *input.Controller
	pad2 *input.Controller
	cpu  CPU

	lastSyncCycles uint64
	cpuCycles      func() uint64

	pendingErr error
}

// TakeError returns and clears any non-fatal condition raised since the
// last call (currently only ErrUnsupportedFeature from OAM DMA). Front ends
// poll this once per frame; it is not consulted during CPU/PPU execution.
func (b *Bus) TakeError() error {
	err := b.pendingErr
	b.pendingErr = nil
	return err
}

// New returns a Bus. cpuCycles reports the CPU's current cycle counter,
// used to compute how many PPU dots to advance on each access (3 dots per
// CPU cycle elapsed since the last access).
func New(m mapper.Mapper, p *ppu.PPU, pad1, pad2 *input.Controller, cpuCycles func() uint64) *Bus {
	return &Bus{mp: m, ppu: p, pad1: pad1, pad2: pad2, cpuCycles: cpuCycles}
}

// AttachCPU lets the CPU be constructed after the bus (it needs the bus as
// its own dependency) while still letting the bus deliver DMA stalls back
// to it.
func (b *Bus) AttachCPU(c CPU) {
	b.cpu = c
}

// catchUpPPU advances the PPU by 3 dots per CPU cycle elapsed since the
// last bus access, per spec.md §5's catch-up cadence.
func (b *Bus) catchUpPPU() {
	if b.cpuCycles == nil {
		return
	}
	now := b.cpuCycles()
	delta := now - b.lastSyncCycles
	b.lastSyncCycles = now
	if delta > 0 {
		b.ppu.Tick(int(delta) * 3)
	}
}

func (b *Bus) Read(addr uint16) uint8 {
	b.catchUpPPU()
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuMirrorEnd:
		return b.ppu.ReadRegister((addr - 0x2000) % 8)
	case addr == ctrlPort1:
		return b.pad1.Read()
	case addr == ctrlPort2:
		return b.pad2.Read()
	case addr <= apuIOEnd:
		return 0 // APU and unimplemented I/O read as open bus zero
	case addr < cartStart:
		return 0 // expansion ROM / unused, not exercised by any supported cartridge
	case addr < 0x8000:
		return b.mp.RAMRead(addr)
	case addr <= 0xFFFF:
		return b.mp.PRGRead(addr)
	default:
		panic(&BusFault{Addr: addr})
	}
}

func (b *Bus) Write(addr uint16, val uint8) {
	b.catchUpPPU()
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&0x07FF] = val
	case addr <= ppuMirrorEnd:
		b.ppu.WriteRegister((addr-0x2000)%8, val)
	case addr == oamDMAReg:
		b.doOAMDMA(val)
	case addr == ctrlPort1:
		b.pad1.Write(val)
		b.pad2.Write(val)
	case addr == ctrlPort2:
		// $4017 also carries an APU frame-counter write this core does
		// not emulate; the controller-strobe side effect already
		// happened via $4016.
	case addr <= apuIOEnd:
		// APU registers: accepted and ignored (spec.md's Non-goal).
	case addr < cartStart:
		// expansion ROM / unused
	case addr < 0x8000:
		b.mp.RAMWrite(addr, val)
	case addr <= 0xFFFF:
		b.mp.PRGWrite(addr, val)
	default:
		panic(&BusFault{Addr: addr, Write: true})
	}
}

// doOAMDMA copies one 256-byte CPU page into OAM and charges the CPU the
// 513/514-cycle stall real hardware incurs (514 on an odd CPU cycle).
func (b *Bus) doOAMDMA(pageHi uint8) {
	if b.ppu.OAMAddr() != 0 {
		b.pendingErr = fmt.Errorf("%w: OAM DMA starting at OAMADDR=%#02x", ErrUnsupportedFeature, b.ppu.OAMAddr())
	}

	var page [256]uint8
	base := uint16(pageHi) << 8
	for i := range page {
		page[i] = b.Read(base + uint16(i))
	}
	b.ppu.WriteOAMDMA(page)

	stall := uint64(513)
	if b.cpuCycles != nil && b.cpuCycles()%2 == 1 {
		stall = 514
	}
	if b.cpu != nil {
		b.cpu.StallCycles(stall)
	}
}
