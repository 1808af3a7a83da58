// Package console wires the cartridge, mapper, CPU, PPU, bus and
// controllers into the host-facing surface: Load a ROM, set button state,
// run frames, and read back the framebuffer (spec.md §6).
package console

import (
	"fmt"

	"github.com/tpaxton/nesgo/internal/bus"
	"github.com/tpaxton/nesgo/internal/cartridge"
	"github.com/tpaxton/nesgo/internal/cpu"
	"github.com/tpaxton/nesgo/internal/input"
	"github.com/tpaxton/nesgo/internal/mapper"
	"github.com/tpaxton/nesgo/internal/ppu"
)

// Console is the complete emulated machine. It is not safe for concurrent
// use: RunFrame and SetButton must not be called from different goroutines
// without external synchronization.
type Console struct {
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	bus  *bus.Bus
	pad1 *input.Controller
	pad2 *input.Controller
}

// Options configures a Console at construction time.
type Options struct {
	// ResetMode selects how the CPU seeds its program counter on reset.
	ResetMode cpu.ResetMode
}

// Load parses an iNES image and returns a ready-to-run Console.
func Load(romData []byte, opts Options) (*Console, error) {
	cart, err := cartridge.Load(romData)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	mp, err := mapper.Get(cart)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	return New(mp, opts), nil
}

// New builds a Console directly from an already-resolved mapper; Load is
// the usual entry point, but tests and tools that construct carts/mappers
// themselves can call this instead.
func New(mp mapper.Mapper, opts Options) *Console {
	p := ppu.New(mp)
	var pad1, pad2 input.Controller

	c := &Console{ppu: p, pad1: &pad1, pad2: &pad2}

	var cpuCycles func() uint64
	b := bus.New(mp, p, &pad1, &pad2, func() uint64 {
		if cpuCycles == nil {
			return 0
		}
		return cpuCycles()
	})
	cc := cpu.New(b, opts.ResetMode)
	cpuCycles = func() uint64 { return cc.Cycles }
	b.AttachCPU(cc)

	c.cpu = cc
	c.bus = b
	return c
}

// SetButton records a button press/release on one of the two controller
// ports (port is 0 or 1).
func (c *Console) SetButton(port int, b input.Button, pressed bool) {
	if port == 0 {
		c.pad1.SetButton(b, pressed)
	} else {
		c.pad2.SetButton(b, pressed)
	}
}

// RunFrame runs the machine until one full NMI-delimited frame has
// completed: it first services any NMI the PPU already has pending from
// the end of the previous frame, then steps the CPU until the PPU raises a
// fresh one (spec.md §4.6's frame-driver contract).
func (c *Console) RunFrame() error {
	if c.ppu.ConsumeNMI() {
		c.cpu.HandleNMI()
	}
	for !c.ppu.NMIPending() {
		c.cpu.Step()
	}
	return c.bus.TakeError()
}

// Framebuffer returns the current RGBA frame (Width*Height*4 bytes).
func (c *Console) Framebuffer() []uint8 {
	return c.ppu.Framebuffer()
}

// Disassemble renders the instruction at pc without mutating state, for the
// inspector front end.
func (c *Console) Disassemble(pc uint16) string {
	return c.cpu.Disassemble(pc)
}

// Step executes a single CPU instruction, servicing a pending NMI first if
// one is outstanding. Intended for the inspector front end; RunFrame is the
// normal drive loop.
func (c *Console) Step() {
	if c.ppu.ConsumeNMI() {
		c.cpu.HandleNMI()
	}
	c.cpu.Step()
}

// State renders the CPU's architectural registers and flags for display by
// the inspector front end.
func (c *Console) State() string {
	bit := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '-'
	}
	flags := []byte{
		bit(c.cpu.N, 'N'), bit(c.cpu.V, 'V'), bit(c.cpu.D, 'D'),
		bit(c.cpu.I, 'I'), bit(c.cpu.Z, 'Z'), bit(c.cpu.C, 'C'),
	}
	return fmt.Sprintf(
		"PC:%04X A:%02X X:%02X Y:%02X SP:%02X  cycles:%d\nflags: %s\n%s",
		c.cpu.PC, c.cpu.A, c.cpu.X, c.cpu.Y, c.cpu.SP, c.cpu.Cycles,
		string(flags), c.cpu.Disassemble(c.cpu.PC),
	)
}

// Reset re-initializes the CPU to its post-reset state, leaving PPU/VRAM
// state untouched (matching a real console's reset line).
func (c *Console) Reset() {
	c.cpu.Reset()
}
