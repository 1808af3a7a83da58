// Package ppu implements the NES Picture Processing Unit: VRAM/OAM/palette
// state, the scanline/dot timing model, register I/O, and background and
// sprite compositing into an RGBA framebuffer. The "loopy" v/t internal
// address model is not implemented; scroll comes from the two 8-bit
// PPUSCROLL shadows (applied to the pixel, fine offset included) and a full
// row is composited at a time, matching spec.md's literal 8-bit
// scroll-shadow model.
package ppu

import "github.com/tpaxton/nesgo/internal/mapper"

const (
	vramSize    = 2048
	oamSize     = 256
	paletteSize = 32

	Width  = 256
	Height = 240

	dotsPerScanline = 341
	preRenderLine   = -1
	postRenderLine  = 240
	vblankStartLine = 241
	lastScanline    = 260
)

// PPUCTRL bits.
const (
	ctrlNametableMask = 0x03
	ctrlVRAMIncrement = 1 << 2
	ctrlSpritePattern = 1 << 3
	ctrlBGPattern     = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlGenerateNMI   = 1 << 7
)

// PPUSTATUS bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// PPU is the NES Picture Processing Unit. It owns its own VRAM, OAM and
// palette; pattern-table data comes from the cartridge mapper.
type PPU struct {
	mapper mapper.Mapper

	vram    [vramSize]uint8
	oam     [oamSize]uint8
	palette [paletteSize]uint8

	ctrl, mask, status uint8
	oamAddr            uint8
	scrollX, scrollY   uint8
	addr               uint16
	writeLatch         bool // shared by PPUSCROLL and PPUADDR
	readBuffer         uint8
	writingScrollX     bool // not consulted: writeLatch picks the PPUSCROLL half

	scanline int
	dot      int
	oddFrame bool // toggles each completed frame; drives the odd-frame dot skip

	frame []uint8 // Width*Height*4, RGBA

	nmiPending bool // edge-triggered; consumed once by the frame driver
}

// New returns a PPU reading pattern and nametable-mirroring data from m.
func New(m mapper.Mapper) *PPU {
	p := &PPU{
		mapper:         m,
		scanline:       preRenderLine,
		frame:          make([]uint8, Width*Height*4),
		writingScrollX: true,
	}
	return p
}

// Framebuffer returns the current RGBA frame. The slice is owned by the PPU
// and is overwritten on the next frame; callers that need to retain a frame
// must copy it.
func (p *PPU) Framebuffer() []uint8 {
	return p.frame
}

// ConsumeNMI reports whether an NMI has been raised since the last call and
// clears the flag (spec.md §4.6's "pending NMI" edge trigger).
func (p *PPU) ConsumeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// NMIPending reports whether an NMI has been raised since the last
// ConsumeNMI, without clearing it. The frame driver uses this to detect
// the boundary of a frame without servicing the interrupt mid-loop.
func (p *PPU) NMIPending() bool {
	return p.nmiPending
}

// Tick advances the PPU by n dots, the PPU-clock-domain unit spec.md's bus
// catch-up cadence runs this in (3 PPU dots per CPU cycle).
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	if p.scanline >= 0 && p.scanline < Height && p.dot == 1 {
		p.renderScanline(p.scanline)
	}
	if p.scanline == vblankStartLine && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlGenerateNMI != 0 {
			p.nmiPending = true
		}
	}
	if p.scanline == preRenderLine && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		p.ctrl &^= ctrlNametableMask
	}

	skipDot := p.scanline == preRenderLine && p.dot == 0 && p.oddFrame && p.renderingEnabled()

	p.dot++
	if skipDot {
		p.dot++
	}
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline > lastScanline {
			p.scanline = preRenderLine
			p.oddFrame = !p.oddFrame
		}
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(0x08|0x10) != 0
}

func (p *PPU) nametableMirrorAddr(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	switch p.mapper.Mirror().String() {
	case "horizontal":
		if a >= 0x800 {
			return 0x400 + (a-0x800)%0x400
		}
		return a % 0x400
	case "four-screen":
		return a % vramSize
	default: // vertical
		return a % 0x800
	}
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	a := addr % 0x4000
	switch {
	case a < 0x2000:
		return p.mapper.CHRRead(a)
	case a < 0x3F00:
		return p.vram[p.nametableMirrorAddr(a)]
	default:
		return p.readPalette(a)
	}
}

func (p *PPU) writeVRAM(addr uint16, v uint8) {
	a := addr % 0x4000
	switch {
	case a < 0x2000:
		p.mapper.CHRWrite(a, v)
	case a < 0x3F00:
		p.vram[p.nametableMirrorAddr(a)] = v
	default:
		p.writePalette(a, v)
	}
}

// paletteMirrorIndex folds the four mirrored sprite-palette entries
// (0x10/0x14/0x18/0x1C) onto their background-palette counterparts
// (0x00/0x04/0x08/0x0C), per spec.md's palette-mirroring invariant.
func paletteMirrorIndex(a uint16) uint16 {
	i := (a - 0x3F00) % 0x20
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(a uint16) uint8 {
	return p.palette[paletteMirrorIndex(a)]
}

func (p *PPU) writePalette(a uint16, v uint8) {
	p.palette[paletteMirrorIndex(a)] = v & 0x3F
}
