package cartridge

import (
	"errors"
	"fmt"
)

const (
	prgBlockSize = 16384
	chrBlockSize = 8192
	trainerSize  = 512
	headerSize   = 16
)

// Sentinel errors surfaced by Load (spec.md §7, category 1: invalid cartridge).
var (
	ErrShortImage = errors.New("cartridge: image too short")
	ErrBadMagic   = errors.New("cartridge: missing iNES magic")
)

// Cartridge is the immutable, loaded contents of an iNES file: PRG and CHR
// ROM bytes plus the nametable mirror mode. It never mutates after Load
// returns and may be shared freely between the CPU (PRG window) and the PPU
// (CHR window).
type Cartridge struct {
	prg    []byte
	chr    []byte
	mirror Mirror
	mapper uint16
	hasRAM bool
	ramKiB uint8
}

// Load parses an iNES image and returns its immutable cartridge state. It
// rejects images shorter than the header plus the declared PRG/CHR payload.
func Load(data []byte) (*Cartridge, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	off := headerSize
	if h.hasTrainer() {
		off += trainerSize
	}

	prgLen := int(h.prgSize) * prgBlockSize
	chrLen := int(h.chrSize) * chrBlockSize
	want := off + prgLen + chrLen
	if len(data) < want {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortImage, want, len(data))
	}

	prg := make([]byte, prgLen)
	copy(prg, data[off:off+prgLen])
	chr := make([]byte, chrLen)
	copy(chr, data[off+prgLen:off+prgLen+chrLen])

	return &Cartridge{
		prg:    prg,
		chr:    chr,
		mirror: h.mirrorMode(),
		mapper: h.mapperNumber(),
		hasRAM: h.hasPRGRAM(),
		ramKiB: h.prgRAMSize(),
	}, nil
}

// PRGLen reports the size of the PRG ROM in bytes.
func (c *Cartridge) PRGLen() int { return len(c.prg) }

// CHRLen reports the size of the CHR ROM in bytes.
func (c *Cartridge) CHRLen() int { return len(c.chr) }

// PRGByte reads byte i of PRG ROM, mirroring (mod length) when the cartridge
// declares fewer than 32 KiB so a mapper can map the full 0x8000-0xFFFF CPU
// window onto it directly.
func (c *Cartridge) PRGByte(i int) byte {
	if len(c.prg) == 0 {
		return 0
	}
	return c.prg[i%len(c.prg)]
}

// CHRByte reads byte i of CHR ROM.
func (c *Cartridge) CHRByte(i int) byte {
	if len(c.chr) == 0 {
		return 0
	}
	return c.chr[i%len(c.chr)]
}

// Mirror reports the nametable mirroring mode declared by the header.
func (c *Cartridge) Mirror() Mirror { return c.mirror }

// MapperNumber reports the iNES mapper number this image was built for.
func (c *Cartridge) MapperNumber() uint16 { return c.mapper }

// HasPRGRAM reports whether the header declares battery-backed PRG RAM.
func (c *Cartridge) HasPRGRAM() bool { return c.hasRAM }

// PRGRAMSize reports the declared PRG RAM size in 8 KiB units (0 if none).
func (c *Cartridge) PRGRAMSize() uint8 { return c.ramKiB }
