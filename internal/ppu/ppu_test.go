package ppu

import (
	"testing"

	"github.com/tpaxton/nesgo/internal/cartridge"
)

// fakeMapper is a flat, writable 8KiB CHR space for testing; production
// code always gets this from internal/mapper instead.
type fakeMapper struct {
	chr   [8192]uint8
	mirror cartridge.Mirror
}

func (m *fakeMapper) PRGRead(addr uint16) uint8     { return 0 }
func (m *fakeMapper) PRGWrite(addr uint16, v uint8) {}
func (m *fakeMapper) CHRRead(addr uint16) uint8     { return m.chr[addr%8192] }
func (m *fakeMapper) CHRWrite(addr uint16, v uint8) { m.chr[addr%8192] = v }
func (m *fakeMapper) RAMRead(addr uint16) uint8     { return 0 }
func (m *fakeMapper) RAMWrite(addr uint16, v uint8) {}
func (m *fakeMapper) Mirror() cartridge.Mirror      { return m.mirror }

func TestFramebufferSize(t *testing.T) {
	p := New(&fakeMapper{})
	if got, want := len(p.Framebuffer()), Width*Height*4; got != want {
		t.Fatalf("framebuffer len = %d, want %d", got, want)
	}
}

func TestPPUADDRWriteLatchAndPPUDATAReadWrite(t *testing.T) {
	p := New(&fakeMapper{})
	p.WriteRegister(RegPPUADDR, 0x23)
	p.WriteRegister(RegPPUADDR, 0x05)
	if p.addr != 0x2305 {
		t.Fatalf("addr = %#04x, want 0x2305", p.addr)
	}
	p.WriteRegister(RegPPUDATA, 0x42)
	p.WriteRegister(RegPPUADDR, 0x23)
	p.WriteRegister(RegPPUADDR, 0x05)
	// first PPUDATA read returns the stale buffer, not the byte just written
	first := p.ReadRegister(RegPPUDATA)
	if first == 0x42 {
		t.Error("first PPUDATA read should return the buffered (stale) value")
	}
	second := p.ReadRegister(RegPPUDATA)
	if second != 0x42 {
		t.Errorf("second PPUDATA read = %#02x, want 0x42", second)
	}
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p := New(&fakeMapper{})
	p.status |= statusVBlank
	p.writeLatch = true
	v := p.ReadRegister(RegPPUSTATUS)
	if v&statusVBlank == 0 {
		t.Error("status read should report VBlank was set")
	}
	if p.status&statusVBlank != 0 {
		t.Error("status read should clear VBlank")
	}
	if p.writeLatch {
		t.Error("status read should clear the write latch")
	}
}

func TestPaletteMirroring(t *testing.T) {
	p := New(&fakeMapper{})
	p.writePalette(0x3F00, 0x20)
	if got := p.readPalette(0x3F10); got != 0x20 {
		t.Errorf("0x3F10 should mirror 0x3F00, got %#02x", got)
	}
}

func TestOAMDMACopiesFullPage(t *testing.T) {
	p := New(&fakeMapper{})
	var page [256]uint8
	for i := range page {
		page[i] = uint8(i)
	}
	p.WriteOAMDMA(page)
	for i, v := range p.oam {
		if v != uint8(i) {
			t.Fatalf("oam[%d] = %#02x, want %#02x", i, v, uint8(i))
		}
	}
}

func TestVBlankRaisesNMIAtLine241(t *testing.T) {
	p := New(&fakeMapper{})
	p.ctrl |= ctrlGenerateNMI
	// advance to scanline 241, dot 1, then tick once more so that dot is
	// processed (tick handles the current dot before advancing)
	for p.scanline != vblankStartLine || p.dot != 1 {
		p.Tick(1)
	}
	p.Tick(1)
	if !p.ConsumeNMI() {
		t.Fatal("expected NMI to be pending at line 241 dot 1")
	}
	if p.ConsumeNMI() {
		t.Fatal("ConsumeNMI should clear the pending flag")
	}
}

func TestOddFrameSkipsDotZeroOnPreRenderLine(t *testing.T) {
	p := New(&fakeMapper{})
	p.mask |= 0x08 // enable background rendering
	p.oddFrame = true
	p.scanline = preRenderLine
	p.dot = 0

	p.Tick(1)
	if p.dot != 2 {
		t.Fatalf("dot after tick on odd frame at (-1,0) = %d, want 2 (dot 1 skipped)", p.dot)
	}
}

func TestEvenFrameDoesNotSkipDotZero(t *testing.T) {
	p := New(&fakeMapper{})
	p.mask |= 0x08 // enable background rendering
	p.oddFrame = false
	p.scanline = preRenderLine
	p.dot = 0

	p.Tick(1)
	if p.dot != 1 {
		t.Fatalf("dot after tick on even frame at (-1,0) = %d, want 1 (no skip)", p.dot)
	}
}

func TestPreRenderLineClearsNametableSelectBits(t *testing.T) {
	p := New(&fakeMapper{})
	p.ctrl |= ctrlNametableMask
	p.scanline = preRenderLine
	p.dot = 1

	p.Tick(1)
	if p.ctrl&ctrlNametableMask != 0 {
		t.Fatalf("ctrl nametable bits = %#02x, want cleared", p.ctrl&ctrlNametableMask)
	}
}

func TestSprite0HitWhenOpaquePixelsOverlap(t *testing.T) {
	p := New(&fakeMapper{})
	p.mask |= 0x08 | 0x10 // enable background and sprite rendering

	// Background tile 0, fully opaque pixel pattern on every row.
	for row := uint16(0); row < 8; row++ {
		p.writeVRAM(row, 0xFF)
	}
	// Sprite 0's OAM Y byte is the on-screen row minus one; 0 means it
	// first appears at scanline 1.
	p.oam[0] = 0 // Y
	p.oam[1] = 0 // tile 0
	p.oam[2] = 0 // attr: palette 0, in front
	p.oam[3] = 0 // X = 0

	p.renderScanline(1)
	if p.status&statusSprite0Hit == 0 {
		t.Error("expected sprite-0 hit when sprite and background pixels are both opaque")
	}
}
