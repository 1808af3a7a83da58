package console

import (
	"testing"

	"github.com/tpaxton/nesgo/internal/input"
	"github.com/tpaxton/nesgo/internal/ppu"
)

func buildROM() []byte {
	const headerSize, prgBlockSize, chrBlockSize = 16, 16384, 8192
	data := make([]byte, headerSize+prgBlockSize+chrBlockSize)
	copy(data, "NES\x1a")
	data[4] = 1
	data[5] = 1

	prg := data[headerSize : headerSize+prgBlockSize]
	// Enable NMI, then loop forever:
	//   $8000 LDA #$80
	//   $8002 STA $2000
	//   $8005 JMP $8005
	prg[0], prg[1] = 0xA9, 0x80
	prg[2], prg[3], prg[4] = 0x8D, 0x00, 0x20
	prg[5], prg[6], prg[7] = 0x4C, 0x05, 0x80
	// reset vector -> 0x8000
	prg[prgBlockSize-4] = 0x00
	prg[prgBlockSize-3] = 0x80
	return data
}

func TestLoadAndRunFrame(t *testing.T) {
	c, err := Load(buildROM(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	fb := c.Framebuffer()
	if got, want := len(fb), ppu.Width*ppu.Height*4; got != want {
		t.Fatalf("framebuffer len = %d, want %d", got, want)
	}
}

func TestSetButtonDoesNotPanic(t *testing.T) {
	c, err := Load(buildROM(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.SetButton(0, input.A, true)
	c.SetButton(1, input.Start, true)
}

func TestDisassembleAtReset(t *testing.T) {
	c, err := Load(buildROM(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := c.Disassemble(0x8000)
	if s == "" {
		t.Fatal("Disassemble returned empty string")
	}
}
