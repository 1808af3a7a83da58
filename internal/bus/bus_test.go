package bus

import (
	"errors"
	"testing"

	"github.com/tpaxton/nesgo/internal/cartridge"
	"github.com/tpaxton/nesgo/internal/input"
	"github.com/tpaxton/nesgo/internal/mapper"
	"github.com/tpaxton/nesgo/internal/ppu"
)

type stubCPU struct{ stalled uint64 }

func (s *stubCPU) StallCycles(n uint64) { s.stalled += n }

func buildImage() []byte {
	const headerSize, prgBlockSize, chrBlockSize = 16, 16384, 8192
	data := make([]byte, headerSize+prgBlockSize+chrBlockSize)
	copy(data, "NES\x1a")
	data[4] = 1
	data[5] = 1
	return data
}

func newTestBus(t *testing.T) (*Bus, *stubCPU) {
	t.Helper()
	c, err := cartridge.Load(buildImage())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := mapper.Get(c)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	p := ppu.New(m)
	var pad1, pad2 input.Controller
	cycles := uint64(0)
	b := New(m, p, &pad1, &pad2, func() uint64 { return cycles })
	cpu := &stubCPU{}
	b.AttachCPU(cpu)
	return b, cpu
}

func TestRAMMirroring(t *testing.T) {
	b, _ := newTestBus(t)
	b.Write(0x0000, 0x55)
	if got := b.Read(0x0800); got != 0x55 {
		t.Errorf("0x0800 should mirror 0x0000, got %#02x", got)
	}
	if got := b.Read(0x1800); got != 0x55 {
		t.Errorf("0x1800 should mirror 0x0000, got %#02x", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, _ := newTestBus(t)
	// Set PPUADDR through its mirrors (0x200E, 0x3FFE) and write PPUDATA
	// through 0x200F; reading back through 0x2006/0x2007 must see the byte.
	b.Write(0x200E, 0x23)
	b.Write(0x3FFE, 0x05)
	b.Write(0x200F, 0x42)
	b.Write(0x2006, 0x23)
	b.Write(0x2006, 0x05)
	_ = b.Read(0x2007) // stale read buffer
	if got := b.Read(0x2007); got != 0x42 {
		t.Errorf("PPUDATA written via mirror reads back %#02x, want 0x42", got)
	}
}

func TestPRGReadFromCartridge(t *testing.T) {
	b, _ := newTestBus(t)
	if got := b.Read(0x8000); got != 0 {
		t.Errorf("PRGRead(0x8000) = %#02x, want 0 (zeroed test ROM)", got)
	}
}

func TestOAMDMAStallsCPU(t *testing.T) {
	b, cpu := newTestBus(t)
	b.Write(0x4014, 0x02)
	if cpu.stalled != 513 && cpu.stalled != 514 {
		t.Fatalf("stalled = %d, want 513 or 514", cpu.stalled)
	}
}

func TestOAMDMANonzeroOAMAddrIsUnsupportedFeature(t *testing.T) {
	b, _ := newTestBus(t)
	b.Write(0x2003, 0x10) // OAMADDR = 0x10
	b.Write(0x4014, 0x02)
	if err := b.TakeError(); !errors.Is(err, ErrUnsupportedFeature) {
		t.Fatalf("got %v, want ErrUnsupportedFeature", err)
	}
}

func TestControllerStrobeSharedByBothWrites(t *testing.T) {
	b, _ := newTestBus(t)
	var pad1 input.Controller
	pad1.SetButton(input.A, true)
	b2 := New(b.mp, b.ppu, &pad1, &input.Controller{}, func() uint64 { return 0 })
	b2.Write(0x4016, 1)
	b2.Write(0x4016, 0)
	if got := b2.Read(0x4016); got != 1 {
		t.Fatalf("Read(0x4016) = %d, want 1", got)
	}
}

func TestCartRAMWindowReadsWriteBack(t *testing.T) {
	b, _ := newTestBus(t)
	b.Write(0x6010, 0x99)
	if got := b.Read(0x6010); got != 0x99 {
		t.Errorf("Read(0x6010) = %#02x, want 0x99", got)
	}
}
