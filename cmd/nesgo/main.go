// Command nesgo is an ebiten-based graphical front end for the NES core in
// internal/console.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tpaxton/nesgo/internal/console"
	"github.com/tpaxton/nesgo/internal/cpu"
	"github.com/tpaxton/nesgo/internal/input"
)

var (
	romFile = flag.String("rom", "", "path to an iNES ROM file")
	fixedPC = flag.Bool("fixed_pc", false, "start execution at 0x8000 instead of reading the reset vector")
	scale   = flag.Int("scale", 2, "window scale factor")
)

// keymap binds host keys to controller-1 buttons; a second controller is
// wired but has no keyboard bindings in this front end.
var keymap = map[ebiten.Key]input.Button{
	ebiten.KeyZ:         input.A,
	ebiten.KeyX:         input.B,
	ebiten.KeyBackslash: input.Select,
	ebiten.KeyEnter:     input.Start,
	ebiten.KeyUp:        input.Up,
	ebiten.KeyDown:      input.Down,
	ebiten.KeyLeft:      input.Left,
	ebiten.KeyRight:     input.Right,
}

type game struct {
	console *console.Console
	screen  *ebiten.Image
}

func (g *game) Update() error {
	for key, button := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			g.console.SetButton(0, button, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.console.SetButton(0, button, false)
		}
	}
	if err := g.console.RunFrame(); err != nil {
		log.Printf("nesgo: %v", err)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.screen.WritePixels(g.console.Framebuffer())
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.screen.Bounds().Dx(), g.screen.Bounds().Dy()
	return w, h
}

func main() {
	flag.Parse()
	if *romFile == "" {
		log.Fatal("nesgo: -rom is required")
	}

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("nesgo: reading ROM: %v", err)
	}

	opts := console.Options{}
	if *fixedPC {
		opts.ResetMode = cpu.ResetFixed8000
	}
	c, err := console.Load(data, opts)
	if err != nil {
		log.Fatalf("nesgo: loading ROM: %v", err)
	}

	g := &game{console: c, screen: ebiten.NewImage(256, 240)}

	ebiten.SetWindowSize(256*(*scale), 240*(*scale))
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
