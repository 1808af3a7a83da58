// Command nesgo-tui is a terminal front end for the NES core: it drives
// internal/inspector's bubbletea debugger instead of a real-time graphical
// display, for stepping through execution one instruction or frame at a
// time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tpaxton/nesgo/internal/console"
	"github.com/tpaxton/nesgo/internal/cpu"
	"github.com/tpaxton/nesgo/internal/inspector"
)

var (
	romFile = flag.String("rom", "", "path to an iNES ROM file")
	fixedPC = flag.Bool("fixed_pc", false, "start execution at 0x8000 instead of reading the reset vector")
)

func main() {
	flag.Parse()
	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "nesgo-tui: -rom is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("nesgo-tui: reading ROM: %v", err)
	}

	opts := console.Options{}
	if *fixedPC {
		opts.ResetMode = cpu.ResetFixed8000
	}
	c, err := console.Load(data, opts)
	if err != nil {
		log.Fatalf("nesgo-tui: loading ROM: %v", err)
	}

	if _, err := inspector.New(c).Run(); err != nil {
		log.Fatalf("nesgo-tui: %v", err)
	}
}
