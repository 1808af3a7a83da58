// Package inspector is a bubbletea terminal state viewer for a Console:
// single-step or run-one-frame execution with a live register/flag dump and
// the disassembled next instruction, in the spirit of a hardware debugger.
// It has no memory view.
package inspector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/tpaxton/nesgo/internal/console"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type model struct {
	console *console.Console
	steps   uint64
	err     error
}

// New returns a bubbletea program wired to c. Run() blocks until the user
// quits.
func New(c *console.Console) *tea.Program {
	return tea.NewProgram(model{console: c})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "s":
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.err = fmt.Errorf("step: %v", r)
				}
			}()
			m.console.Step()
			m.steps++
		}()
	case "f":
		if err := m.console.RunFrame(); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m model) View() string {
	body := []string{
		headerStyle.Render(fmt.Sprintf("nesgo inspector — %d steps", m.steps)),
		"",
		m.console.State(),
		"",
		"space/s: step one instruction   f: run one frame   q: quit",
	}
	if m.err != nil {
		body = append(body, "", "error: "+m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body...)
}

// Dump returns a go-spew rendering of a value, for ad hoc debugging
// sessions invoked from the inspector's command line.
func Dump(v interface{}) string {
	return strings.TrimSpace(spew.Sdump(v))
}
