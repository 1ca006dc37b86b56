package model

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	gridPosAlive = 'O'
	gridPosDead  = '.'

	ansiClearHome = "\033[H\033[2J"
	clearCmd      = "clear"
)

// View is the read-only query a renderer needs from a grid
type View interface {
	Width() int
	Height() int
	IsAlive(x, y int) bool
}

// Renderer draws one frame of the game
type Renderer interface {
	Render(v View) error
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out      io.Writer
	useShell bool
}

// NewTerminalRenderer returns a renderer writing frames to out.
// With useShell the screen is cleared by running the system clear command
// instead of writing an escape sequence.
func NewTerminalRenderer(out io.Writer, useShell bool) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{out: out, useShell: useShell}
}

// Render clears the previous frame and displays the grid
func (r *TerminalRenderer) Render(v View) error {
	if err := r.Clear(); err != nil {
		return err
	}
	return r.Display(v)
}

// Display renders the grid top row first, so y grows upwards
func (r *TerminalRenderer) Display(v View) error {
	w := bufio.NewWriter(r.out)
	for y := v.Height() - 1; y >= 0; y-- {
		for x := range v.Width() {
			glyph := byte(gridPosDead)
			if v.IsAlive(x, y) {
				glyph = gridPosAlive
			}
			if err := w.WriteByte(glyph); err != nil {
				return errors.Wrap(err, "[Display] failed to write cell")
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "[Display] failed to write row")
		}
	}
	return errors.Wrap(w.Flush(), "[Display] failed to flush frame")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if !r.useShell {
		_, err := io.WriteString(r.out, ansiClearHome)
		return errors.Wrap(err, "[Clear] failed to write clear sequence")
	}

	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out
	return errors.Wrap(cmd.Run(), "[Clear] failed to run clear command")
}
