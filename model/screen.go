package model

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ScreenRenderer draws frames into a full-screen tcell terminal
type ScreenRenderer struct {
	screen tcell.Screen
	alive  tcell.Style
	dead   tcell.Style
}

// NewScreenRenderer initializes the screen. Call Close when done.
func NewScreenRenderer(screen tcell.Screen) (*ScreenRenderer, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewScreenRenderer] failed to initialize screen")
	}
	screen.HideCursor()
	screen.Clear()

	return &ScreenRenderer{
		screen: screen,
		alive:  tcell.StyleDefault.Reverse(true),
		dead:   tcell.StyleDefault.Dim(true),
	}, nil
}

// Render draws the grid with the same layout as TerminalRenderer
func (r *ScreenRenderer) Render(v View) error {
	r.screen.Clear()
	height := v.Height()
	for y := height - 1; y >= 0; y-- {
		row := height - 1 - y
		for x := range v.Width() {
			if v.IsAlive(x, y) {
				r.screen.SetContent(x, row, gridPosAlive, nil, r.alive)
			} else {
				r.screen.SetContent(x, row, gridPosDead, nil, r.dead)
			}
		}
	}
	r.screen.Show()
	return nil
}

// PollQuit blocks until the user asks to quit or the screen is closed.
// It returns true for a quit request.
func (r *ScreenRenderer) PollQuit(ctx context.Context) bool {
	for ctx.Err() == nil {
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return true
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
	return false
}

// Close restores the terminal
func (r *ScreenRenderer) Close() {
	r.screen.Fini()
}
