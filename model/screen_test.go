package model

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimulationRenderer(t *testing.T, width, height int) (*ScreenRenderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	r, err := NewScreenRenderer(screen)
	if err != nil {
		t.Fatalf("NewScreenRenderer returned error: %v", err)
	}
	screen.SetSize(width, height)
	return r, screen
}

func TestScreenRendererRender(t *testing.T) {
	r, screen := newSimulationRenderer(t, 10, 10)
	defer r.Close()

	g := NewGrid(3, 2, coords([2]int{0, 0}, [2]int{2, 1}))
	if err := r.Render(g); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	cells, width, _ := screen.GetContents()
	want := []string{"..O", "O.."}
	for row, line := range want {
		for x, glyph := range line {
			cell := cells[row*width+x]
			if len(cell.Runes) == 0 || cell.Runes[0] != glyph {
				t.Fatalf("screen (%d,%d) = %q, expected %q", x, row, cell.Runes, glyph)
			}
		}
	}
}

func TestScreenRendererPollQuit(t *testing.T) {
	r, screen := newSimulationRenderer(t, 5, 5)
	defer r.Close()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan bool, 1)
	go func() { done <- r.PollQuit(context.Background()) }()

	select {
	case quit := <-done:
		if !quit {
			t.Fatal("PollQuit returned without a quit request")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PollQuit did not see the 'q' key")
	}
}

func TestScreenRendererPollQuitOnClose(t *testing.T) {
	r, _ := newSimulationRenderer(t, 5, 5)

	done := make(chan bool, 1)
	go func() { done <- r.PollQuit(context.Background()) }()
	r.Close()

	select {
	case quit := <-done:
		if quit {
			t.Fatal("closing the screen is not a quit request")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PollQuit kept blocking after Close")
	}
}
