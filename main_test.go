package main

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func testSettings() utils.Settings {
	settings := utils.DefaultSettings()
	settings.FrameRate = 0
	return settings
}

func newTestLoop(config utils.Config, settings utils.Settings, out *bytes.Buffer) *loop {
	return &loop{
		game:     model.NewGame(config, model.NewTerminalRenderer(out, false)),
		cycles:   config.Cycles,
		settings: settings,
		stats:    utils.NewStats(),
	}
}

func mustParse(t *testing.T, args ...string) utils.Config {
	t.Helper()
	config, err := utils.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %v", args, err)
	}
	return config
}

func frames(out string) []string {
	parts := strings.Split(out, "\033[H\033[2J")
	return parts[1:]
}

func TestLoopRunsBoundedCycles(t *testing.T) {
	var out bytes.Buffer
	l := newTestLoop(mustParse(t, "5", "5", "2", "1,2", "2,2", "3,2"), testSettings(), &out)

	if err := l.run(context.Background()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if l.game.Generation() != 2 {
		t.Fatalf("generation = %d, expected 2", l.game.Generation())
	}

	got := frames(out.String())
	if len(got) != 3 {
		t.Fatalf("rendered %d frames, expected initial state plus 2", len(got))
	}
	horizontal := ".....\n.....\n.OOO.\n.....\n.....\n"
	vertical := ".....\n..O..\n..O..\n..O..\n.....\n"
	if got[0] != horizontal || got[1] != vertical || got[2] != horizontal {
		t.Fatalf("unexpected frames:\n%s", strings.Join(got, "--\n"))
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	settings := testSettings()
	settings.FrameRate = time.Hour
	l := newTestLoop(mustParse(t, "5", "5", "0", "1,2", "2,2", "3,2"), settings, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("run error = %v, expected context.Canceled", err)
	}
	if l.game.Generation() != 0 {
		t.Fatalf("cancelled loop advanced to generation %d", l.game.Generation())
	}
}

func TestLoopStopsWhenStagnant(t *testing.T) {
	var out, status bytes.Buffer
	settings := testSettings()
	settings.StopWhenStagnant = true
	l := newTestLoop(mustParse(t, "6", "6", "0", "2,2", "3,2", "2,3", "3,3"), settings, &out)
	l.status = &status

	if err := l.run(context.Background()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if l.game.Generation() != 2 {
		t.Fatalf("block stopped at generation %d, expected 2", l.game.Generation())
	}
	if !strings.Contains(status.String(), "Status: Stagnant") {
		t.Fatalf("status output missing stagnation:\n%s", status.String())
	}
}

func TestLoopStopsWhenExtinct(t *testing.T) {
	var out bytes.Buffer
	settings := testSettings()
	settings.StopWhenStagnant = true
	l := newTestLoop(mustParse(t, "9", "9", "0", "0,0", "4,4", "8,8"), settings, &out)

	if err := l.run(context.Background()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if l.game.Generation() != 1 {
		t.Fatalf("extinct grid stopped at generation %d, expected 1", l.game.Generation())
	}
}

func TestUpdateGameState(t *testing.T) {
	game := model.NewGame(mustParse(t, "10", "10", "1", "1,2", "2,2", "3,2"), nil)
	stats := utils.NewStats()

	living, density, status := updateGameState(game, time.Now(), stats, false)
	if living != 3 || math.Abs(density-3) > 1e-9 || status != statusActive {
		t.Fatalf("got (%d, %.1f, %s), expected (3, 3.0, Active)", living, density, status)
	}

	empty := model.NewGame(utils.Config{}, nil)
	living, density, status = updateGameState(empty, time.Now(), stats, true)
	if living != 0 || density != 0 || status != statusExtinct {
		t.Fatalf("got (%d, %.1f, %s), expected (0, 0.0, Extinct)", living, density, status)
	}
}

func TestRunTextRenderer(t *testing.T) {
	var out bytes.Buffer
	settings := testSettings()
	settings.ShowStatus = true

	err := run(context.Background(), mustParse(t, "5", "5", "3", "1,2", "2,2", "3,2"), settings, &out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Grid: 5x5 | Cycles: 3", "Gen: 3 | Living: 3", "Run ", "3 generations"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunCancelledIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	settings := testSettings()
	settings.FrameRate = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, mustParse(t, "5", "5", "0", "1,1", "2,2", "3,3"), settings, &out); err != nil {
		t.Fatalf("cancelled run returned %v", err)
	}
}
