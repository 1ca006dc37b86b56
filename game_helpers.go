package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var errQuit = errors.New("quit requested")

const (
	statusActive   = "Active"
	statusStagnant = "Stagnant"
	statusExtinct  = "Extinct"
)

// loop holds everything the run loop needs between frames
type loop struct {
	game     *model.Game
	cycles   utils.Cycles
	settings utils.Settings
	stats    *utils.Stats
	status   io.Writer // nil when the renderer owns the whole terminal
}

// run builds the game for the configured renderer and plays it until the
// cycle count is reached, the context is cancelled or the user quits
func run(ctx context.Context, config utils.Config, settings utils.Settings, out io.Writer) error {
	eg, ctx := errgroup.WithContext(ctx)

	var (
		renderer model.Renderer
		screen   *model.ScreenRenderer
		status   = out
	)
	switch settings.Renderer {
	case utils.RendererScreen:
		s, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "[run] failed to create screen")
		}
		if screen, err = model.NewScreenRenderer(s); err != nil {
			return err
		}
		renderer, status = screen, nil

		eg.Go(func() error {
			if screen.PollQuit(ctx) {
				return errQuit
			}
			return nil
		})
	default:
		renderer = model.NewTerminalRenderer(out, settings.ClearCommand)
	}

	l := &loop{
		game:     model.NewGame(config, renderer),
		cycles:   config.Cycles,
		settings: settings,
		stats:    utils.NewStats(),
	}
	if settings.ShowStatus {
		l.status = status
	}
	if l.status != nil {
		displayGameInfo(l.status, config, l.game)
	}

	eg.Go(func() error {
		if screen != nil {
			defer screen.Close()
		}
		return l.run(ctx)
	})

	err := eg.Wait()
	displayFinalStats(out, l.stats)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// run renders the initial state and then steps once per frame
func (l *loop) run(ctx context.Context) error {
	if err := l.game.RenderCurrentState(); err != nil {
		return errors.Wrap(err, "[loop.run] failed to render initial state")
	}

	lastFrameTime := time.Now()
	for !l.cycles.Done(l.game.Generation()) {
		timer := time.NewTimer(l.settings.FrameRate)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		frameStart := time.Now()
		if err := l.game.Step(); err != nil {
			return errors.Wrapf(err, "[loop.run] failed to render generation %d", l.game.Generation())
		}

		livingCells, density, status := updateGameState(l.game, lastFrameTime, l.stats, l.tracksHistory())
		lastFrameTime = frameStart

		if l.status != nil {
			displayGameStatus(l.status, l.game.Generation(), livingCells, density, status, l.stats)
		}
		if l.settings.StopWhenStagnant && status != statusActive {
			if l.status != nil {
				fmt.Fprintf(l.status, "Stopping: %s after %d generations\n", status, l.game.Generation())
			}
			return nil
		}
	}
	return nil
}

func (l *loop) tracksHistory() bool {
	return l.settings.ShowStatus || l.settings.StopWhenStagnant
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, game *model.Game) {
	fmt.Fprintf(w, "Grid: %dx%d | Cycles: %v | Initial living cells: %d\n",
		config.Width, config.Height, config.Cycles, game.Population())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
}

// updateGameState updates the stats and returns status information
func updateGameState(
	game *model.Game,
	lastFrameTime time.Time,
	stats *utils.Stats,
	trackHistory bool,
) (int, float64, string) {
	grid := game.Grid()
	livingCells := game.Population()

	density := 0.0
	if area := grid.Width() * grid.Height(); area > 0 {
		density = float64(livingCells) / float64(area) * 100
	}

	stats.Update(game.Generation(), livingCells, time.Since(lastFrameTime))

	status := statusActive
	if trackHistory && game.RecordState() {
		status = statusStagnant
	}
	if livingCells == 0 {
		status = statusExtinct
	}

	return livingCells, density, status
}

// displayGameStatus shows the current game status
func displayGameStatus(
	w io.Writer,
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
) {
	fmt.Fprintf(w, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// displayFinalStats prints the run summary
func displayFinalStats(w io.Writer, stats *utils.Stats) {
	fmt.Fprintf(w, "Run %s: %d generations in %.1f seconds | Peak population: %d\n",
		stats.RunID, stats.TotalGenerations, stats.Runtime().Seconds(), stats.PeakPopulation)
}
