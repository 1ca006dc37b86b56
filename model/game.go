package model

import "github.com/sheikhrachel/go-life/utils"

// Game owns a grid and drives the advance/render cycle
type Game struct {
	grid       *Grid
	renderer   Renderer
	generation int
}

// NewGame builds the initial grid from the configuration.
// A nil renderer makes rendering a no-op.
func NewGame(config utils.Config, renderer Renderer) *Game {
	return &Game{
		grid:     NewGrid(config.Width, config.Height, config.Seeds),
		renderer: renderer,
	}
}

// AdvanceOneStep moves the grid forward one generation
func (g *Game) AdvanceOneStep() {
	g.grid.AdvanceGeneration()
	g.generation++
}

// RenderCurrentState hands the current grid to the renderer
func (g *Game) RenderCurrentState() error {
	if g.renderer == nil {
		return nil
	}
	return g.renderer.Render(g.grid)
}

// Step advances one generation and renders it
func (g *Game) Step() error {
	g.AdvanceOneStep()
	return g.RenderCurrentState()
}

// Generation returns how many times the game has advanced
func (g *Game) Generation() int { return g.generation }

// Grid exposes the current state for reading
func (g *Game) Grid() View { return g.grid }

func (g *Game) Population() int { return g.grid.CountLivingCells() }

// RecordState stores the current grid hash and reports whether the game
// has settled into a still life or short oscillator
func (g *Game) RecordState() (stagnant bool) {
	g.grid.UpdateHistory()
	return g.grid.IsStagnant()
}
