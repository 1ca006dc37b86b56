package model

import "github.com/sheikhrachel/go-life/rules"

// State is the alive/dead status of a single cell
type State uint8

const (
	Dead State = iota
	Alive
)

// String returns the state name
func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Int returns 1 for Alive and 0 for Dead, for neighbor counting
func (s State) Int() int {
	if s == Alive {
		return 1
	}
	return 0
}

// Cell is one addressable grid position and its state.
// Coordinates are fixed at construction, only the state changes.
type Cell struct {
	x, y  int
	state State
}

// NewCell creates a cell at (x, y)
func NewCell(x, y int, alive bool) Cell {
	c := Cell{x: x, y: y}
	if alive {
		c.state = Alive
	}
	return c
}

// Coordinates returns the position of the cell
func (c Cell) Coordinates() (x, y int) {
	return c.x, c.y
}

func (c Cell) State() State { return c.state }

func (c Cell) IsAlive() bool { return c.state == Alive }

// SetStateFromNeighbors overwrites the cell state from the states of its
// neighbors. Neighbors outside the grid must be passed as Dead (or omitted).
func (c *Cell) SetStateFromNeighbors(neighbors []State) {
	count := 0
	for _, n := range neighbors {
		count += n.Int()
	}

	if rules.ApplyConwayRules(count, c.IsAlive()) {
		c.state = Alive
	} else {
		c.state = Dead
	}
}
