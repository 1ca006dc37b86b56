package model

import (
	"crypto/md5"
	"fmt"
	"iter"

	"github.com/sheikhrachel/go-life/utils"
)

// historySize is the number of recent grid hashes kept for stagnation detection
const historySize = 5

// neighborOffsets are the eight relative positions around a cell
var neighborOffsets = [8]utils.Coordinate{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// frame is a read-only view over a row-major cell slice
type frame struct {
	width, height int
	cells         []Cell
}

// lookup returns the state at (x, y), or false when the position is outside the frame.
// All coordinate arithmetic against the cell slice happens here.
func (f frame) lookup(x, y int) (State, bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Dead, false
	}
	return f.cells[y*f.width+x].state, true
}

// Grid represents the bounded game board.
//
// Cells are stored flattened in row-major order, the cell at index i sits at
// (i % width, i / width). The snapshot slice is the frozen copy of the
// previous generation that every cell reads from during AdvanceGeneration.
type Grid struct {
	width    int
	height   int
	cells    []Cell
	snapshot []Cell
	history  []string // Store recent grid states for cycle detection
}

// NewGrid creates a grid of width x height cells, alive where listed in seeds.
// Seeds outside the grid are ignored.
func NewGrid(width, height int, seeds []utils.Coordinate) *Grid {
	width, height = max(0, width), max(0, height)

	alive := make(map[utils.Coordinate]struct{}, len(seeds))
	for _, s := range seeds {
		alive[s] = struct{}{}
	}

	cells := make([]Cell, 0, width*height)
	for y := range height {
		for x := range width {
			_, ok := alive[utils.Coordinate{X: x, Y: y}]
			cells = append(cells, NewCell(x, y, ok))
		}
	}

	return &Grid{
		width:    width,
		height:   height,
		cells:    cells,
		snapshot: make([]Cell, len(cells)),
	}
}

// Width returns the width of the grid
func (g *Grid) Width() int { return g.width }

// Height returns the height of the grid
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells, always Width*Height
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) current() frame {
	return frame{width: g.width, height: g.height, cells: g.cells}
}

// Lookup returns the state of the cell at (x, y). The boolean is false when
// the position lies outside the grid, in which case the state is Dead.
func (g *Grid) Lookup(x, y int) (State, bool) {
	return g.current().lookup(x, y)
}

// IsAlive reports whether the cell at (x, y) is alive
func (g *Grid) IsAlive(x, y int) bool {
	state, _ := g.Lookup(x, y)
	return state == Alive
}

// CellAt returns a copy of the cell at (x, y)
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	if _, ok := g.Lookup(x, y); !ok {
		return Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// AdvanceGeneration moves every cell forward one generation at once
func (g *Grid) AdvanceGeneration() {
	g.advance(forward(len(g.cells)))
}

// advance computes the next generation, visiting cells in the given index order.
// Every cell reads its neighbors from the snapshot, so the order never matters.
func (g *Grid) advance(order iter.Seq[int]) {
	if len(g.snapshot) != len(g.cells) {
		g.snapshot = make([]Cell, len(g.cells))
	}
	copy(g.snapshot, g.cells)
	frozen := frame{width: g.width, height: g.height, cells: g.snapshot}

	var neighbors [len(neighborOffsets)]State
	for i := range order {
		cell := &g.cells[i]
		x, y := cell.Coordinates()
		for n, off := range neighborOffsets {
			neighbors[n], _ = frozen.lookup(x+off.X, y+off.Y)
		}
		cell.SetStateFromNeighbors(neighbors[:])
	}
}

func forward(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:    g.width,
		height:   g.height,
		cells:    append([]Cell(nil), g.cells...),
		snapshot: make([]Cell, len(g.cells)),
		history:  append([]string(nil), g.history...),
	}
}

// AliveCells returns the coordinates of every living cell in row-major order
func (g *Grid) AliveCells() []utils.Coordinate {
	var alive []utils.Coordinate
	for _, c := range g.cells {
		if c.IsAlive() {
			x, y := c.Coordinates()
			alive = append(alive, utils.Coordinate{X: x, Y: y})
		}
	}
	return alive
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		count += c.state.Int()
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c.state)
	}
	return fmt.Sprintf("%x", md5.Sum(buf))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the most recent recorded state repeats one of the
// three states before it: a still life, or an oscillator of period 2 or 3.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 2 {
		return false
	}

	latest := len(g.history) - 1
	for back := 1; back <= 3 && latest-back >= 0; back++ {
		if g.history[latest-back] == g.history[latest] {
			return true
		}
	}
	return false
}
