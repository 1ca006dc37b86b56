package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// MinSeedPoints is the smallest number of starting cells that can sustain a game
	MinSeedPoints = 3

	RendererText   = "text"
	RendererScreen = "screen"
)

var (
	ErrMissingDimension    = errors.New("no starting size provided")
	ErrMissingCycleCount   = errors.New("no cycle count provided")
	ErrTooFewSeedPoints    = errors.New("not enough starting points provided")
	ErrUnparsableArgument  = errors.New("could not parse argument")
	ErrMalformedCoordinate = errors.New("cannot parse starting point")
)

// Coordinate is an (x, y) grid position, (0,0) being the bottom-left cell
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Cycles is the number of generations the run loop should play
type Cycles struct {
	n       int
	bounded bool
}

// Bounded returns a Cycles stopping after n generations
func Bounded(n int) Cycles {
	return Cycles{n: max(0, n), bounded: true}
}

// Unbounded returns a Cycles that never finishes
func Unbounded() Cycles {
	return Cycles{}
}

// IsBounded reports whether the run has a generation limit
func (c Cycles) IsBounded() bool { return c.bounded }

// Limit returns the generation limit, 0 when unbounded
func (c Cycles) Limit() int { return c.n }

// Done reports whether completed generations reach the limit
func (c Cycles) Done(completed int) bool {
	return c.bounded && completed >= c.n
}

func (c Cycles) String() string {
	if !c.bounded {
		return "unbounded"
	}
	return strconv.Itoa(c.n)
}

// Config holds the validated game parameters taken from the command line
type Config struct {
	Width  int
	Height int
	Cycles Cycles
	Seeds  []Coordinate
}

/*
ParseArgs builds a Config from positional arguments:

	width height cycles x,y x,y x,y [x,y ...]

Width, height and coordinates are in 0-255, cycles 0 means run forever.
At least MinSeedPoints coordinates are required, duplicates are dropped
keeping the first occurrence.
*/
func ParseArgs(args []string) (Config, error) {
	switch {
	case len(args) < 2:
		return Config{}, ErrMissingDimension
	case len(args) < 3:
		return Config{}, ErrMissingCycleCount
	case len(args) < 3+MinSeedPoints:
		return Config{}, ErrTooFewSeedPoints
	}

	width, err := parseDimension(args[0])
	if err != nil {
		return Config{}, errors.Wrapf(err, "[ParseArgs] width %q", args[0])
	}
	height, err := parseDimension(args[1])
	if err != nil {
		return Config{}, errors.Wrapf(err, "[ParseArgs] height %q", args[1])
	}
	cycles, err := strconv.ParseUint(args[2], 10, strconv.IntSize-1)
	if err != nil {
		return Config{}, errors.Wrapf(ErrUnparsableArgument, "[ParseArgs] cycle count %q: %v", args[2], err)
	}

	config := Config{
		Width:  width,
		Height: height,
		Cycles: Unbounded(),
	}
	if cycles > 0 {
		config.Cycles = Bounded(int(cycles))
	}

	for _, arg := range args[3:] {
		point, err := ParseCoordinate(arg)
		if err != nil {
			return Config{}, errors.Wrap(err, "[ParseArgs]")
		}
		if !slices.Contains(config.Seeds, point) {
			config.Seeds = append(config.Seeds, point)
		}
	}

	return config, nil
}

// ParseCoordinate parses a single "x,y" pair
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, errors.Wrapf(ErrMalformedCoordinate, "%q", s)
	}

	x, errX := strconv.ParseUint(parts[0], 10, 8)
	y, errY := strconv.ParseUint(parts[1], 10, 8)
	if errX != nil || errY != nil {
		return Coordinate{}, errors.Wrapf(ErrMalformedCoordinate, "%q", s)
	}
	return Coordinate{X: int(x), Y: int(y)}, nil
}

func parseDimension(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(ErrUnparsableArgument, "%v", err)
	}
	return int(v), nil
}

// Settings holds the presentation and pacing options of the run loop
type Settings struct {
	FrameRate        time.Duration `json:"frame_rate"`
	Renderer         string        `json:"renderer"`
	ClearCommand     bool          `json:"clear_command"`
	ShowStatus       bool          `json:"show_status"`
	StopWhenStagnant bool          `json:"stop_when_stagnant"`
}

// DefaultSettings returns sensible defaults
func DefaultSettings() Settings {
	return Settings{
		FrameRate:        100 * time.Millisecond,
		Renderer:         RendererText,
		ClearCommand:     false,
		ShowStatus:       false,
		StopWhenStagnant: false,
	}
}

// Validate checks the settings for values the run loop cannot use
func (s Settings) Validate() error {
	if s.FrameRate < 0 {
		return errors.Errorf("[Validate] negative frame rate: %v", s.FrameRate)
	}
	if s.Renderer != RendererText && s.Renderer != RendererScreen {
		return errors.Errorf("[Validate] unknown renderer: %q", s.Renderer)
	}
	return nil
}

// LoadSettings loads settings from a JSON file, on top of the defaults
func LoadSettings(filename string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(filename)
	if err != nil {
		return settings, errors.Wrapf(err, "[LoadSettings] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "[LoadSettings] failed to unmarshal data from file: %+v", filename)
	}

	if err = settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "[LoadSettings] invalid settings in file: %+v", filename)
	}

	return settings, nil
}
