// Package colormap maps normalized scalars to colors through a look-up table
// built from a small set of named gradients.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultResolution is the number of entries in a look-up table when none is given.
const DefaultResolution = 256

// Default is the color map used for arc weights.
const Default = "blackbody"

var (
	// ErrUnknownColorMap signals a color map name that is not registered.
	ErrUnknownColorMap = errors.New("unknown color map")
	// ErrInvalidResolution signals a table with fewer than two entries.
	ErrInvalidResolution = errors.New("invalid color map resolution")
	// ErrInvalidRange signals a min/max pair with min >= max.
	ErrInvalidRange = errors.New("invalid color map range")
)

type stop struct {
	pos float64
	hex uint32
}

var maps = map[string][]stop{
	"rainbow":    {{0.0, 0x0000ff}, {0.2, 0x00ffff}, {0.5, 0x00ff00}, {0.8, 0xffff00}, {1.0, 0xff0000}},
	"cooltowarm": {{0.0, 0x3c4ec2}, {0.2, 0x9bbcff}, {0.5, 0xdcdcdc}, {0.8, 0xf6a385}, {1.0, 0xb40426}},
	"blackbody":  {{0.0, 0x000000}, {0.2, 0x780000}, {0.5, 0xe63200}, {0.8, 0xffff00}, {1.0, 0xffffff}},
	"grayscale":  {{0.0, 0x000000}, {0.2, 0x404040}, {0.5, 0x7f7f80}, {0.8, 0xbfbfbf}, {1.0, 0xffffff}},
}

// Names returns the registered color map names in sorted order.
func Names() []string {
	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether a color map with the given name is registered.
func Exists(name string) bool {
	_, ok := maps[name]
	return ok
}

// LUT is an immutable color look-up table.
type LUT struct {
	name     string
	colors   []RGB
	min, max float64
}

// New builds a look-up table with n entries for the named color map.
// n <= 0 selects DefaultResolution. The input range defaults to [0, 1].
func New(name string, n int) (*LUT, error) {
	stops, ok := maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorMap, name)
	}
	if n <= 0 {
		n = DefaultResolution
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, n)
	}

	colors := make([]RGB, n)
	for i := range colors {
		colors[i] = sample(stops, float64(i)/float64(n-1))
	}
	return &LUT{name: name, colors: colors, min: 0, max: 1}, nil
}

// MustNew calls New and panics on error.
func MustNew(name string, n int) *LUT {
	l, err := New(name, n)
	if err != nil {
		panic(err)
	}
	return l
}

// WithRange returns a copy of the table that normalizes inputs from [lo, hi].
func (l *LUT) WithRange(lo, hi float64) (*LUT, error) {
	if !(lo < hi) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	cp := *l
	cp.min, cp.max = lo, hi
	return &cp, nil
}

// Name returns the color map name.
func (l *LUT) Name() string { return l.name }

// Len returns the number of table entries.
func (l *LUT) Len() int { return len(l.colors) }

// Range returns the input range mapped onto the table.
func (l *LUT) Range() (lo, hi float64) { return l.min, l.max }

// Color returns the table entry for v. Values outside the range are clamped,
// NaN maps to the lower extreme.
func (l *LUT) Color(v float64) RGB {
	if math.IsNaN(v) || v <= l.min {
		v = l.min
	} else if v >= l.max {
		v = l.max
	}
	alpha := (v - l.min) / (l.max - l.min)
	idx := int(math.Round(alpha * float64(len(l.colors)-1)))
	return l.colors[idx]
}

func sample(stops []stop, t float64) RGB {
	for j := 0; j < len(stops)-1; j++ {
		lo, hi := stops[j], stops[j+1]
		if t >= lo.pos && t <= hi.pos {
			f := (t - lo.pos) / (hi.pos - lo.pos)
			return FromHex(lo.hex).Lerp(FromHex(hi.hex), f)
		}
	}
	return FromHex(stops[len(stops)-1].hex)
}
