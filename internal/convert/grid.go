package convert

import (
	"math"

	"github.com/twpayne/go-geom"
)

// CellKey identifies a grid cell. Both values are integral: the coordinate
// divided by the cell size and rounded half to even. They are kept as floats
// so that very small cell sizes cannot overflow an integer type.
type CellKey struct {
	Lat float64
	Lon float64
}

func (k CellKey) finite() bool {
	return !math.IsNaN(k.Lat) && !math.IsInf(k.Lat, 0) && !math.IsNaN(k.Lon) && !math.IsInf(k.Lon, 0)
}

// CellFor returns the cell containing p for the given cell size in degrees.
func CellFor(p *geom.Point, size float64) CellKey {
	return CellKey{
		Lat: math.RoundToEven(p.Y() / size),
		Lon: math.RoundToEven(p.X() / size),
	}
}

// GridFilter keeps the first record seen in each grid cell. It holds the
// seen-set of a single run and is not safe for concurrent use.
type GridFilter struct {
	size float64
	seen map[CellKey]struct{}
}

// NewGridFilter returns a filter for the given cell size. A size <= 0
// disables filtering.
func NewGridFilter(size float64) *GridFilter {
	return &GridFilter{
		size: size,
		seen: make(map[CellKey]struct{}),
	}
}

// Enabled reports whether the filter rejects anything at all.
func (g *GridFilter) Enabled() bool {
	return g.size > 0
}

// Admit claims p's cell and reports whether it was free. Points without a
// parsed location, or with a nan/inf component, are always admitted and claim
// nothing.
func (g *GridFilter) Admit(p *geom.Point) bool {
	if !g.Enabled() || p == nil {
		return true
	}
	key := CellFor(p, g.size)
	if !key.finite() {
		return true
	}
	if _, ok := g.seen[key]; ok {
		return false
	}
	g.seen[key] = struct{}{}
	return true
}

// Cells returns the number of claimed cells.
func (g *GridFilter) Cells() int {
	return len(g.seen)
}
