package series

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Lookup is a piecewise-linear function over strictly increasing knots.
// Arguments outside the knot range take the value of the nearest end knot.
type Lookup struct {
	x []float64
	y []float64
}

// NewLookup builds a Lookup from parallel knot slices.
func NewLookup(x, y []float64) (Lookup, error) {
	if len(x) == 0 || len(x) != len(y) {
		return Lookup{}, fmt.Errorf("lookup: need equal non-empty knot slices, got %d and %d", len(x), len(y))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return Lookup{}, fmt.Errorf("lookup: knot %d is not finite", i)
		}
		if i > 0 && x[i] <= x[i-1] {
			return Lookup{}, fmt.Errorf("lookup: knots not strictly increasing at %d (%g after %g)", i, x[i], x[i-1])
		}
	}
	return Lookup{x: slices.Clone(x), y: slices.Clone(y)}, nil
}

// Len returns the number of knots.
func (l Lookup) Len() int { return len(l.x) }

// At evaluates the lookup at v.
func (l Lookup) At(v float64) float64 {
	n := len(l.x)
	if n == 0 {
		return math.NaN()
	}
	if v <= l.x[0] {
		return l.y[0]
	}
	if v >= l.x[n-1] {
		return l.y[n-1]
	}
	i := sort.SearchFloat64s(l.x, v)
	if l.x[i] == v {
		return l.y[i]
	}
	x0, x1 := l.x[i-1], l.x[i]
	y0, y1 := l.y[i-1], l.y[i]
	return y0 + (y1-y0)*(v-x0)/(x1-x0)
}

// Points returns the knots as (x, y) pairs.
func (l Lookup) Points() [][2]float64 {
	out := make([][2]float64, len(l.x))
	for i := range l.x {
		out[i] = [2]float64{l.x[i], l.y[i]}
	}
	return out
}

// Domain returns the first and last knot.
func (l Lookup) Domain() (lo, hi float64) {
	if len(l.x) == 0 {
		return math.NaN(), math.NaN()
	}
	return l.x[0], l.x[len(l.x)-1]
}
