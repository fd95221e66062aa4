// Package trend fits sales time series with a least-squares curve and
// classifies the direction of the fitted slope for reporting narratives.
package trend

import "math"

// Classification is the discrete trend label derived from the fitted slope.
type Classification string

const (
	SignificantIncrease Classification = "significant increase"
	Increase            Classification = "increase"
	Stable              Classification = "stable"
	Decrease            Classification = "decrease"
	SignificantDecrease Classification = "significant decrease"
	InsufficientData    Classification = "insufficient data"
)

// Slope thresholds in raw currency units per day. These are fixed constants
// of the analysis, not configuration.
const (
	significantIncreaseThreshold = 100.0
	increaseThreshold            = 10.0
	stableThreshold              = -10.0
	decreaseThreshold            = -100.0
)

// singularEpsilon is the determinant magnitude below which the quadratic
// normal-equations matrix is treated as singular and the linear fit is used.
const singularEpsilon = 1e-9

// Point is a single observation: X is the day index, Y the total for that day.
type Point struct {
	X     float64
	Y     float64
	Label string // date label carried through to peak/trough stats
}

// Extreme is a series extreme with its date label.
type Extreme struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Result holds the fitted coefficients, the slope at the last observation,
// the trend classification, and summary statistics over the raw series.
type Result struct {
	Classification Classification `json:"classification"`
	Slope          float64        `json:"slope"`
	A0             float64        `json:"-"`
	A1             float64        `json:"-"`
	A2             float64        `json:"-"`
	Quadratic      bool           `json:"-"`
	Average        float64        `json:"average"`
	Max            Extreme        `json:"max"`
	Min            Extreme        `json:"min"`
}

// Analyze fits y = a0 + a1*x + a2*x^2 to the series by solving the 3x3
// normal equations. When the coefficient matrix is near-singular (too few
// distinct x values), it falls back to an ordinary least-squares line with
// a2 = 0. Degeneracy is never surfaced as an error.
func Analyze(points []Point) Result {
	if len(points) < 2 {
		res := Result{Classification: InsufficientData}
		if len(points) == 1 {
			res.Average = points[0].Y
			res.Max = Extreme{Value: points[0].Y, Label: points[0].Label}
			res.Min = res.Max
		}
		return res
	}

	res := summarize(points)

	a0, a1, a2, ok := fitQuadratic(points)
	if ok {
		res.Quadratic = true
	} else {
		a0, a1 = fitLinear(points)
		a2 = 0
	}

	res.A0, res.A1, res.A2 = a0, a1, a2

	xLast := points[len(points)-1].X
	res.Slope = a1 + 2*a2*xLast
	res.Classification = classify(res.Slope)
	return res
}

// classify maps a slope to its discrete label.
func classify(slope float64) Classification {
	switch {
	case slope > significantIncreaseThreshold:
		return SignificantIncrease
	case slope > increaseThreshold:
		return Increase
	case slope > stableThreshold:
		return Stable
	case slope > decreaseThreshold:
		return Decrease
	default:
		return SignificantDecrease
	}
}

// fitQuadratic solves the normal equations
//
//	| n    Sx   Sx2 | |a0|   | Sy   |
//	| Sx   Sx2  Sx3 | |a1| = | Sxy  |
//	| Sx2  Sx3  Sx4 | |a2|   | Sx2y |
//
// by cofactor inversion. Returns ok=false when the determinant is too small
// for a stable solution.
func fitQuadratic(points []Point) (a0, a1, a2 float64, ok bool) {
	var n, sx, sx2, sx3, sx4, sy, sxy, sx2y float64
	n = float64(len(points))
	for _, p := range points {
		x2 := p.X * p.X
		sx += p.X
		sx2 += x2
		sx3 += x2 * p.X
		sx4 += x2 * x2
		sy += p.Y
		sxy += p.X * p.Y
		sx2y += x2 * p.Y
	}

	// Determinant of the symmetric coefficient matrix, expanded along the
	// first row.
	det := n*(sx2*sx4-sx3*sx3) - sx*(sx*sx4-sx3*sx2) + sx2*(sx*sx3-sx2*sx2)
	if math.Abs(det) < singularEpsilon {
		return 0, 0, 0, false
	}

	// Cramer-style solution via cofactors.
	det0 := sy*(sx2*sx4-sx3*sx3) - sx*(sxy*sx4-sx3*sx2y) + sx2*(sxy*sx3-sx2*sx2y)
	det1 := n*(sxy*sx4-sx3*sx2y) - sy*(sx*sx4-sx3*sx2) + sx2*(sx*sx2y-sxy*sx2)
	det2 := n*(sx2*sx2y-sxy*sx3) - sx*(sx*sx2y-sxy*sx2) + sy*(sx*sx3-sx2*sx2)

	return det0 / det, det1 / det, det2 / det, true
}

// fitLinear is the ordinary least-squares line from the 2x2 normal equations.
// A degenerate denominator (all x identical) yields a flat line through the
// mean, which classifies as stable.
func fitLinear(points []Point) (a0, a1 float64) {
	var n, sx, sx2, sy, sxy float64
	n = float64(len(points))
	for _, p := range points {
		sx += p.X
		sx2 += p.X * p.X
		sy += p.Y
		sxy += p.X * p.Y
	}

	den := n*sx2 - sx*sx
	if math.Abs(den) < singularEpsilon {
		return sy / n, 0
	}

	a1 = (n*sxy - sx*sy) / den
	a0 = (sy - a1*sx) / n
	return a0, a1
}

// summarize computes average, max and min over the raw series.
func summarize(points []Point) Result {
	var sum float64
	max := Extreme{Value: math.Inf(-1)}
	min := Extreme{Value: math.Inf(1)}

	for _, p := range points {
		sum += p.Y
		if p.Y > max.Value {
			max = Extreme{Value: p.Y, Label: p.Label}
		}
		if p.Y < min.Value {
			min = Extreme{Value: p.Y, Label: p.Label}
		}
	}

	return Result{
		Average: sum / float64(len(points)),
		Max:     max,
		Min:     min,
	}
}
