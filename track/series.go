package track

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// ErrEmptySeries is returned when a track has no price samples
var ErrEmptySeries = errors.New("track: empty price series")

// Sample is one point of a price series placed on the road
// X is travel distance, Y is normalized elevation
type Sample struct {
	X     float64
	Y     float64
	Price decimal.Decimal
	Date  string
}

// Series is an ordered, immutable price series; order is travel order
// A Series is replaced wholesale on track change, never mutated
type Series struct {
	ID      string
	Name    string
	Quote   string
	XStep   float64
	samples []Sample
}

// BuildOptions controls sample placement
type BuildOptions struct {
	XStep float64
	Floor float64
	Ceil  float64
}

// DefaultBuildOptions returns the road placement used by the game
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		XStep: parameter.RoadXStep,
		Floor: parameter.RoadFloorHeight,
		Ceil:  parameter.RoadCeilingHeight,
	}
}

// Normalize linearly rescales values into [lo, hi]
// The minimum maps to lo, the maximum to hi; a constant series maps entirely to lo
func Normalize(values []float64, lo, hi float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	span := maxV - minV
	if span == 0 || !vmath.IsFinite(span) {
		for i := range out {
			out[i] = lo
		}
		return out
	}

	for i, v := range values {
		out[i] = lo + (v-minV)/span*(hi-lo)
	}
	return out
}

// NewSeries places prices along the road at a fixed horizontal step
// dates may be shorter than prices; missing dates are left empty
func NewSeries(id, name string, prices []decimal.Decimal, dates []string, opts BuildOptions) (*Series, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("track %q: %w", id, ErrEmptySeries)
	}
	if opts.XStep <= 0 {
		opts.XStep = parameter.RoadXStep
	}

	raw := make([]float64, len(prices))
	for i, p := range prices {
		raw[i] = p.InexactFloat64()
	}
	heights := Normalize(raw, opts.Floor, opts.Ceil)

	samples := make([]Sample, len(prices))
	for i := range prices {
		samples[i] = Sample{
			X:     float64(i) * opts.XStep,
			Y:     heights[i],
			Price: prices[i],
		}
		if i < len(dates) {
			samples[i].Date = dates[i]
		}
	}

	return &Series{ID: id, Name: name, XStep: opts.XStep, samples: samples}, nil
}

// Len returns the number of samples
func (s *Series) Len() int {
	return len(s.samples)
}

// Sample returns the i-th sample
func (s *Series) Sample(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of all samples
func (s *Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Points returns the samples as road control points in the z=0 travel plane
func (s *Series) Points() []vmath.Vec3F {
	pts := make([]vmath.Vec3F, len(s.samples))
	for i, smp := range s.samples {
		pts[i] = vmath.Vec3F{X: smp.X, Y: smp.Y}
	}
	return pts
}

// Length returns the travel distance from first to last sample
func (s *Series) Length() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1].X - s.samples[0].X
}

// IndexAt returns the sample index nearest to travel distance x, clamped to the series
func (s *Series) IndexAt(x float64) int {
	if len(s.samples) == 0 {
		return 0
	}
	i := int(math.Round((x - s.samples[0].X) / s.XStep))
	if i < 0 {
		return 0
	}
	if i >= len(s.samples) {
		return len(s.samples) - 1
	}
	return i
}

// PriceAt interpolates the price at travel distance x
// Interpolation runs in decimal to keep sub-cent tokens exact
func (s *Series) PriceAt(x float64) decimal.Decimal {
	n := len(s.samples)
	if n == 0 {
		return decimal.Zero
	}
	rel := (x - s.samples[0].X) / s.XStep
	if rel <= 0 || n == 1 {
		return s.samples[0].Price
	}
	if rel >= float64(n-1) {
		return s.samples[n-1].Price
	}
	i := int(rel)
	frac := decimal.NewFromFloat(rel - float64(i))
	a, b := s.samples[i].Price, s.samples[i+1].Price
	return a.Add(b.Sub(a).Mul(frac))
}
