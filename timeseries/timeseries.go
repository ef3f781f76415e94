// Package timeseries reduces recorded sample series to a bounded point
// budget and projects them into 2D plot coordinates for rendering.
package timeseries

import (
	"fmt"
	"math"
	"strings"

	"github.com/zonelab/chartengine/metrics"
)

// Scaled-axis default bounds: center of zone 1 to center of zone 7.
const (
	defaultScaledMin = 0.5
	defaultScaledMax = 7.5
)

// Point is one input sample to projection. Value is the recorded raw value;
// Scaled, when set, is the zone-space position plotted instead of it.
// Target/ScaledTarget carry the planned overlay line through projection.
type Point struct {
	T            int
	Value        *float64
	Scaled       *float64
	Target       *float64
	ScaledTarget *float64
	Zone         *int
}

// ChartPoint is one projected output point in plot coordinates.
type ChartPoint struct {
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	T            int      `json:"t"`
	V            float64  `json:"v"`
	Zone         *int     `json:"z,omitempty"`
	TargetValue  *float64 `json:"tv,omitempty"`
	ScaledTarget *float64 `json:"stv,omitempty"`
}

// PlotBox is the padded drawable region of a plot, in plot coordinates.
// Y0 is the top edge, Y1 the bottom.
type PlotBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// ProjectOptions configures a projection.
type ProjectOptions struct {
	Width     float64
	Height    float64
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64

	// PreserveFull skips downsampling so every valid input point projects.
	PreserveFull bool
	// MaxPoints is the downsample budget when PreserveFull is unset.
	MaxPoints int

	// ScaledMin/ScaledMax override the default zone-space axis bounds.
	ScaledMin *float64
	ScaledMax *float64
}

// Projection is the chart-ready result of projecting a series.
type Projection struct {
	Polyline string       `json:"polyline"`
	Box      PlotBox      `json:"box"`
	Points   []ChartPoint `json:"points"`
	VMin     float64      `json:"vmin"`
	VMax     float64      `json:"vmax"`
}

// Downsample selects at most maxPoints elements by nearest-index
// resampling. Series already within budget pass through unchanged; the
// first and last elements always survive. A budget below 2 degenerates to
// just the first element.
func Downsample[T any](values []T, maxPoints int) []T {
	n := len(values)
	if n == 0 || n <= maxPoints {
		return values
	}
	if maxPoints < 2 {
		return values[:1]
	}
	out := make([]T, 0, maxPoints)
	step := float64(n-1) / float64(maxPoints-1)
	for i := 0; i < maxPoints; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		out = append(out, values[idx])
	}
	return out
}

// ProjectToPlot maps a series into plot coordinates. Points without a
// value are dropped; fewer than two survivors means nothing to draw and a
// nil result. X positions spread evenly across the padded width in sample
// order; Y is a linear map of the plotted quantity, inverted so larger
// values sit higher. When any point carries a scaled (zone-space) value
// the axis defaults to the zone-space bounds, otherwise it spans the
// observed values with target values folded in so overlays stay in-frame.
func ProjectToPlot(series []Point, opts ProjectOptions) *Projection {
	valid := make([]Point, 0, len(series))
	for _, p := range series {
		if p.Value == nil {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) < 2 {
		return nil
	}
	if !opts.PreserveFull {
		valid = Downsample(valid, opts.MaxPoints)
		if len(valid) < 2 {
			return nil
		}
	}

	hasScaled := false
	for _, p := range valid {
		if p.Scaled != nil {
			hasScaled = true
			break
		}
	}

	var vmin, vmax float64
	if hasScaled {
		vmin, vmax = defaultScaledMin, defaultScaledMax
		if opts.ScaledMin != nil {
			vmin = *opts.ScaledMin
		}
		if opts.ScaledMax != nil {
			vmax = *opts.ScaledMax
		}
	} else {
		vmin, vmax = math.Inf(1), math.Inf(-1)
		for _, p := range valid {
			vmin = math.Min(vmin, *p.Value)
			vmax = math.Max(vmax, *p.Value)
			if p.Target != nil {
				vmin = math.Min(vmin, *p.Target)
				vmax = math.Max(vmax, *p.Target)
			}
		}
	}
	if vmax == vmin {
		vmax = vmin + 1.0
	}

	box := PlotBox{
		X0: opts.PadLeft,
		Y0: opts.PadTop,
		X1: opts.Width - opts.PadRight,
		Y1: opts.Height - opts.PadBottom,
	}
	plotW := box.X1 - box.X0
	span := vmax - vmin

	points := make([]ChartPoint, 0, len(valid))
	var polyline strings.Builder
	for i, p := range valid {
		x := box.X0
		if len(valid) > 1 {
			x += plotW * float64(i) / float64(len(valid)-1)
		}
		plotted := *p.Value
		if hasScaled && p.Scaled != nil {
			plotted = *p.Scaled
		}
		frac := (plotted - vmin) / span
		y := box.Y1 - frac*(box.Y1-box.Y0)

		if i > 0 {
			polyline.WriteByte(' ')
		}
		fmt.Fprintf(&polyline, "%.2f,%.2f", x, y)

		points = append(points, ChartPoint{
			X:            x,
			Y:            y,
			T:            p.T,
			V:            *p.Value,
			Zone:         p.Zone,
			TargetValue:  p.Target,
			ScaledTarget: p.ScaledTarget,
		})
	}

	return &Projection{
		Polyline: polyline.String(),
		Box:      box,
		Points:   points,
		VMin:     vmin,
		VMax:     vmax,
	}
}

// ZoneFractionalPosition places a watt value on a continuous zone axis:
// the integer zone it classifies into, offset by its fraction through that
// zone's band, centered so a value at the band midpoint lands exactly on
// the zone number. The open top band borrows a synthetic span from its
// lower bound. Returns false when the value classifies into no zone.
func ZoneFractionalPosition(value float64, ranges []metrics.ZoneRange) (float64, bool) {
	zone, ok := metrics.ZoneFor(value, ranges)
	if !ok {
		return 0, false
	}
	var band metrics.ZoneRange
	for _, r := range ranges {
		if r.Zone == zone {
			band = r
			break
		}
	}
	span := band.Upper - band.Lower
	if band.Open {
		span = math.Max(band.Lower*0.25, 25)
	}
	frac := 0.0
	if span > 0 {
		frac = (value - band.Lower) / span
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return (float64(zone) - 0.5) + frac, true
}
