// Package trend builds the height-vs-BMI chart shown after every save.
package trend

import (
	"math"

	"github.com/mmynk/bmitracker/internal/models"
)

const (
	Title      = "BMI Trend"
	XAxisLabel = "Height (cm)"
	YAxisLabel = "BMI"
	SeriesName = "BMI"
)

// Chart is a renderer-neutral line chart.
type Chart struct {
	Title  string   `json:"title"`
	XAxis  string   `json:"x_axis"`
	YAxis  string   `json:"y_axis"`
	Series []Series `json:"series"`
}

// Series is one named line. Points keep storage order, not x order.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is a single (height, bmi) sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the data range of a chart.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Build produces the trend chart for the given projection. Points that are
// not finite cannot be encoded and are dropped; the rest keep their order.
// It returns nil when no point remains.
func Build(points []models.HeightBMI) *Chart {
	data := make([]Point, 0, len(points))
	for _, p := range points {
		if !finite(p.Height) || !finite(p.BMI) {
			continue
		}
		data = append(data, Point{X: p.Height, Y: p.BMI})
	}
	if len(data) == 0 {
		return nil
	}

	return &Chart{
		Title: Title,
		XAxis: XAxisLabel,
		YAxis: YAxisLabel,
		Series: []Series{{
			Name:   SeriesName,
			Points: data,
		}},
	}
}

// Len returns the total number of points across all series.
func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}

// Bounds returns the finite data range. Degenerate ranges are widened by
// one unit on each side.
func (c *Chart) Bounds() Bounds {
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	if c != nil {
		for _, s := range c.Series {
			for _, p := range s.Points {
				if !finite(p.X) || !finite(p.Y) {
					continue
				}
				b.MinX = math.Min(b.MinX, p.X)
				b.MaxX = math.Max(b.MaxX, p.X)
				b.MinY = math.Min(b.MinY, p.Y)
				b.MaxY = math.Max(b.MaxY, p.Y)
			}
		}
	}
	if math.IsInf(b.MinX, 1) {
		return Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}
	if b.MinX == b.MaxX {
		b.MinX--
		b.MaxX++
	}
	if b.MinY == b.MaxY {
		b.MinY--
		b.MaxY++
	}
	return b
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
