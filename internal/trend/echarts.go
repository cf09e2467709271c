package trend

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EmptySubtitle is shown under the title while no records exist.
const EmptySubtitle = "No records yet"

// Minimum page size accepted by NewLineChart.
const (
	MinWidth  = 200
	MinHeight = 150
)

// NewLineChart converts c into an echarts line chart of the given pixel size.
// A nil chart yields an empty frame with EmptySubtitle.
func NewLineChart(c *Chart, width, height int) (*charts.Line, error) {
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("chart size %dx%d is too small", width, height)
	}

	title, xName, yName := Title, XAxisLabel, YAxisLabel
	if c != nil {
		title, xName, yName = c.Title, c.XAxis, c.YAxis
	}
	titleOpts := opts.Title{Title: title}
	if c.Len() == 0 {
		titleOpts.Subtitle = EmptySubtitle
	}

	xAxis := opts.XAxis{Name: xName, Type: "value"}
	yAxis := opts.YAxis{Name: yName, Type: "value"}
	if c.Len() > 0 {
		b := c.Bounds()
		xAxis.Min, xAxis.Max = math.Floor(b.MinX), math.Ceil(b.MaxX)
		yAxis.Min, yAxis.Max = math.Floor(b.MinY), math.Ceil(b.MaxY)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(titleOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Right: "5%"}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	)

	if c == nil {
		line.AddSeries(SeriesName, []opts.LineData{})
		return line, nil
	}
	for _, s := range c.Series {
		data := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.LineData{Value: []float64{p.X, p.Y}})
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: boolPtr(true)}),
		)
	}
	return line, nil
}

// Render writes c as a standalone HTML page.
func Render(w io.Writer, c *Chart, width, height int) error {
	line, err := NewLineChart(c, width, height)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
