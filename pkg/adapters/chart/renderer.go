package chart

import (
	"bytes"
	"fmt"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mohammaddehghani/fuelrep/pkg/analytics"
)

// Renderer implements ports.ChartRenderer, drawing the consumption trend as a
// PNG: reliable points with their moving averages, noisy points as faded
// dots, the overall average as a dashed line, and ordinal labels on the most
// recent reliable refills.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 1024, Height: 576}
}

// Render draws the trend. The trend must carry at least two points overall;
// below that there is no range to draw.
func (r *Renderer) Render(trend *analytics.Trend) ([]byte, error) {
	if trend == nil || len(trend.Reliable)+len(trend.Noisy) < 2 {
		return nil, fmt.Errorf("chart: need at least 2 points, got %d",
			pointCount(trend))
	}

	var series []chart.Series

	if len(trend.Noisy) > 0 {
		xs := make([]float64, len(trend.Noisy))
		ys := make([]float64, len(trend.Noisy))
		for i, p := range trend.Noisy {
			xs[i] = p.Odometer
			ys[i] = p.Consumption
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Partial refills",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    drawing.Color{R: 160, G: 160, B: 160, A: 180},
			},
		})
	}

	if len(trend.Reliable) > 0 {
		xs := make([]float64, len(trend.Reliable))
		ys := make([]float64, len(trend.Reliable))
		for i, p := range trend.Reliable {
			xs[i] = p.Odometer
			ys[i] = p.Consumption
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Full refills",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    6,
				DotColor:    chart.ColorBlue,
			},
		})

		if s, ok := movingAverageSeries("Short trend", trend.Reliable,
			func(p analytics.ReliablePoint) (float64, bool) { return p.ShortMA, p.HasShortMA },
			chart.ColorGreen); ok {
			series = append(series, s)
		}
		if s, ok := movingAverageSeries("Long trend", trend.Reliable,
			func(p analytics.ReliablePoint) (float64, bool) { return p.LongMA, p.HasLongMA },
			chart.ColorOrange); ok {
			series = append(series, s)
		}

		var labels []chart.Value2
		for _, p := range trend.Reliable {
			if p.LastLabel > 0 {
				labels = append(labels, chart.Value2{
					XValue: p.Odometer,
					YValue: p.Consumption,
					Label:  strconv.Itoa(p.LastLabel),
				})
			}
		}
		if len(labels) > 0 {
			series = append(series, chart.AnnotationSeries{Annotations: labels})
		}

		// Dashed overall-average line across the full odometer range.
		minX, maxX := xRange(trend)
		if maxX > minX {
			series = append(series, chart.ContinuousSeries{
				Name:    fmt.Sprintf("Average %.1f", trend.Average),
				XValues: []float64{minX, maxX},
				YValues: []float64{trend.Average, trend.Average},
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			})
		}
	}

	graph := chart.Chart{
		Title:  "Fuel consumption (L/100)",
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{Name: "Odometer"},
		YAxis:  chart.YAxis{Name: "L/100"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// movingAverageSeries collects the defined window values; a line needs at
// least two of them.
func movingAverageSeries(name string, points []analytics.ReliablePoint, value func(analytics.ReliablePoint) (float64, bool), color drawing.Color) (chart.Series, bool) {
	var xs, ys []float64
	for _, p := range points {
		if v, ok := value(p); ok {
			xs = append(xs, p.Odometer)
			ys = append(ys, v)
		}
	}
	if len(xs) < 2 {
		return nil, false
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
		},
	}, true
}

func xRange(trend *analytics.Trend) (float64, float64) {
	first := true
	var minX, maxX float64
	for _, p := range trend.Reliable {
		if first || p.Odometer < minX {
			minX = p.Odometer
		}
		if first || p.Odometer > maxX {
			maxX = p.Odometer
		}
		first = false
	}
	for _, p := range trend.Noisy {
		if first || p.Odometer < minX {
			minX = p.Odometer
		}
		if first || p.Odometer > maxX {
			maxX = p.Odometer
		}
		first = false
	}
	return minX, maxX
}

func pointCount(trend *analytics.Trend) int {
	if trend == nil {
		return 0
	}
	return len(trend.Reliable) + len(trend.Noisy)
}
