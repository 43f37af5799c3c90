package export

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// WritePNG renders the series as a PNG line chart.
func WritePNG(path, name string, xs, ys []float64, width, height int) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("export: need at least 2 points, got %d", len(xs))
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
