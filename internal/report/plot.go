package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/luizn22/auto-control-tools/internal/plant"
)

// SaveStepPlot writes a PNG chart of a simulated step response,
// optionally overlaying the discrete measurements the model was
// identified from.
func SaveStepPlot(path, title string, times, y []float64, discrete []plant.Sample) error {
	if len(times) != len(y) {
		return fmt.Errorf("report: times and outputs differ in length")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Output"
	p.Add(plotter.NewGrid())

	xy := make(plotter.XYs, len(times))
	for i := range times {
		xy[i].X = times[i]
		xy[i].Y = y[i]
	}
	line, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)
	p.Legend.Add("model", line)

	if len(discrete) > 0 {
		pts := make(plotter.XYs, len(discrete))
		for i, s := range discrete {
			pts[i].X = s.Time
			pts[i].Y = s.Output
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.Color = color.RGBA{R: 255, A: 255}
		scatter.Radius = vg.Points(1.5)
		p.Add(scatter)
		p.Legend.Add("measured", scatter)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
