package sink

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
)

// renderChart rasterizes a chart spec to a PNG at path.
func (s *Sink) renderChart(path string, spec *models.ChartSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.FileError(errors.CodeDirectoryError, path, err)
	}
	defer file.Close()

	switch spec.Kind {
	case models.ChartHistogram:
		return s.renderHistogram(file, path, spec)
	case models.ChartLine:
		return s.renderLine(file, path, spec)
	default:
		return errors.InternalError(errors.CodeUnexpectedError, "chart render",
			fmt.Errorf("unknown chart kind: %s", spec.Kind))
	}
}

func (s *Sink) renderHistogram(file *os.File, path string, spec *models.ChartSpec) error {
	if len(spec.Bins) == 0 {
		return errors.FileError(errors.CodeFileCorrupted, path,
			fmt.Errorf("histogram has no bins"))
	}

	bars := make([]chart.Value, len(spec.Bins))
	for i, bin := range spec.Bins {
		bars[i] = chart.Value{Value: float64(bin.Count)}
		// Sparse labels keep the axis readable at 50 bins.
		if i%10 == 0 || len(spec.Bins) <= 10 {
			bars[i].Label = fmt.Sprintf("%.0f", bin.Low)
		}
	}

	graph := chart.BarChart{
		Title:    spec.Title,
		Width:    1024,
		Height:   512,
		BarWidth: 14,
		Bars:     bars,
	}
	if err := graph.Render(chart.PNG, file); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return nil
}

func (s *Sink) renderLine(file *os.File, path string, spec *models.ChartSpec) error {
	series := make([]chart.Series, 0, len(spec.Series))
	for _, sp := range spec.Series {
		series = append(series, chart.TimeSeries{
			Name:    sp.Name,
			XValues: sp.XValues,
			YValues: sp.YValues,
		})
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, file); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return nil
}
