package linreg

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineObservations generates an echart multi-line chart of values by observation index. Every
// series in y must have the same length. NaN values are left as gaps.
func LineObservations(title string, seriesName []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var n int
	if len(y) > 0 {
		n = len(y[0])
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	line = line.SetXAxis(idx)
	for i, series := range seriesName {
		if i >= len(y) {
			break
		}
		lineData := make([]opts.LineData, 0, len(y[i]))
		for _, v := range y[i] {
			if math.IsNaN(v) {
				lineData = append(lineData, opts.LineData{Value: "-"})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: v})
		}
		line = line.AddSeries(series, lineData)
	}
	return line
}
