// Package plot renders learning curves of experiments as HTML charts
package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// Series is a named sequence of episodic returns
type Series struct {
	Name    string
	Returns []float64
}

// MovingAverage returns the trailing moving average of data over
// window elements. The first window-1 elements are averaged over the
// elements seen so far. If window <= 1, a copy of data is returned.
func MovingAverage(data []float64, window int) []float64 {
	avg := make([]float64, len(data))
	if window <= 1 {
		copy(avg, data)
		return avg
	}

	for i := range data {
		start := max(0, i-window+1)
		avg[i] = stat.Mean(data[start:i+1], nil)
	}
	return avg
}

// Returns renders a line chart of the returns of each series to w as
// an HTML page. Returns are smoothed with a trailing moving average
// over window episodes. The x axis covers the longest series.
func Returns(w io.Writer, title string, window int, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("returns: no series to plot")
	}

	var episodes int
	for _, s := range series {
		episodes = max(episodes, len(s.Returns))
	}
	if episodes == 0 {
		return fmt.Errorf("returns: all series are empty")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Moving average over %d episodes", window),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Return"}),
	)

	x := make([]string, episodes)
	for i := range x {
		x[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(x)

	for _, s := range series {
		smoothed := MovingAverage(s.Returns, window)
		items := make([]opts.LineData, len(smoothed))
		for i, v := range smoothed {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items, charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}))
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("returns: %w", err)
	}
	return nil
}
