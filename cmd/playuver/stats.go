package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/yyyoichi/playuver/frame"
)

func runStats(ctx context.Context, e *env, args []string) error {
	fs := e.flags("stats")
	index := fs.IntP("frame", "n", 0, "frame index")
	html := fs.String("html", "", "write a histogram and luma trend chart to this html file")
	if err := e.parse(fs, args, 1); err != nil {
		return err
	}
	s, err := e.open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer s.Close()
	f, err := s.ReadFrame(ctx, *index)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "frame %d: %s\n", *index, f)
	for _, st := range f.Stats() {
		fmt.Fprintf(e.out, "  %-2s mean %8.3f  stddev %8.3f  min %5.0f  max %5.0f\n", st.Name, st.Mean, st.StdDev, st.Min, st.Max)
	}
	if *html == "" {
		return nil
	}

	means := make([]float64, s.FrameCount())
	for n := range means {
		g, err := s.ReadFrame(ctx, n)
		if err != nil {
			return err
		}
		means[n] = g.LumaMean()
	}
	page := components.NewPage()
	page.PageTitle = fs.Arg(0)
	page.AddCharts(histogramChart(f, *index), lumaChart(means))

	out, err := os.Create(*html)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := page.Render(out); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "chart saved to %s\n", *html)
	return nil
}

// histogramChart plots the sample counts of every plane of f.
func histogramChart(f *frame.Frame, index int) *charts.Bar {
	h := f.Histogram()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Histogram",
			Subtitle: fmt.Sprintf("frame %d, %s", index, f),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "value", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "samples", Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	xAxis := make([]string, 1<<h.BitDepth)
	for v := range xAxis {
		xAxis[v] = strconv.Itoa(v)
	}
	bar.SetXAxis(xAxis)
	for p, counts := range h.Counts {
		data := make([]opts.BarData, len(counts))
		for v, c := range counts {
			data[v] = opts.BarData{Value: c}
		}
		bar.AddSeries(h.Names[p], data)
	}
	return bar
}

// lumaChart plots the mean luma of every frame.
func lumaChart(means []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Luma average"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "luma", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	xAxis := make([]string, len(means))
	data := make([]opts.LineData, len(means))
	for n, m := range means {
		xAxis[n] = strconv.Itoa(n)
		data[n] = opts.LineData{Value: m}
	}
	line.SetXAxis(xAxis).AddSeries("luma", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}
