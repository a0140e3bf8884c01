package main

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/internal/report"
	"github.com/yyyoichi/playuver/stream"
)

var metrics = map[string]func(a, b *frame.Frame, p int) (float64, error){
	"mse":  frame.MSE,
	"psnr": frame.PSNR,
	"ssim": frame.SSIM,
}

func runQuality(ctx context.Context, e *env, args []string) error {
	fs := e.flags("quality")
	names := fs.StringSlice("metric", []string{"psnr", "ssim"}, "metrics to compute: mse, psnr, ssim")
	plane := fs.Int("plane", frame.PlaneY, "plane to compare")
	save := fs.Bool("save", false, "store the measurements in the report database")
	if err := e.parse(fs, args, 2); err != nil {
		return err
	}
	for _, name := range *names {
		if _, ok := metrics[name]; !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
	}
	ref, err := e.open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer ref.Close()
	dist, err := e.open(fs.Arg(1))
	if err != nil {
		return err
	}
	defer dist.Close()

	frames := min(ref.FrameCount(), dist.FrameCount())
	if ref.FrameCount() != dist.FrameCount() {
		logrus.WithFields(logrus.Fields{
			"function":  "runQuality",
			"reference": ref.FrameCount(),
			"distorted": dist.FrameCount(),
		}).Warn("Frame counts differ, comparing the common frames")
	}

	values := make(map[string][]report.Measurement, len(*names))
	for n := range frames {
		a, err := ref.ReadFrame(ctx, n)
		if err != nil {
			return err
		}
		b, err := dist.ReadFrame(ctx, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "%d", n)
		for _, name := range *names {
			v, err := metrics[name](a, b, *plane)
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			values[name] = append(values[name], report.Measurement{Frame: n, Value: v})
			fmt.Fprintf(e.out, "\t%s %.4f", name, v)
		}
		fmt.Fprintln(e.out)
	}
	for _, name := range *names {
		fmt.Fprintf(e.out, "%s average %.4f\n", name, average(values[name]))
	}
	if !*save {
		return nil
	}
	return e.saveQuality(ref.Info(), dist.Info(), *plane, *names, values)
}

func average(ms []report.Measurement) float64 {
	var sum float64
	var n int
	for _, m := range ms {
		if math.IsInf(m.Value, 0) {
			continue
		}
		sum += m.Value
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	return sum / float64(n)
}

func (e *env) saveQuality(ref, dist stream.Info, plane int, names []string, values map[string][]report.Measurement) error {
	db, err := report.Open(e.cfg.Report.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	refID, err := db.InsertSequence(sequence(ref))
	if err != nil {
		return err
	}
	distID, err := db.InsertSequence(sequence(dist))
	if err != nil {
		return err
	}
	for _, name := range names {
		runID, err := db.InsertRun(report.Run{ReferenceID: refID, DistortedID: distID, Metric: name, Plane: plane})
		if err != nil {
			return err
		}
		if err := db.InsertMeasurements(runID, values[name]); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"function": "saveQuality",
			"run":      runID,
			"metric":   name,
			"db":       e.cfg.Report.Path,
		}).Info("Saved measurements")
	}
	return nil
}

func sequence(i stream.Info) report.Sequence {
	return report.Sequence{
		Path:     i.Path,
		Width:    i.Width,
		Height:   i.Height,
		Format:   i.Format.String(),
		BitDepth: i.BitDepth,
	}
}

func runReport(ctx context.Context, e *env, args []string) error {
	fs := e.flags("report")
	runID := fs.Int64("run", 0, "print the measurements of one run")
	if err := e.parse(fs, args, 0); err != nil {
		return err
	}
	db, err := report.Open(e.cfg.Report.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if *runID != 0 {
		s, err := db.Summary(*runID)
		if err != nil {
			return err
		}
		printSummary(e, s)
		ms, err := db.Measurements(*runID)
		if err != nil {
			return err
		}
		for _, m := range ms {
			fmt.Fprintf(e.out, "  %d\t%.4f\n", m.Frame, m.Value)
		}
		return nil
	}
	summaries, err := db.Summaries()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		printSummary(e, s)
	}
	return nil
}

func printSummary(e *env, s *report.Summary) {
	fmt.Fprintf(e.out, "run %d: %s plane %d, %s vs %s, %d frames, mean %.4f min %.4f max %.4f\n",
		s.RunID, s.Metric, s.Plane, s.ReferencePath, s.DistortedPath, s.Frames, s.Mean, s.Min, s.Max)
}
