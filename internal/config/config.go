// Package config loads the settings of the playuver command from a file,
// the environment and flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkyr/fig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/stream"
	"github.com/yyyoichi/playuver/view"
)

const (
	EnvPrefix = "PLAYUVER"
	FileName  = "playuver.yaml"
)

type Config struct {
	Log struct {
		Level  string `fig:"level" default:"info"`
		Format string `fig:"format" default:"text"`
	}
	Stream struct {
		Width      int     `fig:"width"`
		Height     int     `fig:"height"`
		Format     string  `fig:"format"`
		BitDepth   int     `fig:"bitdepth"`
		Endianness string  `fig:"endianness" default:"little"`
		FrameRate  float64 `fig:"framerate"`
		CacheSize  int     `fig:"cachesize" default:"8"`
	}
	View struct {
		Zoom float64 `fig:"zoom" default:"1"`
		Grid struct {
			Spacing int    `fig:"spacing" default:"8"`
			Style   string `fig:"style" default:"solid"`
			Visible bool   `fig:"visible"`
		}
	}
	Report struct {
		Path string `fig:"path" default:"playuver.db"`
	}
}

// Load reads path, or playuver.yaml from the usual directories when path
// is empty, then applies PLAYUVER_* environment variables. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	var c Config
	opts := []fig.Option{fig.UseEnv(EnvPrefix)}
	if path != "" {
		opts = append(opts, fig.File(filepath.Base(path)), fig.Dirs(filepath.Dir(path)))
		if err := fig.Load(&c, opts...); err != nil {
			return nil, err
		}
		return &c, nil
	}
	dirs := []string{".", "configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "playuver"))
	}
	err := fig.Load(&c, append(opts, fig.File(FileName), fig.Dirs(dirs...))...)
	if errors.Is(err, fig.ErrFileNotFound) {
		c = Config{}
		err = fig.Load(&c, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// WithFlags binds the settings to fs. Current values become the flag
// defaults, so flags override the file and the environment.
func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format: text, json")
	fs.IntVar(&c.Stream.Width, "width", c.Stream.Width, "frame width, guessed from the file name when 0")
	fs.IntVar(&c.Stream.Height, "height", c.Stream.Height, "frame height, guessed from the file name when 0")
	fs.StringVarP(&c.Stream.Format, "pix-fmt", "f", c.Stream.Format, "pixel format such as yuv420p, nv12, yuyv, rgb")
	fs.IntVarP(&c.Stream.BitDepth, "bits", "b", c.Stream.BitDepth, "bits per sample")
	fs.StringVar(&c.Stream.Endianness, "endian", c.Stream.Endianness, "byte order of 16 bit samples: little, big")
	fs.Float64Var(&c.Stream.FrameRate, "fps", c.Stream.FrameRate, "frame rate")
	fs.IntVar(&c.Stream.CacheSize, "cache", c.Stream.CacheSize, "decoded frames kept in memory")
	fs.Float64VarP(&c.View.Zoom, "zoom", "z", c.View.Zoom, "zoom factor, 0 to fit the viewport")
	fs.IntVar(&c.View.Grid.Spacing, "grid", c.View.Grid.Spacing, "grid spacing in pixels")
	fs.StringVar(&c.View.Grid.Style, "grid-style", c.View.Grid.Style, "grid style: dotted, cross, dashed, solid")
	fs.BoolVar(&c.View.Grid.Visible, "show-grid", c.View.Grid.Visible, "draw the grid")
	fs.StringVar(&c.Report.Path, "report", c.Report.Path, "sqlite file for quality reports")
	return c
}

// StreamOptions converts the stream settings. Zero values are left for
// the stream to guess.
func (c *Config) StreamOptions() ([]stream.Option, error) {
	s := c.Stream
	var opts []stream.Option
	if s.Width != 0 || s.Height != 0 {
		opts = append(opts, stream.WithResolution(s.Width, s.Height))
	}
	if s.Format != "" {
		f, err := frame.ParsePixelFormat(s.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, stream.WithPixelFormat(f))
	}
	if s.BitDepth != 0 {
		opts = append(opts, stream.WithBitDepth(s.BitDepth))
	}
	e, err := stream.ParseEndianness(s.Endianness)
	if err != nil {
		return nil, err
	}
	opts = append(opts, stream.WithEndianness(e), stream.WithCacheSize(s.CacheSize))
	if s.FrameRate != 0 {
		opts = append(opts, stream.WithFrameRate(s.FrameRate))
	}
	return opts, nil
}

// Grid builds the grid overlay from the view settings.
func (c *Config) Grid() (view.Grid, error) {
	g := view.DefaultGrid()
	style, err := view.ParseGridStyle(c.View.Grid.Style)
	if err != nil {
		return g, err
	}
	if c.View.Grid.Spacing <= 0 {
		return g, fmt.Errorf("invalid grid spacing %d", c.View.Grid.Spacing)
	}
	g.HSpacing, g.VSpacing = c.View.Grid.Spacing, c.View.Grid.Spacing
	g.Style, g.Visible = style, c.View.Grid.Visible
	return g, nil
}

// SetupLogging configures the standard logrus logger.
func (c *Config) SetupLogging(out io.Writer) error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(out)
	switch strings.ToLower(c.Log.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
