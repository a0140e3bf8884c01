package stream

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yyyoichi/playuver/frame"
)

// Guess holds what a file name tells about its content.
// Zero values mean the name did not say.
type Guess struct {
	Width, Height int
	FrameRate     float64
	BitDepth      int
	Format        frame.PixelFormat
	HasFormat     bool
}

var (
	resolutionPattern = regexp.MustCompile(`(\d{2,5})x(\d{2,5})`)
	frameRatePattern  = regexp.MustCompile(`^(\d{1,3}(?:\.\d+)?)(?:fps|hz)$`)
	bitDepthPattern   = regexp.MustCompile(`^(\d{1,2})(?:bit|bits|b)$`)
	// 1920x1080_50 style frame rate right after the resolution
	trailingRatePattern = regexp.MustCompile(`\d{2,5}x\d{2,5}_(\d{1,3})(?:[_.\-]|$)`)
)

var namedResolutions = map[string][2]int{
	"sqcif": {128, 96},
	"qcif":  {176, 144},
	"cif":   {352, 288},
	"4cif":  {704, 576},
	"vga":   {640, 480},
	"720p":  {1280, 720},
	"1080p": {1920, 1080},
	"2160p": {3840, 2160},
	"4k":    {3840, 2160},
}

var formatTokens = map[string]frame.PixelFormat{
	"420":    frame.YUV420p,
	"i420":   frame.YUV420p,
	"yuv420": frame.YUV420p,
	"422":    frame.YUV422p,
	"yuv422": frame.YUV422p,
	"444":    frame.YUV444p,
	"yuv444": frame.YUV444p,
	"400":    frame.YUV400,
	"gray":   frame.YUV400,
	"nv12":   frame.NV12,
	"yuyv":   frame.YUYV422,
	"yuy2":   frame.YUYV422,
	"rgb":    frame.RGB24,
	"bgr":    frame.BGR24,
	"rgbp":   frame.RGBp,
	"gbrp":   frame.RGBp,
}

// GuessFromName inspects a file name such as
// "foreman_352x288_30fps_420_8bit.yuv" or "crew_720p.yuv".
func GuessFromName(path string) Guess {
	var g Guess
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if m := resolutionPattern.FindStringSubmatch(base); m != nil {
		g.Width, _ = strconv.Atoi(m[1])
		g.Height, _ = strconv.Atoi(m[2])
	}
	if m := trailingRatePattern.FindStringSubmatch(base); m != nil {
		if _, isFormat := formatTokens[m[1]]; !isFormat {
			g.FrameRate, _ = strconv.ParseFloat(m[1], 64)
		}
	}
	for _, token := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		if size, ok := namedResolutions[token]; ok && g.Width == 0 {
			g.Width, g.Height = size[0], size[1]
		}
		if m := frameRatePattern.FindStringSubmatch(token); m != nil {
			g.FrameRate, _ = strconv.ParseFloat(m[1], 64)
		}
		if m := bitDepthPattern.FindStringSubmatch(token); m != nil {
			g.BitDepth, _ = strconv.Atoi(m[1])
		}
		if f, ok := formatTokens[token]; ok {
			g.Format, g.HasFormat = f, true
			continue
		}
		// 420p10 and friends carry both format and depth
		name, depth, _ := strings.Cut(token, "p")
		if f, ok := formatTokens[name]; ok {
			g.Format, g.HasFormat = f, true
			if d, err := strconv.Atoi(depth); err == nil {
				g.BitDepth = d
			}
		}
	}
	return g
}
