package bench_test

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/yyyoichi/playuver/frame"
)

var sizes = [][2]int{{1280, 720}, {1920, 1080}, {3840, 2160}}

// createFrame creates a widthxheight YUV420p frame from a gradient image.
func createFrame(b *testing.B, width, height int) *frame.Frame {
	b.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			bl := uint8(((x + y) * 255) / (width + height))
			img.SetRGBA(x, y, color.RGBA{r, g, bl, 255})
		}
	}
	f, err := frame.FromImage(img, frame.YUV420p, 8)
	if err != nil {
		b.Fatalf("Failed to create frame: %v", err)
	}
	return f
}

func BenchmarkConvert(b *testing.B) {
	targets := []frame.PixelFormat{frame.YUV444p, frame.NV12, frame.YUYV422, frame.RGB24}
	for _, size := range sizes {
		f := createFrame(b, size[0], size[1])
		for _, target := range targets {
			b.Run(fmt.Sprintf("%s_%dx%d", target, size[0], size[1]), func(b *testing.B) {
				for b.Loop() {
					if _, err := f.Convert(target); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkToRGBA(b *testing.B) {
	for _, size := range sizes {
		f := createFrame(b, size[0], size[1])
		b.Run(fmt.Sprintf("%dx%d", size[0], size[1]), func(b *testing.B) {
			for b.Loop() {
				_ = f.ToRGBA()
			}
		})
	}
}

func BenchmarkQuality(b *testing.B) {
	metrics := []struct {
		name string
		fn   func(a, b *frame.Frame, p int) (float64, error)
	}{
		{"MSE", frame.MSE},
		{"PSNR", frame.PSNR},
		{"SSIM", frame.SSIM},
	}
	for _, size := range sizes[:2] {
		ref := createFrame(b, size[0], size[1])
		dist := ref.Shift(1, 1)
		for _, m := range metrics {
			b.Run(fmt.Sprintf("%s_%dx%d", m.name, size[0], size[1]), func(b *testing.B) {
				for b.Loop() {
					if _, err := m.fn(ref, dist, frame.PlaneY); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
