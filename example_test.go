package playuver_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yyyoichi/playuver"
	"github.com/yyyoichi/playuver/frame"
	"github.com/yyyoichi/playuver/module"
	_ "github.com/yyyoichi/playuver/module/builtin"
	"github.com/yyyoichi/playuver/stream"
)

func Example_player() {
	dir, err := os.MkdirTemp("", "playuver")
	if err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	// Write a short 4:2:0 clip whose luma grows by 16 every frame
	path := filepath.Join(dir, "ramp_32x16.yuv")
	w, err := stream.Create(path)
	if err != nil {
		fmt.Printf("Error creating stream: %v\n", err)
		return
	}
	for i := range 3 {
		f, _ := frame.New(32, 16, frame.YUV420p, 8)
		f.Fill(frame.PlaneY, 16*(i+1))
		f.Fill(frame.PlaneU, 128)
		f.Fill(frame.PlaneV, 128)
		if err := w.WriteFrame(f); err != nil {
			fmt.Printf("Error writing frame: %v\n", err)
			return
		}
	}
	w.Close()

	// The resolution is taken from the file name
	p, err := playuver.Open(path)
	if err != nil {
		fmt.Printf("Error opening stream: %v\n", err)
		return
	}
	defer p.Close()
	info := p.Info()
	fmt.Printf("%dx%d %s, %d frames\n", info.Width, info.Height, info.Format, info.Frames)

	ctx := context.Background()
	avg, _ := module.New("lumaaverage")
	for {
		v, err := p.Measure(ctx, avg)
		if err != nil {
			fmt.Printf("Error measuring: %v\n", err)
			return
		}
		fmt.Printf("frame %d: luma %.0f\n", p.Index(), v)
		if ok, _ := p.Next(ctx); !ok {
			break
		}
	}

	// Output:
	// 32x16 YUV420p, 3 frames
	// frame 0: luma 16
	// frame 1: luma 32
	// frame 2: luma 48
}
