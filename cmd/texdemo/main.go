// Command texdemo draws a palette-cycled scene through a texture backend.
//
// By default it renders with the software backend and saves the final
// frame as a PNG. With -window it opens an ebiten window instead. With
// -tone it plays a looping sine tone through oto while running.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/retro"
	"github.com/gogpu/retro/backend"
	_ "github.com/gogpu/retro/backend/gogpu"
	"github.com/gogpu/retro/backend/software"
)

func main() {
	var (
		width   = flag.Int("width", 320, "surface width")
		height  = flag.Int("height", 200, "surface height")
		scale   = flag.Int("scale", 2, "output scale factor")
		linear  = flag.Bool("linear", false, "use linear filtering")
		name    = flag.String("backend", backend.NameSoftware, "texture backend for PNG output")
		output  = flag.String("output", "texdemo.png", "output file")
		frames  = flag.Int("frames", 60, "frames to render before saving")
		window  = flag.Bool("window", false, "open an ebiten window instead of writing a PNG")
		tone    = flag.Float64("tone", 0, "play a sine tone of this frequency in Hz (0 = off)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		retro.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if *width <= 0 || *height <= 0 || *scale <= 0 {
		log.Fatalf("invalid size %dx%d scale %d", *width, *height, *scale)
	}

	var player *tonePlayer
	if *tone > 0 {
		var err error
		if player, err = startTone(*tone); err != nil {
			log.Printf("Tone disabled: %v", err)
		} else {
			defer player.Close()
		}
	}

	if *window {
		if err := runWindow(*width, *height, *scale, *linear, player); err != nil {
			log.Fatalf("Window: %v", err)
		}
		return
	}

	dev, err := backend.Get(*name)
	if err != nil {
		log.Fatalf("Backend: %v (available: %v)", err, backend.Available())
	}
	sw, ok := dev.(*software.Device)
	if !ok {
		log.Fatalf("Backend %q cannot render offscreen; use -window or -backend %s", *name, backend.NameSoftware)
	}
	target := image.NewRGBA(image.Rect(0, 0, *width**scale, *height**scale))
	sw.SetTarget(target)

	s, err := newScene(sw, *width, *height, *scale, *linear)
	if err != nil {
		log.Fatalf("Scene: %v", err)
	}
	defer s.close()

	start := time.Now()
	for i := 0; i < *frames; i++ {
		s.step()
		if err := s.draw(); err != nil {
			log.Fatalf("Draw: %v", err)
		}
		if player != nil {
			player.poll()
		}
	}
	stats := sw.Stats()
	pf, sf := s.formats()
	log.Printf("Rendered %d frames in %v (%d uploads, %d draws, palette %v, sprite %v)",
		*frames, time.Since(start), len(stats.Uploads), stats.Draws, pf, sf)

	if err := savePNG(*output, target); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, target.Rect.Dx(), target.Rect.Dy())

	if player != nil {
		time.Sleep(time.Second)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
