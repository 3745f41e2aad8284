// Command showcase renders an animated 3D scene of spinning, floating,
// bouncing and orbiting primitives lit by a spot light.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
	"github.com/Carmen-Shannon/oxy-showcase/internal/config"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML scene file (default: the embedded showcase scene).")
	headless := flag.Bool("headless", false, "Run without a window or GPU.")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (0 = until closed).")
	profile := flag.Bool("profile", false, "Log FPS and memory once per second.")
	software := flag.Bool("software", false, "Force the software fallback adapter.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Showcase] %v", err)
	}

	var (
		win window.Window
		r   renderer.Renderer
	)
	if *headless {
		r = renderer.NewRenderer(renderer.BackendTypeHeadless, nil,
			renderer.WithSize(cfg.Window.Width, cfg.Window.Height))
	} else {
		win = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		presentMode := renderer.PresentModeUncapped
		if cfg.Renderer.VSync {
			presentMode = renderer.PresentModeVSync
		}
		r = renderer.NewRenderer(renderer.BackendTypeWGPU, win,
			renderer.WithPresentMode(presentMode),
			renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
			renderer.WithForceSoftwareRenderer(*software || cfg.Renderer.Software),
		)
	}

	s, err := newShowcase(cfg, win, r, *frames)
	if err != nil {
		r.Release()
		log.Fatalf("[Showcase] %v", err)
	}
	if *profile {
		s.engine.EnableProfiler()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = s.run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[Showcase] %v", err)
	}
	log.Printf("[Showcase] drew %d frames, camera at %v", r.Frames(), s.eye())
}
