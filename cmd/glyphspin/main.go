package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell"

	"github.com/gekko3d/glyphspin"
	"github.com/gekko3d/glyphspin/rt/ascii"
	"github.com/gekko3d/glyphspin/rt/font"
	"github.com/gekko3d/glyphspin/window"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	backend := flag.String("backend", "", "Presentation backend: terminal, window or headless")
	fontRef := flag.String("font", "", "Font reference: builtin:gobold, a .ttf/.otf/.typeface.json path or URL")
	debug := flag.Bool("debug", false, "Enable debug logging")
	frames := flag.Int("frames", 120, "Frames to render before printing the last one (headless backend)")
	flag.Parse()

	cfg, err := glyphspin.LoadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *fontRef != "" {
		cfg.Font.Ref = *fontRef
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *frames); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *glyphspin.Config, frames int) error {
	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	queue := &glyphspin.InputQueue{}
	app := glyphspin.NewAppBuilder().
		UseStates(glyphspin.StateLoading, glyphspin.StateExit).
		UseModule(
			glyphspin.LoggingModule{Prefix: cfg.Logging.Prefix, Debug: cfg.Logging.Level == "debug", Output: logOut},
			glyphspin.TimeModule{},
			glyphspin.InputModule{Queue: queue},
			glyphspin.AssetServerModule{},
			glyphspin.HierarchyModule{},
			glyphspin.SpinModule{Params: cfg.SpinParams()},
			glyphspin.SceneModule{Def: cfg.SceneDef(), Loader: font.NewLoader(), Context: ctx},
		).
		Build()
	app.SetFrameRate(cfg.FPS)

	switch glyphspin.BackendName(cfg.Backend) {
	case glyphspin.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		term := glyphspin.NewTerminal(screen, queue, cfg.AsciiOptions())
		if err := term.Start(); err != nil {
			return fmt.Errorf("start terminal: %w", err)
		}
		defer term.Close()
		app.UseBackend(glyphspin.BackendTerminal, glyphspin.TerminalModule{Terminal: term, Render: cfg.RenderModule()})
		app.Run(ctx)

	case glyphspin.BackendWindow:
		w := window.New(queue, window.Options{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Title:  cfg.Window.Title,
			TPS:    cfg.FPS,
		}, cfg.AsciiOptions())
		app.UseBackend(glyphspin.BackendWindow, window.Module{Window: w, Render: cfg.RenderModule()})
		go func() {
			<-ctx.Done()
			queue.Push(glyphspin.Quit())
		}()
		return window.Run(app, w)

	case glyphspin.BackendHeadless:
		app.UseBackend(glyphspin.BackendHeadless, glyphspin.HeadlessModule{
			Render: cfg.RenderModule(),
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		})
		rendered := app.RunFrames(ctx, frames)
		sink, _ := glyphspin.FindResource[*ascii.MemorySink](app)
		app.Stop()
		if sink == nil || sink.Last == nil {
			return fmt.Errorf("headless run rendered no frames")
		}
		app.Logger().Infof("Rendered %d frames", rendered)
		fmt.Println(sink.Last.String())
	}
	return nil
}

// logOutput keeps logs off the terminal screen while the terminal backend
// owns it.
func logOutput(cfg *glyphspin.Config) (io.Writer, func(), error) {
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if glyphspin.BackendName(cfg.Backend) == glyphspin.BackendTerminal {
		return io.Discard, func() {}, nil
	}
	return nil, func() {}, nil
}
