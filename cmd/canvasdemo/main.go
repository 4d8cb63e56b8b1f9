// Command canvasdemo runs a scripted editing session on a canvas scene:
// it builds a board, drags and resizes elements, exercises undo and redo,
// then renders the result to PNG and saves it as YAML.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/canvas"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		width      = flag.Float64("width", 0, "viewport width (overrides config)")
		height     = flag.Float64("height", 0, "viewport height (overrides config)")
		pngOut     = flag.String("png", "", "rendered frame output (overrides config)")
		yamlOut    = flag.String("yaml", "", "document output (overrides config)")
		input      = flag.String("in", "", "document to load instead of the built-in board")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(logger)

	cfg := &Config{}
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfigFile(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *width > 0 {
		cfg.Viewport.Width = float32(*width)
	}
	if *height > 0 {
		cfg.Viewport.Height = float32(*height)
	}
	if *pngOut != "" {
		cfg.Output.PNG = *pngOut
	}
	if *yamlOut != "" {
		cfg.Output.YAML = *yamlOut
	}
	if *input != "" {
		cfg.Input = *input
	}
	cfg.defaults()

	report, err := run(cfg)
	if err != nil {
		log.Fatalf("session: %v", err)
	}
	logger.Info("session finished",
		"elements", report.Elements,
		"undo", report.UndoSteps,
		"redo", report.RedoSteps,
		"png", cfg.Output.PNG,
		"yaml", cfg.Output.YAML)
}
