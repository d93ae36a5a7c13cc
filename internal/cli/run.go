package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/famexplorer"
	"github.com/phanxgames/famexplorer/internal/config"
	"github.com/phanxgames/famexplorer/internal/source"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the explorer window",
		Long: `Open the explorer window. Tiles show as placeholders until the profiles
and atlas finish loading in the background.`,
		Example: `  # Explore profiles from a JSON file
  famexplorer run --profiles fam.json --atlas atlas.json --atlas-image atlas.png

  # Reload when the data files change
  famexplorer run --watch

  # Replay an input script and save screenshots
  famexplorer run --script tour.json --screenshot-dir out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplorer(cmd)
		},
	}

	f := cmd.Flags()
	f.Int("window-width", 0, "window width")
	f.Int("window-height", 0, "window height")
	f.String("window-title", "", "window title")
	f.Bool("window-fullscreen", false, "start in fullscreen")
	f.Float64("initial-scale", 0, "viewport scale on start and reset")
	f.Duration("open-delay", 0, "tooltip open debounce")
	f.Duration("close-grace", 0, "tooltip close grace period")
	f.Bool("watch", false, "reload profiles and atlas when their files change")
	f.String("script", "", "JSON input script to replay")
	f.String("screenshot-dir", "", "directory for script screenshots")
	return cmd
}

func sourcesFor(cfg *config.Config) source.Sources {
	return source.Sources{
		Profiles:   cfg.Profiles,
		ProfilesDB: cfg.ProfilesDB,
		Atlas:      cfg.Atlas,
		AtlasImage: cfg.AtlasImage,
	}
}

// newExplorer builds an explorer from the configuration without loading any
// data.
func newExplorer(cfg *config.Config, logger *zap.Logger) *famexplorer.Explorer {
	e := famexplorer.NewExplorer(famexplorer.Options{
		SizeFactor:   cfg.SizeFactor,
		InitialScale: cfg.InitialScale,
		CenterScale:  cfg.InitialScale,
		OpenDelay:    cfg.OpenDelay,
		CloseGrace:   cfg.CloseGrace,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
	})
	e.SetLogger(logger)
	e.SetEventSink(eventLog{logger: logger})
	e.SetDebugMode(cfg.Debug)
	if cfg.ScreenshotDir != "" {
		e.ScreenshotDir = cfg.ScreenshotDir
	}
	return e
}

// loadInto reads the sources off the update goroutine and queues the result
// for the explorer.
func loadInto(ctx context.Context, e *famexplorer.Explorer, src source.Sources, logger *zap.Logger) {
	assets, err := source.Load(ctx, src, logger)
	if err != nil {
		logger.Error("failed to load explorer data", zap.Error(err))
		return
	}
	e.Enqueue(func(e *famexplorer.Explorer) {
		if err := assets.Apply(e); err != nil {
			logger.Error("failed to apply explorer data", zap.Error(err))
		}
	})
}

func runExplorer(cmd *cobra.Command) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())
	if err := cfg.ValidateSources(); err != nil {
		return err
	}

	e := newExplorer(cfg, logger)
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		runner, err := famexplorer.LoadScript(data)
		if err != nil {
			return err
		}
		e.SetScript(runner)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	src := sourcesFor(cfg)
	go loadInto(ctx, e, src, logger)

	if cfg.Watch {
		files := []string{src.Profiles, src.Atlas, src.AtlasImage}
		if src.ProfilesDB != "" {
			files = []string{src.ProfilesDB, src.Atlas, src.AtlasImage}
		}
		w, err := source.NewWatcher(files, func([]string) {
			loadInto(ctx, e, src, logger)
		}, logger)
		if err != nil {
			return err
		}
		go w.Run(ctx)
	}

	logger.Info("starting explorer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("watch", cfg.Watch))
	return famexplorer.Run(e, famexplorer.RunConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
	})
}

// eventLog forwards explorer events to the logger.
type eventLog struct {
	logger *zap.Logger
}

func (l eventLog) Emit(ev famexplorer.Event) {
	l.logger.Debug("explorer event",
		zap.Stringer("type", ev.Type),
		zap.String("handle", ev.Handle),
		zap.String("query", ev.Query),
		zap.Int("index", ev.Index),
		zap.Int("count", ev.Count),
		zap.Bool("active", ev.Active))
}
