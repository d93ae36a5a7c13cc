package famexplorer

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Fullscreen starts the window in fullscreen mode.
	Fullscreen bool
}

// Run opens a window and runs the explorer until the window is closed. The
// explorer is closed on return. Fullscreen changes made by the platform
// (e.g. the Escape key in a browser) are picked up every tick.
func Run(e *Explorer, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = e.opts.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = e.opts.Height
	}
	if cfg.Title == "" {
		cfg.Title = "famexplorer"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	e.watchFull = true
	defer e.Close()

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
