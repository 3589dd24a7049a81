package threelove

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable allows the user to resize the window. Aspect changes flow
	// into the camera wrapper's update path.
	Resizable bool
}

// Run opens a window and drives the SceneManager's game loop until the window
// closes or the manager fails. The manager is shut down before Run returns,
// so every binding's destroy executes even on normal window close.
func Run(m *SceneManager, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	defer m.Shutdown()
	if err := ebiten.RunGame(m); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("threelove: run: %w", err)
	}
	return nil
}
