// Package pad provides a terminal gesture pad: an interactive host that
// feeds terminal mouse events into the gesture engine and draws the trail.
//
// The codebase is split into:
// - executor.go: program lifecycle and engine wiring
// - model.go: Bubble Tea model and Update
// - view.go: canvas and status rendering
// - keys.go: key bindings
// - styles.go: colors
package pad

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/gesture"
)

// Default terminal cell size in pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Options configures the pad.
type Options struct {
	// CellWidth and CellHeight scale terminal cells to engine pixels.
	CellWidth  float64
	CellHeight float64

	// Host is the page host the policy gate evaluates.
	Host string

	Logger gesture.Logger
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = DefaultCellHeight
	}
	if o.Host == "" {
		o.Host = "localhost"
	}
	return o
}

// Executor runs the gesture pad.
type Executor struct {
	manager *config.Manager
	opts    Options
}

// NewExecutor creates a pad whose engine follows manager's settings. A nil
// manager runs with stock defaults and disables the settings keys.
func NewExecutor(manager *config.Manager, opts Options) *Executor {
	return &Executor{manager: manager, opts: opts.withDefaults()}
}

// Run starts the pad and blocks until the user quits or ctx ends.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.manager, e.opts)
	defer m.close()

	program := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run gesture pad: %w", err)
	}
	return nil
}
