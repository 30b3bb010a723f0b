package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/strokes/pkg/types"
)

// Options configures a browser session.
type Options struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session options
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// requestQueueSize bounds action requests waiting for execution.
	requestQueueSize = 16

	// pointerQueueSize bounds page events waiting for dispatch.
	pointerQueueSize = 256

	// maxHeldPointers and reorderWait bound how long events wait behind a
	// missing sequence number.
	maxHeldPointers = 64
	reorderWait     = 50 * time.Millisecond
)

var (
	// ErrNoTab is returned when an action needs a tab and none is open.
	ErrNoTab = errors.New("no open tab")

	// ErrUnsupportedAction is returned for actions outside the vocabulary.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrHostStopped is returned for pointer events sent after Run returned.
	ErrHostStopped = errors.New("host stopped")
)

// ExecutionError reports a failed action. The engine is not told about
// failures; hosts log them.
type ExecutionError struct {
	Action types.Action
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Logger is the subset of the logging package the browser host uses.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}
