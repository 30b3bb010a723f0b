package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/entrhq/strokes/pkg/types"
)

const (
	scrollTopScript    = "() => window.scrollTo({top: 0, behavior: 'instant'})"
	scrollBottomScript = "() => window.scrollTo({top: document.documentElement.scrollHeight, behavior: 'instant'})"
)

// Tab is one browser page as the executor sees it.
type Tab interface {
	// Key identifies the tab for focus tracking.
	Key() string
	URL() string
	GoBack() error
	GoForward() error
	Reload() error
	Evaluate(script string) error
	Close() error
}

// TabOpener creates tabs.
type TabOpener interface {
	OpenTab(url string) (Tab, error)
}

// Executor performs action requests on a set of tabs. Actions target the
// focused tab, which is the tab the last gesture came from.
type Executor struct {
	mu     sync.Mutex
	opener TabOpener
	tabs   []Tab
	active int
}

// NewExecutor creates an executor with no tabs.
func NewExecutor(opener TabOpener) *Executor {
	return &Executor{opener: opener, active: -1}
}

// Open opens a tab at url and focuses it.
func (e *Executor) Open(url string) (Tab, error) {
	tab, err := e.opener.OpenTab(url)
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tabs = append(e.tabs, tab)
	e.active = len(e.tabs) - 1
	return tab, nil
}

// Focus makes the tab with key the target of later actions. It reports
// whether such a tab is known.
func (e *Executor) Focus(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, t := range e.tabs {
		if t.Key() == key {
			e.active = i
			return true
		}
	}
	return false
}

// Active returns the focused tab, or nil when none is open.
func (e *Executor) Active() Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active < 0 {
		return nil
	}
	return e.tabs[e.active]
}

// Tabs returns the number of open tabs.
func (e *Executor) Tabs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tabs)
}

// Execute carries out one request. Failures are returned as *ExecutionError.
func (e *Executor) Execute(ctx context.Context, req types.ActionRequest) error {
	if err := ctx.Err(); err != nil {
		return &ExecutionError{Action: req.Action, Err: err}
	}
	if err := e.execute(req); err != nil {
		return &ExecutionError{Action: req.Action, Err: err}
	}
	return nil
}

func (e *Executor) execute(req types.ActionRequest) error {
	if req.Action == types.ActionNewTab {
		url := req.Context.URL
		if url == "" {
			url = "about:blank"
		}
		_, err := e.Open(url)
		return err
	}

	tab := e.Active()
	if tab == nil {
		return ErrNoTab
	}

	switch req.Action {
	case types.ActionBack:
		return tab.GoBack()
	case types.ActionForward:
		return tab.GoForward()
	case types.ActionReload:
		return tab.Reload()
	case types.ActionTop:
		return tab.Evaluate(scrollTopScript)
	case types.ActionBottom:
		return tab.Evaluate(scrollBottomScript)
	case types.ActionCloseTab:
		return e.close(tab)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, req.Action)
	}
}

// close closes tab and focuses the tab opened most recently before it.
func (e *Executor) close(tab Tab) error {
	err := tab.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, t := range e.tabs {
		if t == tab {
			e.tabs = append(e.tabs[:i], e.tabs[i+1:]...)
			break
		}
	}
	e.active = len(e.tabs) - 1
	return err
}

// CloseAll closes every tab, returning the first error.
func (e *Executor) CloseAll() error {
	e.mu.Lock()
	tabs := e.tabs
	e.tabs = nil
	e.active = -1
	e.mu.Unlock()

	var first error
	for _, t := range tabs {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
