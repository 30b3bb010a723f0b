package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// bindingName is the page-global function the capture script calls.
const bindingName = "__strokesPointer"

// captureScript forwards mouse events to the exposed binding. Every payload
// carries a per-document id and sequence number because bindings are
// delivered concurrently. It suppresses the context menu after a
// right-button drag so the gesture does not open it.
const captureScript = `(() => {
  if (window.__strokesInstalled) return;
  window.__strokesInstalled = true;
  const buttons = ['left', 'middle', 'right'];
  const doc = Math.random().toString(36).slice(2) + Date.now().toString(36);
  let seq = 0;
  let down = null;
  let dragged = false;
  const editable = (el) => !!el && el.nodeType === 1 &&
    (el.isContentEditable || /^(INPUT|TEXTAREA|SELECT)$/.test(el.tagName) ||
     !!el.closest('.cm-editor, .CodeMirror, .monaco-editor, [contenteditable=""], [contenteditable="true"]'));
  const post = (msg) => window.` + bindingName + `(JSON.stringify(Object.assign(msg, {doc, seq: ++seq})));
  const send = (type, e) => {
    const link = e.target && e.target.closest ? e.target.closest('a[href]') : null;
    post({
      type, button: buttons[e.button] || '', x: e.clientX, y: e.clientY, t: Date.now(),
      host: location.host, link: link ? link.href : '',
      target: e.target && e.target.id ? e.target.id : '', editable: editable(e.target),
      shift: e.shiftKey, alt: e.altKey, ctrl: e.ctrlKey, meta: e.metaKey,
    });
  };
  addEventListener('mousedown', (e) => { down = {x: e.clientX, y: e.clientY}; dragged = false; send('down', e); }, true);
  addEventListener('mousemove', (e) => {
    if (!down) return;
    if (Math.hypot(e.clientX - down.x, e.clientY - down.y) > 10) dragged = true;
    send('move', e);
  }, true);
  addEventListener('mouseup', (e) => { send('up', e); down = null; }, true);
  addEventListener('contextmenu', (e) => { if (dragged) { e.preventDefault(); dragged = false; } }, true);
  addEventListener('blur', () => { down = null; post({type: 'cancel'}); });
})();`

// Session is a Chromium browser with one context whose tabs the executor
// drives.
type Session struct {
	pw       *playwright.Playwright
	browser  playwright.Browser
	context  playwright.BrowserContext
	executor *Executor
	closeMu  sync.Mutex
	closed   bool
}

// Launch installs (if needed) and starts Playwright, then launches Chromium.
// No tab is open until Open is called.
func Launch(opts Options) (*Session, error) {
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	// Keep driver output off the terminal.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.Viewport.Width, Height: opts.Viewport.Height},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	bctx.SetDefaultTimeout(opts.Timeout)

	s := &Session{pw: pw, browser: browser, context: bctx}
	s.executor = NewExecutor(contextOpener{ctx: bctx})
	return s, nil
}

// Executor returns the executor bound to this session's tabs.
func (s *Session) Executor() *Executor {
	return s.executor
}

// Attach installs the capture script and routes its events to host. Call it
// before Open so the first page is covered.
func (s *Session) Attach(host *Host) error {
	err := s.context.ExposeBinding(bindingName, func(source *playwright.BindingSource, args ...interface{}) interface{} {
		if len(args) != 1 {
			return false
		}
		payload, ok := args[0].(string)
		if !ok {
			return false
		}
		if err := host.HandlePointer(pageKey(source.Page), payload); err != nil {
			host.warnf("%v", err)
			return false
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to expose pointer binding: %w", err)
	}

	script := captureScript
	if err := s.context.AddInitScript(playwright.Script{Content: &script}); err != nil {
		return fmt.Errorf("failed to install capture script: %w", err)
	}
	return nil
}

// Open opens a tab at url.
func (s *Session) Open(url string) error {
	_, err := s.executor.Open(url)
	return err
}

// Close closes every tab, the browser and the Playwright driver. Safe to
// call more than once.
func (s *Session) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	_ = s.executor.CloseAll() // Ignore errors, continue cleanup
	_ = s.context.Close()
	_ = s.browser.Close()
	if err := s.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

// contextOpener opens tabs as pages of a browser context.
type contextOpener struct {
	ctx playwright.BrowserContext
}

func (o contextOpener) OpenTab(url string) (Tab, error) {
	page, err := o.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if url != "" && url != "about:blank" {
		if _, err := page.Goto(url); err != nil {
			page.Close()
			return nil, fmt.Errorf("navigation failed: %w", err)
		}
	}
	return pageTab{page: page}, nil
}

// pageTab adapts a Playwright page to Tab.
type pageTab struct {
	page playwright.Page
}

func pageKey(p playwright.Page) string {
	return fmt.Sprintf("%p", p)
}

func (t pageTab) Key() string {
	return pageKey(t.page)
}

func (t pageTab) URL() string {
	return t.page.URL()
}

func (t pageTab) GoBack() error {
	if _, err := t.page.GoBack(); err != nil {
		return fmt.Errorf("back navigation failed: %w", err)
	}
	return nil
}

func (t pageTab) GoForward() error {
	if _, err := t.page.GoForward(); err != nil {
		return fmt.Errorf("forward navigation failed: %w", err)
	}
	return nil
}

func (t pageTab) Reload() error {
	if _, err := t.page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

func (t pageTab) Evaluate(script string) error {
	if _, err := t.page.Evaluate(script); err != nil {
		return fmt.Errorf("script evaluation failed: %w", err)
	}
	return nil
}

func (t pageTab) Close() error {
	return t.page.Close()
}
