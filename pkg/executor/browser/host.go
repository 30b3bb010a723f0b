package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/types"
)

// pointerPayload is the JSON the page script sends for every mouse event.
// Doc and Seq order payloads from one document; Seq starts at 1.
type pointerPayload struct {
	Type     string  `json:"type"`
	Button   string  `json:"button"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	T        int64   `json:"t"`
	Host     string  `json:"host"`
	Link     string  `json:"link"`
	Target   string  `json:"target"`
	Editable bool    `json:"editable"`
	Shift    bool    `json:"shift"`
	Alt      bool    `json:"alt"`
	Ctrl     bool    `json:"ctrl"`
	Meta     bool    `json:"meta"`
	Doc      string  `json:"doc"`
	Seq      int64   `json:"seq"`
}

// pointerItem is a decoded payload waiting for dispatch.
type pointerItem struct {
	tab   string
	host  string
	doc   string
	seq   int64
	event types.PointerEvent
}

// decodePointer parses a page payload.
func decodePointer(raw string) (pointerItem, error) {
	var p pointerPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return pointerItem{}, fmt.Errorf("invalid pointer payload: %w", err)
	}

	ev := types.PointerEvent{
		Type:   types.PointerEventType(p.Type),
		Button: types.ParseButton(p.Button),
		X:      p.X,
		Y:      p.Y,
		Target: types.Target{
			ID:       p.Target,
			LinkURL:  p.Link,
			Editable: p.Editable,
		},
		Modifiers: types.Modifiers{Shift: p.Shift, Alt: p.Alt, Ctrl: p.Ctrl, Meta: p.Meta},
	}
	if p.T > 0 {
		ev.Timestamp = time.UnixMilli(p.T)
	}

	switch ev.Type {
	case types.PointerDown, types.PointerMove, types.PointerUp, types.PointerCancel:
	default:
		return pointerItem{}, fmt.Errorf("invalid pointer event type %q", p.Type)
	}
	return pointerItem{host: p.Host, doc: p.Doc, seq: p.Seq, event: ev}, nil
}

// Host feeds page pointer events to an engine and executes the resulting
// requests off the event path.
//
// Playwright calls bindings on separate goroutines, so HandlePointer only
// queues. A single dispatcher restores page order and is the only caller of
// the engine.
type Host struct {
	engine   *gesture.Engine
	executor *Executor
	logger   Logger
	inbox    chan pointerItem
	requests chan types.ActionRequest
	done     chan struct{}
	stopOnce sync.Once
}

// NewHost creates a host. logger may be nil.
func NewHost(engine *gesture.Engine, executor *Executor, logger Logger) *Host {
	return &Host{
		engine:   engine,
		executor: executor,
		logger:   logger,
		inbox:    make(chan pointerItem, pointerQueueSize),
		requests: make(chan types.ActionRequest, requestQueueSize),
		done:     make(chan struct{}),
	}
}

// HandlePointer queues one payload from the tab with key tabKey. It is safe
// to call from many goroutines. It blocks while the queue is full and fails
// once Run has returned.
func (h *Host) HandlePointer(tabKey, payload string) error {
	item, err := decodePointer(payload)
	if err != nil {
		return err
	}
	item.tab = tabKey

	select {
	case <-h.done:
		return ErrHostStopped
	default:
	}
	select {
	case h.inbox <- item:
		return nil
	case <-h.done:
		return ErrHostStopped
	}
}

// Run dispatches queued pointer events and executes the requests they
// produce until ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	defer h.stopOnce.Do(func() { close(h.done) })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.dispatch(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-h.requests:
			if err := h.executor.Execute(ctx, req); err != nil {
				h.warnf("session %s: %v", req.Context.SessionID, err)
				continue
			}
			h.debugf("session %s: executed %s (pattern %s, source %s)",
				req.Context.SessionID, req.Action, req.Context.Pattern, req.Context.Source)
		}
	}
}

// dispatch drains the inbox in page order. Payloads that arrive ahead of a
// missing one are held until it shows up, until reorderWait passes without
// new input, or until maxHeldPointers are waiting.
func (h *Host) dispatch(ctx context.Context) {
	seq := newSequencer()
	wait := time.NewTimer(reorderWait)
	wait.Stop()
	defer wait.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case item := <-h.inbox:
			ready, late := seq.push(item)
			if late {
				h.debugf("dropping pointer %s #%d: arrived after a gap was skipped", item.event.Type, item.seq)
			}
			for _, it := range ready {
				h.deliver(it)
			}
			if held := seq.held(); held >= maxHeldPointers {
				h.warnf("releasing %d pointer events past a gap", held)
				for _, it := range seq.flush() {
					h.deliver(it)
				}
			} else if held > 0 {
				wait.Reset(reorderWait)
			}
		case <-wait.C:
			if held := seq.held(); held > 0 {
				h.warnf("releasing %d pointer events past a gap", held)
				for _, it := range seq.flush() {
					h.deliver(it)
				}
			}
		}
	}
}

// deliver hands one event to the engine and queues any request it produces.
// When the request queue is full the request is dropped with a warning.
func (h *Host) deliver(item pointerItem) {
	if item.event.Type == types.PointerDown {
		h.executor.Focus(item.tab)
		h.engine.SetPageHost(item.host)
	}

	req := h.engine.Handle(item.event)
	if req == nil {
		return
	}

	select {
	case h.requests <- *req:
	default:
		h.warnf("dropping %s request: executor busy", req.Action)
	}
}

// sequencer restores per-document order of pointer payloads. Payloads
// without a sequence number pass straight through.
type sequencer struct {
	next    map[string]int64
	pending map[string]map[int64]pointerItem
	count   int
}

func newSequencer() *sequencer {
	return &sequencer{
		next:    make(map[string]int64),
		pending: make(map[string]map[int64]pointerItem),
	}
}

// push adds item and returns the items now ready, in order. late reports
// that item belongs before a gap that was already skipped; it is dropped.
func (s *sequencer) push(item pointerItem) (ready []pointerItem, late bool) {
	if item.seq <= 0 {
		return []pointerItem{item}, false
	}
	next, ok := s.next[item.doc]
	if !ok {
		next = 1
	}
	if item.seq < next {
		return nil, true
	}

	held := s.pending[item.doc]
	if held == nil {
		held = make(map[int64]pointerItem)
		s.pending[item.doc] = held
	}
	if _, dup := held[item.seq]; !dup {
		s.count++
	}
	held[item.seq] = item

	for {
		it, ok := held[next]
		if !ok {
			break
		}
		ready = append(ready, it)
		delete(held, next)
		s.count--
		next++
	}
	s.next[item.doc] = next
	if len(held) == 0 {
		delete(s.pending, item.doc)
	}
	return ready, false
}

// held returns the number of items waiting behind a gap.
func (s *sequencer) held() int {
	return s.count
}

// flush releases every held item, skipping gaps. Documents are released in
// name order and each in sequence order.
func (s *sequencer) flush() []pointerItem {
	docs := make([]string, 0, len(s.pending))
	for doc := range s.pending {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	var out []pointerItem
	for _, doc := range docs {
		held := s.pending[doc]
		seqs := make([]int64, 0, len(held))
		for n := range held {
			seqs = append(seqs, n)
		}
		sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
		for _, n := range seqs {
			out = append(out, held[n])
		}
		s.next[doc] = seqs[len(seqs)-1] + 1
		delete(s.pending, doc)
	}
	s.count = 0
	return out
}

func (h *Host) debugf(format string, v ...interface{}) {
	if h.logger != nil {
		h.logger.Debugf(format, v...)
	}
}

func (h *Host) warnf(format string, v ...interface{}) {
	if h.logger != nil {
		h.logger.Warnf(format, v...)
	}
}
