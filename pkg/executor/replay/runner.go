package replay

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/types"
)

// Outcome summarizes how a replayed gesture ended.
type Outcome string

const (
	OutcomeAction    Outcome = "action"
	OutcomeNoAction  Outcome = "no action"
	OutcomeClick     Outcome = "click"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeRefused   Outcome = "refused"
)

// expectNoAction is the expect.action value asserting no request.
const expectNoAction = "none"

// Result is what the engine produced for one gesture.
type Result struct {
	Name    string
	Host    string
	Pattern string
	Action  types.Action
	URL     string
	Source  string
	Outcome Outcome
	Reason  string

	// Checked is true when the gesture carried an expectation.
	Checked  bool
	Passed   bool
	Mismatch []string
}

// Report collects the results of one trace. Warnings lists config
// overrides that were ignored.
type Report struct {
	Trace    string
	Results  []Result
	Warnings []string
	Duration time.Duration
}

// Passed returns the number of checked gestures that matched.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Checked && res.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of checked gestures that did not match.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Checked && !res.Passed {
			n++
		}
	}
	return n
}

// Runner replays traces against a fresh engine per trace.
type Runner struct {
	base   *config.Manager
	logger gesture.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEngineLogger passes a debug logger to every engine the runner creates.
func WithEngineLogger(l gesture.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner whose engines start from base's settings.
// A nil base means stock defaults.
func NewRunner(base *config.Manager, opts ...RunnerOption) *Runner {
	r := &Runner{base: base}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays every gesture of trace in order on one engine.
func (r *Runner) Run(ctx context.Context, trace *Trace) (*Report, error) {
	start := time.Now()

	cfg, warnings, err := snapshotFor(r.base, trace.Config)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", trace.Name, err)
	}
	if r.logger != nil {
		for _, w := range warnings {
			r.logger.Debugf("trace %s: %s", trace.Name, w)
		}
	}

	var events []types.EngineEvent
	opts := []gesture.Option{
		gesture.WithEventSink(func(ev types.EngineEvent) { events = append(events, ev) }),
	}
	if r.logger != nil {
		opts = append(opts, gesture.WithLogger(r.logger))
	}
	engine := gesture.NewEngine(cfg, opts...)

	report := &Report{Trace: trace.Name, Warnings: warnings}
	for _, g := range trace.Gestures {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		host := g.Host
		if host == "" {
			host = trace.Host
		}
		engine.SetPageHost(host)

		events = events[:0]
		for _, ev := range g.PointerEvents(start) {
			engine.Handle(ev)
		}
		if engine.State() == gesture.StateTracking {
			engine.Cancel("trace ended mid-gesture")
		}

		res := summarize(events)
		res.Name = g.Name
		res.Host = host
		if g.Expect != nil {
			res.Checked = true
			res.Mismatch = g.Expect.compare(res)
			res.Passed = len(res.Mismatch) == 0
		}
		report.Results = append(report.Results, res)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// snapshotFor layers trace overrides on top of base without touching base.
// An override a section cannot use is skipped and reported in warnings; the
// section keeps what it had before the override.
func snapshotFor(base *config.Manager, overrides map[string]map[string]interface{}) (gesture.Config, []string, error) {
	if base == nil && len(overrides) == 0 {
		return gesture.DefaultConfig(), nil, nil
	}

	overlay, err := config.NewDefaultManager(config.NewMemoryStore())
	if err != nil {
		return gesture.Config{}, nil, err
	}

	var warnings []string
	if base != nil {
		for _, section := range base.GetSections() {
			if _, ok := overlay.GetSection(section.ID()); !ok {
				continue
			}
			if err := apply(overlay, section.ID(), section.Data()); err != nil {
				warnings = append(warnings, fmt.Sprintf("base settings for %s ignored: %v", section.ID(), err))
			}
		}
	}

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := apply(overlay, id, overrides[id]); err != nil {
			warnings = append(warnings, fmt.Sprintf("config override ignored: %v", err))
		}
	}
	return overlay.Snapshot(), warnings, nil
}

// apply sets one section on m and restores its previous data on failure.
func apply(m *config.Manager, id string, data map[string]interface{}) error {
	section, ok := m.GetSection(id)
	if !ok {
		return fmt.Errorf("unknown config section %q", id)
	}
	before := section.Data()
	if err := m.Apply(id, data); err != nil {
		section.Reset()
		_ = section.SetData(before)
		return err
	}
	return nil
}

// summarize reads one gesture's engine events.
func summarize(events []types.EngineEvent) Result {
	res := Result{Outcome: OutcomeRefused}
	for _, ev := range events {
		switch ev.Type {
		case types.EventTypeStartRefused:
			res.Outcome = OutcomeRefused
			res.Reason = ev.Reason
		case types.EventTypeSessionCancelled:
			res.Outcome = OutcomeCancelled
			res.Pattern = ev.Pattern
			res.Reason = ev.Reason
		case types.EventTypeSessionFinalized:
			res.Pattern = ev.Pattern
			res.Reason = ev.Reason
			if ev.Reason == "click" {
				res.Outcome = OutcomeClick
			} else {
				res.Outcome = OutcomeNoAction
			}
		case types.EventTypeActionRequested:
			res.Outcome = OutcomeAction
			res.Action = ev.Request.Action
			res.URL = ev.Request.Context.URL
			res.Source = ev.Request.Context.Source
		}
	}
	return res
}

func (x *Expectation) compare(res Result) []string {
	var mismatch []string
	if x.Pattern != "" && x.Pattern != res.Pattern {
		mismatch = append(mismatch, fmt.Sprintf("pattern: want %q, got %q", x.Pattern, res.Pattern))
	}
	switch {
	case x.Action == expectNoAction:
		if res.Action != types.ActionNone {
			mismatch = append(mismatch, fmt.Sprintf("action: want none, got %q", res.Action))
		}
	case x.Action != "" && types.Action(x.Action) != res.Action:
		mismatch = append(mismatch, fmt.Sprintf("action: want %q, got %q", x.Action, describeAction(res.Action)))
	}
	if x.URL != "" && x.URL != res.URL {
		mismatch = append(mismatch, fmt.Sprintf("url: want %q, got %q", x.URL, res.URL))
	}
	if x.Outcome != "" && !strings.EqualFold(x.Outcome, string(res.Outcome)) {
		mismatch = append(mismatch, fmt.Sprintf("outcome: want %q, got %q", x.Outcome, res.Outcome))
	}
	return mismatch
}

func describeAction(a types.Action) string {
	if a == types.ActionNone {
		return expectNoAction
	}
	return string(a)
}
