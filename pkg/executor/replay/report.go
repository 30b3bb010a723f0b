package replay

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level is the reporter verbosity.
type Level int

const (
	// LevelQuiet prints failures and the final summary only.
	LevelQuiet Level = iota
	// LevelNormal prints one line per gesture.
	LevelNormal
	// LevelVerbose adds host, source and reason details.
	LevelVerbose
)

// ParseLevel maps quiet, normal or verbose to a Level.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(name) {
	case "quiet":
		return LevelQuiet, true
	case "normal", "":
		return LevelNormal, true
	case "verbose":
		return LevelVerbose, true
	default:
		return LevelNormal, false
	}
}

// Reporter prints replay reports for a terminal.
type Reporter struct {
	level Level
	w     io.Writer

	header  lipgloss.Style
	section lipgloss.Style
	rule    lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	info    lipgloss.Style
	detail  lipgloss.Style
}

// NewReporter creates a reporter writing to w. Colors are dropped when w is
// not a terminal.
func NewReporter(w io.Writer, level Level) *Reporter {
	re := lipgloss.NewRenderer(w)
	return &Reporter{
		level:   level,
		w:       w,
		header:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")),
		section: re.NewStyle().Foreground(lipgloss.Color("#FFB3BA")),
		rule:    re.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		pass:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("#A8E6CF")),
		fail:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		info:    re.NewStyle().Foreground(lipgloss.Color("#FFCCCB")),
		detail:  re.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Header prints a prominent title.
func (r *Reporter) Header(title string) {
	if r.level < LevelNormal {
		return
	}
	bar := strings.Repeat("=", 60)
	fmt.Fprintf(r.w, "\n%s\n%s\n%s\n", r.header.Render(bar), r.header.Render("  "+title), r.header.Render(bar))
}

// Section prints a divider for one trace.
func (r *Reporter) Section(title string) {
	if r.level < LevelNormal {
		return
	}
	fmt.Fprintf(r.w, "\n%s\n%s\n", r.section.Render("▶ "+title), r.rule.Render(strings.Repeat("─", 40)))
}

// Result prints one gesture. Failures are printed at every level.
func (r *Reporter) Result(res Result) {
	failed := res.Checked && !res.Passed
	if !failed && r.level < LevelNormal {
		return
	}

	line := fmt.Sprintf("%s  %s", displayName(res), describe(res))
	switch {
	case failed:
		fmt.Fprintln(r.w, r.fail.Render("✗ "+line))
	case res.Checked:
		fmt.Fprintln(r.w, r.pass.Render("✓ "+line))
	default:
		fmt.Fprintln(r.w, r.info.Render("• "+line))
	}

	for _, m := range res.Mismatch {
		fmt.Fprintln(r.w, r.detail.Render("    "+m))
	}
	if r.level >= LevelVerbose {
		fmt.Fprintln(r.w, r.detail.Render(fmt.Sprintf("    → host=%q source=%q reason=%q", res.Host, res.Source, res.Reason)))
	}
}

// Report prints a trace section followed by its results. Warnings are
// printed at every level.
func (r *Reporter) Report(rep *Report) {
	r.Section(rep.Trace)
	for _, w := range rep.Warnings {
		fmt.Fprintln(r.w, r.info.Render("! "+w))
	}
	for _, res := range rep.Results {
		r.Result(res)
	}
}

// Summary prints totals across reports.
func (r *Reporter) Summary(reports ...*Report) {
	var gestures, passed, failed int
	for _, rep := range reports {
		gestures += len(rep.Results)
		passed += rep.Passed()
		failed += rep.Failed()
	}

	fmt.Fprintln(r.w)
	summary := fmt.Sprintf("%d gestures, %d passed, %d failed", gestures, passed, failed)
	if failed > 0 {
		fmt.Fprintln(r.w, r.fail.Render("✗ "+summary))
		return
	}
	fmt.Fprintln(r.w, r.pass.Render("✓ "+summary))
}

func displayName(res Result) string {
	if res.Name != "" {
		return res.Name
	}
	return "(unnamed)"
}

func describe(res Result) string {
	pattern := res.Pattern
	if pattern == "" {
		pattern = "-"
	}
	switch res.Outcome {
	case OutcomeAction:
		if res.URL != "" {
			return fmt.Sprintf("%s → %s %s", pattern, res.Action, res.URL)
		}
		return fmt.Sprintf("%s → %s", pattern, res.Action)
	default:
		return fmt.Sprintf("%s (%s)", pattern, res.Outcome)
	}
}
