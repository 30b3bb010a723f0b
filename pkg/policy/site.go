package policy

import "fmt"

// Behavior is the per-site gesture capture rule.
type Behavior string

const (
	BehaviorNormal          Behavior = "normal"
	BehaviorRequireModifier Behavior = "require_modifier"
	BehaviorDisabled        Behavior = "disabled"
)

// ParseBehavior maps a name to a Behavior, reporting whether it was recognized.
func ParseBehavior(name string) (Behavior, bool) {
	switch Behavior(name) {
	case BehaviorNormal, BehaviorRequireModifier, BehaviorDisabled:
		return Behavior(name), true
	default:
		return BehaviorNormal, false
	}
}

// SitePolicy binds a behavior to a host or host glob.
type SitePolicy struct {
	Host     string   `json:"host" yaml:"host"`
	Behavior Behavior `json:"behavior" yaml:"behavior"`
}

type globPolicy struct {
	pattern  string
	behavior Behavior
	match    func(string) bool
}

// Table is a compiled, read-only set of site policies.
type Table struct {
	exact    map[string]Behavior
	globs    []globPolicy
	policies []SitePolicy
}

// NewTable compiles policies. Entries with invalid hosts or globs are
// skipped; an unknown behavior is treated as normal. When the same host
// appears twice the later entry wins.
func NewTable(policies []SitePolicy) *Table {
	t := &Table{exact: make(map[string]Behavior)}
	for _, p := range policies {
		host, ok := NormalizeEntry(p.Host)
		if !ok {
			continue
		}
		behavior, ok := ParseBehavior(string(p.Behavior))
		if !ok {
			behavior = BehaviorNormal
		}
		if isGlob(host) {
			g, err := compileGlob(host)
			if err != nil {
				continue
			}
			t.globs = append(t.globs, globPolicy{pattern: host, behavior: behavior, match: g.Match})
		} else {
			t.exact[host] = behavior
		}
		t.policies = append(t.policies, SitePolicy{Host: host, Behavior: behavior})
	}
	return t
}

// Policies returns the accepted, normalized entries in table order.
func (t *Table) Policies() []SitePolicy {
	out := make([]SitePolicy, len(t.policies))
	copy(out, t.policies)
	return out
}

// Lookup returns the behavior for host and the entry that produced it.
// Order: exact host, then parent domains from most to least specific, then
// glob entries in table order. The empty entry with BehaviorNormal means no
// entry matched.
func (t *Table) Lookup(host string) (Behavior, string) {
	if t == nil {
		return BehaviorNormal, ""
	}
	candidates := Candidates(host)
	for _, c := range candidates {
		if b, ok := t.exact[c]; ok {
			return b, c
		}
	}
	if len(candidates) > 0 {
		for _, g := range t.globs {
			if g.match(candidates[0]) {
				return g.behavior, g.pattern
			}
		}
	}
	return BehaviorNormal, ""
}

// Evaluate returns the behavior for host.
func (t *Table) Evaluate(host string) Behavior {
	b, _ := t.Lookup(host)
	return b
}

// Evaluate looks host up in policies.
func Evaluate(host string, policies []SitePolicy) Behavior {
	return NewTable(policies).Evaluate(host)
}

func (p SitePolicy) String() string {
	return fmt.Sprintf("%s=%s", p.Host, p.Behavior)
}
