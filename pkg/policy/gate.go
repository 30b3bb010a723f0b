package policy

import (
	"fmt"

	"github.com/entrhq/strokes/pkg/types"
)

// Enablement is the global on/off switch and domain list.
type Enablement struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Mode       Mode     `json:"mode" yaml:"mode"`
	DomainList []string `json:"domain_list" yaml:"domain_list"`
}

// DefaultEnablement enables gestures everywhere.
func DefaultEnablement() Enablement {
	return Enablement{Enabled: true, Mode: ModeBlacklist}
}

// Decision is the outcome of a gate check.
type Decision struct {
	Allowed  bool
	Behavior Behavior
	Reason   string
}

// Gate combines global enablement with per-site policy.
type Gate struct {
	enabled  bool
	mode     Mode
	domains  DomainList
	sites    *Table
	modifier types.ModifierKey
}

// NewGate compiles a gate. An unknown mode falls back to blacklist and an
// unknown modifier to shift.
func NewGate(en Enablement, sites []SitePolicy, modifier types.ModifierKey) *Gate {
	mode, _ := ParseMode(string(en.Mode))
	mod, ok := types.ParseModifierKey(string(modifier))
	if !ok {
		mod = types.ModifierShift
	}
	return &Gate{
		enabled:  en.Enabled,
		mode:     mode,
		domains:  NewDomainList(en.DomainList),
		sites:    NewTable(sites),
		modifier: mod,
	}
}

// DefaultGate allows gestures on every site.
func DefaultGate() *Gate {
	return NewGate(DefaultEnablement(), nil, types.ModifierShift)
}

// Modifier returns the key required by require_modifier sites.
func (g *Gate) Modifier() types.ModifierKey {
	return g.modifier
}

// Sites returns the compiled site table.
func (g *Gate) Sites() *Table {
	return g.sites
}

// Enablement returns the normalized global settings.
func (g *Gate) Enablement() Enablement {
	return Enablement{Enabled: g.enabled, Mode: g.mode, DomainList: g.domains.Entries()}
}

// SiteUsable applies only the global layer: master switch and domain list.
func (g *Gate) SiteUsable(host string) bool {
	if !g.enabled {
		return false
	}
	return g.mode.Allows(g.domains.Match(host))
}

// Check decides whether a gesture may start on host with the given
// modifiers held.
func (g *Gate) Check(host string, mods types.Modifiers) Decision {
	if !g.enabled {
		return Decision{Behavior: BehaviorDisabled, Reason: "gestures globally disabled"}
	}
	if !g.mode.Allows(g.domains.Match(host)) {
		return Decision{Behavior: BehaviorDisabled, Reason: fmt.Sprintf("host %q refused by %s", host, g.mode)}
	}

	behavior, entry := g.sites.Lookup(host)
	switch behavior {
	case BehaviorDisabled:
		return Decision{Behavior: behavior, Reason: fmt.Sprintf("site policy %q disables gestures", entry)}
	case BehaviorRequireModifier:
		if !mods.Held(g.modifier) {
			return Decision{Behavior: behavior, Reason: fmt.Sprintf("site policy %q requires %s", entry, g.modifier)}
		}
	}
	return Decision{Allowed: true, Behavior: behavior}
}
