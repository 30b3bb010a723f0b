package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/strokes/pkg/types"
)

func TestDomainList_Match(t *testing.T) {
	list := NewDomainList([]string{"example.com", "*.internal.test", "Example.com", "", "http://bad.com"})

	assert.Equal(t, []string{"example.com", "*.internal.test"}, list.Entries())

	assert.True(t, list.Match("example.com"))
	assert.True(t, list.Match("a.example.com"))
	assert.True(t, list.Match("EXAMPLE.com:8443"))
	assert.False(t, list.Match("notexample.com"))
	assert.True(t, list.Match("wiki.internal.test"))
	assert.False(t, list.Match("internal.test"))
	assert.False(t, list.Match("bad.com"))
	assert.False(t, list.Match(""))
}

func TestMode_Allows(t *testing.T) {
	assert.True(t, ModeBlacklist.Allows(false))
	assert.False(t, ModeBlacklist.Allows(true))
	assert.True(t, ModeWhitelist.Allows(true))
	assert.False(t, ModeWhitelist.Allows(false))

	m, ok := ParseMode("greylist")
	assert.False(t, ok)
	assert.Equal(t, ModeBlacklist, m)
}

func TestGate_SiteUsable(t *testing.T) {
	domains := []string{"example.com"}

	black := NewGate(Enablement{Enabled: true, Mode: ModeBlacklist, DomainList: domains}, nil, types.ModifierShift)
	assert.False(t, black.SiteUsable("example.com"))
	assert.False(t, black.SiteUsable("a.example.com"))
	assert.True(t, black.SiteUsable("other.com"))

	white := NewGate(Enablement{Enabled: true, Mode: ModeWhitelist, DomainList: domains}, nil, types.ModifierShift)
	assert.True(t, white.SiteUsable("example.com"))
	assert.True(t, white.SiteUsable("a.example.com"))
	assert.False(t, white.SiteUsable("other.com"))

	off := NewGate(Enablement{Enabled: false, Mode: ModeWhitelist, DomainList: domains}, nil, types.ModifierShift)
	assert.False(t, off.SiteUsable("example.com"))
}

func TestGate_Check(t *testing.T) {
	sites := []SitePolicy{
		{Host: "github.com", Behavior: BehaviorRequireModifier},
		{Host: "maps.example.org", Behavior: BehaviorDisabled},
	}
	shift := types.Modifiers{Shift: true}
	alt := types.Modifiers{Alt: true}

	tests := []struct {
		name     string
		gate     *Gate
		host     string
		mods     types.Modifiers
		allowed  bool
		behavior Behavior
	}{
		{"default allows", DefaultGate(), "example.org", types.Modifiers{}, true, BehaviorNormal},
		{"require modifier without it", NewGate(DefaultEnablement(), sites, types.ModifierShift), "gist.github.com", types.Modifiers{}, false, BehaviorRequireModifier},
		{"require modifier with it", NewGate(DefaultEnablement(), sites, types.ModifierShift), "gist.github.com", shift, true, BehaviorRequireModifier},
		{"wrong modifier held", NewGate(DefaultEnablement(), sites, types.ModifierShift), "github.com", alt, false, BehaviorRequireModifier},
		{"configured modifier", NewGate(DefaultEnablement(), sites, types.ModifierAlt), "github.com", alt, true, BehaviorRequireModifier},
		{"site disabled", NewGate(DefaultEnablement(), sites, types.ModifierShift), "maps.example.org", shift, false, BehaviorDisabled},
		{
			"whitelist refuses before site policy",
			NewGate(Enablement{Enabled: true, Mode: ModeWhitelist, DomainList: []string{"example.org"}}, sites, types.ModifierShift),
			"github.com", shift, false, BehaviorDisabled,
		},
		{
			"whitelisted host still honours site policy",
			NewGate(Enablement{Enabled: true, Mode: ModeWhitelist, DomainList: []string{"github.com"}}, sites, types.ModifierShift),
			"github.com", types.Modifiers{}, false, BehaviorRequireModifier,
		},
		{"globally disabled", NewGate(Enablement{}, nil, types.ModifierShift), "example.org", shift, false, BehaviorDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.gate.Check(tt.host, tt.mods)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.behavior, d.Behavior)
			if !tt.allowed {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestNewGate_FallsBack(t *testing.T) {
	g := NewGate(Enablement{Enabled: true, Mode: "nonsense"}, nil, "hyper")
	assert.Equal(t, types.ModifierShift, g.Modifier())
	assert.Equal(t, ModeBlacklist, g.Enablement().Mode)
}
