package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/entrhq/strokes/pkg/policy"
	"github.com/entrhq/strokes/pkg/types"
)

// SectionIDSites is the identifier for the per-site policy section
const SectionIDSites = "sites"

// SitesSection holds per-site gesture behavior and the modifier key that
// require_modifier sites ask for.
type SitesSection struct {
	sites    []policy.SitePolicy
	modifier types.ModifierKey
	mu       sync.RWMutex
}

// NewSitesSection creates a sites section with no site policies.
func NewSitesSection() *SitesSection {
	return &SitesSection{modifier: types.ModifierShift}
}

// ID returns the section identifier.
func (s *SitesSection) ID() string {
	return SectionIDSites
}

// Title returns the section title.
func (s *SitesSection) Title() string {
	return "Site Policies"
}

// Description returns the section description.
func (s *SitesSection) Description() string {
	return "Per-site behavior: normal, require_modifier or disabled. Entries cover subdomains."
}

// Data returns the current configuration data.
func (s *SitesSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sites := make([]interface{}, len(s.sites))
	for i, p := range s.sites {
		sites[i] = map[string]interface{}{
			"host":     p.Host,
			"behavior": string(p.Behavior),
		}
	}
	return map[string]interface{}{
		"sites":    sites,
		"modifier": string(s.modifier),
	}
}

// SetData updates the configuration from the provided data. Site entries
// are normalized; unusable ones are skipped. A sites value that is not a
// list is an error and leaves the current entries in place.
func (s *SitesSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := data["modifier"]; ok {
		name, _ := toString(raw)
		if mod, ok := types.ParseModifierKey(strings.ToLower(name)); ok {
			s.modifier = mod
		} else {
			s.modifier = types.ModifierShift
		}
	}

	raw, ok := data["sites"]
	if !ok {
		return nil
	}
	items, err := toList("sites", raw)
	if err != nil {
		return err
	}

	parsed := make([]policy.SitePolicy, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		host, _ := toString(m["host"])
		behavior, _ := toString(m["behavior"])
		parsed = append(parsed, policy.SitePolicy{Host: host, Behavior: policy.Behavior(strings.ToLower(behavior))})
	}
	// The table drops bad hosts and maps unknown behaviors to normal.
	s.sites = policy.NewTable(parsed).Policies()

	return nil
}

// Validate always succeeds; SetData normalizes.
func (s *SitesSection) Validate() error {
	return nil
}

// Reset clears every site policy and restores the shift modifier.
func (s *SitesSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = nil
	s.modifier = types.ModifierShift
}

// Sites returns a copy of the site policies in table order.
func (s *SitesSection) Sites() []policy.SitePolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]policy.SitePolicy(nil), s.sites...)
}

// Modifier returns the key required by require_modifier sites.
func (s *SitesSection) Modifier() types.ModifierKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modifier
}

// SetSite adds or replaces the policy for host.
func (s *SitesSection) SetSite(host string, behavior policy.Behavior) error {
	entry, ok := policy.NormalizeEntry(host)
	if !ok {
		return fmt.Errorf("invalid site host %q", host)
	}
	if _, ok := policy.ParseBehavior(string(behavior)); !ok {
		return fmt.Errorf("invalid site behavior %q", behavior)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.sites {
		if p.Host == entry {
			s.sites[i].Behavior = behavior
			return nil
		}
	}
	s.sites = append(s.sites, policy.SitePolicy{Host: entry, Behavior: behavior})
	return nil
}

// RemoveSite deletes the policy for host, reporting whether one existed.
func (s *SitesSection) RemoveSite(host string) bool {
	entry, ok := policy.NormalizeEntry(host)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.sites {
		if p.Host == entry {
			s.sites = append(s.sites[:i], s.sites[i+1:]...)
			return true
		}
	}
	return false
}
