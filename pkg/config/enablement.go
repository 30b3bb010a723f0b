package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/entrhq/strokes/pkg/policy"
)

// SectionIDEnablement is the identifier for the global enablement section
const SectionIDEnablement = "enablement"

// EnablementSection holds the master switch and the domain blacklist or
// whitelist.
type EnablementSection struct {
	enabled bool
	mode    policy.Mode
	domains []string
	mu      sync.RWMutex
}

// NewEnablementSection creates an enablement section that allows every site.
func NewEnablementSection() *EnablementSection {
	def := policy.DefaultEnablement()
	return &EnablementSection{enabled: def.Enabled, mode: def.Mode}
}

// ID returns the section identifier.
func (s *EnablementSection) ID() string {
	return SectionIDEnablement
}

// Title returns the section title.
func (s *EnablementSection) Title() string {
	return "Enablement"
}

// Description returns the section description.
func (s *EnablementSection) Description() string {
	return "Turns gestures on or off globally and lists domains to block (blacklist) or allow (whitelist)."
}

// Data returns the current configuration data.
func (s *EnablementSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domains := make([]interface{}, len(s.domains))
	for i, d := range s.domains {
		domains[i] = d
	}
	return map[string]interface{}{
		"enabled":     s.enabled,
		"mode":        string(s.mode),
		"domain_list": domains,
	}
}

// SetData updates the configuration from the provided data. Domain entries
// are lowercased and de-duplicated; entries carrying a scheme or path are
// dropped. A domain_list value that is not a list is an error.
func (s *EnablementSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := data["enabled"]; ok {
		if b, ok := toBool(raw); ok {
			s.enabled = b
		} else {
			s.enabled = true
		}
	}
	if raw, ok := data["mode"]; ok {
		name, _ := toString(raw)
		s.mode, _ = policy.ParseMode(strings.ToLower(name))
	}
	if raw, ok := data["domain_list"]; ok {
		entries, err := toStringList("domain_list", raw)
		if err != nil {
			return err
		}
		s.domains = policy.NewDomainList(entries).Entries()
	}

	return nil
}

// Validate always succeeds; SetData normalizes.
func (s *EnablementSection) Validate() error {
	return nil
}

// Reset enables gestures everywhere.
func (s *EnablementSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := policy.DefaultEnablement()
	s.enabled, s.mode, s.domains = def.Enabled, def.Mode, nil
}

// Enablement returns the current settings.
func (s *EnablementSection) Enablement() policy.Enablement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return policy.Enablement{
		Enabled:    s.enabled,
		Mode:       s.mode,
		DomainList: append([]string(nil), s.domains...),
	}
}

// SetEnabled flips the master switch.
func (s *EnablementSection) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// AddDomain appends a domain entry. Adding an entry already present is a
// no-op.
func (s *EnablementSection) AddDomain(domain string) error {
	entry, ok := policy.NormalizeEntry(domain)
	if !ok {
		return fmt.Errorf("invalid domain entry %q", domain)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.domains {
		if d == entry {
			return nil
		}
	}
	s.domains = append(s.domains, entry)
	return nil
}

// RemoveDomain deletes a domain entry, reporting whether it was present.
func (s *EnablementSection) RemoveDomain(domain string) bool {
	entry, ok := policy.NormalizeEntry(domain)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.domains {
		if d == entry {
			s.domains = append(s.domains[:i], s.domains[i+1:]...)
			return true
		}
	}
	return false
}
