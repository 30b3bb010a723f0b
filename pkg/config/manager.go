package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/policy"
)

// Manager owns the registered sections and their backing store, and hands
// out immutable engine snapshots built from them.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string

	subscribers map[int]func(gesture.Config)
	nextSubID   int

	mu sync.RWMutex
}

// NewManager creates a manager with no sections.
func NewManager(store Store) *Manager {
	return &Manager{
		store:       store,
		sections:    make(map[string]Section),
		subscribers: make(map[int]func(gesture.Config)),
	}
}

// RegisterSection adds a section. Registering the same ID twice is an error.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection returns the section registered under id.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[id]
	return s, ok
}

// GetSections returns every section in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sections[id])
	}
	return out
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// LoadAll reloads the store and feeds every section its stored data. A
// section that rejects its data keeps its previous values; all such
// failures are returned together after every section has been tried.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load config store: %w", err)
	}

	var errs []error
	for _, section := range m.GetSections() {
		data, err := m.store.GetSection(section.ID())
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read section %s: %w", section.ID(), err))
			continue
		}
		if err := section.SetData(data); err != nil {
			errs = append(errs, fmt.Errorf("invalid data for section %s: %w", section.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// SaveAll validates every section, writes it to the store and saves.
func (m *Manager) SaveAll() error {
	sections := m.GetSections()
	for _, section := range sections {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("section %s is invalid: %w", section.ID(), err)
		}
	}
	for _, section := range sections {
		if err := m.store.SetSection(section.ID(), section.Data()); err != nil {
			return fmt.Errorf("failed to store section %s: %w", section.ID(), err)
		}
	}
	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save config store: %w", err)
	}
	return nil
}

// ResetAll restores every section's defaults.
func (m *Manager) ResetAll() {
	for _, section := range m.GetSections() {
		section.Reset()
	}
}

// Subscribe registers fn to receive a fresh snapshot after every Apply.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(gesture.Config)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Apply updates one section from data, records it in the store and notifies
// subscribers. The store is not saved to disk; call SaveAll for that.
func (m *Manager) Apply(sectionID string, data map[string]interface{}) error {
	section, ok := m.GetSection(sectionID)
	if !ok {
		return fmt.Errorf("unknown config section %q", sectionID)
	}
	if err := section.SetData(data); err != nil {
		return fmt.Errorf("invalid data for section %s: %w", sectionID, err)
	}
	if err := section.Validate(); err != nil {
		return fmt.Errorf("section %s is invalid: %w", sectionID, err)
	}
	if err := m.store.SetSection(sectionID, section.Data()); err != nil {
		return fmt.Errorf("failed to store section %s: %w", sectionID, err)
	}
	m.notify()
	return nil
}

func (m *Manager) notify() {
	m.mu.RLock()
	subs := make([]func(gesture.Config), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, fn := range subs {
		fn(snap)
	}
}

// Snapshot assembles an engine configuration from the registered sections.
// Sections that are not registered contribute their defaults.
func (m *Manager) Snapshot() gesture.Config {
	cfg := gesture.DefaultConfig()

	if s, ok := sectionAs[*RecognitionSection](m, SectionIDRecognition); ok {
		cfg.Recognition = s.Recognition()
	}
	if s, ok := sectionAs[*GesturesSection](m, SectionIDGestures); ok {
		cfg.Actions = s.Actions()
	}
	if s, ok := sectionAs[*TrailSection](m, SectionIDTrail); ok {
		cfg.Trail = s.Style()
	}

	enablement := policy.DefaultEnablement()
	if s, ok := sectionAs[*EnablementSection](m, SectionIDEnablement); ok {
		enablement = s.Enablement()
	}
	sites := NewSitesSection()
	if s, ok := sectionAs[*SitesSection](m, SectionIDSites); ok {
		sites = s
	}
	cfg.Gate = policy.NewGate(enablement, sites.Sites(), sites.Modifier())

	return cfg
}

func sectionAs[T Section](m *Manager, id string) (T, bool) {
	var zero T
	section, ok := m.GetSection(id)
	if !ok {
		return zero, false
	}
	typed, ok := section.(T)
	return typed, ok
}
