package config

import (
	"errors"
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// NewDefaultManager creates a manager over store with every strokes section
// registered in display order.
func NewDefaultManager(store Store) (*Manager, error) {
	manager := NewManager(store)
	for _, section := range []Section{
		NewRecognitionSection(),
		NewGesturesSection(),
		NewSitesSection(),
		NewEnablementSection(),
		NewTrailSection(),
	} {
		if err := manager.RegisterSection(section); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// Initialize creates and loads the global configuration manager.
// This should be called once at application startup. When the file cannot
// be decoded, or holds data a section cannot use, the manager is still
// installed with defaults for what could not be loaded and the error is
// returned for the caller to report.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, storeErr := NewFileStore(configPath)
	if store == nil {
		return storeErr
	}

	manager, err := NewDefaultManager(store)
	if err != nil {
		return err
	}

	loadErr := manager.LoadAll()
	globalManager = manager
	return errors.Join(storeErr, loadErr)
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetRecognition returns the recognition section from global config.
// Returns nil if config is not initialized.
func GetRecognition() *RecognitionSection {
	return globalSection[*RecognitionSection](SectionIDRecognition)
}

// GetGestures returns the gestures section from global config.
// Returns nil if config is not initialized.
func GetGestures() *GesturesSection {
	return globalSection[*GesturesSection](SectionIDGestures)
}

// GetSites returns the sites section from global config.
// Returns nil if config is not initialized.
func GetSites() *SitesSection {
	return globalSection[*SitesSection](SectionIDSites)
}

// GetEnablement returns the enablement section from global config.
// Returns nil if config is not initialized.
func GetEnablement() *EnablementSection {
	return globalSection[*EnablementSection](SectionIDEnablement)
}

// GetTrail returns the trail section from global config.
// Returns nil if config is not initialized.
func GetTrail() *TrailSection {
	return globalSection[*TrailSection](SectionIDTrail)
}

func globalSection[T Section](id string) T {
	var zero T
	if !IsInitialized() {
		return zero
	}
	section, _ := sectionAs[T](Global(), id)
	return section
}
