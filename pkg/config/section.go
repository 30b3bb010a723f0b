package config

// Section is one named block of settings. Sections own their defaults and
// translate to and from the loosely typed maps kept by a Store.
type Section interface {
	// ID returns the key the section is stored under.
	ID() string

	Title() string
	Description() string

	// Data returns the current settings as a plain map.
	Data() map[string]interface{}

	// SetData replaces the settings from a stored map. Missing keys keep
	// their current values.
	SetData(data map[string]interface{}) error

	Validate() error

	// Reset restores the defaults.
	Reset()
}
