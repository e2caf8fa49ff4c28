package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypePage hooks into page creation.
	PluginTypePage PluginType = "page"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypePage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// PluginCapability describes optional features a plugin may provide.
type PluginCapability string

const (
	// CapabilityI18n indicates the plugin localizes pages.
	CapabilityI18n PluginCapability = "i18n"

	// CapabilityRouting indicates the plugin rewrites client-side match paths.
	CapabilityRouting PluginCapability = "routing"
)

// String returns the string representation of the capability.
func (c PluginCapability) String() string {
	return string(c)
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
