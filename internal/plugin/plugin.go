// Package plugin provides the hook surface the page pipeline exposes to
// extensions. Page hooks run once for every page the pipeline creates and may
// delete or create pages through Actions.
package plugin

import (
	"context"
	"fmt"
)

// Plugin represents a pipeline plugin with metadata.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type, capabilities).
	Metadata() PluginMetadata
}

// PageHook is a plugin invoked for every created page.
type PageHook interface {
	Plugin

	// OnCreatePage inspects pc.Page and applies page directives through
	// pc.Actions. It must return only after every directive has been issued.
	OnCreatePage(ctx context.Context, pc *PageContext) error
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "i18n").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Capabilities lists optional features this plugin provides.
	Capabilities []PluginCapability
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}
