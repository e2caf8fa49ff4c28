// Package manifest reads and writes page manifests and records run manifests.
//
// A page manifest is a YAML or JSON document with a top-level "pages" list:
//
//	pages:
//	  - path: /about
//	    component: src/templates/about.tsx
//	    context: {title: About}
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/page"
)

// Format is a page manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", foundationerrors.ValidationError("unsupported manifest format").
			WithContext("format", s).
			Build()
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// PageManifest is the on-disk page list.
type PageManifest struct {
	Pages []page.Page `json:"pages" yaml:"pages"`
}

// DecodePages parses a page manifest.
func DecodePages(data []byte, format Format) ([]page.Page, error) {
	var m PageManifest
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, foundationerrors.ValidationError("unsupported manifest format").
			WithContext("format", string(format)).
			Build()
	}
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "failed to parse page manifest").
			WithContext("format", string(format)).
			Build()
	}
	return m.Pages, nil
}

// EncodePages renders pages as a page manifest.
func EncodePages(pages []page.Page, format Format) ([]byte, error) {
	if pages == nil {
		pages = []page.Page{}
	}
	m := PageManifest{Pages: pages}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal pages: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("marshal pages: %w", err)
		}
		return data, nil
	default:
		return nil, foundationerrors.ValidationError("unsupported manifest format").
			WithContext("format", string(format)).
			Build()
	}
}

// ReadPages loads a page manifest, choosing the format by extension.
func ReadPages(path string) ([]page.Page, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read page manifest").
			WithContext("file", path).
			Build()
	}
	return DecodePages(data, format)
}

// WritePages writes a page manifest to path.
func WritePages(path string, pages []page.Page, format Format) error {
	data, err := EncodePages(pages, format)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteRunManifest writes m as JSON to path.
func WriteRunManifest(path string, m *RunManifest) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create output directory").
				WithContext("file", path).
				Build()
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write file").
			WithContext("file", path).
			Build()
	}
	return nil
}
