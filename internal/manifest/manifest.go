package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/pipeline"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

// Run statuses.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// RunManifest records the inputs, plugins and outputs of a localization run.
type RunManifest struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Inputs    Inputs          `json:"inputs"`
	Plugins   []PluginVersion `json:"plugins"`
	Outputs   Outputs         `json:"outputs"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Duration  int64           `json:"duration_ms"`
	HookCalls int             `json:"hook_calls"`
}

// Inputs captures what a run was given.
type Inputs struct {
	ConfigHash string `json:"config_hash"`
	PageCount  int    `json:"page_count"`
	PagesHash  string `json:"pages_hash"`
}

// PluginVersion represents a versioned plugin used during a run.
type PluginVersion struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Outputs captures what a run produced.
type Outputs struct {
	PageCount int    `json:"page_count"`
	PagesHash string `json:"pages_hash"`
	Created   int    `json:"created"`
	Deleted   int    `json:"deleted"`
}

// PluginsFrom lists the registered plugins in registry order.
func PluginsFrom(registry *plugin.Registry) []PluginVersion {
	if registry == nil {
		return nil
	}
	plugins := registry.List()
	out := make([]PluginVersion, 0, len(plugins))
	for _, p := range plugins {
		md := p.Metadata()
		pv := PluginVersion{Name: md.Name, Version: md.Version, Type: md.Type.String()}
		for _, c := range md.Capabilities {
			pv.Capabilities = append(pv.Capabilities, c.String())
		}
		out = append(out, pv)
	}
	return out
}

// NewRunManifest describes a finished run. runErr is the error returned by
// the pipeline, if any.
func NewRunManifest(configData []byte, input []page.Page, res *pipeline.Result, registry *plugin.Registry, runErr error) (*RunManifest, error) {
	inputHash, err := HashPages(input)
	if err != nil {
		return nil, err
	}
	m := &RunManifest{
		Timestamp: time.Now().UTC(),
		Inputs: Inputs{
			ConfigHash: HashBytes(configData),
			PageCount:  len(input),
			PagesHash:  inputHash,
		},
		Plugins: PluginsFrom(registry),
		Status:  StatusSuccess,
	}
	if res != nil {
		outputHash, err := HashPages(res.Pages)
		if err != nil {
			return nil, err
		}
		m.ID = res.Report.BuildID
		m.Duration = res.Report.Duration.Milliseconds()
		m.HookCalls = res.Report.HookCalls
		m.Outputs = Outputs{
			PageCount: len(res.Pages),
			PagesHash: outputHash,
			Created:   res.Report.Created,
			Deleted:   res.Report.Deleted,
		}
	}
	if runErr != nil {
		m.Status = StatusFailed
		if res != nil && res.Report.Canceled {
			m.Status = StatusCanceled
		}
		m.Error = runErr.Error()
	}
	return m, nil
}

// ToJSON serializes the manifest to JSON.
func (m *RunManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*RunManifest, error) {
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest's inputs and plugins.
// Runs with identical configuration, input pages and plugins hash the same.
func (m *RunManifest) Hash() (string, error) {
	hashInput := struct {
		Inputs  Inputs          `json:"inputs"`
		Plugins []PluginVersion `json:"plugins"`
	}{
		Inputs:  m.Inputs,
		Plugins: m.Plugins,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return HashBytes(data), nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// HashPages hashes the JSON encoding of pages in the given order. Map keys are
// sorted by the encoder, so equal page lists hash equally.
func HashPages(pages []page.Page) (string, error) {
	data, err := json.Marshal(pages)
	if err != nil {
		return "", fmt.Errorf("marshal pages for hash: %w", err)
	}
	return HashBytes(data), nil
}
