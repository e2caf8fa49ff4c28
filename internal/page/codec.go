package page

import (
	"encoding/json"
	"maps"

	"gopkg.in/yaml.v3"
)

// wirePage is the encoded form of Page. The localization context travels
// inside Context under ContextI18nKey.
type wirePage struct {
	Path      string         `json:"path" yaml:"path"`
	MatchPath string         `json:"matchPath,omitempty" yaml:"matchPath,omitempty"`
	Component string         `json:"component,omitempty" yaml:"component,omitempty"`
	Context   map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// i18nEntry decodes only the reserved context entry.
type i18nEntry struct {
	Context struct {
		I18n *LocalizationContext `json:"i18n" yaml:"i18n"`
	} `json:"context" yaml:"context"`
}

func (p Page) toWire() wirePage {
	w := wirePage{Path: p.Path, MatchPath: p.MatchPath, Component: p.Component, Context: p.Context}
	if p.I18n != nil {
		w.Context = maps.Clone(p.Context)
		if w.Context == nil {
			w.Context = make(map[string]any, 1)
		}
		w.Context[ContextI18nKey] = p.I18n
	}
	return w
}

func (p *Page) fromWire(w wirePage, i18n *LocalizationContext) {
	*p = Page{Path: w.Path, MatchPath: w.MatchPath, Component: w.Component, Context: w.Context}
	if i18n == nil {
		return
	}
	p.I18n = i18n
	delete(p.Context, ContextI18nKey)
	if len(p.Context) == 0 {
		p.Context = nil
	}
}

func (p Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toWire())
}

func (p *Page) UnmarshalJSON(data []byte) error {
	var w wirePage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var entry i18nEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}
	p.fromWire(w, entry.Context.I18n)
	return nil
}

func (p Page) MarshalYAML() (any, error) {
	return p.toWire(), nil
}

func (p *Page) UnmarshalYAML(value *yaml.Node) error {
	var w wirePage
	if err := value.Decode(&w); err != nil {
		return err
	}
	var entry i18nEntry
	if err := value.Decode(&entry); err != nil {
		return err
	}
	p.fromWire(w, entry.Context.I18n)
	return nil
}
