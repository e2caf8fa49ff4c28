package commands

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagelocale/internal/config"
	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/i18n"
	"git.home.luguber.info/inful/pagelocale/internal/page"
)

// ExplainCmd implements the 'explain' command.
type ExplainCmd struct {
	Path      string `arg:"" help:"Page path to explain, e.g. /blog/my-post"`
	MatchPath string `name:"match-path" help:"Existing client-side match path of the page"`
}

// explanation is the YAML document printed by explain.
type explanation struct {
	Path    string              `yaml:"path"`
	Rule    *config.PageOptions `yaml:"rule,omitempty"`
	RuleIdx *int                `yaml:"rule_index,omitempty"`
	Outcome i18n.Outcome        `yaml:"outcome"`
	Pages   []page.Page         `yaml:"pages,omitempty"`
}

func (e *ExplainCmd) Run(g *Global, root *CLI) error {
	cfg, _, localizer, err := loadLocalizer(root.Config)
	if err != nil {
		return err
	}

	p := page.Page{Path: e.Path, MatchPath: e.MatchPath}
	res := localizer.Localize(p)

	doc := explanation{Path: e.Path, Outcome: res.Outcome, Pages: res.Create}
	if idx, ok := localizer.Options().MatchingRule(e.Path); ok {
		doc.RuleIdx = &idx
		doc.Rule = &cfg.Pages[idx]
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to render explanation").Build()
	}
	_, err = fmt.Fprint(g.out(), string(data))
	return err
}
