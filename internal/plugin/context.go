package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/pagelocale/internal/page"
)

// Actions is the host surface page hooks use to change the page set.
type Actions interface {
	// CreatePage registers p, replacing any page with the same path.
	CreatePage(p page.Page) error

	// DeletePage removes the page registered under p.Path.
	DeletePage(p page.Page) error
}

// PageContext is passed to page hooks for a single page.
type PageContext struct {
	// Page is a copy of the page being created. Hooks must not assume
	// changes to it are seen by the pipeline.
	Page page.Page

	// Actions applies page directives.
	Actions Actions

	// Logger provides structured logging scoped to the page and plugin.
	Logger *slog.Logger

	// BuildID uniquely identifies the pipeline run.
	BuildID string
}

// NewPageContext creates a page context. A nil logger falls back to slog.Default.
func NewPageContext(p page.Page, actions Actions, logger *slog.Logger, buildID string) *PageContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageContext{
		Page:    p,
		Actions: actions,
		Logger:  logger,
		BuildID: buildID,
	}
}
