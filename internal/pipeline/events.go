package pipeline

import "git.home.luguber.info/inful/pagelocale/internal/page"

// Event is a page store event delivered through the Bus.
type Event interface{ Name() string }

// Event names used in the pipeline.
const (
	EventPageCreated = "PageCreated"
	EventPageDeleted = "PageDeleted"
)

// PageCreated is published after a page has been stored.
type PageCreated struct {
	Page page.Page
	// Replaced is true when a page with the same path existed before.
	Replaced bool
}

func (PageCreated) Name() string { return EventPageCreated }

// PageDeleted is published after a page has been removed.
type PageDeleted struct{ Page page.Page }

func (PageDeleted) Name() string { return EventPageDeleted }
