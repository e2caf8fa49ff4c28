package pipeline

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/page"
)

// ErrPageNotFound is returned when deleting a page that is not stored.
var ErrPageNotFound = errors.New("page not found")

// Store is an in-memory page set keyed by path. It implements plugin.Actions
// and is safe for concurrent use.
//
// Pages are listed by creation batch, then by path within a batch. Creates
// issued concurrently inside one batch therefore list the same way however
// they interleave.
type Store struct {
	mu    sync.RWMutex
	pages map[string]storedPage
	batch int
	bus   *Bus
}

type storedPage struct {
	page  page.Page
	batch int
}

// NewStore creates an empty store. Events are published to bus when it is
// non-nil.
func NewStore(bus *Bus) *Store {
	return &Store{pages: make(map[string]storedPage), bus: bus}
}

// NextBatch starts a new creation batch. Pages created from now on list after
// every page already stored.
func (s *Store) NextBatch() {
	s.mu.Lock()
	s.batch++
	s.mu.Unlock()
}

// CreatePage stores p. A page with the same path is replaced and keeps its
// position.
func (s *Store) CreatePage(p page.Page) error {
	if p.Path == "" {
		return foundationerrors.ValidationError("page path cannot be empty").
			WithContext("component", p.Component).
			Build()
	}
	stored := p.Clone()

	s.mu.Lock()
	prev, replaced := s.pages[p.Path]
	batch := s.batch
	if replaced {
		batch = prev.batch
	}
	s.pages[p.Path] = storedPage{page: stored, batch: batch}
	s.mu.Unlock()

	return s.publish(PageCreated{Page: stored.Clone(), Replaced: replaced})
}

// DeletePage removes the page stored under p.Path.
func (s *Store) DeletePage(p page.Page) error {
	s.mu.Lock()
	stored, ok := s.pages[p.Path]
	if !ok {
		s.mu.Unlock()
		return foundationerrors.NotFoundError("page not found").
			WithCause(ErrPageNotFound).
			WithContext("path", p.Path).
			Build()
	}
	delete(s.pages, p.Path)
	s.mu.Unlock()

	return s.publish(PageDeleted{Page: stored.page})
}

// Get returns a copy of the page stored under path.
func (s *Store) Get(path string) (page.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.pages[path]
	if !ok {
		return page.Page{}, false
	}
	return sp.page.Clone(), true
}

// Pages returns copies of all stored pages ordered by batch, then path.
func (s *Store) Pages() []page.Page {
	s.mu.RLock()
	entries := make([]storedPage, 0, len(s.pages))
	for _, sp := range s.pages {
		entries = append(entries, sp)
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b storedPage) int {
		return cmp.Or(cmp.Compare(a.batch, b.batch), cmp.Compare(a.page.Path, b.page.Path))
	})
	out := make([]page.Page, 0, len(entries))
	for _, sp := range entries {
		out = append(out, sp.page.Clone())
	}
	return out
}

// Len returns the number of stored pages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func (s *Store) publish(e Event) error {
	if s.bus == nil {
		return nil
	}
	return s.bus.Publish(e)
}
