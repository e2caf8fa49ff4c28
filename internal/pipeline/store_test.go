package pipeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

var _ plugin.Actions = (*Store)(nil)

func TestStore_CreateReplacesInPlace(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.CreatePage(page.Page{Path: "/a", Component: "v1"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "/b"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "/a", Component: "v2"}))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"/a", "/b"}, pagePaths(s.Pages()))
	got, ok := s.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "v2", got.Component)
}

func TestStore_DeleteUnknown(t *testing.T) {
	s := NewStore(nil)

	err := s.DeletePage(page.Page{Path: "/missing"})

	require.ErrorIs(t, err, ErrPageNotFound)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
}

func TestStore_DeleteThenRecreateMovesToEnd(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.CreatePage(page.Page{Path: "/a"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "/b"}))

	require.NoError(t, s.DeletePage(page.Page{Path: "/a"}))
	_, ok := s.Get("/a")
	assert.False(t, ok)

	s.NextBatch()
	require.NoError(t, s.CreatePage(page.Page{Path: "/a"}))
	assert.Equal(t, []string{"/b", "/a"}, pagePaths(s.Pages()))
}

func TestStore_OrdersByBatchThenPath(t *testing.T) {
	s := NewStore(nil)
	s.NextBatch()
	require.NoError(t, s.CreatePage(page.Page{Path: "/z"}))
	s.NextBatch()
	require.NoError(t, s.CreatePage(page.Page{Path: "fr/z"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "de/z"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "/a"}))
	// Replacing keeps the first batch.
	require.NoError(t, s.CreatePage(page.Page{Path: "/z", Component: "v2"}))

	assert.Equal(t, []string{"/z", "/a", "de/z", "fr/z"}, pagePaths(s.Pages()))
}

func TestStore_ConcurrentCreatesListDeterministically(t *testing.T) {
	want := []string{"/p", "de/p", "es/p", "fr/p", "it/p", "nl/p", "pt/p"}
	for range 20 {
		s := NewStore(nil)
		s.NextBatch()
		var wg sync.WaitGroup
		for _, path := range []string{"pt/p", "fr/p", "/p", "nl/p", "de/p", "it/p", "es/p"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.CreatePage(page.Page{Path: path}))
			}()
		}
		wg.Wait()
		require.Equal(t, want, pagePaths(s.Pages()))
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore(nil)
	in := page.Page{Path: "/a", Context: map[string]any{"k": "v"}}
	require.NoError(t, s.CreatePage(in))

	in.Context["k"] = "changed"
	got, _ := s.Get("/a")
	got.Context["k"] = "mutated"

	again, _ := s.Get("/a")
	assert.Equal(t, "v", again.Context["k"])
}

func TestStore_PublishesEvents(t *testing.T) {
	bus := NewBus()
	var names []string
	var replaced []bool
	bus.Subscribe(EventPageCreated, func(e Event) error {
		names = append(names, e.Name())
		replaced = append(replaced, e.(PageCreated).Replaced)
		return nil
	})
	bus.Subscribe(EventPageDeleted, func(e Event) error {
		names = append(names, e.Name()+":"+e.(PageDeleted).Page.Path)
		return nil
	})
	s := NewStore(bus)

	require.NoError(t, s.CreatePage(page.Page{Path: "/a"}))
	require.NoError(t, s.CreatePage(page.Page{Path: "/a"}))
	require.NoError(t, s.DeletePage(page.Page{Path: "/a"}))
	require.Error(t, s.DeletePage(page.Page{Path: "/a"}))

	assert.Equal(t, []string{EventPageCreated, EventPageCreated, EventPageDeleted + ":/a"}, names)
	assert.Equal(t, []bool{false, true}, replaced)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := NewStore(NewBus())
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.CreatePage(page.Page{Path: "/p/" + string(rune('a'+i%26)) + string(rune('a'+i/26))}))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}

func TestBus_StopsAtFirstError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	calls := 0
	bus.Subscribe("x", func(Event) error { calls++; return boom })
	bus.Subscribe("x", func(Event) error { calls++; return nil })
	bus.Subscribe("x", nil)

	err := bus.Publish(PageDeleted{})
	require.NoError(t, err, "no subscribers for PageDeleted")

	err = bus.Publish(namedEvent("x"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

type namedEvent string

func (e namedEvent) Name() string { return string(e) }
