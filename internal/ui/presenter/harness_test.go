// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
)

var fixedNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

// harness wires the models and presenters of one session.
type harness struct {
	t        *testing.T
	doc      *dom.Document
	films    *model.FilmsModel
	comments *model.CommentsModel
	filter   *model.FilterModel
	list     *FilmListPresenter
	nav      *FilterPresenter
	profile  *ProfilePresenter
	stats    *StatisticsPresenter
	ids      int
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		t:        t,
		doc:      dom.NewDocument(),
		films:    model.NewFilmsModel(),
		comments: model.NewCommentsModel(),
		filter:   model.NewFilterModel(),
	}

	options := Options{
		Author: "Movie Buff",
		Now:    func() time.Time { return fixedNow },
		NewID: func() string {
			h.ids++
			return "new-" + strconv.Itoa(h.ids)
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	h.profile = NewProfilePresenter(h.doc, h.films)
	h.nav = NewFilterPresenter(h.doc, h.films, h.filter)
	h.list = NewFilmListPresenter(h.doc, h.films, h.comments, h.filter, options)
	h.stats = NewStatisticsPresenter(h.doc, h.films)

	require.NoError(t, h.profile.Init())
	require.NoError(t, h.nav.Init())
	require.NoError(t, h.list.Init())
	require.NoError(t, h.stats.Init())
	return h
}

// load commits a successful load and discards the resulting patches.
func (h *harness) load(films []film.Film, comments []film.Comment) *harness {
	h.t.Helper()
	h.comments.Init(comments)
	require.NoError(h.t, h.films.Init(films, nil))
	h.doc.Flush()
	return h
}

func (h *harness) presenter(id string) *FilmPresenter {
	h.t.Helper()
	fp, ok := h.list.Presenter(id)
	require.True(h.t, ok, "film %s is not rendered", id)
	return fp
}

func (h *harness) dispatch(node dom.Node, event dom.Event) error {
	event.ViewID = h.doc.ViewID(node)
	require.NotEmpty(h.t, event.ViewID, "node is not mounted")
	return h.doc.Dispatch(event)
}

func (h *harness) click(node dom.Node, action, value string) error {
	return h.dispatch(node, dom.Event{Type: dom.EventClick, Action: action, Value: value})
}

func (h *harness) openPopup(id string) {
	h.t.Helper()
	require.NoError(h.t, h.click(h.presenter(id).card, "open", ""))
}

func (h *harness) showMore() {
	h.t.Helper()
	require.True(h.t, h.list.HasShowMore())
	require.NoError(h.t, h.click(h.list.showMore, "show-more", ""))
}

func (h *harness) pressEscape() error {
	return h.doc.Dispatch(dom.Event{Type: dom.EventKeyDown, Key: "Escape"})
}

// # Fixtures

func catalogue(n int, tweak ...func(int, *film.Film)) []film.Film {
	out := make([]film.Film, n)
	for i := range out {
		out[i] = film.Film{
			ID: strconv.Itoa(i),
			Info: film.Info{
				Title:       "Film " + strconv.Itoa(i),
				TotalRating: float64(i % 4),
				Release:     film.Release{Date: time.Date(1950+i, time.January, 1, 0, 0, 0, 0, time.UTC)},
				Duration:    90,
			},
			Comments: []string{},
		}
		for _, apply := range tweak {
			apply(i, &out[i])
		}
	}
	return out
}

func watched(_ int, f *film.Film) { f.UserDetails.AlreadyWatched = true }
