// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"fmt"
	"log/slog"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
	"github.com/taibuivan/filmdeck/internal/ui/model"
	"github.com/taibuivan/filmdeck/internal/ui/view"
)

// FilmListPresenter renders the sort control and the film board, and keeps
// the rendered cards in step with the three models.
type FilmListPresenter struct {
	doc      *dom.Document
	films    *model.FilmsModel
	comments *model.CommentsModel
	filter   *model.FilterModel
	options  Options

	sort          film.SortType
	renderedCount int
	state         ListState
	visible       map[string]bool
	stale         bool

	sortView *view.SortView
	board    *view.BoardView
	list     dom.Container
	more     dom.Container
	loading  *view.LoadingView
	empty    *view.EmptyView
	showMore *view.ShowMoreView

	presenters map[string]*FilmPresenter
	order      []string
	open       *FilmPresenter

	removers []func()
}

// NewFilmListPresenter creates the list presenter. Call [FilmListPresenter.Init] to mount it.
func NewFilmListPresenter(doc *dom.Document, films *model.FilmsModel, comments *model.CommentsModel, filter *model.FilterModel, options Options) *FilmListPresenter {
	options = options.withDefaults()
	return &FilmListPresenter{
		doc:           doc,
		films:         films,
		comments:      comments,
		filter:        filter,
		options:       options,
		sort:          film.SortDefault,
		renderedCount: options.PageSize,
		state:         ListLoading,
		visible:       map[string]bool{},
		presenters:    map[string]*FilmPresenter{},
	}
}

// # Accessors

// State returns the state left by the last render pass.
func (p *FilmListPresenter) State() ListState { return p.state }

// Sort returns the active sort.
func (p *FilmListPresenter) Sort() film.SortType { return p.sort }

// RenderedCount returns the number of cards currently rendered.
func (p *FilmListPresenter) RenderedCount() int { return len(p.order) }

// RenderedIDs returns the ids of the rendered cards in display order.
func (p *FilmListPresenter) RenderedIDs() []string {
	return append([]string(nil), p.order...)
}

// Presenter returns the presenter of a rendered film.
func (p *FilmListPresenter) Presenter(filmID string) (*FilmPresenter, bool) {
	fp, ok := p.presenters[filmID]
	return fp, ok
}

// HasShowMore reports whether the show-more control is mounted.
func (p *FilmListPresenter) HasShowMore() bool {
	return p.showMore != nil && p.doc.IsMounted(p.showMore)
}

// Stale reports whether a list re-render waits for the open popup to close.
func (p *FilmListPresenter) Stale() bool { return p.stale }

// # Lifecycle

// Init mounts the sort control, the board and the loading view, and
// subscribes to the models. If the films are already loaded it renders them.
func (p *FilmListPresenter) Init() error {
	p.sortView = &view.SortView{Active: p.sort, Emit: p.handleSort}
	if err := p.doc.Mount(p.sortView, dom.Main, dom.BeforeEnd); err != nil {
		return err
	}

	p.board = &view.BoardView{}
	if err := p.doc.Mount(p.board, dom.Main, dom.BeforeEnd); err != nil {
		return err
	}

	var err error
	if p.list, err = p.doc.Slot(p.board, view.SlotList); err != nil {
		return err
	}
	if p.more, err = p.doc.Slot(p.board, view.SlotMore); err != nil {
		return err
	}

	p.removers = append(p.removers,
		p.films.AddObserver(p.handleFilmsEvent),
		p.comments.AddObserver(p.handleCommentsEvent),
		p.filter.AddObserver(p.handleFilterEvent),
	)

	if p.films.State() != model.StateLoading {
		return p.renderList()
	}

	p.loading = &view.LoadingView{}
	return p.doc.Mount(p.loading, p.list, dom.BeforeEnd)
}

// Destroy unsubscribes from the models and unmounts everything.
func (p *FilmListPresenter) Destroy() {
	for _, remove := range p.removers {
		remove()
	}
	p.removers = nil
	p.clearList()
	p.doc.Unmount(p.sortView)
	p.doc.Unmount(p.board)
}

// HandleAction applies an upward action to the owning model.
func (p *FilmListPresenter) HandleAction(action Action) error {
	switch action.Type {
	case film.ActionUpdateFilm:
		return p.films.UpdateFilm(action.Update, action.Film)
	case film.ActionAddComment:
		return p.comments.AddComment(action.Update, model.CommentChange{Film: action.Film, Comment: action.Comment})
	case film.ActionDeleteComment:
		return p.comments.DeleteComment(action.Update, model.CommentChange{Film: action.Film, Comment: action.Comment})
	}
	return apperr.ValidationError(fmt.Sprintf("Unknown action %q", action.Type))
}

// # Model Notifications

func (p *FilmListPresenter) handleFilmsEvent(updateType film.UpdateType, updated film.Film) error {
	switch updateType {
	case film.UpdateInit:
		if p.loading != nil {
			p.doc.Unmount(p.loading)
			p.loading = nil
		}
		return p.renderList()

	case film.UpdatePatch:
		return p.patchFilm(updated)

	case film.UpdateMinor, film.UpdateMajor:
		return p.rerender(updateType)
	}
	return apperr.ValidationError(fmt.Sprintf("Unknown update type %q", updateType))
}

// handleCommentsEvent sends comment mutations through the films pipeline.
func (p *FilmListPresenter) handleCommentsEvent(updateType film.UpdateType, change model.CommentChange) error {
	return p.films.UpdateFilm(updateType, change.Film)
}

func (p *FilmListPresenter) handleFilterEvent(updateType film.UpdateType, _ film.FilterType) error {
	if p.films.State() == model.StateLoading {
		return nil
	}
	return p.rerender(updateType)
}

// patchFilm re-inits the one presenter showing updated. When the film joins
// or leaves the filtered set the list re-renders as MINOR, after the open
// popup closes if there is one.
func (p *FilmListPresenter) patchFilm(updated film.Film) error {
	if fp, ok := p.presenters[updated.ID]; ok {
		if err := fp.Init(updated); err != nil {
			return err
		}
	}

	if film.Matches(p.filter.Filter(), updated) == p.visible[updated.ID] {
		return nil
	}
	if p.open != nil {
		p.stale = true
		return nil
	}
	return p.rerender(film.UpdateMinor)
}

// rerender destroys every card and renders again with the pagination and
// sort that updateType asks for.
func (p *FilmListPresenter) rerender(updateType film.UpdateType) error {
	switch updateType {
	case film.UpdatePatch, film.UpdateMinor:
		p.renderedCount = max(p.options.PageSize, len(p.order))

	case film.UpdateMajor:
		p.renderedCount = p.options.PageSize
		if err := p.setSort(film.SortDefault); err != nil {
			return err
		}

	case film.UpdateInit:
		p.renderedCount = p.options.PageSize
	}

	p.clearList()
	return p.renderList()
}

// # User Intents

func (p *FilmListPresenter) handleSort(message view.Message) error {
	if message.Kind != view.KindSort || message.Sort == p.sort {
		return nil
	}
	if err := p.setSort(message.Sort); err != nil {
		return err
	}
	if p.films.State() == model.StateLoading {
		return nil
	}

	p.clearList()
	p.renderedCount = p.options.PageSize
	return p.renderList()
}

func (p *FilmListPresenter) handleShowMore(message view.Message) error {
	if message.Kind != view.KindShowMore {
		return nil
	}

	visible := p.visibleFilms()
	start := min(len(p.order), len(visible))
	next := min(start+p.options.PageSize, len(visible))
	if err := p.renderCards(visible[start:next]); err != nil {
		return err
	}
	p.renderedCount = next

	if next >= len(visible) {
		p.doc.Unmount(p.showMore)
		p.showMore = nil
	}
	return p.settle(len(visible))
}

func (p *FilmListPresenter) openPopup(target *FilmPresenter) error {
	if p.open != nil && p.open != target {
		p.open.ClosePopup()
	}

	// Closing the other popup may have applied a deferred re-render.
	if target.destroyed {
		replacement, ok := p.presenters[target.Film().ID]
		if !ok {
			return nil
		}
		target = replacement
	}

	p.open = target
	return target.OpenPopup()
}

func (p *FilmListPresenter) popupClosed(fp *FilmPresenter) {
	if p.open != fp {
		return
	}
	p.open = nil

	if !p.stale {
		return
	}
	p.stale = false
	if err := p.rerender(film.UpdateMinor); err != nil {
		p.options.Logger.Error("film_list_rerender_failed", slog.String("error", err.Error()))
	}
}

// # Rendering

func (p *FilmListPresenter) visibleFilms() []film.Film {
	return film.Visible(p.films.Films(), p.filter.Filter(), p.sort)
}

func (p *FilmListPresenter) renderList() error {
	if p.films.State() == model.StateFailed {
		message := "Films could not be loaded"
		if err := p.films.Err(); err != nil {
			message = err.Error()
		}
		p.empty = &view.EmptyView{Message: message}
		if err := p.doc.Mount(p.empty, p.list, dom.BeforeEnd); err != nil {
			return err
		}
		return p.settle(0)
	}

	visible := p.visibleFilms()
	p.visible = make(map[string]bool, len(visible))
	for _, f := range visible {
		p.visible[f.ID] = true
	}

	if len(visible) == 0 {
		p.empty = &view.EmptyView{Message: p.filter.Filter().EmptyMessage()}
		if err := p.doc.Mount(p.empty, p.list, dom.BeforeEnd); err != nil {
			return err
		}
		return p.settle(0)
	}

	count := min(p.renderedCount, len(visible))
	if err := p.renderCards(visible[:count]); err != nil {
		return err
	}
	p.renderedCount = count

	if count < len(visible) {
		p.showMore = &view.ShowMoreView{Emit: p.handleShowMore}
		if err := p.doc.Mount(p.showMore, p.more, dom.BeforeEnd); err != nil {
			return err
		}
	}
	return p.settle(len(visible))
}

func (p *FilmListPresenter) renderCards(films []film.Film) error {
	for _, f := range films {
		fp := NewFilmPresenter(p.doc, p.list, p.comments, p.options, p.HandleAction, p.openPopup, p.popupClosed)
		if err := fp.Init(f); err != nil {
			return err
		}
		p.presenters[f.ID] = fp
		p.order = append(p.order, f.ID)
	}
	return nil
}

// clearList destroys every film presenter and the list-level views.
func (p *FilmListPresenter) clearList() {
	p.open, p.stale = nil, false

	for _, id := range p.order {
		p.presenters[id].Destroy()
	}
	clear(p.presenters)
	p.order = p.order[:0]

	if p.showMore != nil {
		p.doc.Unmount(p.showMore)
		p.showMore = nil
	}
	if p.empty != nil {
		p.doc.Unmount(p.empty)
		p.empty = nil
	}
}

func (p *FilmListPresenter) setSort(sortType film.SortType) error {
	if sortType == p.sort && p.sortView != nil && p.sortView.Active == sortType {
		return nil
	}
	p.sort = sortType

	next := &view.SortView{Active: sortType, Emit: p.handleSort}
	if err := p.doc.Replace(next, p.sortView); err != nil {
		return err
	}
	p.sortView = next
	return nil
}

// settle moves the state machine to the state this render pass produced.
func (p *FilmListPresenter) settle(visible int) error {
	next := deriveState(listSnapshot{
		failed:   p.films.State() == model.StateFailed,
		loading:  p.films.State() == model.StateLoading,
		visible:  visible,
		rendered: len(p.order),
		sorted:   p.sort != film.SortDefault,
		pageSize: p.options.PageSize,
	})

	state, err := transition(p.state, next)
	p.state = state
	return err
}
