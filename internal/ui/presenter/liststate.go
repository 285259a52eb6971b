// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package presenter

import (
	"fmt"
	"slices"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
)

// ListState is the state of the film list after a render pass.
type ListState string

const (
	ListLoading       ListState = "LOADING"
	ListFailed        ListState = "FAILED"
	ListEmpty         ListState = "EMPTY"
	ListLoadedDefault ListState = "LOADED_DEFAULT"
	ListSorted        ListState = "SORTED"
	ListPaginated     ListState = "PAGINATED"
)

// transitions lists the states reachable from each state. Staying in the
// same state is always allowed.
var transitions = map[ListState][]ListState{
	ListLoading:       {ListFailed, ListEmpty, ListLoadedDefault, ListSorted, ListPaginated},
	ListFailed:        {},
	ListEmpty:         {ListLoadedDefault, ListSorted, ListPaginated},
	ListLoadedDefault: {ListEmpty, ListSorted, ListPaginated},
	ListSorted:        {ListEmpty, ListLoadedDefault, ListPaginated},
	ListPaginated:     {ListEmpty, ListLoadedDefault, ListSorted},
}

// CanTransition reports whether the list may move from one state to another.
func CanTransition(from, to ListState) bool {
	return from == to || slices.Contains(transitions[from], to)
}

// listSnapshot is what a render pass left on screen.
type listSnapshot struct {
	failed   bool
	loading  bool
	visible  int
	rendered int
	sorted   bool
	pageSize int
}

// deriveState names the state a render pass produced.
func deriveState(s listSnapshot) ListState {
	switch {
	case s.loading:
		return ListLoading
	case s.failed:
		return ListFailed
	case s.visible == 0:
		return ListEmpty
	case s.rendered > s.pageSize:
		return ListPaginated
	case s.sorted:
		return ListSorted
	default:
		return ListLoadedDefault
	}
}

func transition(from, to ListState) (ListState, error) {
	if !CanTransition(from, to) {
		return from, apperr.Internal(fmt.Errorf("film list cannot move from %s to %s", from, to))
	}
	return to, nil
}
