// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

// FilterView is the navigation with one link and count per filter.
type FilterView struct {
	Active film.FilterType
	Counts map[film.FilterType]int
	Emit   Emitter
}

func (v *FilterView) Template() (string, error) { return execute("filter", v) }

func (v *FilterView) Handle(event dom.Event) error {
	if event.Type != dom.EventClick || event.Action != actionFilter {
		return nil
	}
	filter := film.FilterType(event.Value)
	if !filter.IsValid() {
		return invalid("filter", "Unknown filter")
	}
	return v.Emit.send(Message{Kind: KindFilter, Filter: filter})
}

// SortView is the sort control with the active sort highlighted.
type SortView struct {
	Active film.SortType
	Emit   Emitter
}

func (v *SortView) Template() (string, error) { return execute("sort", v) }

func (v *SortView) Handle(event dom.Event) error {
	if event.Type != dom.EventClick || event.Action != actionSort {
		return nil
	}
	sortType := film.SortType(event.Value)
	if !sortType.IsValid() {
		return invalid("sort", "Unknown sort")
	}
	return v.Emit.send(Message{Kind: KindSort, Sort: sortType})
}
