// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model

import (
	"sync"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/validate"
	"github.com/taibuivan/filmdeck/internal/ui/observable"
)

// FilterModel holds the single active filter.
type FilterModel struct {
	observable.Observable[film.FilterType]

	mu     sync.RWMutex
	filter film.FilterType
}

// NewFilterModel starts on [film.FilterAll].
func NewFilterModel() *FilterModel {
	return &FilterModel{filter: film.FilterAll}
}

// Filter returns the active filter.
func (m *FilterModel) Filter() film.FilterType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

// SetFilter commits value and notifies.
func (m *FilterModel) SetFilter(updateType film.UpdateType, value film.FilterType) error {
	v := &validate.Validator{}
	v.Custom("filter", !value.IsValid(), "Unknown filter").
		Custom("update_type", !updateType.IsMutation(), "Must be PATCH, MINOR or MAJOR")
	if err := v.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.filter = value
	m.mu.Unlock()

	return m.Notify(updateType, value)
}
