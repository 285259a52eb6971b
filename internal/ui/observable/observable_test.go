// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package observable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/observable"
)

/*
TestObservable_Order calls observers in registration order, without
deduplication.
*/
func TestObservable_Order(t *testing.T) {
	var subject observable.Observable[string]
	var calls []string

	record := func(name string) observable.Observer[string] {
		return func(updateType film.UpdateType, payload string) error {
			calls = append(calls, name+":"+string(updateType)+":"+payload)
			return nil
		}
	}

	shared := record("shared")
	subject.AddObserver(record("first"))
	subject.AddObserver(shared)
	subject.AddObserver(shared)

	require.NoError(t, subject.Notify(film.UpdatePatch, "x"))
	assert.Equal(t, []string{"first:PATCH:x", "shared:PATCH:x", "shared:PATCH:x"}, calls)
}

/*
TestObservable_ErrorStops propagates the first observer error and skips the rest.
*/
func TestObservable_ErrorStops(t *testing.T) {
	var subject observable.Observable[int]
	boom := errors.New("boom")
	late := 0

	subject.AddObserver(func(film.UpdateType, int) error { return boom })
	subject.AddObserver(func(film.UpdateType, int) error { late++; return nil })

	assert.ErrorIs(t, subject.Notify(film.UpdateMinor, 1), boom)
	assert.Zero(t, late)
}

/*
TestObservable_Remove unsubscribes one registration, idempotently, and
ignores observers added mid-pass.
*/
func TestObservable_Remove(t *testing.T) {
	var subject observable.Observable[int]
	count := 0
	added := 0

	remove := subject.AddObserver(func(film.UpdateType, int) error { count++; return nil })
	keep := subject.AddObserver(func(film.UpdateType, int) error { count += 10; return nil })
	defer keep()

	remove()
	remove()
	assert.Equal(t, 1, subject.ObserverCount())

	subject.AddObserver(func(film.UpdateType, int) error {
		subject.AddObserver(func(film.UpdateType, int) error { added++; return nil })
		return nil
	})

	require.NoError(t, subject.Notify(film.UpdateMajor, 0))
	assert.Equal(t, 10, count)
	assert.Zero(t, added)

	require.NoError(t, subject.Notify(film.UpdateMajor, 0))
	assert.Equal(t, 1, added)
}
