// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package observable provides the publish/subscribe primitive the UI models
// embed. There is no topic filtering: every observer sees every notification.
package observable

import (
	"sync"

	"github.com/taibuivan/filmdeck/internal/film"
)

// Observer receives one notification. A returned error stops the
// notification pass and reaches the caller of [Observable.Notify].
type Observer[P any] func(updateType film.UpdateType, payload P) error

type registration[P any] struct {
	id       uint64
	observer Observer[P]
}

// Observable keeps observers in registration order. The zero value is ready to use.
type Observable[P any] struct {
	mu        sync.Mutex
	nextID    uint64
	observers []registration[P]
}

// AddObserver registers observer and returns a func that removes exactly
// this registration. Registering the same func twice calls it twice.
func (o *Observable[P]) AddObserver(observer Observer[P]) (remove func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.observers = append(o.observers, registration[P]{id: id, observer: observer})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *Observable[P]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for index, reg := range o.observers {
		if reg.id == id {
			o.observers = append(o.observers[:index:index], o.observers[index+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of live registrations.
func (o *Observable[P]) ObserverCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observers)
}

// Notify calls every observer synchronously in registration order. Observers
// added during the pass are not called until the next one.
func (o *Observable[P]) Notify(updateType film.UpdateType, payload P) error {
	o.mu.Lock()
	snapshot := make([]registration[P], len(o.observers))
	copy(snapshot, o.observers)
	o.mu.Unlock()

	for _, reg := range snapshot {
		if err := reg.observer(updateType, payload); err != nil {
			return err
		}
	}
	return nil
}
