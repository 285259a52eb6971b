// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import "context"

// Source returns raw catalogue records in the remote schema.
// Failures are reported as LOAD_ERROR.
type Source interface {
	Films(context context.Context) ([]FilmRecord, error)
	Comments(context context.Context, filmID string) ([]CommentRecord, error)
}

// Mirror is a writable Source, used to copy one catalogue into another store.
type Mirror interface {
	Source
	ReplaceCatalog(context context.Context, films []FilmRecord, comments map[string][]CommentRecord) error
}
