// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogCommentTable represents the 'catalog.comment' table
type CatalogCommentTable struct {
	Table    string
	ID       string
	FilmID   string
	Position string
	Document string
	SyncedAt string
}

// CatalogComment is the schema definition for catalog.comment
var CatalogComment = CatalogCommentTable{
	Table:    "catalog.comment",
	ID:       "id",
	FilmID:   "film_id",
	Position: "position",
	Document: "document",
	SyncedAt: "synced_at",
}

func (t CatalogCommentTable) Columns() []string {
	return []string{t.ID, t.FilmID, t.Position, t.Document, t.SyncedAt}
}
