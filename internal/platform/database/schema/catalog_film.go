// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the catalogue mirror so
// queries are assembled from one definition per table.
package schema

// CatalogFilmTable represents the 'catalog.film' table
type CatalogFilmTable struct {
	Table    string
	ID       string
	Position string
	Document string
	SyncedAt string
}

// CatalogFilm is the schema definition for catalog.film
var CatalogFilm = CatalogFilmTable{
	Table:    "catalog.film",
	ID:       "id",
	Position: "position",
	Document: "document",
	SyncedAt: "synced_at",
}

func (t CatalogFilmTable) Columns() []string {
	return []string{t.ID, t.Position, t.Document, t.SyncedAt}
}
