// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

// # External Schema
//
// These records mirror the remote film service byte for byte. They are what
// sources return, what the cache and the PostgreSQL mirror store, and what
// the catalogue API serves.

// FilmRecord is a film as the remote service encodes it.
type FilmRecord struct {
	ID          string            `json:"id"`
	Comments    []string          `json:"comments"`
	FilmInfo    *FilmInfoRecord   `json:"film_info"`
	UserDetails UserDetailsRecord `json:"user_details"`
}

// FilmInfoRecord is the film_info block.
type FilmInfoRecord struct {
	Title            string        `json:"title"`
	AlternativeTitle string        `json:"alternative_title"`
	TotalRating      float64       `json:"total_rating"`
	Poster           string        `json:"poster"`
	AgeRating        int           `json:"age_rating"`
	Director         string        `json:"director"`
	Writers          []string      `json:"writers"`
	Actors           []string      `json:"actors"`
	Release          ReleaseRecord `json:"release"`
	Duration         int           `json:"duration"`
	Genre            []string      `json:"genre"`
	Description      string        `json:"description"`
}

// ReleaseRecord is the film_info.release block.
type ReleaseRecord struct {
	Date           string `json:"date"`
	ReleaseCountry string `json:"release_country"`
}

// UserDetailsRecord is the user_details block. WatchingDate is null until watched.
type UserDetailsRecord struct {
	Watchlist      bool    `json:"watchlist"`
	AlreadyWatched bool    `json:"already_watched"`
	WatchingDate   *string `json:"watching_date"`
	Favorite       bool    `json:"favorite"`
}

// CommentRecord is a comment as the remote service encodes it.
type CommentRecord struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
	Emotion string `json:"emotion"`
}
