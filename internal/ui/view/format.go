// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/taibuivan/filmdeck/internal/film"
)

// descriptionLimit is the card excerpt length, ellipsis included.
const descriptionLimit = 140

// now is swapped by tests that render relative dates.
var now = time.Now

var funcs = template.FuncMap{
	"year":      Year,
	"fullDate":  FullDate,
	"duration":  Duration,
	"rating":    Rating,
	"excerpt":   Excerpt,
	"relative":  RelativeDate,
	"join":      strings.Join,
	"escaped":   escaped,
	"flag":      func(f film.Film, d film.UserDetail) bool { return f.Flag(d) },
	"details":   func() []film.UserDetail { return film.UserDetailsOrder },
	"emotions":  func() []film.Emotion { return film.Emotions },
	"sortTypes": func() []film.SortType { return film.Sorts },
	"filters":   func() []film.FilterType { return film.Filters },
}

// Year is the card date: the release year.
func Year(t time.Time) string {
	return t.Format("2006")
}

// FullDate is the popup release date, e.g. "30 March 1945".
func FullDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// Duration formats minutes as "1h 36m", or "54m" below an hour.
func Duration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Rating keeps one decimal.
func Rating(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

// Excerpt shortens a description for the card.
func Excerpt(text string) string {
	if utf8.RuneCountInString(text) <= descriptionLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:descriptionLimit-1]) + "…"
}

// RelativeDate renders a comment date relative to now, e.g. "3 days ago".
func RelativeDate(t time.Time) string {
	return humanize.RelTime(t, now(), "ago", "from now")
}

// escaped marks comment text as safe: it is escaped once, on its way into
// the comments model.
func escaped(text string) template.HTML {
	return template.HTML(text) //nolint:gosec // escaped by the adapter or the popup
}
