// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"cmp"
	"slices"

	"github.com/taibuivan/filmdeck/pkg/slice"
)

// # Filtering

// Matches reports whether f satisfies the filter predicate.
func Matches(filter FilterType, f Film) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterWatchlist:
		return f.UserDetails.Watchlist
	case FilterHistory:
		return f.UserDetails.AlreadyWatched
	case FilterFavorite:
		return f.UserDetails.Favorite
	}
	return false
}

// FilterFilms returns the films matching filter, in input order.
func FilterFilms(films []Film, filter FilterType) []Film {
	return slice.Filter(films, func(f Film) bool { return Matches(filter, f) })
}

// CountByFilter returns the number of films each filter selects.
func CountByFilter(films []Film) map[FilterType]int {
	counts := make(map[FilterType]int, len(Filters))
	for _, filter := range Filters {
		counts[filter] = slice.Count(films, func(f Film) bool { return Matches(filter, f) })
	}
	return counts
}

// # Sorting

// SortFilms returns a sorted copy. DATE is newest release first and RATING is
// highest rating first; both are stable, so ties keep their input order.
// DEFAULT returns the input order unchanged.
func SortFilms(films []Film, sortType SortType) []Film {
	sorted := slices.Clone(films)

	switch sortType {
	case SortDefault:
	case SortDate:
		slices.SortStableFunc(sorted, func(a, b Film) int {
			return b.Info.Release.Date.Compare(a.Info.Release.Date)
		})
	case SortRating:
		slices.SortStableFunc(sorted, func(a, b Film) int {
			return cmp.Compare(b.Info.TotalRating, a.Info.TotalRating)
		})
	}

	return sorted
}

// Visible derives the displayed sequence: filter first, then sort.
func Visible(films []Film, filter FilterType, sortType SortType) []Film {
	return SortFilms(FilterFilms(films, filter), sortType)
}

// # Profile

// ProfileRank is the viewer title derived from the number of watched films.
type ProfileRank string

const (
	RankNone      ProfileRank = ""
	RankNovice    ProfileRank = "novice"
	RankFan       ProfileRank = "fan"
	RankMovieBuff ProfileRank = "movie buff"
)

// Rank maps the watched count onto a profile rank:
// 0 none, 1-10 novice, 11-20 fan, 21+ movie buff.
func Rank(films []Film) ProfileRank {
	watched := slice.Count(films, func(f Film) bool { return f.UserDetails.AlreadyWatched })

	switch {
	case watched == 0:
		return RankNone
	case watched <= 10:
		return RankNovice
	case watched <= 20:
		return RankFan
	default:
		return RankMovieBuff
	}
}

// IndexOf returns the position of the film with id, or -1.
func IndexOf(films []Film, id string) int {
	return slices.IndexFunc(films, func(f Film) bool { return f.ID == id })
}
