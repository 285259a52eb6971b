// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/ui/dom"
)

var printer = message.NewPrinter(language.English)

// StatisticsView is the footer film count.
type StatisticsView struct {
	Count int
}

// Label is the locale-formatted count, e.g. "1,024 movies inside".
func (v *StatisticsView) Label() string {
	return printer.Sprintf("%d movies inside", v.Count)
}

func (v *StatisticsView) Template() (string, error) { return execute("statistics", v) }
func (v *StatisticsView) Handle(dom.Event) error    { return nil }

// ProfileView is the header rank badge. It renders an empty element when
// there is no rank.
type ProfileView struct {
	Rank film.ProfileRank
}

func (v *ProfileView) Template() (string, error) { return execute("profile", v) }
func (v *ProfileView) Handle(dom.Event) error    { return nil }
