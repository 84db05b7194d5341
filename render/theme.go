package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme holds the colors used to paint cells and the status bar.
type Theme struct {
	Name   string
	Alive  tcell.Color
	Dead   tcell.Color
	Accent tcell.Color
	Text   tcell.Color
}

var themes = []Theme{
	{
		Name:   "dusk",
		Alive:  tcell.GetColor("#8a5e4b"),
		Dead:   tcell.GetColor("#301c2a"),
		Accent: tcell.GetColor("#7c3e4f"),
		Text:   tcell.GetColor("#bb9564"),
	},
	{
		Name:   "lagoon",
		Alive:  tcell.GetColor("#023c40"),
		Dead:   tcell.GetColor("#c3979f"),
		Accent: tcell.GetColor("#0ad3ff"),
		Text:   tcell.GetColor("#e1faf9"),
	},
}

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, error) {
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, errors.Wrapf(ErrUnknownTheme, "%q", name)
}

// NextTheme returns the theme after name, wrapping to the first.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
