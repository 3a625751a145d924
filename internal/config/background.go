package config

import (
	"slices"
	"strings"
)

// Backgrounds are the image background styles offered by the panels, as
// "color;class" strings
var Backgrounds = []string{
	"transparent",
	"transparent;checkerboard",
	"white;checkerboard",
	"black;checkerboard",
	"black",
	"white",
	"grey",
	"#CCCCCC",
}

// Background is a parsed style
type Background struct {
	Color        string
	Checkerboard bool
}

// ParseBackground splits a style into its color and classes
func ParseBackground(style string) Background {
	parts := strings.Split(style, ";")
	bg := Background{Color: strings.TrimSpace(parts[0])}
	for _, class := range parts[1:] {
		if strings.TrimSpace(class) == "checkerboard" {
			bg.Checkerboard = true
		}
	}
	if bg.Color == "" {
		bg.Color = "transparent"
	}
	return bg
}

// NextBackground returns the style after current, wrapping around. Unknown
// styles continue from the first entry.
func NextBackground(current string) string {
	i := slices.Index(Backgrounds, current)
	return Backgrounds[(i+1)%len(Backgrounds)]
}
