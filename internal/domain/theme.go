package domain

import "fmt"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("parse theme: unknown theme %q", s)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// TileLayer is the base map the surface renders under markers and routes.
type TileLayer struct {
	URL         string
	Attribution string
	MaxZoom     int
}

func (t Theme) TileLayer() TileLayer {
	if t == ThemeDark {
		return TileLayer{
			URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
			Attribution: "© OpenStreetMap contributors © CARTO",
			MaxZoom:     19,
		}
	}
	return TileLayer{
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		MaxZoom:     18,
	}
}
