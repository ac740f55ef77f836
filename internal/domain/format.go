package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatDistance renders meters as rounded kilometers with thousands separators.
func FormatDistance(meters float64) string {
	km := int64(math.Round(meters / 1000))
	return groupThousands(km) + " km"
}

// FormatDuration renders seconds as "N min" under an hour, else "Hh Mm".
func FormatDuration(seconds float64) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Round(math.Mod(seconds, 3600) / 60))
	if hours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', 2, 64)
}

// ProfileTitle capitalizes the first letter of a vehicle profile value.
func ProfileTitle(profile string) string {
	profile = strings.TrimSpace(profile)
	r, size := utf8.DecodeRuneInString(profile)
	if r == utf8.RuneError {
		return profile
	}
	return string(unicode.ToUpper(r)) + profile[size:]
}

// Subtitle summarizes the itinerary as "first → last".
func Subtitle(stops []GeoPoint) string {
	switch len(stops) {
	case 0:
		return "Add stops to plan your trip"
	case 1:
		return stops[0].Name
	default:
		return stops[0].Name + " → " + stops[len(stops)-1].Name
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
