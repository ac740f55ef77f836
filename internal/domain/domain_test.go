package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA", -1: ""}
	for idx, want := range cases {
		assert.Equal(t, want, Label(idx), "index %d", idx)
	}
}

func TestBuildLegs(t *testing.T) {
	stops := pts("S1", "S2", "S3")

	forward := BuildLegs(stops, false)
	require.Len(t, forward, 2)
	assert.Equal(t, "S1", forward[0].From.Name)
	assert.Equal(t, "S3", forward[1].To.Name)

	all := BuildLegs(stops, true)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"S3", "S2"}, []string{all[2].From.Name, all[2].To.Name})
	assert.Equal(t, []string{"S2", "S1"}, []string{all[3].From.Name, all[3].To.Name})
	assert.True(t, all[2].IsReturn)

	assert.Empty(t, BuildLegs(stops[:1], true))
}

func TestEstimateCost(t *testing.T) {
	c, ok := EstimateCost(100000, &CostInput{RatePerKm: 0.5})
	require.True(t, ok)
	assert.InDelta(t, 50.0, c, 1e-9)

	_, ok = EstimateCost(100000, &CostInput{RatePerKm: 0})
	assert.False(t, ok)
	_, ok = EstimateCost(100000, &CostInput{RatePerKm: -2})
	assert.False(t, ok)
	_, ok = EstimateCost(100000, nil)
	assert.False(t, ok)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Stockholm, Stockholms kommun", ShortName("Stockholm, Stockholms kommun, Stockholm County, Sweden"))
	assert.Equal(t, "Paris", ShortName(" Paris "))
	assert.Equal(t, "", ShortName(""))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,851 km", FormatDistance(1850600))
	assert.Equal(t, "0 km", FormatDistance(120))
	assert.Equal(t, "1,234,568 km", FormatDistance(1234567800))
	assert.Equal(t, "45 min", FormatDuration(2700))
	assert.Equal(t, "2h 5m", FormatDuration(7500))
	assert.Equal(t, "$50.00", FormatCost(50))
	assert.Equal(t, "Sedan", ProfileTitle("sedan"))
	assert.Equal(t, "", ProfileTitle(""))
}

func TestSubtitle(t *testing.T) {
	assert.Equal(t, "Add stops to plan your trip", Subtitle(nil))
	assert.Equal(t, "A", Subtitle(pts("A")))
	assert.Equal(t, "A → C", Subtitle(pts("A", "B", "C")))
}

func TestNewGeoPoint(t *testing.T) {
	p, err := NewGeoPoint(" Paris ", 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, "Paris", p.Name)

	_, err = NewGeoPoint("", 0, 0)
	assert.Error(t, err)
	_, err = NewGeoPoint("x", 91, 0)
	assert.Error(t, err)
	_, err = NewGeoPoint("x", 0, 181)
	assert.Error(t, err)
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, 18, ThemeLight.TileLayer().MaxZoom)

	_, err = ParseTheme("blue")
	assert.Error(t, err)
}
