package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeeds(t *testing.T) {
	path := writeSeed(t, `[
		{"query": "Stockholm", "name": "Stockholm, Sweden", "lat": 59.3293, "lng": 18.0686},
		{"query": "Paris", "lat": 48.8566, "lng": 2.3522}
	]`)

	seeds, err := LoadSeeds(path)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Stockholm, Sweden", seeds["Stockholm"].Name)
	assert.Equal(t, "Paris", seeds["Paris"].Name)
}

func TestLoadSeedsRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"empty query":  `[{"query": " ", "lat": 1, "lng": 1}]`,
		"bad latitude": `[{"query": "x", "lat": 95, "lng": 1}]`,
		"not json":     `{`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSeeds(writeSeed(t, body))
			require.Error(t, err)
		})
	}

	_, err := LoadSeeds(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
