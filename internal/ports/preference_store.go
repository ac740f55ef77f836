package ports

import (
	"context"
	"roadtrip-planner/internal/domain"
)

// Storage for the single persisted user preference.
type PreferenceStore interface {
	// Return the stored theme, or ok=false when nothing was saved yet.
	Theme(ctx context.Context) (theme domain.Theme, ok bool, err error)
	SetTheme(ctx context.Context, theme domain.Theme) error
}
