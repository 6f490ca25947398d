// Package fetcher retrieves the target page in static or scripted mode and
// returns a uniform models.PageSnapshot.
package fetcher

import (
	"context"

	"github.com/aleister1102/tixwatch/internal/models"
)

// Fetcher retrieves one snapshot of a page per call
type Fetcher interface {
	// Fetch returns a snapshot or a *common.FetchError
	Fetch(ctx context.Context, url string) (*models.PageSnapshot, error)
	Mode() models.DetectionMode
	// Close releases any session the fetcher holds. It is safe to call more than once.
	Close() error
}

// Factory opens a Fetcher for the given mode
type Factory interface {
	// Open returns *common.SessionInitError when a scripted session cannot start
	Open(ctx context.Context, mode models.DetectionMode) (Fetcher, error)
}
