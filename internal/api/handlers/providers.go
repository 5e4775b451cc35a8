package handlers

import (
	"context"

	"github.com/randytsao24/railronda/internal/models"
)

// GemProvider abstracts the gem catalogue for testability.
type GemProvider interface {
	GemsForLine(ctx context.Context, lineID string) ([]models.Gem, error)
	AllGems(ctx context.Context) ([]models.Gem, error)
}
