package services

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

// Notifier pushes tournament events to live clients. brackets.Hub implements it.
type Notifier interface {
	BroadcastToRoom(roomID string, eventType string, payload interface{})
}

// StandingsCache holds the public standings report between writes.
//
// Readers take Generation before querying the store and pass it to Set; writers call Invalidate
// after commit, which bumps the generation so a reader holding pre-commit rows cannot store them.
type StandingsCache interface {
	Get(ctx context.Context) ([]models.Standing, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, standings []models.Standing) error
	Invalidate(ctx context.Context) error
}
