package brackets

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

// GeneratePairingsParams is the input of one pairing run.
type GeneratePairingsParams struct {
	// Ranked lists every registered player strongest first.
	Ranked []models.Standing
	// Played reports whether two players already have a match record.
	Played func(a, b int) bool
}

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*models.Round, error)

	GetName() string
}
