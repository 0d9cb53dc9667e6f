package models

// Standing is the derived, non-persisted ranking view of a player.
type Standing struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Matches int    `json:"matches"`
}

// StandingOrder selects which of the two ranking query shapes is used.
type StandingOrder string

const (
	// OrderWinsAscending is the public standings report order.
	OrderWinsAscending StandingOrder = "asc"
	// OrderWinsDescending is the strongest-first order used for pairing.
	OrderWinsDescending StandingOrder = "desc"
)

func (o StandingOrder) Valid() bool {
	return o == OrderWinsAscending || o == OrderWinsDescending
}
