package models

// Player is a registered tournament entrant. Wins never exceeds Matches.
type Player struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Wins    int    `json:"wins" db:"wins"`
	Matches int    `json:"matches" db:"matches"`
}
