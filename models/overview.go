package models

import "time"

// Overview aggregates the tournament state for dashboards and archive snapshots.
type Overview struct {
	PlayerCount int           `json:"player_count"`
	Standings   []Standing    `json:"standings"`
	Matches     []MatchRecord `json:"matches"`
	TakenAt     time.Time     `json:"taken_at"`
}
