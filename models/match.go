package models

// MatchRecord is an unordered pair of players that have already been paired.
// Records are created when a pairing is finalized, not when the result is reported.
type MatchRecord struct {
	Player1ID int `json:"player1_id" db:"player1_id"`
	Player2ID int `json:"player2_id" db:"player2_id"`
}

// Normalized returns the record with the lower id first, the form in which pairs are stored.
func (m MatchRecord) Normalized() MatchRecord {
	if m.Player1ID > m.Player2ID {
		return MatchRecord{Player1ID: m.Player2ID, Player2ID: m.Player1ID}
	}
	return m
}

// Involves reports whether the record contains both a and b, in either order.
func (m MatchRecord) Involves(a, b int) bool {
	return (m.Player1ID == a && m.Player2ID == b) || (m.Player1ID == b && m.Player2ID == a)
}
