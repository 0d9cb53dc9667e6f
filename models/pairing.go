package models

// Pairing is one match of the next round. The higher-ranked player is reported first.
type Pairing struct {
	ID1   int    `json:"id1"`
	Name1 string `json:"name1"`
	ID2   int    `json:"id2"`
	Name2 string `json:"name2"`
}

func (p Pairing) Record() MatchRecord {
	return MatchRecord{Player1ID: p.ID1, Player2ID: p.ID2}
}

// Round is the output of one pairing run.
type Round struct {
	Pairings []Pairing `json:"pairings"`
	Bye      *Standing `json:"bye,omitempty"`
}
