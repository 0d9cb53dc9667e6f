package brackets

import "github.com/Dosada05/swiss-tournament/models"

type pairKey struct{ lo, hi int }

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// History is an unordered set of player pairs that have already met.
type History map[pairKey]struct{}

func NewHistory(records []models.MatchRecord) History {
	h := make(History, len(records))
	for _, r := range records {
		h.Add(r.Player1ID, r.Player2ID)
	}
	return h
}

func (h History) Add(a, b int) {
	h[keyOf(a, b)] = struct{}{}
}

func (h History) Has(a, b int) bool {
	_, ok := h[keyOf(a, b)]
	return ok
}
