package app

import (
	"sort"

	"github.com/okian/duel/internal/domain/types"
)

// sortEntries orders entries by rating descending with name ascending as a
// deterministic tie-breaker.
func sortEntries(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].Name < entries[j].Name
	})
}

// assignRanksWithTies assigns consecutive ranks to sorted entries; entries
// with equal ratings share a rank.
func assignRanksWithTies(entries []types.Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Rating != entries[i-1].Rating {
			rank++
		}
		entries[i].Rank = rank
	}
}
