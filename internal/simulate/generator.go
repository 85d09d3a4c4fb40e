package simulate

import (
	"fmt"
	"math/rand"
)

// hiddenOrdering builds the ground-truth item ordering. Index 0 is the
// strongest item; the simulated judge prefers lower indexes.
func hiddenOrdering(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("item-%03d", i+1)
	}
	return names
}

// judge decides an outcome for a served pair against the hidden ordering.
// With probability noise the weaker item is reported as the winner, and
// with probability tieRate the pair is reported as a tie.
type judge struct {
	rank    map[string]int
	rng     *rand.Rand
	noise   float64
	tieRate float64
}

func newJudge(ordering []string, rng *rand.Rand, noise, tieRate float64) *judge {
	rank := make(map[string]int, len(ordering))
	for i, name := range ordering {
		rank[name] = i
	}
	return &judge{rank: rank, rng: rng, noise: noise, tieRate: tieRate}
}

// decide returns winner, loser and outcome for the pair.
func (j *judge) decide(left, right string) (string, string, string) {
	if j.rng.Float64() < j.tieRate {
		return left, right, "tie"
	}
	winner, loser := left, right
	if j.rank[right] < j.rank[left] {
		winner, loser = right, left
	}
	if j.rng.Float64() < j.noise {
		winner, loser = loser, winner
	}
	return winner, loser, "win"
}

// agreement computes the fraction of concordant pairs between the hidden
// ordering and the retrieved rankings. 1.0 means perfect recovery, 0.5 is
// no better than chance.
func agreement(ordering []string, rankings []rankingEntry) float64 {
	truth := make(map[string]int, len(ordering))
	for i, name := range ordering {
		truth[name] = i
	}
	var concordant, total int
	for i := 0; i < len(rankings); i++ {
		for k := i + 1; k < len(rankings); k++ {
			a, okA := truth[rankings[i].Name]
			b, okB := truth[rankings[k].Name]
			if !okA || !okB {
				continue
			}
			total++
			if a < b {
				concordant++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(concordant) / float64(total)
}
