package minibasket

import (
	"cmp"
	"slices"
)

// RecomputeRunningScores rewrites each entry's running totals by walking the
// log in timestamp order. Entries with equal timestamps keep their log order.
// The returned slice has the same order as the input.
func RecomputeRunningScores(log []ScoreEntry) []ScoreEntry {
	out := slices.Clone(log)
	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(out[a].Timestamp, out[b].Timestamp)
	})
	var a, b int
	for _, i := range order {
		switch out[i].TeamID {
		case TeamA:
			a += out[i].Points
		case TeamB:
			b += out[i].Points
		}
		out[i].RunningScoreA = a
		out[i].RunningScoreB = b
	}
	return out
}

// FinalScore sums the score log per team.
func FinalScore(log []ScoreEntry) (a, b int) {
	for _, e := range log {
		switch e.TeamID {
		case TeamA:
			a += e.Points
		case TeamB:
			b += e.Points
		}
	}
	return a, b
}
