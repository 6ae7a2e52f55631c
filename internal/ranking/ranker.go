package ranking

import (
	"sort"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

// Rank sorts entries descending by total game performance and assigns
// dense 1-based ranks. The sort is stable: entries with equal totals
// keep their input order, which is the tie-break contract.
func Rank(entries []contracts.RankingEntry) []contracts.RankingEntry {
	ranked := append([]contracts.RankingEntry(nil), entries...)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalPerformanceForGame > ranked[j].TotalPerformanceForGame
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
