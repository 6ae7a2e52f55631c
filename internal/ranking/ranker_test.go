package ranking

import (
	"testing"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

func entry(player string, total float64) contracts.RankingEntry {
	return contracts.RankingEntry{
		Player:                  player,
		TotalPerformanceForGame: contracts.Percent(total),
	}
}

func TestRankSortsDescending(t *testing.T) {
	ranked := Rank([]contracts.RankingEntry{
		entry("X", 15),
		entry("Y", 22.5),
	})

	if ranked[0].Player != "Y" || ranked[0].Rank != 1 {
		t.Errorf("first = %s rank %d, want Y rank 1", ranked[0].Player, ranked[0].Rank)
	}
	if ranked[1].Player != "X" || ranked[1].Rank != 2 {
		t.Errorf("second = %s rank %d, want X rank 2", ranked[1].Player, ranked[1].Rank)
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].TotalPerformanceForGame < ranked[i].TotalPerformanceForGame {
			t.Error("ranking is not sorted descending")
		}
	}
}

func TestRankIsDense(t *testing.T) {
	ranked := Rank([]contracts.RankingEntry{
		entry("A", 5),
		entry("B", 10),
		entry("C", 10),
		entry("D", -3),
	})

	seen := make(map[int]bool)
	for i, e := range ranked {
		if e.Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, e.Rank, i+1)
		}
		if seen[e.Rank] {
			t.Errorf("duplicate rank %d", e.Rank)
		}
		seen[e.Rank] = true
	}
	for want := 1; want <= len(ranked); want++ {
		if !seen[want] {
			t.Errorf("missing rank %d", want)
		}
	}
}

func TestRankTieKeepsInputOrder(t *testing.T) {
	ranked := Rank([]contracts.RankingEntry{
		entry("A", 10),
		entry("B", 10),
	})

	if ranked[0].Player != "A" || ranked[1].Player != "B" {
		t.Errorf("tie order = [%s, %s], want [A, B]", ranked[0].Player, ranked[1].Player)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Errorf("tie ranks = [%d, %d], want [1, 2]", ranked[0].Rank, ranked[1].Rank)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	input := []contracts.RankingEntry{
		entry("A", 1),
		entry("B", 2),
	}

	Rank(input)

	if input[0].Player != "A" || input[0].Rank != 0 {
		t.Error("Rank mutated its input")
	}
}
