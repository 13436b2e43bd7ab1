package league

import "sort"

// PlayerStats is one player's accumulated league record and rating.
type PlayerStats struct {
	Name         string
	Wins         int
	Losses       int
	Elo          float64
	KFactor      float64
	TotalMatches int
}

// ComputeStats walks the grid pair by pair (in canonical pair order, so rating
// updates replay deterministically) and accumulates records and ratings for
// every listed player.
func ComputeStats(grid Grid, players []string) []PlayerStats {
	stats := make(map[string]*PlayerStats, len(players))
	for _, p := range players {
		stats[p] = &PlayerStats{Name: p, Elo: initialRating, KFactor: maxKFactor}
	}

	pairs := make([]Pair, 0, len(grid))
	for pair := range grid {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})

	for _, pair := range pairs {
		for _, m := range grid[pair] {
			p1, ok1 := stats[m.Player1]
			p2, ok2 := stats[m.Player2]
			if !ok1 || !ok2 {
				continue
			}

			updateRatings(p1, p2, m.Score1, m.Score2)

			switch {
			case m.Score1 > m.Score2:
				p1.Wins++
				p2.Losses++
			case m.Score1 < m.Score2:
				p1.Losses++
				p2.Wins++
			}
		}
	}

	out := make([]PlayerStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	SortByRecord(out)
	return out
}

// SortByRecord orders players for the matrix: most wins first, fewest losses
// next, name as the final tie-break.
func SortByRecord(stats []PlayerStats) {
	sort.Slice(stats, func(a, b int) bool {
		sa, sb := stats[a], stats[b]
		if sa.Wins != sb.Wins {
			return sa.Wins > sb.Wins
		}
		if sa.Losses != sb.Losses {
			return sa.Losses < sb.Losses
		}
		return sa.Name < sb.Name
	})
}

// SortByRating orders players for the ratings table: Elo first, then the
// record tie-breaks.
func SortByRating(stats []PlayerStats) {
	sort.Slice(stats, func(a, b int) bool {
		sa, sb := stats[a], stats[b]
		if sa.Elo != sb.Elo {
			return sa.Elo > sb.Elo
		}
		if sa.Wins != sb.Wins {
			return sa.Wins > sb.Wins
		}
		if sa.Losses != sb.Losses {
			return sa.Losses < sb.Losses
		}
		return sa.Name < sb.Name
	})
}
