package ranking

import "sort"

// Standing is one row of the aggregate leaderboard.
type Standing struct {
	Name   string
	Wins   int
	Losses int
	Draws  int
	Score  float64
}

// AggregateStandings computes per-participant win/loss/draw counts and a
// total score (1 point per win, 0.5 per draw). The result is sorted by
// descending wins, then ascending losses, then name, which makes the order
// total and deterministic.
func AggregateStandings(matches []MatchResult, participants []string) []Standing {
	byName := make(map[string]*Standing, len(participants))
	for _, p := range participants {
		if _, ok := byName[p]; !ok {
			byName[p] = &Standing{Name: p}
		}
	}

	for _, m := range matches {
		p1, ok1 := byName[m.Player1]
		p2, ok2 := byName[m.Player2]
		if !ok1 || !ok2 {
			// Contract violation upstream; standings stay restricted to the
			// supplied participant set.
			continue
		}
		switch m.Outcome {
		case Player1Wins:
			p1.Wins++
			p2.Losses++
		case Player2Wins:
			p1.Losses++
			p2.Wins++
		case Draw:
			p1.Draws++
			p2.Draws++
		}
	}

	standings := make([]Standing, 0, len(byName))
	for _, s := range byName {
		s.Score = float64(s.Wins) + 0.5*float64(s.Draws)
		standings = append(standings, *s)
	}

	sort.Slice(standings, func(a, b int) bool {
		sa, sb := standings[a], standings[b]
		if sa.Wins != sb.Wins {
			return sa.Wins > sb.Wins
		}
		if sa.Losses != sb.Losses {
			return sa.Losses < sb.Losses
		}
		return sa.Name < sb.Name
	})
	return standings
}
