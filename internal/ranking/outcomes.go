// Package ranking turns pairwise match results into standings and a tiered
// topological ranking. All functions are pure: they take loaded match data
// and return value objects, with no logging and no shared state.
package ranking

// Outcome classifies a single match result.
type Outcome int

const (
	Player1Wins Outcome = iota
	Player2Wins
	Draw
)

// MatchResult is one head-to-head encounter between two participants.
type MatchResult struct {
	Player1 string
	Player2 string
	Outcome Outcome
}

// Edge is a directed (winner, loser) pair derived from one match.
type Edge struct {
	Winner string
	Loser  string
}

// ExtractOutcomes converts match results into directed (winner, loser) edges,
// preserving input order. Draws carry no ordering information and are dropped.
func ExtractOutcomes(matches []MatchResult) []Edge {
	outcomes := make([]Edge, 0, len(matches))
	for _, m := range matches {
		switch m.Outcome {
		case Player1Wins:
			outcomes = append(outcomes, Edge{Winner: m.Player1, Loser: m.Player2})
		case Player2Wins:
			outcomes = append(outcomes, Edge{Winner: m.Player2, Loser: m.Player1})
		}
	}
	return outcomes
}
