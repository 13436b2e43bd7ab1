// Package league loads the maturity league match log and computes player
// statistics: win/loss records, Elo-style ratings, and the pair-keyed match
// grid behind the matrix table.
package league

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/cnc-league/cnc/internal/ranking"
)

// Match is one league encounter with its raw scores.
type Match struct {
	Date    time.Time
	Player1 string
	Player2 string
	Score1  int
	Score2  int
}

// Result classifies the match by score for the ranking core.
func (m Match) Result() ranking.MatchResult {
	outcome := ranking.Draw
	switch {
	case m.Score1 > m.Score2:
		outcome = ranking.Player1Wins
	case m.Score1 < m.Score2:
		outcome = ranking.Player2Wins
	}
	return ranking.MatchResult{Player1: m.Player1, Player2: m.Player2, Outcome: outcome}
}

// Pair is a canonical (sorted) player pair, the key of the match grid.
type Pair [2]string

// PairOf builds the canonical pair regardless of argument order.
func PairOf(a, b string) Pair {
	if a < b {
		return Pair{a, b}
	}
	return Pair{b, a}
}

// LoadMatches reads the league match log from a CSV file with the header
// date,player1,player2,score1,score2. Dates are YYYY-MM-DD.
func LoadMatches(path string) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read match log %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("match log %s is empty", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range []string{"date", "player1", "player2", "score1", "score2"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("match log %s: missing column %q", path, name)
		}
	}

	matches := make([]Match, 0, len(records)-1)
	for i, row := range records[1:] {
		date, err := time.Parse("2006-01-02", row[col["date"]])
		if err != nil {
			return nil, fmt.Errorf("match log %s row %d: bad date: %w", path, i+2, err)
		}
		score1, err := strconv.Atoi(row[col["score1"]])
		if err != nil {
			return nil, fmt.Errorf("match log %s row %d: bad score1: %w", path, i+2, err)
		}
		score2, err := strconv.Atoi(row[col["score2"]])
		if err != nil {
			return nil, fmt.Errorf("match log %s row %d: bad score2: %w", path, i+2, err)
		}
		matches = append(matches, Match{
			Date:    date,
			Player1: row[col["player1"]],
			Player2: row[col["player2"]],
			Score1:  score1,
			Score2:  score2,
		})
	}
	return matches, nil
}

// Grid indexes matches by canonical player pair for matrix-cell lookups.
type Grid map[Pair][]Match

// BuildGrid groups matches by pair, preserving match-log order per pair.
func BuildGrid(matches []Match) Grid {
	grid := make(Grid)
	for _, m := range matches {
		key := PairOf(m.Player1, m.Player2)
		grid[key] = append(grid[key], m)
	}
	return grid
}

// Participants returns every player appearing in the grid, sorted.
func (g Grid) Participants() []string {
	seen := make(map[string]struct{}, 2*len(g))
	for pair := range g {
		seen[pair[0]] = struct{}{}
		seen[pair[1]] = struct{}{}
	}
	players := make([]string, 0, len(seen))
	for p := range seen {
		players = append(players, p)
	}
	sort.Strings(players)
	return players
}

// Results converts matches to the core's match results, in log order.
func Results(matches []Match) []ranking.MatchResult {
	results := make([]ranking.MatchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.Result())
	}
	return results
}

// CompletionRate is the percentage of possible pairings that have been
// played at least the number of matches recorded, against n*(n-1)/2.
func CompletionRate(matchesDone, numParticipants int) float64 {
	if numParticipants < 2 {
		return 0
	}
	possible := float64(numParticipants*(numParticipants-1)) / 2
	return float64(matchesDone) / possible * 100
}
