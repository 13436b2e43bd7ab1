package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/cnc-league/cnc/internal/league"
	"github.com/cnc-league/cnc/internal/ranking"
)

const graphHeight = 700

// MatchCell is one matrix cell: every match between the row and column
// players, scored from the row player's perspective.
type MatchCell struct {
	Class   string
	Entries []CellEntry
}

// CellEntry is one match inside a cell.
type CellEntry struct {
	Date  string
	Score string
}

type indexData struct {
	MatrixPlayers   []league.PlayerStats
	Ratings         []league.PlayerStats
	Matrix          [][]MatchCell
	Levels          [][]string
	GraphJSON       template.JS
	LevelsJSON      template.JS
	GraphHeight     int
	MatchesDone     int
	TotalPairings   int
	CompletionRate  string
	NumParticipants int
}

// RenderIndex renders the maturity league page: the match matrix, the ratings
// table, the tier list, and the embedded graph payload. A ranking cycle is an
// error; the page is never rendered from a partial ranking.
func RenderIndex(matches []league.Match) ([]byte, error) {
	grid := league.BuildGrid(matches)
	participants := grid.Participants()
	results := league.Results(matches)

	stats := league.ComputeStats(grid, participants)

	outcomes := ranking.ExtractOutcomes(results)
	levels, err := ranking.RankTiers(outcomes, participants)
	if err != nil {
		return nil, fmt.Errorf("rank participants: %w", err)
	}

	graph := ranking.GraphData(participants, results)
	graphJSON, err := json.Marshal(graph)
	if err != nil {
		return nil, fmt.Errorf("encode graph payload: %w", err)
	}
	levelsJSON, err := json.Marshal(levels)
	if err != nil {
		return nil, fmt.Errorf("encode levels payload: %w", err)
	}

	ratings := make([]league.PlayerStats, len(stats))
	copy(ratings, stats)
	league.SortByRating(ratings)

	n := len(participants)
	possible := 0
	if n > 1 {
		possible = n * (n - 1) / 2
	}

	data := indexData{
		MatrixPlayers:   stats,
		Ratings:         ratings,
		Matrix:          buildMatrix(stats, grid),
		Levels:          levels,
		GraphJSON:       template.JS(graphJSON),
		LevelsJSON:      template.JS(levelsJSON),
		GraphHeight:     graphHeight,
		MatchesDone:     len(matches),
		TotalPairings:   possible,
		CompletionRate:  fmt.Sprintf("%.2f", league.CompletionRate(len(matches), n)),
		NumParticipants: n,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return nil, fmt.Errorf("render index page: %w", err)
	}
	return buf.Bytes(), nil
}

// buildMatrix lays out one row per player in matrix order, one cell per
// column player, scores shown from the row player's side.
func buildMatrix(players []league.PlayerStats, grid league.Grid) [][]MatchCell {
	matrix := make([][]MatchCell, len(players))
	for i, row := range players {
		cells := make([]MatchCell, len(players))
		for j, col := range players {
			cells[j] = buildCell(row.Name, col.Name, grid)
		}
		matrix[i] = cells
	}
	return matrix
}

func buildCell(rowPlayer, colPlayer string, grid league.Grid) MatchCell {
	if rowPlayer == colPlayer {
		return MatchCell{Class: "self-match-cell"}
	}

	matches, ok := grid[league.PairOf(rowPlayer, colPlayer)]
	if !ok {
		return MatchCell{}
	}

	var cell MatchCell
	for _, m := range matches {
		rowScore, colScore := m.Score1, m.Score2
		if rowPlayer == m.Player2 {
			rowScore, colScore = colScore, rowScore
		}
		if rowScore > colScore {
			cell.Class = "win-cell"
		} else if rowScore < colScore {
			cell.Class = "loss-cell"
		} else {
			cell.Class = "draw-cell"
		}
		cell.Entries = append(cell.Entries, CellEntry{
			Date:  m.Date.Format("Jan 2"),
			Score: fmt.Sprintf("%d – %d", rowScore, colScore),
		})
	}
	return cell
}
