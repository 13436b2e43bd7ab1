package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/cnc-league/cnc/internal/hive"
)

// HiveCell is one matchup-matrix cell: the row player's record against the
// column player, rated and unrated separately.
type HiveCell struct {
	Class     string
	Rated     string
	Unrated   string
	Highlight bool
}

type hiveData struct {
	Players    []hive.TablePlayer
	Matrix     [][]HiveCell
	TotalGames int
	Matchups   int
	DataJSON   template.JS
}

// RenderHive renders the hive matchup matrix page.
func RenderHive(table *hive.TableData) ([]byte, error) {
	dataJSON, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encode table payload: %w", err)
	}

	totalGames := 0
	for _, p := range table.Players {
		totalGames += p.TotalGames
	}
	// Every game counts once per side.
	totalGames /= 2

	data := hiveData{
		Players:    table.Players,
		Matrix:     buildHiveMatrix(table),
		TotalGames: totalGames,
		Matchups:   len(table.Matchups),
		DataJSON:   template.JS(dataJSON),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "hive.html", data); err != nil {
		return nil, fmt.Errorf("render hive page: %w", err)
	}
	return buf.Bytes(), nil
}

func buildHiveMatrix(table *hive.TableData) [][]HiveCell {
	highlighted := make(map[string]struct{}, len(table.HighlightGames))
	for _, g := range table.HighlightGames {
		highlighted[g] = struct{}{}
	}
	isHighlighted := func(p hive.TablePlayer) bool {
		for _, g := range p.Groups {
			if _, ok := highlighted[g]; ok {
				return true
			}
		}
		return false
	}

	records := make(map[[2]string]hive.Matchup, len(table.Matchups))
	for _, m := range table.Matchups {
		records[[2]string{m.Player1, m.Player2}] = m
	}

	matrix := make([][]HiveCell, len(table.Players))
	for i, row := range table.Players {
		cells := make([]HiveCell, len(table.Players))
		for j, col := range table.Players {
			if row.ID == col.ID {
				cells[j] = HiveCell{Class: "self-match"}
				continue
			}
			m, ok := records[[2]string{row.ID, col.ID}]
			if !ok {
				cells[j] = HiveCell{Class: "no-matches"}
				continue
			}
			cells[j] = HiveCell{
				Class:     "has-matches",
				Rated:     formatRecord(m.Rated),
				Unrated:   formatRecord(m.Unrated),
				Highlight: isHighlighted(row) && isHighlighted(col),
			}
		}
		matrix[i] = cells
	}
	return matrix
}

func formatRecord(r hive.WLD) string {
	if r.Total() == 0 {
		return ""
	}
	return fmt.Sprintf("%dW %dL %dD", r.Wins, r.Losses, r.Draws)
}
