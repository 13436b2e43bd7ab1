package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphData(t *testing.T) {
	matches := []MatchResult{
		{Player1: "A", Player2: "B", Outcome: Player1Wins},
		{Player1: "B", Player2: "C", Outcome: Player2Wins},
		{Player1: "C", Player2: "A", Outcome: Draw},
		{Player1: "A", Player2: "C", Outcome: Draw}, // same pair, other side
	}

	g := GraphData([]string{"A", "B", "C"}, matches)

	assert.Equal(t, []D3Node{{ID: "A", Name: "A"}, {ID: "B", Name: "B"}, {ID: "C", Name: "C"}}, g.Nodes)
	assert.Equal(t, []D3Edge{
		{Source: "A", Target: "B"},
		{Source: "C", Target: "B"},
	}, g.Edges)
	// Ties are undirected-keyed and deduplicated.
	assert.Equal(t, []D3Edge{{Source: "A", Target: "C"}}, g.Ties)
}

func TestGraphData_RepeatDecisiveMatchesKeepSeparateEdges(t *testing.T) {
	matches := []MatchResult{
		{Player1: "A", Player2: "B", Outcome: Player1Wins},
		{Player1: "A", Player2: "B", Outcome: Player1Wins},
	}

	g := GraphData([]string{"A", "B"}, matches)
	assert.Len(t, g.Edges, 2)
	assert.Empty(t, g.Ties)
}
