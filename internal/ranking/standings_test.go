package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateStandings(t *testing.T) {
	matches := []MatchResult{
		{Player1: "ann", Player2: "bob", Outcome: Player1Wins},
		{Player1: "bob", Player2: "cid", Outcome: Player1Wins},
		{Player1: "ann", Player2: "cid", Outcome: Player1Wins},
		{Player1: "cid", Player2: "dee", Outcome: Draw},
	}

	standings := AggregateStandings(matches, []string{"ann", "bob", "cid", "dee"})
	require.Len(t, standings, 4)

	// ann: 2W 0L, bob: 1W 1L, dee: 0W 0L 1D, cid: 0W 2L 1D.
	assert.Equal(t, Standing{Name: "ann", Wins: 2, Score: 2}, standings[0])
	assert.Equal(t, Standing{Name: "bob", Wins: 1, Losses: 1, Score: 1}, standings[1])
	assert.Equal(t, Standing{Name: "dee", Draws: 1, Score: 0.5}, standings[2])
	assert.Equal(t, Standing{Name: "cid", Losses: 2, Draws: 1, Score: 0.5}, standings[3])
}

func TestAggregateStandings_TieBreakByName(t *testing.T) {
	// Identical records sort by name.
	matches := []MatchResult{
		{Player1: "zoe", Player2: "amy", Outcome: Draw},
	}

	standings := AggregateStandings(matches, []string{"zoe", "amy"})
	require.Len(t, standings, 2)
	assert.Equal(t, "amy", standings[0].Name)
	assert.Equal(t, "zoe", standings[1].Name)
}

func TestAggregateStandings_IncludesIdleParticipants(t *testing.T) {
	standings := AggregateStandings(nil, []string{"solo"})
	require.Len(t, standings, 1)
	assert.Equal(t, Standing{Name: "solo"}, standings[0])
}
