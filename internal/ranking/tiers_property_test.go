package ranking

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomDAG holds a generated acyclic outcome set: edges only ever point from
// an earlier participant to a later one in a hidden ordering, so RankTiers
// must always succeed on it.
type randomDAG struct {
	participants []string
	outcomes     []Edge
}

func genDAG() gopter.Gen {
	return gen.IntRange(1, 12).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		participants := make([]string, n)
		for i := range participants {
			participants[i] = fmt.Sprintf("p%02d", i)
		}
		// Each possible (earlier, later) pair is independently an edge.
		return gen.SliceOfN(n*n, gen.Bool()).Map(func(picks []bool) randomDAG {
			var outcomes []Edge
			k := 0
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i < j && picks[k] {
						outcomes = append(outcomes, Edge{Winner: participants[i], Loser: participants[j]})
					}
					k++
				}
			}
			return randomDAG{participants: participants, outcomes: outcomes}
		})
	}, reflect.TypeOf(randomDAG{}))
}

func TestRankTiers_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("every participant appears exactly once", prop.ForAll(
		func(d randomDAG) bool {
			levels, err := RankTiers(d.outcomes, d.participants)
			if err != nil {
				return false
			}
			seen := make(map[string]int)
			for _, level := range levels {
				for _, p := range level {
					seen[p]++
				}
			}
			if len(seen) != len(d.participants) {
				return false
			}
			for _, p := range d.participants {
				if seen[p] != 1 {
					return false
				}
			}
			return true
		},
		genDAG(),
	))

	properties.Property("winners outrank losers", prop.ForAll(
		func(d randomDAG) bool {
			levels, err := RankTiers(d.outcomes, d.participants)
			if err != nil {
				return false
			}
			levelOf := make(map[string]int)
			for i, level := range levels {
				for _, p := range level {
					levelOf[p] = i
				}
			}
			for _, e := range d.outcomes {
				if levelOf[e.Winner] >= levelOf[e.Loser] {
					return false
				}
			}
			return true
		},
		genDAG(),
	))

	properties.Property("output is deterministic", prop.ForAll(
		func(d randomDAG) bool {
			first, err1 := RankTiers(d.outcomes, d.participants)
			second, err2 := RankTiers(d.outcomes, d.participants)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		genDAG(),
	))

	properties.Property("duplicate edges are idempotent", prop.ForAll(
		func(d randomDAG) bool {
			base, err := RankTiers(d.outcomes, d.participants)
			if err != nil {
				return false
			}
			doubled := append(append([]Edge{}, d.outcomes...), d.outcomes...)
			again, err := RankTiers(doubled, d.participants)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(base, again)
		},
		genDAG(),
	))

	properties.TestingRun(t)
}
