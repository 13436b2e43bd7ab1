package ranking

import "sort"

// D3Node is a participant in the client-side graph payload.
type D3Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// D3Edge is a directed winner→loser edge, or an undirected tie edge.
type D3Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// D3Graph is the payload handed to the client-side graph renderer. Edges keep
// one entry per decisive match; Ties are deduplicated per pair.
type D3Graph struct {
	Nodes []D3Node `json:"nodes"`
	Edges []D3Edge `json:"edges"`
	Ties  []D3Edge `json:"ties"`
}

// GraphData builds the who-beat-whom graph payload: one node per player, one
// directed edge per decisive match, and one undirected tie edge per pair of
// players that has drawn at least once.
func GraphData(players []string, matches []MatchResult) D3Graph {
	nodes := make([]D3Node, 0, len(players))
	for _, name := range players {
		nodes = append(nodes, D3Node{ID: name, Name: name})
	}

	edges := make([]D3Edge, 0, len(matches))
	tieSeen := make(map[[2]string]struct{})
	for _, m := range matches {
		switch m.Outcome {
		case Player1Wins:
			edges = append(edges, D3Edge{Source: m.Player1, Target: m.Player2})
		case Player2Wins:
			edges = append(edges, D3Edge{Source: m.Player2, Target: m.Player1})
		case Draw:
			tieSeen[sortPair(m.Player1, m.Player2)] = struct{}{}
		}
	}

	tiePairs := make([][2]string, 0, len(tieSeen))
	for pair := range tieSeen {
		tiePairs = append(tiePairs, pair)
	}
	sort.Slice(tiePairs, func(a, b int) bool {
		if tiePairs[a][0] != tiePairs[b][0] {
			return tiePairs[a][0] < tiePairs[b][0]
		}
		return tiePairs[a][1] < tiePairs[b][1]
	})

	ties := make([]D3Edge, 0, len(tiePairs))
	for _, pair := range tiePairs {
		ties = append(ties, D3Edge{Source: pair[0], Target: pair[1]})
	}

	return D3Graph{Nodes: nodes, Edges: edges, Ties: ties}
}

// sortPair orders two names so a pair has one canonical key regardless of
// which side each player was on.
func sortPair(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
