package ranking

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports that the win/loss graph is not a DAG: no participant was
// ready while some remained unassigned. Participants holds the unassigned
// remainder, sorted.
type CycleError struct {
	Participants []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected among participants: %s", strings.Join(e.Participants, ", "))
}

// UnknownParticipantError reports an outcome edge naming a participant that is
// not in the supplied participant set. This is a caller contract violation and
// usually means a typo in the match log.
type UnknownParticipantError struct {
	Name string
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("outcome references unknown participant %q", e.Name)
}

// depGraph maps a participant to the set of participants it depends on, i.e.
// everyone who beat it. A participant is ready for ranking once all of its
// dependencies have been placed in earlier tiers.
type depGraph map[string]map[string]struct{}

// RankTiers computes the tiered topological ranking. The result is an ordered
// list of levels, level 0 being the top tier. Within a level, participants
// are arranged by mutually-unreachable groups: members of one group have no
// directed path between them anywhere in the graph, each group is sorted
// lexicographically, and groups are ordered by their smallest member.
//
// participants must be a superset of everyone named in outcomes; participants
// with no recorded matches are valid and land in a tier based solely on their
// (empty) dependency set. Duplicate edges are harmless.
//
// A cycle yields a *CycleError rather than a truncated ranking.
func RankTiers(outcomes []Edge, participants []string) ([][]string, error) {
	graph := make(depGraph, len(participants))
	for _, p := range participants {
		if _, ok := graph[p]; !ok {
			graph[p] = make(map[string]struct{})
		}
	}
	for _, e := range outcomes {
		if _, ok := graph[e.Winner]; !ok {
			return nil, &UnknownParticipantError{Name: e.Winner}
		}
		if _, ok := graph[e.Loser]; !ok {
			return nil, &UnknownParticipantError{Name: e.Loser}
		}
		graph[e.Loser][e.Winner] = struct{}{}
	}

	done := make(map[string]struct{}, len(graph))
	var levels [][]string

	for len(done) < len(graph) {
		ready := readySet(graph, done)
		if len(ready) == 0 {
			var rest []string
			for p := range graph {
				if _, ok := done[p]; !ok {
					rest = append(rest, p)
				}
			}
			sort.Strings(rest)
			return nil, &CycleError{Participants: rest}
		}

		levels = append(levels, groupLevel(ready, graph))

		for _, p := range ready {
			done[p] = struct{}{}
		}
	}

	return levels, nil
}

// readySet returns the unassigned participants whose dependencies are all
// assigned, sorted for deterministic processing.
func readySet(graph depGraph, done map[string]struct{}) []string {
	var ready []string
	for p, deps := range graph {
		if _, ok := done[p]; ok {
			continue
		}
		satisfied := true
		for d := range deps {
			if _, ok := done[d]; !ok {
				satisfied = false
				break
			}
		}
		if satisfied {
			ready = append(ready, p)
		}
	}
	sort.Strings(ready)
	return ready
}

// groupLevel partitions one ready set into mutually-unreachable groups and
// flattens them into the level's member list. Grouping is greedy: take the
// first remaining member, then admit every later member with no path to or
// from anyone already in the group. Connectivity is judged on the whole
// graph, not just the current level, so two same-tier participants joined by
// a path elsewhere still end up in separate groups.
func groupLevel(ready []string, graph depGraph) []string {
	remaining := make([]string, len(ready))
	copy(remaining, ready)

	var groups [][]string
	for len(remaining) > 0 {
		group := []string{remaining[0]}
		remaining = remaining[1:]

		i := 0
		for i < len(remaining) {
			candidate := remaining[i]
			connected := false
			for _, member := range group {
				if hasPath(candidate, member, graph) || hasPath(member, candidate, graph) {
					connected = true
					break
				}
			}
			if connected {
				i++
				continue
			}
			group = append(group, candidate)
			remaining = append(remaining[:i], remaining[i+1:]...)
		}

		sort.Strings(group)
		groups = append(groups, group)
	}

	sort.Slice(groups, func(a, b int) bool { return groups[a][0] < groups[b][0] })

	var level []string
	for _, g := range groups {
		level = append(level, g...)
	}
	return level
}

// hasPath reports whether start and end are connected in the dependency
// graph, following both dependency and reverse-dependency edges. It is an
// iterative DFS with a visited set; neighbours are pushed in sorted key order
// so traversal, and therefore grouping, is reproducible.
func hasPath(start, end string, graph depGraph) bool {
	if start == end {
		return true
	}

	keys := make([]string, 0, len(graph))
	for p := range graph {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	visited := make(map[string]struct{}, len(graph))
	stack := []string{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}

		if current == end {
			return true
		}

		// Nodes that depend on current (reverse edges).
		for _, p := range keys {
			if _, ok := graph[p][current]; ok {
				stack = append(stack, p)
			}
		}

		// Nodes current depends on (forward edges).
		deps := make([]string, 0, len(graph[current]))
		for d := range graph[current] {
			deps = append(deps, d)
		}
		sort.Strings(deps)
		stack = append(stack, deps...)
	}

	return false
}
