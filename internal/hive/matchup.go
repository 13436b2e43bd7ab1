package hive

import (
	"sort"
	"strings"

	"github.com/cnc-league/cnc/internal/config"
)

// WLD is a win/loss/draw record from one player's perspective.
type WLD struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Total is the number of games in the record.
func (w WLD) Total() int {
	return w.Wins + w.Losses + w.Draws
}

func (w *WLD) add(result string) {
	switch result {
	case "win":
		w.Wins++
	case "loss":
		w.Losses++
	case "draw":
		w.Draws++
	}
}

// Matchup is the aggregated record between two table players, from Player1's
// perspective, split by rated status.
type Matchup struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Rated   WLD    `json:"rated_stats"`
	Unrated WLD    `json:"unrated_stats"`
}

// TablePlayer is one row/column of the matchup matrix.
type TablePlayer struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Nick        string   `json:"hivegame_nick"`
	Groups      []string `json:"groups"`
	Known       bool     `json:"is_known"`
	TotalGames  int      `json:"total_games"`
}

// TableData is the full matchup-matrix payload for the hive report page.
type TableData struct {
	Players        []TablePlayer `json:"players"`
	Matchups       []Matchup     `json:"game_stats"`
	GroupOrder     []string      `json:"group_order"`
	HighlightGames []string      `json:"highlight_games"`
}

// BuildTableData aggregates raw games into the matchup matrix: the roster's
// players plus any outsiders discovered in games against players whose groups
// intersect settings.fetch_outsiders. Known players are ordered by group
// rank then total games; outsiders come last.
func BuildTableData(cfg *config.Config, games []RawGame) (*TableData, error) {
	outsiderGroups := make(map[string]struct{}, len(cfg.Settings.FetchOutsiders))
	for _, g := range cfg.Settings.FetchOutsiders {
		outsiderGroups[g] = struct{}{}
	}

	attractsOutsiders := func(p config.Player) bool {
		for _, g := range p.Groups {
			if _, ok := outsiderGroups[g]; ok {
				return true
			}
		}
		return false
	}

	// Map a nick to a table participant ID: the roster ID for known players,
	// "@nick" for outsiders.
	resolve := func(nick string) (string, bool) {
		if id, _, ok := cfg.FindByNick(nick); ok {
			return id, true
		}
		return "@" + nick, false
	}

	// Discover outsiders: unknown nicks seen playing a roster member whose
	// groups intersect fetch_outsiders.
	outsiders := make(map[string]struct{})
	for _, g := range games {
		whiteID, whiteKnown := resolve(g.White)
		blackID, blackKnown := resolve(g.Black)
		if !whiteKnown && blackKnown {
			if _, p, _ := cfg.FindByNick(g.Black); attractsOutsiders(p) {
				outsiders[whiteID] = struct{}{}
			}
		}
		if !blackKnown && whiteKnown {
			if _, p, _ := cfg.FindByNick(g.White); attractsOutsiders(p) {
				outsiders[blackID] = struct{}{}
			}
		}
	}

	players, err := tablePlayers(cfg, outsiders)
	if err != nil {
		return nil, err
	}

	included := make(map[string]struct{}, len(players))
	for _, p := range players {
		included[p.ID] = struct{}{}
	}

	// Per-participant totals and per-ordered-pair records.
	totals := make(map[string]int)
	records := make(map[[2]string]*Matchup)
	record := func(me, them string, rated bool, result string) {
		key := [2]string{me, them}
		m, ok := records[key]
		if !ok {
			m = &Matchup{Player1: me, Player2: them}
			records[key] = m
		}
		if rated {
			m.Rated.add(result)
		} else {
			m.Unrated.add(result)
		}
	}

	for _, g := range games {
		whiteID, _ := resolve(g.White)
		blackID, _ := resolve(g.Black)
		if _, ok := included[whiteID]; !ok {
			continue
		}
		if _, ok := included[blackID]; !ok {
			continue
		}
		totals[whiteID]++
		totals[blackID]++
		record(whiteID, blackID, g.Rated, g.PlayerResult(g.White))
		record(blackID, whiteID, g.Rated, g.PlayerResult(g.Black))
	}

	for i := range players {
		players[i].TotalGames = totals[players[i].ID]
	}
	sortTablePlayers(cfg, players)

	matchups := make([]Matchup, 0, len(records))
	for _, m := range records {
		matchups = append(matchups, *m)
	}
	sort.Slice(matchups, func(a, b int) bool {
		if matchups[a].Player1 != matchups[b].Player1 {
			return matchups[a].Player1 < matchups[b].Player1
		}
		return matchups[a].Player2 < matchups[b].Player2
	})

	return &TableData{
		Players:        players,
		Matchups:       matchups,
		GroupOrder:     cfg.Settings.GroupOrder,
		HighlightGames: cfg.Settings.HighlightGames,
	}, nil
}

// tablePlayers builds the unsorted participant list: the full roster plus the
// discovered outsiders.
func tablePlayers(cfg *config.Config, outsiders map[string]struct{}) ([]TablePlayer, error) {
	var players []TablePlayer

	for _, id := range cfg.PlayerIDs() {
		p := cfg.Players[id]
		nick, err := p.CurrentNick()
		if err != nil {
			return nil, err
		}
		players = append(players, TablePlayer{
			ID:          id,
			DisplayName: p.DisplayName,
			Nick:        nick,
			Groups:      p.Groups,
			Known:       true,
		})
	}

	ids := make([]string, 0, len(outsiders))
	for id := range outsiders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		players = append(players, TablePlayer{
			ID:          id,
			DisplayName: id,
			Nick:        strings.TrimPrefix(id, "@"),
			Groups:      []string{config.OutsiderGroup},
			Known:       false,
		})
	}
	return players, nil
}

// sortTablePlayers orders the matrix: known players by primary-group rank,
// most games first within a group, name as tie-break; outsiders always last.
func sortTablePlayers(cfg *config.Config, players []TablePlayer) {
	sort.SliceStable(players, func(a, b int) bool {
		pa, pb := players[a], players[b]
		if pa.Known != pb.Known {
			return pa.Known
		}
		ra, rb := cfg.GroupRank(pa.Groups), cfg.GroupRank(pb.Groups)
		if ra != rb {
			return ra < rb
		}
		if pa.TotalGames != pb.TotalGames {
			return pa.TotalGames > pb.TotalGames
		}
		return pa.DisplayName < pb.DisplayName
	})
}
