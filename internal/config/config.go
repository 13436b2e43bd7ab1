// Package config loads and validates hive.toml, the roster of known players
// and the report settings.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// OutsiderGroup is the implicit group for players discovered in fetched games
// that are not part of the roster. It never needs to appear in group_order.
const OutsiderGroup = "(outsider)"

// Player describes one known player from hive.toml.
type Player struct {
	// DisplayName is shown in tables instead of the raw nick.
	DisplayName string `koanf:"display_name"`

	// Groups the player belongs to; the first entry is the player's primary
	// group and drives table ordering.
	Groups []string `koanf:"groups"`

	// Hivegame lists every hivegame.com nick the player has used.
	Hivegame []string `koanf:"hivegame"`

	// HivegameCurrent is the nick in active use. Optional when the player
	// only ever had one nick.
	HivegameCurrent string `koanf:"hivegame_current"`
}

// CurrentNick resolves the nick currently in use: the explicit current nick
// when set, the sole nick otherwise. Multiple nicks without an explicit
// current one is a roster error.
func (p Player) CurrentNick() (string, error) {
	if p.HivegameCurrent != "" {
		return p.HivegameCurrent, nil
	}
	if len(p.Hivegame) == 1 {
		return p.Hivegame[0], nil
	}
	return "", fmt.Errorf("%w: cannot determine current hivegame nick for %s: multiple nicks and no hivegame_current set",
		ErrInvalidConfig, p.DisplayName)
}

// IsBot reports whether the player is in the "bot" group.
func (p Player) IsBot() bool {
	for _, g := range p.Groups {
		if g == "bot" {
			return true
		}
	}
	return false
}

// HasNick reports whether nick is any of the player's past or present nicks.
func (p Player) HasNick(nick string) bool {
	for _, n := range p.Hivegame {
		if n == nick {
			return true
		}
	}
	return false
}

// Settings carries the report-wide options from hive.toml.
type Settings struct {
	// GroupOrder fixes table ordering of player groups, top to bottom.
	GroupOrder []string `koanf:"group_order"`

	// HighlightGames names groups whose games get visual emphasis.
	HighlightGames []string `koanf:"highlight_games"`

	// FetchOutsiders names groups whose opponents are shown even when not
	// on the roster.
	FetchOutsiders []string `koanf:"fetch_outsiders"`
}

// Config is the parsed hive.toml.
type Config struct {
	Settings Settings          `koanf:"settings"`
	Players  map[string]Player `koanf:"players"`
}

// Validate checks that every group used by a player is declared in
// settings.group_order. The outsider group is exempt.
func (c *Config) Validate() error {
	valid := make(map[string]struct{}, len(c.Settings.GroupOrder)+1)
	for _, g := range c.Settings.GroupOrder {
		valid[g] = struct{}{}
	}
	valid[OutsiderGroup] = struct{}{}

	undefined := make(map[string]struct{})
	for _, player := range c.Players {
		for _, g := range player.Groups {
			if _, ok := valid[g]; !ok {
				undefined[g] = struct{}{}
			}
		}
	}
	if len(undefined) == 0 {
		return nil
	}

	names := make([]string, 0, len(undefined))
	for g := range undefined {
		names = append(names, g)
	}
	sort.Strings(names)
	return fmt.Errorf("%w: groups [%s] are used by players but not defined in settings.group_order (current order: [%s])",
		ErrInvalidConfig, strings.Join(names, ", "), strings.Join(c.Settings.GroupOrder, ", "))
}

// GroupRank returns the position of a player's primary group in group_order.
// Outsiders and unknown groups sort after every declared group.
func (c *Config) GroupRank(groups []string) int {
	if len(groups) == 0 {
		return len(c.Settings.GroupOrder)
	}
	for i, g := range c.Settings.GroupOrder {
		if g == groups[0] {
			return i
		}
	}
	return len(c.Settings.GroupOrder)
}

// PlayerIDs returns the roster IDs, sorted for deterministic iteration.
func (c *Config) PlayerIDs() []string {
	ids := make([]string, 0, len(c.Players))
	for id := range c.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindByNick returns the roster ID and player owning the given hivegame nick.
func (c *Config) FindByNick(nick string) (string, Player, bool) {
	for _, id := range c.PlayerIDs() {
		p := c.Players[id]
		if p.HasNick(nick) {
			return id, p, true
		}
	}
	return "", Player{}, false
}
