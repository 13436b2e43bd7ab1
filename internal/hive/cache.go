package hive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cnc-league/cnc/internal/config"
	"github.com/cnc-league/cnc/internal/logger"
)

// PlayerCache holds one nick's fetched games and when they were fetched.
type PlayerCache struct {
	LastFetch time.Time      `json:"last_fetch"`
	Games     []GameResponse `json:"games"`
}

// Cache is the on-disk game cache, keyed "@nick". Read-modify-write with no
// locking; callers must ensure single-process access.
type Cache struct {
	Players map[string]PlayerCache `json:"players"`
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{Players: make(map[string]PlayerCache)}
}

// playerKey is the cache key for a nick, e.g. "@emilybee".
func playerKey(nick string) string {
	return "@" + nick
}

// LoadCache reads the cache file. A missing file yields an empty cache; a
// corrupt file is logged and also yields an empty cache so a refetch can
// repair it.
func LoadCache(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Op.WithError(err).Error("Error reading cache file")
		} else {
			logger.Op.Info("No existing cache file found, starting fresh")
		}
		return NewCache()
	}

	cache := NewCache()
	if err := json.Unmarshal(data, cache); err != nil {
		logger.Op.WithError(err).Error("Error parsing cache file, starting fresh")
		return NewCache()
	}
	if cache.Players == nil {
		cache.Players = make(map[string]PlayerCache)
	}
	logger.Op.WithField("games", cache.TotalGames()).Info("Loaded cache")
	return cache
}

// Save persists the cache, creating the parent directory when needed.
func (c *Cache) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	return nil
}

// TotalGames counts games across all cached nicks.
func (c *Cache) TotalGames() int {
	total := 0
	for _, pc := range c.Players {
		total += len(pc.Games)
	}
	return total
}

// AllGames flattens every cached game, in sorted nick order.
func (c *Cache) AllGames() []GameResponse {
	keys := make([]string, 0, len(c.Players))
	for k := range c.Players {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var games []GameResponse
	for _, k := range keys {
		games = append(games, c.Players[k].Games...)
	}
	return games
}

// GamesForPlayer aggregates cached games across all of a player's nicks,
// past and present.
func (c *Cache) GamesForPlayer(player config.Player) []GameResponse {
	var games []GameResponse
	for _, nick := range player.Hivegame {
		if pc, ok := c.Players[playerKey(nick)]; ok {
			games = append(games, pc.Games...)
		}
	}
	return games
}

// RefreshOptions controls a cache refresh run.
type RefreshOptions struct {
	// Force refetches every nick regardless of age.
	Force bool
	// StaleAfter is the maximum cache entry age before refetching. Zero
	// means every entry is stale.
	StaleAfter time.Duration
}

// Refresh fetches games for every roster nick whose cache entry is missing or
// stale, merging new games in and deduplicating by game ID. A fetch failure
// for one nick is skipped and the rest of the batch proceeds; the joined
// failures come back alongside the count of games added, so callers can
// persist the partial result and still report the misses.
func (c *Cache) Refresh(ctx context.Context, fetcher Fetcher, players map[string]config.Player, opts RefreshOptions) (int, error) {
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	newGames := 0
	fetched := false
	var errs []error

	for _, id := range ids {
		for _, nick := range players[id].Hivegame {
			key := playerKey(nick)
			log := logger.Op.WithFields(map[string]interface{}{
				"player": id,
				"nick":   nick,
			})

			if !opts.Force && !c.isStale(key, opts.StaleAfter) {
				log.Debug("Cache entry is fresh, skipping fetch")
				continue
			}

			fetched = true
			games, err := fetcher.GamesForPlayer(ctx, nick)
			if err != nil {
				log.WithError(err).Error("Error fetching games, skipping nick")
				errs = append(errs, fmt.Errorf("fetch %s: %w", key, err))
				continue
			}
			newGames += c.merge(key, games)
		}
	}

	if fetched {
		logger.Op.WithField("new_games", newGames).Info("Fetch summary")
	} else {
		logger.Op.Info("Cache is fresh, skipping fetch")
	}
	return newGames, errors.Join(errs...)
}

// isStale reports whether the entry for key is missing or older than maxAge.
func (c *Cache) isStale(key string, maxAge time.Duration) bool {
	entry, ok := c.Players[key]
	if !ok {
		return true
	}
	if maxAge <= 0 {
		return true
	}
	return entry.LastFetch.Before(time.Now().Add(-maxAge))
}

// merge adds fetched games to the entry for key, deduplicating by game ID,
// and stamps the fetch time. Returns how many games were new.
func (c *Cache) merge(key string, games []GameResponse) int {
	entry, ok := c.Players[key]
	if !ok {
		c.Players[key] = PlayerCache{LastFetch: time.Now().UTC(), Games: games}
		return len(games)
	}

	seen := make(map[string]struct{}, len(entry.Games))
	for _, g := range entry.Games {
		seen[g.GameID] = struct{}{}
	}

	added := 0
	merged := entry.Games
	for _, g := range games {
		if _, ok := seen[g.GameID]; ok {
			continue
		}
		seen[g.GameID] = struct{}{}
		merged = append(merged, g)
		added++
	}

	c.Players[key] = PlayerCache{LastFetch: time.Now().UTC(), Games: merged}
	return added
}
