package cmd

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/config"
	"github.com/cnc-league/cnc/internal/errors"
	"github.com/cnc-league/cnc/internal/hive"
	"github.com/cnc-league/cnc/internal/logger"
)

var (
	fetchDataDir   string
	fetchCacheFile string
	fetchForce     bool
	fetchMaxAge    time.Duration

	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the hivegame.com games cache",
		Long:  `Fetches finished games for every roster nick whose cache entry is missing or stale and merges them into the cache file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(fetchDataDir, "hive.toml")
			cfg, err := config.Load(configPath)
			if err != nil {
				if wrapped := wrapConfigError(configPath, err); wrapped != nil {
					return wrapped
				}
				return err
			}

			cachePath := fetchCacheFile
			if cachePath == "" {
				cachePath = filepath.Join(fetchDataDir, "hive_games_cache.json")
			}

			cache := hive.LoadCache(cachePath)
			client := hive.NewClient()
			added, fetchErr := cache.Refresh(cmd.Context(), client, cfg.Players, hive.RefreshOptions{
				Force:      fetchForce,
				StaleAfter: fetchMaxAge,
			})

			// Persist whatever was fetched before reporting any misses.
			if err := cache.Save(cachePath); err != nil {
				return errors.NewCacheError(cachePath, err)
			}

			logger.User.Infof("Cache now holds %d games (%d new)", cache.TotalGames(), added)
			if fetchErr != nil {
				return errors.NewFetchError(fetchErr)
			}
			return nil
		},
	}
)

func init() {
	fetchCmd.Flags().StringVar(&fetchDataDir, "data-dir", "data", "Directory holding hive.toml and the game cache")
	fetchCmd.Flags().StringVar(&fetchCacheFile, "cache-file", "", "Cache file path (default <data-dir>/hive_games_cache.json)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Refetch every nick regardless of cache age")
	fetchCmd.Flags().DurationVar(&fetchMaxAge, "max-age", 24*time.Hour, "Cache entry age before refetching")
	rootCmd.AddCommand(fetchCmd)
}
