// Package report renders the static HTML site: the maturity league page with
// its match matrix, ratings, and ranking graph, and the hive matchup matrix
// page. Templates and front-end assets are embedded in the binary.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cnc-league/cnc/internal/config"
	"github.com/cnc-league/cnc/internal/hive"
	"github.com/cnc-league/cnc/internal/league"
	"github.com/cnc-league/cnc/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// Builder generates the site from the data directory into the output
// directory.
type Builder struct {
	// DataDir holds hive.toml, maturity.csv, and the games cache.
	DataDir string
	// OutputDir receives index.html, hive.html, and static assets.
	OutputDir string
}

// MatchLogPath is the maturity league match log inside the data directory.
func (b *Builder) MatchLogPath() string {
	return filepath.Join(b.DataDir, "maturity.csv")
}

// ConfigPath is the hive.toml roster inside the data directory.
func (b *Builder) ConfigPath() string {
	return filepath.Join(b.DataDir, "hive.toml")
}

// CachePath is the hive games cache inside the data directory.
func (b *Builder) CachePath() string {
	return filepath.Join(b.DataDir, "hive_games_cache.json")
}

// Build generates the whole site: both pages plus static assets. A ranking
// cycle or broken input aborts the build; nothing is partially ranked.
func (b *Builder) Build() error {
	logger.Op.WithField("output", b.OutputDir).Info("Starting build")

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cfg, err := config.Load(b.ConfigPath())
	if err != nil {
		return err
	}

	matches, err := league.LoadMatches(b.MatchLogPath())
	if err != nil {
		return err
	}
	indexHTML, err := RenderIndex(matches)
	if err != nil {
		return err
	}
	if err := b.writePage("index.html", indexHTML); err != nil {
		return err
	}

	cache := hive.LoadCache(b.CachePath())
	games := hive.ExtractGames(cache.AllGames())
	table, err := hive.BuildTableData(cfg, games)
	if err != nil {
		return err
	}
	hiveHTML, err := RenderHive(table)
	if err != nil {
		return err
	}
	if err := b.writePage("hive.html", hiveHTML); err != nil {
		return err
	}

	if err := b.copyStatic(); err != nil {
		return err
	}

	logger.Op.Info("Build completed")
	return nil
}

func (b *Builder) writePage(name string, content []byte) error {
	path := filepath.Join(b.OutputDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	logger.Op.WithField("page", name).Info("Generated page")
	return nil
}

// copyStatic materializes the embedded static assets under the output
// directory, replacing whatever a previous build left there.
func (b *Builder) copyStatic() error {
	target := filepath.Join(b.OutputDir, "static")
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear static directory: %w", err)
	}

	return fs.WalkDir(staticFS, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dest := filepath.Join(b.OutputDir, path)
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		data, err := staticFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded asset %s: %w", path, err)
		}
		return os.WriteFile(dest, data, 0o644)
	})
}
