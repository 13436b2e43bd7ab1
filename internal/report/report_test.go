package report

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnc-league/cnc/internal/hive"
	"github.com/cnc-league/cnc/internal/league"
	"github.com/cnc-league/cnc/internal/ranking"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestRenderIndex(t *testing.T) {
	matches := []league.Match{
		{Date: day("2025-03-01"), Player1: "Alice", Player2: "Bob", Score1: 3, Score2: 1},
		{Date: day("2025-03-08"), Player1: "Bob", Player2: "Carol", Score1: 2, Score2: 0},
	}

	html, err := RenderIndex(matches)
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "Alice")
	assert.Contains(t, page, "Bob")
	assert.Contains(t, page, "Carol")
	assert.Contains(t, page, "Mar 1")
	assert.Contains(t, page, "3 – 1")
	// 2 matches out of 3 possible pairings.
	assert.Contains(t, page, "66.67")
	assert.Contains(t, page, "window.graphData")
}

func TestRenderIndexCycleFails(t *testing.T) {
	matches := []league.Match{
		{Date: day("2025-03-01"), Player1: "Alice", Player2: "Bob", Score1: 1, Score2: 0},
		{Date: day("2025-03-02"), Player1: "Bob", Player2: "Carol", Score1: 1, Score2: 0},
		{Date: day("2025-03-03"), Player1: "Carol", Player2: "Alice", Score1: 1, Score2: 0},
	}

	_, err := RenderIndex(matches)

	require.Error(t, err)
	var cycleErr *ranking.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestRenderHive(t *testing.T) {
	table := &hive.TableData{
		Players: []hive.TablePlayer{
			{ID: "emily", DisplayName: "Emily", Nick: "emilybee", Groups: []string{"core"}, Known: true, TotalGames: 2},
			{ID: "frank", DisplayName: "Frank", Nick: "frankly", Groups: []string{"core"}, Known: true, TotalGames: 2},
		},
		Matchups: []hive.Matchup{
			{Player1: "emily", Player2: "frank", Rated: hive.WLD{Wins: 1, Losses: 1}},
			{Player1: "frank", Player2: "emily", Rated: hive.WLD{Wins: 1, Losses: 1}},
		},
		GroupOrder: []string{"core"},
	}

	html, err := RenderHive(table)
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "Emily")
	assert.Contains(t, page, "@emilybee")
	assert.Contains(t, page, "1W 1L 0D")
	assert.Contains(t, page, "window.tableData")
}

func TestBuild(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "build")

	writeFile := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}
	writeFile("hive.toml", `
[settings]
group_order = ["core"]

[players.emily]
display_name = "Emily"
groups = ["core"]
hivegame = ["emilybee"]
`)
	writeFile("maturity.csv", "date,player1,player2,score1,score2\n2025-03-01,Alice,Bob,3,1\n")

	builder := &Builder{DataDir: dataDir, OutputDir: outputDir}
	require.NoError(t, builder.Build())

	for _, name := range []string{"index.html", "hive.html", filepath.Join("static", "style.css"), filepath.Join("static", "graph.js")} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		assert.NoError(t, err, name)
	}

	// Every relative src/href in the generated pages must resolve against the
	// output directory, or the browser will 404 the asset silently.
	linkRe := regexp.MustCompile(`(?:src|href)="([^"]+)"`)
	for _, page := range []string{"index.html", "hive.html"} {
		data, err := os.ReadFile(filepath.Join(outputDir, page))
		require.NoError(t, err)
		refs := linkRe.FindAllStringSubmatch(string(data), -1)
		require.NotEmpty(t, refs, page)
		for _, m := range refs {
			ref := m[1]
			if strings.Contains(ref, "://") || strings.HasPrefix(ref, "#") {
				continue
			}
			_, statErr := os.Stat(filepath.Join(outputDir, filepath.FromSlash(ref)))
			assert.NoError(t, statErr, "%s references %s", page, ref)
		}
	}
}

func TestBuildFailsOnMissingMatchLog(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "hive.toml"), []byte(`
[settings]
group_order = []
`), 0o644))

	builder := &Builder{DataDir: dataDir, OutputDir: filepath.Join(t.TempDir(), "build")}
	err := builder.Build()

	assert.Error(t, err)
}
