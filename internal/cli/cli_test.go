package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phanxgames/famexplorer"
	"github.com/phanxgames/famexplorer/internal/config"
)

const testProfiles = `[
  {"handle": "alice", "name": "Alice", "profileImageUrl": "https://pbs.twimg.com/profile_images/1/a.jpg", "followersCount": 1234567},
  {"handle": "bobby", "name": "Bob", "profileImageUrl": "https://pbs.twimg.com/profile_images/2/b.jpg"},
  {"handle": "carolb", "name": "Carol Bright"},
  {"name": "nobody"}
]`

const testAtlas = `{"coordinates": {
  "/sprite-sheet-images/source_images/1-::-a.jpg": {"x": 96, "y": 192},
  "/sprite-sheet-images/source_images/default_profile-images.png": {"x": 864, "y": 0}
}, "properties": {"width": 960, "height": 480}}`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCommandMetadata(t *testing.T) {
	run := NewRunCommand()
	assert.Equal(t, "run", run.Use)
	assert.NotEmpty(t, run.Example)
	for _, flag := range []string{"window-width", "window-height", "window-title", "window-fullscreen", "watch", "script", "screenshot-dir", "open-delay", "close-grace", "initial-scale"} {
		assert.NotNil(t, run.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	search := NewSearchCommand()
	assert.Equal(t, "search <query>", search.Use)
	assert.NotNil(t, search.Flags().Lookup("limit"))

	root := NewRootCmd()
	for _, flag := range []string{"config", "profiles", "profiles-db", "atlas", "atlas-image", "size-factor", "log-level", "log-file", "debug"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestSearch_JSON(t *testing.T) {
	dir := t.TempDir()
	profiles := writeTestFile(t, dir, "fam.json", testProfiles)

	out, err := execute(t, "search", "@B", "--profiles", profiles)
	require.NoError(t, err)
	assert.Contains(t, out, "@bobby")
	assert.Contains(t, out, "@carolb")
	assert.NotContains(t, out, "@alice")
	assert.Contains(t, out, "(2 of 4 profiles match)")
}

func TestSearch_Limit(t *testing.T) {
	dir := t.TempDir()
	profiles := writeTestFile(t, dir, "fam.json", testProfiles)

	out, err := execute(t, "search", "", "--profiles", profiles, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "@alice")
	assert.Contains(t, out, "1,234,567")
	assert.NotContains(t, out, "@bobby")
	assert.Contains(t, out, "(4 of 4 profiles match)")
}

func TestSearch_NoSource(t *testing.T) {
	_, err := execute(t, "search", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile source")
}

func TestSearch_ConflictingSources(t *testing.T) {
	_, err := execute(t, "search", "x", "--profiles", "a.json", "--profiles-db", "b.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestImportThenSearchStore(t *testing.T) {
	dir := t.TempDir()
	profiles := writeTestFile(t, dir, "fam.json", testProfiles)
	db := filepath.Join(dir, "fam.db")

	out, err := execute(t, "import", profiles, "--profiles-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 profiles into "+db)

	out, err = execute(t, "search", "bright", "--profiles-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "@carolb")
	assert.Contains(t, out, "(1 of 3 profiles match)")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	atlas := writeTestFile(t, dir, "atlas.json", testAtlas)

	out, err := execute(t, "resolve",
		"https://pbs.twimg.com/profile_images/1/a.jpg",
		"https://pbs.twimg.com/profile_images/9/z.jpg",
		"--atlas", atlas, "--atlas-image", "")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var hit, fallback string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "1-::-a.jpg"):
			hit = l
		case strings.Contains(l, "9-::-z.jpg"):
			fallback = l
		}
	}
	// 960/8 - 96/8 = 108, 480/8 - 192/8 = 36
	assert.Contains(t, hit, "108.00")
	assert.Contains(t, hit, "36.00")
	assert.Contains(t, hit, "hit")
	// default entry: 120 - 108 = 12, 60 - 0 = 60
	assert.Contains(t, fallback, "12.00")
	assert.Contains(t, fallback, "60.00")
	assert.Contains(t, fallback, "default")
}

func TestResolve_MissingAtlas(t *testing.T) {
	_, err := execute(t, "resolve", "x", "--atlas", filepath.Join(t.TempDir(), "none.json"), "--atlas-image", "")
	assert.Error(t, err)
}

func TestNewExplorerFromConfig(t *testing.T) {
	cfg := GetConfig(context.Background())
	cfg.OpenDelay = 0
	cfg.ScreenshotDir = "shots"
	e := newExplorer(cfg, zap.NewNop())
	defer e.Close()

	assert.Equal(t, "shots", e.ScreenshotDir)
	assert.Equal(t, famexplorer.DefaultOpenDelay, e.Tooltip().OpenDelay, "zero delay falls back to the default")
	assert.InDelta(t, config.DefaultInitialScale, e.Viewport().Transform().Scale, 1e-9)
}

func TestEventLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := eventLog{logger: zap.New(core)}
	sink.Emit(famexplorer.Event{Type: famexplorer.EventNavigate, Handle: "alice", Index: 1, Count: 2})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "alice", fields["handle"])
	assert.Equal(t, famexplorer.EventNavigate.String(), fields["type"])
	assert.EqualValues(t, 2, fields["count"])
}
