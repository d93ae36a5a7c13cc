package source

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/famexplorer"
)

const profilesJSON = `[
  {"handle": "alice", "name": "Alice", "profileImageUrl": "https://pbs.twimg.com/profile_images/1/a.jpg",
   "followersCount": 1200, "famFollowerCount": 30, "bio": "hi",
   "links": [{"url": "https://alice.example", "label": "site"}]},
  {"handle": "bobby", "name": "Bob", "profileImageUrl": "https://pbs.twimg.com/profile_images/2/b.jpg"},
  {"handle": "carolb", "name": "Carol Bright", "profileImageUrl": ""}
]`

const atlasJSON = `{"coordinates": {
  "/sprite-sheet-images/source_images/1-::-a.jpg": {"x": 0, "y": 0}
}, "properties": {"width": 192, "height": 96}}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

func TestDecodeProfiles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "array", input: profilesJSON, want: []string{"alice", "bobby", "carolb"}},
		{name: "wrapped", input: `{"profiles": [{"handle": "dan"}]}`, want: []string{"dan"}},
		{name: "empty array", input: `[]`, want: []string{}},
		{name: "wrapped without key", input: `{}`, want: []string{}},
		{name: "blank", input: "  \n", wantErr: true},
		{name: "malformed", input: `[{"handle": }]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, err := DecodeProfiles(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, profiles)
			handles := make([]string, len(profiles))
			for i, p := range profiles {
				handles[i] = p.Handle
			}
			assert.Equal(t, tt.want, handles)
		})
	}
}

func TestDecodeProfiles_Fields(t *testing.T) {
	profiles, err := DecodeProfiles(strings.NewReader(profilesJSON))
	require.NoError(t, err)
	a := profiles[0]
	assert.Equal(t, "Alice", a.Name)
	assert.Equal(t, 1200, a.FollowersCount)
	assert.Equal(t, 30, a.FamFollowerCount)
	assert.Equal(t, []famexplorer.Link{{URL: "https://alice.example", Label: "site"}}, a.Links)
}

func TestLoadProfiles_Missing(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_ImportList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	profiles, err := DecodeProfiles(strings.NewReader(profilesJSON))
	require.NoError(t, err)
	profiles = append(profiles, famexplorer.Profile{Name: "no handle"})

	n, err := store.Import(ctx, profiles)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "profiles without a handle are skipped")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, profiles[:3], got, "round trip keeps order and fields")
}

func TestStore_ImportReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := store.Import(ctx, []famexplorer.Profile{{Handle: "a"}, {Handle: "b"}})
	require.NoError(t, err)
	_, err = store.Import(ctx, []famexplorer.Profile{{Handle: "c"}})
	require.NoError(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Handle)
}

func TestStore_SearchMatchesFilter(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	profiles, err := DecodeProfiles(strings.NewReader(profilesJSON))
	require.NoError(t, err)
	_, err = store.Import(ctx, profiles)
	require.NoError(t, err)

	for _, q := range []string{"", "b", "@B", "bright", "ALI", "zzz", "@"} {
		t.Run(q, func(t *testing.T) {
			got, err := store.Search(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, famexplorer.Filter(profiles, q), got)
		})
	}
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := store.Import(ctx, []famexplorer.Profile{{Handle: "Alice", Name: "Alice"}})
	require.NoError(t, err)

	p, ok, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", p.Handle)

	_, ok, err = store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Profiles:   writeFile(t, dir, "fam.json", profilesJSON),
		Atlas:      writeFile(t, dir, "atlas.json", atlasJSON),
		AtlasImage: writePNG(t, dir, "atlas.png", 192, 96),
	}
	a, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Len(t, a.Profiles, 3)
	assert.JSONEq(t, atlasJSON, string(a.AtlasJSON))
	require.NotNil(t, a.Page)
	assert.Equal(t, image.Rect(0, 0, 192, 96), a.Page.Bounds())
}

func TestLoad_Store(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "fam.db")
	store, err := OpenStore(ctx, dbPath)
	require.NoError(t, err)
	_, err = store.Import(ctx, []famexplorer.Profile{{Handle: "alice"}, {Handle: "bobby"}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	a, err := Load(ctx, Sources{ProfilesDB: dbPath, Profiles: "ignored.json"}, nil)
	require.NoError(t, err)
	require.Len(t, a.Profiles, 2)
	assert.Equal(t, "alice", a.Profiles[0].Handle)
	assert.Nil(t, a.AtlasJSON)
}

func TestLoad_Error(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(context.Background(), Sources{
		Profiles: writeFile(t, dir, "fam.json", profilesJSON),
		Atlas:    filepath.Join(dir, "missing.json"),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read atlas")
}

func TestAssets_Apply(t *testing.T) {
	profiles, err := DecodeProfiles(strings.NewReader(profilesJSON))
	require.NoError(t, err)
	a := &Assets{Profiles: profiles, AtlasJSON: []byte(atlasJSON)}

	e := famexplorer.NewExplorer(famexplorer.Options{})
	defer e.Close()
	require.NoError(t, a.Apply(e))

	assert.Len(t, e.Index().Profiles(), 3)
	require.NotNil(t, e.Atlas())
	assert.Equal(t, 1, e.Atlas().Len())
	_, ok := e.TilePosition(0)
	assert.True(t, ok)
	_, ok = e.TilePosition(2)
	assert.False(t, ok, "empty image URL draws a placeholder")
}

func TestAssets_ApplyBadAtlas(t *testing.T) {
	e := famexplorer.NewExplorer(famexplorer.Options{})
	defer e.Close()
	err := (&Assets{AtlasJSON: []byte(`{"nope": 1}`)}).Apply(e)
	assert.Error(t, err)
	assert.Nil(t, e.Atlas())
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, dir, "fam.json", "[]")
	other := writeFile(t, dir, "other.json", "[]")

	var mu sync.Mutex
	var calls [][]string
	w, err := NewWatcher([]string{watched, ""}, func(paths []string) {
		mu.Lock()
		calls = append(calls, paths)
		mu.Unlock()
	}, nil)
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("[ ]"), 0600))
		require.NoError(t, os.WriteFile(other, []byte("[ ]"), 0600))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) > 0
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, calls, 1, "a burst of writes reports once")
	assert.Equal(t, []string{watched}, calls[0], "unwatched files in the same directory are ignored")
}
