// fam10k loads 10,000 generated profiles into the explorer while the window
// is already open, the way a slow network load would. A stress test for tile
// culling, the search index and the status overlay.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/famexplorer"
)

const (
	screenW   = 1280
	screenH   = 720
	count     = 10_000
	avatars   = 64 // distinct atlas tiles shared by all profiles
	loadDelay = 2 * time.Second
)

var syllables = []string{"ka", "ri", "mo", "le", "zu", "an", "ti", "ro", "ne", "sa", "vi", "do"}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	e := famexplorer.NewExplorer(famexplorer.Options{Width: screenW, Height: screenH})
	e.SetLogger(logger)
	e.SetDebugMode(true)
	e.SetStatusVisible(true)

	// Skeleton tiles show until the collection arrives.
	go func() {
		profiles := generate(count)
		time.Sleep(loadDelay)
		e.Enqueue(func(e *famexplorer.Explorer) {
			page, entries := pack(avatars)
			b := page.Bounds()
			e.SetAtlas(famexplorer.NewAtlas(
				famexplorer.AtlasProperties{Width: float64(b.Dx()), Height: float64(b.Dy())},
				entries,
				page,
			))
			e.SetProfiles(profiles)
		})
	}()

	if err := famexplorer.Run(e, famexplorer.RunConfig{
		Title:  "famexplorer - 10k profiles",
		Width:  screenW,
		Height: screenH,
	}); err != nil {
		log.Fatal(err)
	}
}

func generate(n int) []famexplorer.Profile {
	profiles := make([]famexplorer.Profile, n)
	for i := range profiles {
		name := ""
		for j := 0; j < 2+rand.IntN(3); j++ {
			name += syllables[rand.IntN(len(syllables))]
		}
		profiles[i] = famexplorer.Profile{
			Handle:           fmt.Sprintf("%s_%d", name, i),
			Name:             name,
			ProfileImageURL:  fmt.Sprintf("https://pbs.twimg.com/profile_images/%d/avatar.png", rand.IntN(avatars+8)),
			FollowersCount:   rand.IntN(2_000_000),
			FamFollowerCount: rand.IntN(500),
		}
	}
	return profiles
}

// pack draws n tiles plus the default avatar in slot 0. URLs beyond n fall
// back to the default.
func pack(n int) (*ebiten.Image, map[string]famexplorer.AtlasEntry) {
	const size = famexplorer.DefaultSourceTileSize
	cols := 8
	rows := (n + 1 + cols - 1) / cols
	page := ebiten.NewImage(cols*size, rows*size)
	entries := make(map[string]famexplorer.AtlasEntry, n+1)
	for i := 0; i <= n; i++ {
		x, y := (i%cols)*size, (i/cols)*size
		c := color.RGBA{R: uint8(rand.IntN(200) + 40), G: uint8(rand.IntN(200) + 40), B: uint8(rand.IntN(200) + 40), A: 255}
		if i == 0 {
			c = color.RGBA{R: 90, G: 90, B: 100, A: 255}
		}
		page.SubImage(image.Rect(x+6, y+6, x+size-6, y+size-6)).(*ebiten.Image).Fill(c)
		key := famexplorer.DefaultImageKey
		if i > 0 {
			key = famexplorer.ImageKey(fmt.Sprintf("https://pbs.twimg.com/profile_images/%d/avatar.png", i-1))
		}
		entries[key] = famexplorer.AtlasEntry{X: float64(x), Y: float64(y)}
	}
	return page, entries
}
