// Package famexplorer is an interactive explorer for a large grid of profile
// avatars, built on [Ebitengine].
//
// Every profile is drawn as a small tile cut from one pre-packed atlas page.
// A search box filters the grid by name or handle, dimming the tiles that do
// not match; a "show me M of N" button cycles the view through the matches.
// Clicking a tile opens a detail panel that stays open while the pointer
// rests on the tile or the panel.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	e := famexplorer.NewExplorer(famexplorer.Options{})
//	e.SetProfiles(profiles)
//	e.SetAtlas(atlas)
//	famexplorer.Run(e, famexplorer.RunConfig{Title: "fam explorer"})
//
// [Explorer] implements [ebiten.Game], so it can also be passed to
// ebiten.RunGame directly or embedded in a larger game.
//
// # Components
//
// The explorer is assembled from parts that can be used on their own:
//
//   - [Atlas] maps avatar URLs to tile offsets on the atlas page.
//   - [SearchIndex] and [Filter] compute the match set for a query.
//   - [Navigator] cycles through the match set.
//   - [Tooltip] is the detail panel's hover and click state machine.
//   - [Viewport] owns pan, zoom and the animated centring on a tile.
//   - [TileLayout] places tiles in a centred, wrapping grid.
//
// # Time
//
// Nothing in the package starts goroutines or reads the wall clock. All
// delays (the tooltip's open debounce and close grace, the centring
// animation) run on a [Timers] queue advanced by [Explorer.Advance], which
// [Explorer.Update] calls once per tick. Tests drive time explicitly.
//
// Data loaded on other goroutines is handed over with [Explorer.Enqueue].
//
// # Testing
//
// Input can be injected without a window: [Explorer.InjectClick],
// [Explorer.InjectDrag], [Explorer.InjectKey] and [Explorer.InjectText]
// queue synthetic events that are consumed one per Update, ahead of real
// devices.
//
// [Ebitengine]: https://ebitengine.org
package famexplorer
