package source

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // atlas pages are PNG
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/phanxgames/famexplorer"
)

// Sources names the files an explorer is loaded from. Empty fields are
// skipped. ProfilesDB takes precedence over Profiles.
type Sources struct {
	Profiles   string
	ProfilesDB string
	Atlas      string
	AtlasImage string
}

// Assets is decoded explorer data, ready to hand to an Explorer. Profiles is
// nil when no profile source was configured.
type Assets struct {
	Profiles  []famexplorer.Profile
	AtlasJSON []byte
	Page      image.Image
}

// Load reads every configured source concurrently. The first failure cancels
// the rest.
func Load(ctx context.Context, src Sources, logger *zap.Logger) (*Assets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var a Assets
	p := pool.New().WithContext(ctx).WithCancelOnError()

	switch {
	case src.ProfilesDB != "":
		p.Go(func(ctx context.Context) error {
			store, err := OpenStore(ctx, src.ProfilesDB)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			profiles, err := store.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			a.Profiles = profiles
			logger.Debug("profiles read", zap.String("db", src.ProfilesDB), zap.Int("count", len(profiles)))
			return nil
		})
	case src.Profiles != "":
		p.Go(func(context.Context) error {
			profiles, err := LoadProfiles(src.Profiles)
			if err != nil {
				return err
			}
			a.Profiles = profiles
			logger.Debug("profiles read", zap.String("file", src.Profiles), zap.Int("count", len(profiles)))
			return nil
		})
	}
	if src.Atlas != "" {
		p.Go(func(context.Context) error {
			data, err := os.ReadFile(src.Atlas)
			if err != nil {
				return fmt.Errorf("failed to read atlas: %w", err)
			}
			a.AtlasJSON = data
			return nil
		})
	}
	if src.AtlasImage != "" {
		p.Go(func(context.Context) error {
			img, err := decodeImage(src.AtlasImage)
			if err != nil {
				return fmt.Errorf("failed to read atlas image: %w", err)
			}
			a.Page = img
			logger.Debug("atlas page read", zap.String("file", src.AtlasImage),
				zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	return img, err
}

// Apply installs the assets on e. It creates GPU images, so it must run on
// the update goroutine; from elsewhere wrap it in Explorer.Enqueue.
func (a *Assets) Apply(e *famexplorer.Explorer) error {
	if a.AtlasJSON != nil {
		var page *ebiten.Image
		if a.Page != nil {
			page = ebiten.NewImageFromImage(a.Page)
		}
		atlas, err := famexplorer.LoadAtlas(a.AtlasJSON, page)
		if err != nil {
			return err
		}
		e.SetAtlas(atlas)
	}
	if a.Profiles != nil {
		e.SetProfiles(a.Profiles)
	}
	return nil
}
