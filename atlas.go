package famexplorer

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// ImageKeyPrefix is the path every source image was packed under.
	ImageKeyPrefix = "/sprite-sheet-images/source_images/"

	// DefaultImageKey addresses the generic default avatar tile. It is also
	// the fallback for any image missing from the manifest.
	DefaultImageKey = ImageKeyPrefix + "default_profile-images.png"

	defaultAvatarMarker = "default_profile_images"
	profileImagesMarker = "profile_images"
	keySeparator        = "-::-"
)

// AtlasProperties holds the pixel size of the packed atlas page. A zero
// width and height means the atlas has not been loaded yet.
type AtlasProperties struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Loaded reports whether the properties describe a loaded atlas.
func (p AtlasProperties) Loaded() bool {
	return p.Width != 0 || p.Height != 0
}

// AtlasEntry is the full-resolution offset of one source image in the atlas.
type AtlasEntry struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Atlas holds the atlas page image, its properties, and a map of normalized
// image keys to tile offsets.
type Atlas struct {
	// Page is the packed atlas image. May be nil when only coordinates are
	// needed (tests, the resolve subcommand).
	Page       *ebiten.Image
	Properties AtlasProperties
	entries    map[string]AtlasEntry
}

// NewAtlas builds an atlas from an already decoded coordinate map.
func NewAtlas(props AtlasProperties, entries map[string]AtlasEntry, page *ebiten.Image) *Atlas {
	if entries == nil {
		entries = make(map[string]AtlasEntry)
	}
	return &Atlas{Page: page, Properties: props, entries: entries}
}

// Len returns the number of entries in the atlas.
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Entry returns the raw entry stored under key.
func (a *Atlas) Entry(key string) (AtlasEntry, bool) {
	if a == nil {
		return AtlasEntry{}, false
	}
	e, ok := a.entries[key]
	return e, ok
}

// ImageKey derives the normalized atlas key for a profile image URL.
//
//	https://pbs.twimg.com/profile_images/1579896394919383051/ahIN3HUB.jpg
//	-> /sprite-sheet-images/source_images/1579896394919383051-::-ahIN3HUB.jpg
//
// URLs of the platform's default avatar map to DefaultImageKey.
func ImageKey(url string) string {
	if strings.Contains(url, defaultAvatarMarker) {
		return DefaultImageKey
	}
	var id, file string
	if _, rest, found := strings.Cut(url, profileImagesMarker); found {
		segs := strings.Split(rest, "/")
		if len(segs) > 1 {
			id = segs[1]
		}
		if len(segs) > 2 {
			file = segs[2]
		}
	}
	return ImageKeyPrefix + id + keySeparator + file
}

// Resolve maps an image URL to the tile's offset in render space, where the
// atlas is scaled down by sizeFactor.
//
// It returns false when there is nothing to position: a nil atlas, an empty
// URL, an atlas whose properties are not loaded yet, or a non-positive
// sizeFactor. Callers draw a placeholder in that case.
//
// A key missing from the manifest is retried once with DefaultImageKey. If
// that is missing too, the raw offset (0, 0) is used.
//
// The atlas was packed right-to-left and bottom-to-top relative to render
// space, so both axes are reflected:
//
//	renderX = width/sizeFactor - x/sizeFactor
//	renderY = height/sizeFactor - y/sizeFactor
func (a *Atlas) Resolve(imageURL string, sizeFactor float64) (Vec2, bool) {
	if a == nil || imageURL == "" || !a.Properties.Loaded() || sizeFactor <= 0 {
		return Vec2{}, false
	}
	pos := a.toRenderSpace(a.lookup(ImageKey(imageURL)), sizeFactor)
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		pos = a.toRenderSpace(a.lookup(DefaultImageKey), sizeFactor)
	}
	return pos, true
}

// lookup returns the entry for key, or NaN coordinates when absent so the
// caller can detect the miss after conversion.
func (a *Atlas) lookup(key string) AtlasEntry {
	if e, ok := a.entries[key]; ok {
		return e
	}
	if key == DefaultImageKey {
		return AtlasEntry{}
	}
	return AtlasEntry{X: math.NaN(), Y: math.NaN()}
}

func (a *Atlas) toRenderSpace(e AtlasEntry, sizeFactor float64) Vec2 {
	return Vec2{
		X: a.Properties.Width/sizeFactor - e.X/sizeFactor,
		Y: a.Properties.Height/sizeFactor - e.Y/sizeFactor,
	}
}

// SourceRect inverts the render-space reflection and returns the
// full-resolution rectangle of the tile on the atlas page.
func (a *Atlas) SourceRect(pos Vec2, sizeFactor float64, tileSize int) image.Rectangle {
	x := int(math.Round((a.Properties.Width/sizeFactor - pos.X) * sizeFactor))
	y := int(math.Round((a.Properties.Height/sizeFactor - pos.Y) * sizeFactor))
	return image.Rect(x, y, x+tileSize, y+tileSize)
}

// LoadAtlas parses an atlas manifest and associates the given page image.
// Two formats are accepted, detected by their top-level keys:
//
//	{"coordinates": {key: {"x", "y"}}, "properties": {"width", "height"}}
//	{"frames": {key: {"frame": {"x", "y", "w", "h"}}}, "meta": {"size": {"w", "h"}}}
//
// The second is the TexturePacker hash format.
func LoadAtlas(jsonData []byte, page *ebiten.Image) (*Atlas, error) {
	var shape struct {
		Coordinates json.RawMessage `json:"coordinates"`
		Properties  json.RawMessage `json:"properties"`
		Frames      json.RawMessage `json:"frames"`
		Meta        json.RawMessage `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &shape); err != nil {
		return nil, fmt.Errorf("famexplorer: failed to parse atlas JSON: %w", err)
	}

	atlas := NewAtlas(AtlasProperties{}, nil, page)

	switch {
	case shape.Coordinates != nil:
		if err := parseCoordinates(shape.Coordinates, shape.Properties, atlas); err != nil {
			return nil, err
		}
	case shape.Frames != nil:
		if err := parseHashFrames(shape.Frames, shape.Meta, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("famexplorer: atlas JSON has neither \"coordinates\" nor \"frames\" key")
	}

	if atlas.Properties.Width < 0 || atlas.Properties.Height < 0 {
		return nil, fmt.Errorf("famexplorer: atlas size %vx%v is negative",
			atlas.Properties.Width, atlas.Properties.Height)
	}
	if page != nil && !atlas.Properties.Loaded() {
		b := page.Bounds()
		atlas.Properties = AtlasProperties{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

type jsonMeta struct {
	Size jsonSize `json:"size"`
}

// parseCoordinates parses the explorer manifest format.
func parseCoordinates(coords, props json.RawMessage, atlas *Atlas) error {
	if err := json.Unmarshal(coords, &atlas.entries); err != nil {
		return fmt.Errorf("famexplorer: failed to parse atlas coordinates: %w", err)
	}
	if props == nil {
		return nil
	}
	if err := json.Unmarshal(props, &atlas.Properties); err != nil {
		return fmt.Errorf("famexplorer: failed to parse atlas properties: %w", err)
	}
	return nil
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw, meta json.RawMessage, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("famexplorer: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.entries[name] = AtlasEntry{X: float64(f.Frame.X), Y: float64(f.Frame.Y)}
	}
	if meta == nil {
		return nil
	}
	var m jsonMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		return fmt.Errorf("famexplorer: failed to parse atlas meta: %w", err)
	}
	atlas.Properties = AtlasProperties{Width: float64(m.Size.W), Height: float64(m.Size.H)}
	return nil
}
