package famexplorer

import (
	"fmt"
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusOverlay is a small text box in the canvas' bottom-left corner. Its
// text is refreshed once a second by a recurring timer and re-rasterized only
// when it changes.
type statusOverlay struct {
	Hidden bool

	img   *ebiten.Image
	text  string
	dirty bool
}

const (
	statusWidth  = 220
	statusHeight = 36
)

// refreshStatus rebuilds the overlay text. Scheduled every second.
func (e *Explorer) refreshStatus() {
	text := statusText(ebiten.ActualTPS(), e.layout.Count(), e.index.Count(), e.index.Query() != "")
	if text != e.status.text {
		e.status.text = text
		e.status.dirty = true
	}
}

// statusText formats the overlay contents.
func statusText(tps float64, tiles, matches int, filtering bool) string {
	s := fmt.Sprintf("TPS: %.1f\ntiles: %s", tps, humanize.Comma(int64(tiles)))
	if filtering {
		s += fmt.Sprintf("  matches: %s", humanize.Comma(int64(matches)))
	}
	return s
}

// SetStatusVisible shows or hides the status overlay.
func (e *Explorer) SetStatusVisible(visible bool) {
	e.status.Hidden = !visible
}

func (o *statusOverlay) draw(screen *ebiten.Image, canvas Rect) {
	if o.Hidden || o.text == "" {
		return
	}
	if o.img == nil {
		o.img = ebiten.NewImage(statusWidth, statusHeight)
		o.dirty = true
	}
	if o.dirty {
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
		o.dirty = false
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(canvas.X+uiPadding, canvas.Y+canvas.Height-statusHeight-uiPadding)
	screen.DrawImage(o.img, &op)
}
