package famexplorer

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Palette used by the explorer chrome.
var (
	colorPlaceholder = Color{0.24, 0.26, 0.32, 1}
	colorBar         = Color{0.07, 0.08, 0.11, 1}
	colorField       = Color{0.16, 0.17, 0.22, 1}
	colorFieldFocus  = Color{0.22, 0.24, 0.31, 1}
	colorButton      = Color{0.29, 0.36, 0.82, 1}
	colorButtonOff   = Color{0.20, 0.22, 0.28, 1}
	colorPanel       = Color{0.05, 0.05, 0.07, 0.94}
	colorAnchor      = Color{1, 0.85, 0.3, 1}
)

const (
	excludedAlpha    = 0.2
	submitIdleLabel  = "show me ->"
	debugGlyphWidth  = 6  // ebitenutil debug font advance
	debugLineHeight  = 16 // ebitenutil debug font line
	panelAvatarSize  = 48.0
	panelTextPadding = 10.0
)

// Draw renders the canvas, the tooltip panel and the interface chrome.
func (e *Explorer) Draw(screen *ebiten.Image) {
	var start time.Time
	if e.debug {
		start = time.Now()
	}
	if e.ClearColor.A > 0 {
		screen.Fill(e.ClearColor.toRGBA())
	}

	e.stats.tiles, e.stats.placeholders = 0, 0
	canvas := screen.SubImage(rectToImage(e.ui.canvas)).(*ebiten.Image)
	e.drawTiles(canvas)
	if st := e.tooltip.State(); st.Visible && st.Selected != nil {
		e.drawPanel(screen, st)
	}
	e.drawChrome(screen)
	e.status.draw(screen, e.ui.canvas)
	e.flushScreenshots(screen)

	if e.debug {
		e.stats.drawTime = time.Since(start)
		e.debugLog(e.stats)
	}
}

// drawTiles draws every tile in the visible rows. Resolved tiles are cut from
// the atlas page; the rest are flat placeholders.
func (e *Explorer) drawTiles(dst *ebiten.Image) {
	visible := e.viewport.VisibleBounds()
	first, last := e.layout.VisibleRange(visible)
	e.stats.culled = e.layout.Count() - (last - first)
	view := e.viewport.viewMatrix()
	src := e.opts.SourceTileSize
	anchor := e.tooltip.State().Anchor

	var op ebiten.DrawImageOptions
	for i := first; i < last; i++ {
		b := e.layout.Bounds(i)
		if !b.Intersects(visible) {
			e.stats.culled++
			continue
		}
		p := e.profileAt(i)
		pos, resolved := e.TilePosition(i)

		op.GeoM.Reset()
		op.ColorScale.Reset()
		if resolved && e.atlas != nil && e.atlas.Page != nil {
			s := b.Width / float64(src)
			op.GeoM.Scale(s, s)
			op.GeoM.Translate(b.X, b.Y)
			op.GeoM.Concat(geoM(view))
			if p != nil && e.index.Excluded(p.Handle) {
				op.ColorScale.ScaleAlpha(excludedAlpha)
			}
			sub := e.atlas.Page.SubImage(e.atlas.SourceRect(pos, e.opts.SizeFactor, src)).(*ebiten.Image)
			dst.DrawImage(sub, &op)
			e.stats.tiles++
		} else {
			e.fillRect(dst, b, view, e.placeholderColor(p), &op)
			e.stats.placeholders++
		}
		if p != nil && anchor != "" && p.Handle == anchor {
			e.strokeRect(dst, b, view, colorAnchor)
		}
	}
}

// placeholderColor dims placeholders of profiles the query excludes, like
// resolved tiles.
func (e *Explorer) placeholderColor(p *Profile) Color {
	c := colorPlaceholder
	if p != nil && e.index.Excluded(p.Handle) {
		c.A *= excludedAlpha
	}
	return c
}

func (e *Explorer) fillRect(dst *ebiten.Image, r Rect, view [6]float64, c Color, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(geoM(view))
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(c.toRGBA())
	dst.DrawImage(WhitePixel, op)
}

func (e *Explorer) strokeRect(dst *ebiten.Image, r Rect, view [6]float64, c Color) {
	var op ebiten.DrawImageOptions
	t := 0.5
	e.fillRect(dst, Rect{X: r.X - t, Y: r.Y - t, Width: r.Width + 2*t, Height: t}, view, c, &op)
	e.fillRect(dst, Rect{X: r.X - t, Y: r.Y + r.Height, Width: r.Width + 2*t, Height: t}, view, c, &op)
	e.fillRect(dst, Rect{X: r.X - t, Y: r.Y, Width: t, Height: r.Height}, view, c, &op)
	e.fillRect(dst, Rect{X: r.X + r.Width, Y: r.Y, Width: t, Height: r.Height}, view, c, &op)
}

// drawPanel draws the profile detail panel next to its anchor tile.
func (e *Explorer) drawPanel(screen *ebiten.Image, st TooltipState) {
	panel := e.panelRect()
	var op ebiten.DrawImageOptions
	e.fillRect(screen, panel, identityTransform, colorPanel, &op)
	e.fillRect(screen, panelCloseRect(panel), identityTransform, colorButtonOff, &op)
	cr := panelCloseRect(panel)
	ebitenutil.DebugPrintAt(screen, "x", int(cr.X)+5, int(cr.Y))

	avatar := Rect{X: panel.X + panelTextPadding, Y: panel.Y + panelTextPadding, Width: panelAvatarSize, Height: panelAvatarSize}
	if pos, ok := e.atlas.Resolve(st.Selected.ProfileImageURL, e.opts.SizeFactor); ok && e.atlas.Page != nil {
		src := e.opts.SourceTileSize
		s := panelAvatarSize / float64(src)
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(avatar.X, avatar.Y)
		sub := e.atlas.Page.SubImage(e.atlas.SourceRect(pos, e.opts.SizeFactor, src)).(*ebiten.Image)
		screen.DrawImage(sub, &op)
	} else {
		e.fillRect(screen, avatar, identityTransform, colorPlaceholder, &op)
	}

	tx := int(avatar.X + avatar.Width + panelTextPadding)
	ty := int(avatar.Y)
	maxCols := int((panel.X + panel.Width - panelTextPadding - float64(tx)) / debugGlyphWidth)
	ebitenutil.DebugPrintAt(screen, truncate(st.Selected.Name, maxCols-3), tx, ty)
	ebitenutil.DebugPrintAt(screen, truncate("@"+st.Selected.Handle, maxCols), tx, ty+debugLineHeight)

	lines := panelLines(st.Selected, int((panel.Width-2*panelTextPadding)/debugGlyphWidth))
	y := int(avatar.Y + avatar.Height + panelTextPadding/2)
	bottom := int(panel.Y + panel.Height - debugLineHeight)
	for _, l := range lines {
		if y > bottom {
			break
		}
		ebitenutil.DebugPrintAt(screen, l, int(panel.X+panelTextPadding), y)
		y += debugLineHeight
	}
}

// panelLines returns the text body of the detail panel wrapped to cols.
func panelLines(p *Profile, cols int) []string {
	lines := []string{
		fmt.Sprintf("%s followers", humanize.Comma(int64(p.FollowersCount))),
		fmt.Sprintf("%s fam followers", humanize.Comma(int64(p.FamFollowerCount))),
	}
	lines = append(lines, wrap(p.Bio, cols)...)
	for _, l := range p.Links {
		label := l.Label
		if label == "" {
			label = l.URL
		}
		lines = append(lines, truncate(label, cols))
	}
	return lines
}

// drawChrome draws the search bar, the submit affordance and the viewport
// controls.
func (e *Explorer) drawChrome(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	bar := Rect{Width: e.screen.X, Height: topBarHeight}
	e.fillRect(screen, bar, identityTransform, colorBar, &op)

	field := colorField
	if e.searchFocus {
		field = colorFieldFocus
	}
	e.fillRect(screen, e.ui.search, identityTransform, field, &op)
	text := e.index.Query()
	if e.searchFocus {
		text += "_"
	} else if text == "" {
		text = "search by name or @handle"
	}
	cols := int((e.ui.search.Width - 2*panelTextPadding) / debugGlyphWidth)
	ebitenutil.DebugPrintAt(screen, tail(text, cols), int(e.ui.search.X+panelTextPadding), int(e.ui.search.Y)+6)

	btn := colorButtonOff
	if e.CanSubmit() {
		btn = colorButton
	}
	e.fillRect(screen, e.ui.submit, identityTransform, btn, &op)
	ebitenutil.DebugPrintAt(screen, e.submitText(), int(e.ui.submit.X+panelTextPadding), int(e.ui.submit.Y)+6)

	for i, r := range e.ui.controls {
		e.fillRect(screen, r, identityTransform, colorButtonOff, &op)
		ebitenutil.DebugPrintAt(screen, control(i).label(), int(r.X+r.Width/2)-3, int(r.Y+r.Height/2)-8)
	}
}

func rectToImage(r Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
}

// SubmitLabel formats the navigation affordance text.
func SubmitLabel(current, total int) string {
	return fmt.Sprintf("show me %s of %s ->", humanize.Comma(int64(current)), humanize.Comma(int64(total)))
}

// submitText is the button caption. The position is only shown while the
// button is enabled; the match index is undefined for an empty MatchSet.
func (e *Explorer) submitText() string {
	if !e.CanSubmit() {
		return submitIdleLabel
	}
	return SubmitLabel(e.MatchLabel())
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// tail keeps the last n runes so the caret stays visible.
func tail(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// wrap breaks s into lines of at most cols runes on word boundaries.
func wrap(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > cols {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		if wl > cols {
			w = truncate(w, cols)
			wl = cols
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
