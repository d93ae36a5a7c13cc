package famexplorer

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Viewport defaults.
const (
	DefaultInitialScale   = 4.5
	DefaultMinScale       = 1.0
	DefaultMaxScale       = 8.0
	DefaultZoomStep       = 0.5
	DefaultCenterDuration = 0.6 // seconds
)

// TileLocator finds a tile's world-space rectangle by handle. Handles are the
// stable keys tiles are addressed by.
type TileLocator interface {
	TileBounds(handle string) (Rect, bool)
}

// ViewportTransform is the pan/zoom state: screen = translation + world*scale.
type ViewportTransform struct {
	Scale float64
	X, Y  float64
}

// Viewport controls the pannable, zoomable view onto the tile canvas.
type Viewport struct {
	// Scale is the zoom factor; X and Y are the translation in screen pixels
	// relative to Bounds.
	Scale, X, Y float64

	// Initial transform restored by Reset.
	Initial ViewportTransform

	MinScale, MaxScale float64
	// ZoomStep is applied as scale * exp(±ZoomStep).
	ZoomStep float64

	// CenterDuration is the CenterOn animation length in seconds. Zero snaps.
	CenterDuration float32
	// CenterEase is the CenterOn easing function.
	CenterEase ease.TweenFunc

	// Bounds is the screen-space rectangle the canvas is drawn into.
	Bounds Rect

	// OnReset, if set, is called after every Reset.
	OnReset func()

	locator    TileLocator
	fullscreen bool
	anim       *tweenGroup
	animTarget ViewportTransform
}

// NewViewport creates a viewport at the default initial transform.
func NewViewport(bounds Rect, locator TileLocator) *Viewport {
	v := &Viewport{
		Initial:        ViewportTransform{Scale: DefaultInitialScale},
		MinScale:       DefaultMinScale,
		MaxScale:       DefaultMaxScale,
		ZoomStep:       DefaultZoomStep,
		CenterDuration: DefaultCenterDuration,
		CenterEase:     ease.OutQuad,
		Bounds:         bounds,
		locator:        locator,
	}
	v.Scale, v.X, v.Y = v.Initial.Scale, v.Initial.X, v.Initial.Y
	return v
}

// Transform returns the current pan/zoom state.
func (v *Viewport) Transform() ViewportTransform {
	return ViewportTransform{Scale: v.Scale, X: v.X, Y: v.Y}
}

// Animating reports whether a CenterOn animation is running.
func (v *Viewport) Animating() bool {
	return v.anim != nil
}

// ZoomIn zooms one step in around the viewport centre.
func (v *Viewport) ZoomIn() {
	v.zoomAroundCenter(v.Scale * math.Exp(v.ZoomStep))
}

// ZoomOut zooms one step out around the viewport centre.
func (v *Viewport) ZoomOut() {
	v.zoomAroundCenter(v.Scale * math.Exp(-v.ZoomStep))
}

func (v *Viewport) zoomAroundCenter(scale float64) {
	v.stopAnimation()
	scale = v.clampScale(scale)
	cx, cy := v.Bounds.Width/2, v.Bounds.Height/2
	wx := (cx - v.X) / v.Scale
	wy := (cy - v.Y) / v.Scale
	v.Scale = scale
	v.X = cx - wx*scale
	v.Y = cy - wy*scale
}

func (v *Viewport) clampScale(s float64) float64 {
	if v.MinScale > 0 && s < v.MinScale {
		return v.MinScale
	}
	if v.MaxScale > 0 && s > v.MaxScale {
		return v.MaxScale
	}
	return s
}

// Pan moves the canvas by (dx, dy) screen pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.stopAnimation()
	v.X += dx
	v.Y += dy
}

// Reset restores the initial transform and cancels any running animation so
// it cannot overwrite the reset on a later frame.
func (v *Viewport) Reset() {
	v.stopAnimation()
	v.Scale, v.X, v.Y = v.Initial.Scale, v.Initial.X, v.Initial.Y
	if v.OnReset != nil {
		v.OnReset()
	}
}

// CenterOn animates the view so the tile for handle is centred at
// targetScale. It returns false if the locator does not know the handle.
func (v *Viewport) CenterOn(handle string, targetScale float64) bool {
	if v.locator == nil {
		return false
	}
	r, ok := v.locator.TileBounds(handle)
	if !ok {
		return false
	}
	s := v.clampScale(targetScale)
	c := r.Center()
	target := ViewportTransform{
		Scale: s,
		X:     v.Bounds.Width/2 - c.X*s,
		Y:     v.Bounds.Height/2 - c.Y*s,
	}
	v.stopAnimation()
	if v.CenterDuration <= 0 {
		v.Scale, v.X, v.Y = target.Scale, target.X, target.Y
		return true
	}
	easeFn := v.CenterEase
	if easeFn == nil {
		easeFn = ease.Linear
	}
	v.anim = tweenTransform(v, target.Scale, target.X, target.Y, v.CenterDuration, easeFn)
	v.animTarget = target
	return true
}

// Fullscreen reports the last fullscreen state passed to SetFullscreen.
func (v *Viewport) Fullscreen() bool { return v.fullscreen }

// SetFullscreen records the external fullscreen state. Leaving fullscreen
// always resets the transform, once per transition. It reports whether a
// reset happened.
func (v *Viewport) SetFullscreen(active bool) bool {
	was := v.fullscreen
	v.fullscreen = active
	if was && !active {
		v.Reset()
		return true
	}
	return false
}

func (v *Viewport) stopAnimation() {
	v.anim = nil
}

// update advances the CenterOn animation. Called from Explorer.Update.
func (v *Viewport) update(dt float32) {
	if v.anim == nil {
		return
	}
	v.anim.Update(dt)
	if v.anim.Done {
		v.Scale, v.X, v.Y = v.animTarget.Scale, v.animTarget.X, v.animTarget.Y
		v.anim = nil
	}
}

// viewMatrix maps world coordinates to screen coordinates.
func (v *Viewport) viewMatrix() [6]float64 {
	return scaleTranslate(v.Scale, v.Bounds.X+v.X, v.Bounds.Y+v.Y)
}

// WorldToScreen converts canvas coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.viewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to canvas coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(v.viewMatrix()), sx, sy)
}

// VisibleBounds returns the canvas-space rectangle currently visible.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ScreenToWorld(v.Bounds.X, v.Bounds.Y)
	x1, y1 := v.ScreenToWorld(v.Bounds.X+v.Bounds.Width, v.Bounds.Y+v.Bounds.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}
