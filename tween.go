package famexplorer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenGroup animates up to 3 float64 fields simultaneously and reports Done
// once every tween has finished.
type tweenGroup struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	count  int
	Done   bool
}

// add appends a tween driving *field from its current value to `to`.
func (g *tweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances all tweens by dt seconds and writes values to the fields.
func (g *tweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// tweenTransform animates a viewport transform to the given scale and
// translation.
func tweenTransform(v *Viewport, scale, x, y float64, duration float32, fn ease.TweenFunc) *tweenGroup {
	g := &tweenGroup{}
	g.add(&v.Scale, scale, duration, fn)
	g.add(&v.X, x, duration, fn)
	g.add(&v.Y, y, duration, fn)
	return g
}
