package famexplorer

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Event is a notable state change, forwarded to an optional EventSink.
type Event struct {
	Type   EventType
	Handle string
	Query  string
	Index  int // current match index (EventNavigate)
	Count  int // MatchSet size (EventNavigate, EventQueryChange)
	Active bool
}

// EventSink receives explorer events. When set on an Explorer, tooltip,
// navigation, query and viewport changes are forwarded to it.
type EventSink interface {
	Emit(event Event)
}

// Options configures a new Explorer. Zero fields take their defaults.
type Options struct {
	// SizeFactor is the atlas down-scale from source tiles to drawn tiles.
	SizeFactor float64
	// SourceTileSize is the edge of one tile on the atlas page, in pixels.
	SourceTileSize int
	// InitialScale is the viewport scale on start and after Reset.
	InitialScale float64
	// CenterScale is the scale navigation zooms to when centring a match.
	CenterScale float64
	// OpenDelay and CloseGrace configure the tooltip timers.
	OpenDelay  time.Duration
	CloseGrace time.Duration
	// Width and Height are the initial screen size.
	Width, Height int
}

func (o *Options) applyDefaults() {
	if o.SizeFactor <= 0 {
		o.SizeFactor = DefaultSizeFactor
	}
	if o.SourceTileSize <= 0 {
		o.SourceTileSize = DefaultSourceTileSize
	}
	if o.InitialScale <= 0 {
		o.InitialScale = DefaultInitialScale
	}
	if o.CenterScale <= 0 {
		o.CenterScale = DefaultInitialScale
	}
	if o.OpenDelay <= 0 {
		o.OpenDelay = DefaultOpenDelay
	}
	if o.CloseGrace <= 0 {
		o.CloseGrace = DefaultCloseGrace
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
}

// tileSlot is the cached render state of one tile.
type tileSlot struct {
	pos      Vec2
	resolved bool
}

const defaultQueueCap = 16

// Explorer is the top-level object that owns the atlas, search index,
// navigator, tooltip, viewport and timers, and routes input between them.
// All methods must be called from the update goroutine; other goroutines hand
// work over with Enqueue.
type Explorer struct {
	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string

	opts     Options
	atlas    *Atlas
	index    *SearchIndex
	nav      Navigator
	tooltip  *Tooltip
	viewport *Viewport
	timers   *Timers
	layout   *TileLayout
	slots    []tileSlot

	logger *zap.Logger
	sink   EventSink
	debug  bool
	stats  frameStats

	queue chan func(*Explorer)

	ui     uiLayout
	screen Vec2

	// Input state
	pointer     pointerState
	injectQueue []syntheticEvent
	searchFocus bool
	runeBuf     []rune
	watchFull   bool

	status      statusOverlay
	statusTimer TimerHandle

	script          *ScriptRunner
	screenshotQueue []string
}

// NewExplorer creates an explorer with no profiles and no atlas. Tiles render
// as placeholders until SetProfiles and SetAtlas are called.
func NewExplorer(opts Options) *Explorer {
	opts.applyDefaults()
	e := &Explorer{
		ClearColor: Color{R: 0.11, G: 0.12, B: 0.16, A: 1},
		opts:       opts,
		index:      NewSearchIndex(),
		timers:     NewTimers(),
		logger:     zap.NewNop(),
		queue:      make(chan func(*Explorer), defaultQueueCap),
	}
	e.tooltip = NewTooltip(e.timers)
	e.tooltip.OpenDelay = opts.OpenDelay
	e.tooltip.CloseGrace = opts.CloseGrace
	e.tooltip.OnChange = e.tooltipChanged

	e.layout = NewTileLayout(float64(opts.Width))
	e.layout.TileSize = float64(opts.SourceTileSize) / opts.SizeFactor
	e.layout.SetCount(SkeletonCount)

	e.viewport = NewViewport(Rect{}, e.layout)
	e.viewport.Initial = ViewportTransform{Scale: opts.InitialScale}
	e.viewport.Reset()
	e.viewport.OnReset = func() {
		e.emit(Event{Type: EventViewportReset})
	}

	e.resize(float64(opts.Width), float64(opts.Height))
	e.slots = make([]tileSlot, SkeletonCount)
	e.statusTimer = e.timers.Every(time.Second, e.refreshStatus)
	return e
}

// SetLogger sets the logger. A nil logger disables logging.
func (e *Explorer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger
}

// SetEventSink sets the optional event sink.
func (e *Explorer) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables or disables per-frame debug stats, logged at debug
// level.
func (e *Explorer) SetDebugMode(enabled bool) {
	e.debug = enabled
}

func (e *Explorer) emit(ev Event) {
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}

// Atlas returns the current atlas (nil while loading).
func (e *Explorer) Atlas() *Atlas { return e.atlas }

// Index returns the search index.
func (e *Explorer) Index() *SearchIndex { return e.index }

// Navigator returns the cyclic navigator.
func (e *Explorer) Navigator() *Navigator { return &e.nav }

// Tooltip returns the tooltip state machine.
func (e *Explorer) Tooltip() *Tooltip { return e.tooltip }

// Viewport returns the viewport controller.
func (e *Explorer) Viewport() *Viewport { return e.viewport }

// Timers returns the explorer's timer queue.
func (e *Explorer) Timers() *Timers { return e.timers }

// TileLayout returns the tile layout.
func (e *Explorer) TileLayout() *TileLayout { return e.layout }

// SetProfiles replaces the profile collection. A nil collection shows the
// placeholder tiles again. The match index is reset because the MatchSet is
// rebuilt.
func (e *Explorer) SetProfiles(profiles []Profile) {
	e.index.SetProfiles(profiles)
	e.nav.Reset()
	if profiles == nil {
		e.layout.SetCount(SkeletonCount)
	} else {
		handles := make([]string, len(profiles))
		for i, p := range profiles {
			handles[i] = p.Handle
		}
		e.layout.SetHandles(handles)
		e.debugCheckTileCount(len(profiles))
	}
	e.resolveTiles()
	e.logger.Info("profiles loaded",
		zap.Int("count", len(profiles)),
		zap.Int("matches", e.index.Count()))
}

// SetAtlas replaces the atlas. A nil atlas renders every tile as a
// placeholder.
func (e *Explorer) SetAtlas(atlas *Atlas) {
	e.atlas = atlas
	e.resolveTiles()
	if atlas != nil {
		e.logger.Info("atlas loaded",
			zap.Int("entries", atlas.Len()),
			zap.Float64("width", atlas.Properties.Width),
			zap.Float64("height", atlas.Properties.Height))
	}
}

// resolveTiles recomputes the cached render position of every tile.
func (e *Explorer) resolveTiles() {
	profiles := e.index.Profiles()
	n := e.layout.Count()
	if cap(e.slots) < n {
		e.slots = make([]tileSlot, n)
	}
	e.slots = e.slots[:n]
	misses := 0
	for i := range e.slots {
		if profiles == nil {
			e.slots[i] = tileSlot{}
			continue
		}
		p := &profiles[i]
		pos, ok := e.atlas.Resolve(p.ProfileImageURL, e.opts.SizeFactor)
		e.slots[i] = tileSlot{pos: pos, resolved: ok}
		if ok && e.debug {
			if _, hit := e.atlas.Entry(ImageKey(p.ProfileImageURL)); !hit {
				misses++
			}
		}
	}
	if misses > 0 {
		e.logger.Debug("atlas misses fell back to default avatar", zap.Int("count", misses))
	}
}

// TilePosition returns the render-space atlas offset for slot i, or false
// when the tile must be drawn as a placeholder.
func (e *Explorer) TilePosition(i int) (Vec2, bool) {
	if i < 0 || i >= len(e.slots) {
		return Vec2{}, false
	}
	s := e.slots[i]
	return s.pos, s.resolved
}

// profileAt returns the profile in slot i, or nil for a placeholder slot.
func (e *Explorer) profileAt(i int) *Profile {
	profiles := e.index.Profiles()
	if i < 0 || i >= len(profiles) {
		return nil
	}
	return &profiles[i]
}

// SetQuery sets the search text. Changing the query resets the match index.
func (e *Explorer) SetQuery(query string) {
	if !e.index.SetQuery(query) {
		return
	}
	e.nav.Reset()
	e.emit(Event{Type: EventQueryChange, Query: query, Count: e.index.Count()})
}

// Query returns the current search text.
func (e *Explorer) Query() string { return e.index.Query() }

// CanSubmit reports whether the "show me" affordance is enabled.
func (e *Explorer) CanSubmit() bool {
	return CanAdvance(e.index.Query(), e.index.Count())
}

// MatchLabel returns (currentMatchIndex+1, |MatchSet|).
func (e *Explorer) MatchLabel() (current, total int) {
	return e.nav.Label(e.index.Count())
}

// Submit advances the navigator and centres the viewport on the new match.
// It is a no-op while the affordance is disabled: an empty query or an empty
// MatchSet.
func (e *Explorer) Submit() bool {
	if !e.CanSubmit() {
		return false
	}
	target, ok := e.nav.Advance(e.index.Matches())
	if !ok {
		return false
	}
	if !e.viewport.CenterOn(target.Handle, e.opts.CenterScale) {
		e.logger.Warn("no tile for match", zap.String("handle", target.Handle))
	}
	e.emit(Event{
		Type:   EventNavigate,
		Handle: target.Handle,
		Query:  e.index.Query(),
		Index:  e.nav.Index(),
		Count:  e.index.Count(),
	})
	return true
}

// SetFullscreen records the external fullscreen state. Leaving fullscreen
// resets the viewport.
func (e *Explorer) SetFullscreen(active bool) {
	if active == e.viewport.Fullscreen() {
		return
	}
	e.viewport.SetFullscreen(active)
	e.emit(Event{Type: EventFullscreen, Active: active})
}

func (e *Explorer) tooltipChanged(prev, next TooltipState) {
	switch {
	case next.Visible && !prev.Visible:
		e.logger.Debug("tooltip open", zap.String("handle", next.Anchor))
		e.emit(Event{Type: EventTooltipOpen, Handle: next.Anchor})
	case !next.Visible && prev.Visible:
		e.logger.Debug("tooltip close", zap.String("handle", prev.Anchor))
		e.emit(Event{Type: EventTooltipClose, Handle: prev.Anchor})
	}
}

// Enqueue hands fn to the update goroutine; it runs at the start of the next
// Advance. Safe to call from any goroutine. Blocks when the queue is full.
func (e *Explorer) Enqueue(fn func(*Explorer)) {
	e.queue <- fn
}

func (e *Explorer) drainQueue() {
	for {
		select {
		case fn := <-e.queue:
			fn(e)
		default:
			return
		}
	}
}

// Advance runs queued work, the viewport animation and due timers for a
// frame of length dt, without reading devices.
func (e *Explorer) Advance(dt time.Duration) {
	e.drainQueue()
	e.viewport.update(float32(dt.Seconds()))
	e.timers.Advance(dt)
}

// Update processes input and advances one tick. It is the ebiten.Game
// Update step.
func (e *Explorer) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	if e.watchFull {
		e.SetFullscreen(ebiten.IsFullscreen())
	}
	if e.script != nil {
		e.script.step(e)
	}
	e.processInput()
	e.Advance(dt)
	return nil
}

// Layout records the screen size and reflows the canvas.
func (e *Explorer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != e.screen.X || h != e.screen.Y {
		e.resize(w, h)
	}
	return outsideWidth, outsideHeight
}

func (e *Explorer) resize(w, h float64) {
	e.screen = Vec2{X: w, Y: h}
	e.ui = computeUILayout(w, h)
	e.viewport.Bounds = e.ui.canvas
	e.layout.SetWidth(e.ui.canvas.Width)
}

// Close cancels every timer. The explorer must not be used afterwards.
func (e *Explorer) Close() {
	e.tooltip.Close()
	e.statusTimer.Cancel()
	e.timers.CancelAll()
}
