package famexplorer

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame draw metrics. Timing is only populated when
// debug mode is on.
type frameStats struct {
	drawTime     time.Duration
	tiles        int
	placeholders int
	culled       int
}

// debugLog logs the frame's draw stats at debug level.
func (e *Explorer) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	e.logger.Debug("frame",
		zap.Duration("draw", stats.drawTime),
		zap.Int("tiles", stats.tiles),
		zap.Int("placeholders", stats.placeholders),
		zap.Int("culled", stats.culled),
		zap.Int("timers", e.timers.Len()),
	)
}

// debugMaxTiles is the tile count above which a warning is logged once per
// collection.
const debugMaxTiles = 50000

func (e *Explorer) debugCheckTileCount(n int) {
	if n > debugMaxTiles {
		e.logger.Warn("large profile collection",
			zap.Int("count", n),
			zap.Int("threshold", debugMaxTiles))
	}
}
