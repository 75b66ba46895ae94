package choreo

import (
	"time"

	"github.com/charmbracelet/log"
)

// frameStats holds per-frame timing and population metrics.
// Only populated when debug mode is on.
type frameStats struct {
	updateTime time.Duration
	active     int
	removed    int
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.Default()
}

// debugLog reports scheduler stats at debug level.
func (s *Scheduler) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	loggerOrDefault(s.logger).Debug("scheduler frame",
		"update", stats.updateTime,
		"active", stats.active,
		"removed", stats.removed)
}

// debugLog reports choreographer stats at debug level.
func (c *Choreographer) debugLog(stats choreoStats) {
	if !c.debug {
		return
	}
	loggerOrDefault(c.logger).Debug("choreographer frame",
		"update", stats.updateTime,
		"timelines", stats.timelines,
		"sequences", stats.sequences,
		"groups", stats.groups,
		"retired", stats.retired)
}

// choreoStats holds per-frame choreographer metrics.
type choreoStats struct {
	updateTime time.Duration
	timelines  int
	sequences  int
	groups     int
	retired    int
}

// debugMaxActive is the scheduler population above which a warning is
// logged once per crossing.
const debugMaxActive = 10000

func debugCheckPopulation(l *log.Logger, n int, wasOver bool) bool {
	over := n > debugMaxActive
	if over && !wasOver {
		loggerOrDefault(l).Warn("animation population exceeds threshold",
			"active", n, "threshold", debugMaxActive)
	}
	return over
}
