package live

import (
	"time"

	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/logging"
)

// FetchFunc produces the next frame to display.
type FetchFunc func() (Frame, error)

// Loop redraws a Screen at a fixed cadence.
type Loop struct {
	// Screen receives every successfully fetched frame.
	Screen *Screen

	// Interval is the pause after each drawn frame.
	Interval time.Duration

	// Mode names the loop in logs ("status", "scan").
	Mode string

	// Sleep replaces time.Sleep when set.
	Sleep func(time.Duration)
}

// Run calls fetch, draws the result and sleeps, forever. The first fetch or
// draw error ends the loop: onFatal is called with it exactly once and Run
// returns. A failed fetch is never retried here; callers that want retries
// wrap fetch themselves.
func (l *Loop) Run(fetch FetchFunc, onFatal func(error)) {
	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for iteration := 1; ; iteration++ {
		start := time.Now()

		frame, err := fetch()
		if err != nil {
			logging.Debug("Live loop stopped", zap.String("mode", l.Mode), zap.Int("iteration", iteration), zap.Error(err))
			onFatal(err)
			return
		}

		if err := l.Screen.Draw(frame); err != nil {
			logging.Debug("Live loop stopped", zap.String("mode", l.Mode), zap.Int("iteration", iteration), zap.Error(err))
			onFatal(err)
			return
		}

		logging.LogPoll(l.Mode, iteration, l.Screen.Lines(), time.Since(start))
		sleep(l.Interval)
	}
}
