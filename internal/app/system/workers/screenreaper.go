// internal/app/system/workers/screenreaper.go
package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"go.uber.org/zap"
)

// ScreenReaper is a background worker that closes dashboard screens whose
// browser tab has gone away without saying so.
type ScreenReaper struct {
	screens  *screens.Registry
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewScreenReaper creates a new screen reaper.
//
// Parameters:
//   - reg: the screen registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleTTL: how long a screen may go unused before it is closed (e.g., 10 minutes)
func NewScreenReaper(reg *screens.Registry, logger *zap.Logger, interval, idleTTL time.Duration) *ScreenReaper {
	return &ScreenReaper{
		screens:  reg,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *ScreenReaper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("screen reaper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ScreenReaper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("screen reaper stopped")
}

func (w *ScreenReaper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep(time.Now())
		}
	}
}

// Sweep closes every screen idle at now and returns how many were closed.
func (w *ScreenReaper) Sweep(now time.Time) int {
	count := w.screens.CloseIdle(now.Add(-w.idleTTL))
	if count > 0 {
		w.log.Info("closed idle screens", zap.Int("count", count), zap.Int("open", w.screens.Len()))
	}
	return count
}
