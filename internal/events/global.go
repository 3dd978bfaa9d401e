// ABOUTME: Global event tracker instance for application-wide event tracking
// ABOUTME: Lives under the pipekit home and honors the disableEvents preference.
package events

import (
	"sync"

	"github.com/pipekit/pipekit/internal/config"
)

var (
	globalTracker     *Tracker
	globalTrackerOnce sync.Once
	globalTrackerMu   sync.RWMutex
)

// GlobalTracker returns the global event tracker instance.
// Creates it on first access, so --home must be resolved before calling.
func GlobalTracker() *Tracker {
	globalTrackerOnce.Do(func() {
		globalTrackerMu.Lock()
		defer globalTrackerMu.Unlock()
		if globalTracker == nil {
			globalTracker = initializeGlobalTracker()
		}
	})

	globalTrackerMu.RLock()
	defer globalTrackerMu.RUnlock()
	return globalTracker
}

// SetGlobalTracker sets a custom global tracker (useful for testing)
func SetGlobalTracker(tracker *Tracker) {
	globalTrackerMu.Lock()
	defer globalTrackerMu.Unlock()
	globalTracker = tracker
}

func initializeGlobalTracker() *Tracker {
	writer, err := NewJSONLWriter(config.EventsLogPath())
	if err != nil {
		// Tracking is best effort
		return NewTracker(nil, false)
	}

	enabled := true
	if cfg, err := config.Load(); err == nil && cfg.Preferences.DisableEvents {
		enabled = false
	}
	return NewTracker(writer, enabled)
}
