// Package heartbeat lets a running web server advertise itself on disk so
// that other invocations can find it.
package heartbeat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Status represents the liveness state of the server.
type Status string

const (
	StatusAlive Status = "alive"
	StatusStale Status = "stale"
	StatusDead  Status = "dead"
)

// DefaultInterval is how often a Writer refreshes the file.
const DefaultInterval = 30 * time.Second

// Heartbeat is the data written to the heartbeat file.
type Heartbeat struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	Backend   string    `json:"backend"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// Uptime is the time elapsed between StartedAt and the last beat.
func (h Heartbeat) Uptime() time.Duration {
	return h.Timestamp.Sub(h.StartedAt).Truncate(time.Second)
}

// Writer periodically rewrites a heartbeat file.
type Writer struct {
	path     string
	interval time.Duration
	beat     Heartbeat
}

// NewWriter creates a writer describing a server listening on addr.
// A non-positive interval means DefaultInterval.
func NewWriter(path, addr, backend string, interval time.Duration) *Writer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Writer{
		path:     path,
		interval: interval,
		beat:     Heartbeat{PID: os.Getpid(), Addr: addr, Backend: backend},
	}
}

// Run writes the file immediately, then on every tick until ctx is done,
// and removes it on return.
func (w *Writer) Run(ctx context.Context) error {
	w.beat.StartedAt = time.Now()
	if err := w.write(); err != nil {
		return err
	}
	defer os.Remove(w.path)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// A missed beat only ages the file; keep going.
			_ = w.write()
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Writer) write() error {
	w.beat.Timestamp = time.Now()
	data, err := json.MarshalIndent(w.beat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal heartbeat: %w", err)
	}

	// Atomic write: tmp + rename
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	return nil
}

// Check reads a heartbeat file and returns the liveness status. A beat
// older than maxAge is stale; a missing file is dead.
func Check(path string, maxAge time.Duration) (Status, *Heartbeat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusDead, nil, nil
		}
		return StatusDead, nil, fmt.Errorf("read heartbeat: %w", err)
	}

	var hb Heartbeat
	if err := json.Unmarshal(data, &hb); err != nil {
		return StatusDead, nil, fmt.Errorf("unmarshal heartbeat: %w", err)
	}

	if time.Since(hb.Timestamp) > maxAge {
		return StatusStale, &hb, nil
	}
	return StatusAlive, &hb, nil
}
