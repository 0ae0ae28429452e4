// Package telemetry implements opt-in usage reporting for the chipdb CLI.
//
// Events are buffered in memory and shipped in batches to an HTTP endpoint.
// Nothing is collected unless the user opts in, the CHIPDB_TELEMETRY_DISABLED
// kill switch and the --no-telemetry flag always win, and delivery failures
// are dropped rather than surfaced to the caller.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/satishbabariya/chipdb/internal/debug"
)

// An event is one usage record shipped to the collection endpoint.
type event struct {
	Kind       string    `json:"kind"`
	Command    string    `json:"command,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// A collector buffers events and ships them from a single background
// goroutine, so Shutdown can guarantee the final batch is delivered (or
// timed out) before it returns.
type collector struct {
	endpoint string
	version  string
	client   *http.Client

	mu  sync.Mutex
	buf []event

	kick chan struct{} // signaled when the buffer reaches a full batch
	stop chan struct{}
	done sync.WaitGroup
}

const (
	batchSize     = 10
	flushInterval = 30 * time.Second
	sendTimeout   = 5 * time.Second
)

var (
	active *collector
	once   sync.Once
)

// Init sets up the process-wide collector. When the user has not opted in,
// or a kill switch is set, no collector is started and every Record call is
// a no-op.
func Init(version string, optIn bool) {
	once.Do(func() {
		if !optIn || killSwitch() {
			return
		}
		c := &collector{
			endpoint: endpoint(),
			version:  version,
			client:   &http.Client{Timeout: sendTimeout},
			kick:     make(chan struct{}, 1),
			stop:     make(chan struct{}),
		}
		c.done.Add(1)
		go c.loop()
		active = c
	})
}

// RecordCommand records one CLI command invocation.
func RecordCommand(command string, duration time.Duration, err error) {
	c := active
	if c == nil {
		return
	}
	ev := event{
		Kind:       "command",
		Command:    command,
		DurationMS: duration.Milliseconds(),
		Timestamp:  time.Now().UTC(),
		Version:    c.version,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	c.record(ev)
}

// Shutdown delivers buffered events and stops the background sender. Safe
// to call when Init never ran or collection is disabled.
func Shutdown() {
	c := active
	if c == nil {
		return
	}
	close(c.stop)
	c.done.Wait()
}

func (c *collector) record(ev event) {
	c.mu.Lock()
	c.buf = append(c.buf, ev)
	full := len(c.buf) >= batchSize
	c.mu.Unlock()
	if full {
		select {
		case c.kick <- struct{}{}:
		default:
		}
	}
}

// loop owns all sends. It flushes on the interval, when a batch fills, and
// one final time when stopped.
func (c *collector) loop() {
	defer c.done.Done()
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.flush()
		case <-c.kick:
			c.flush()
		case <-c.stop:
			c.flush()
			return
		}
	}
}

func (c *collector) flush() {
	c.mu.Lock()
	batch := c.buf
	c.buf = nil
	c.mu.Unlock()
	if len(batch) == 0 {
		return
	}
	c.send(batch)
}

func (c *collector) send(batch []event) {
	body, err := json.Marshal(map[string]interface{}{"events": batch})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "chipdb/"+c.version)
	resp, err := c.client.Do(req)
	if err != nil {
		debug.Warn("telemetry delivery failed", "events", len(batch), "error", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// killSwitch reports whether the user disabled collection out of band.
func killSwitch() bool {
	switch os.Getenv("CHIPDB_TELEMETRY_DISABLED") {
	case "1", "true":
		return true
	}
	for _, arg := range os.Args[1:] {
		if arg == "--no-telemetry" {
			return true
		}
	}
	return false
}

func endpoint() string {
	if ep := os.Getenv("CHIPDB_TELEMETRY_ENDPOINT"); ep != "" {
		return ep
	}
	return "https://telemetry.chipdb.dev/events"
}
