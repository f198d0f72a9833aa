// Package health provides liveness and readiness probe endpoints. All
// registered checks run in one background loop at a fixed interval; the
// HTTP endpoints report the last observed state.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// CheckFunc reports nil when the checked component is healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	mu      sync.Mutex
	lastErr error
}

func (c *check) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(checkCtx)

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *check) status() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	mu        sync.Mutex
	ready     bool
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) after initialization completes.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check that determines whether the process
// is alive (e.g. goroutine count).
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, &check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check that determines whether the service
// can accept traffic (e.g. database ping).
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, &check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the top-level readiness gate. A service that is not
// ready fails the readiness endpoint regardless of check results.
func (h *Health) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

func (h *Health) isReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

func (h *Health) snapshot() (liveness, readiness []*check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*check(nil), h.liveness...), append([]*check(nil), h.readiness...)
}

// Start launches the background check loop. Checks run once immediately
// and then every interval until ctx is cancelled or Stop is called.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	liveness, readiness := h.snapshot()
	runAll := func() {
		for _, c := range liveness {
			c.run(ctx)
		}
		for _, c := range readiness {
			c.run(ctx)
		}
	}

	go func() {
		runAll()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runAll()
			}
		}
	}()
}

// Stop terminates the background check loop.
func (h *Health) Stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

type probeResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeProbe(w http.ResponseWriter, healthy bool, checks []*check) {
	resp := probeResponse{Status: "ok"}
	if len(checks) > 0 {
		resp.Checks = make(map[string]string, len(checks))
	}
	for _, c := range checks {
		if err := c.status(); err != nil {
			healthy = false
			resp.Checks[c.name] = err.Error()
		} else {
			resp.Checks[c.name] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// LiveEndpoint serves the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	liveness, _ := h.snapshot()
	writeProbe(w, true, liveness)
}

// ReadyEndpoint serves the readiness probe.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	_, readiness := h.snapshot()
	writeProbe(w, h.isReady(), readiness)
}
