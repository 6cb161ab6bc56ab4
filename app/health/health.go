// Package health reports the health of an in-process hydrax node.
//
// The checker looks at four components:
// - store: the committed state can be read back within the response budget
// - blocks: the chain is initialized and keeps producing blocks
// - telemetry: the tracing and metrics providers finished initializing
// - modules: per-module state counts (detailed checks only)
//
// The endpoints mirror a node's health API:
// - /health - Basic liveness check
// - /health/ready - Readiness check for load balancers
// - /health/detailed - Comprehensive status with metrics
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metrics   map[string]any `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Node is the view of the chain the checker needs.
type Node interface {
	LastBlockHeight() int64
	ModuleStats(ctx context.Context) (map[string]any, error)
}

// Telemetry is implemented by the telemetry provider.
type Telemetry interface {
	HealthCheck() error
}

// Config holds configuration for the health checker
type Config struct {
	// MaxBlockAge is how long the node may go without a new block before it
	// is reported degraded. Zero disables the check.
	MaxBlockAge time.Duration `mapstructure:"max_block_age" json:"max_block_age"`

	// MaxResponseTime bounds a single store read
	MaxResponseTime time.Duration `mapstructure:"max_response_time" json:"max_response_time"`

	// CacheDuration is how long to cache health check results
	CacheDuration time.Duration `mapstructure:"cache_duration" json:"cache_duration"`

	Version string `mapstructure:"version" json:"version"`
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxBlockAge:     time.Minute,
		MaxResponseTime: 5 * time.Second,
		CacheDuration:   5 * time.Second,
	}
}

// Checker performs health checks on various components
type Checker struct {
	logger    log.Logger
	node      Node
	telemetry Telemetry
	cfg       Config
	now       func() time.Time

	mu            sync.RWMutex
	lastHeight    int64
	lastProgress  time.Time
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithTelemetry adds the telemetry component to every check.
func WithTelemetry(t Telemetry) Option {
	return func(c *Checker) { c.telemetry = t }
}

// WithClock replaces the wall clock used for block progress and caching.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, node Node, opts ...Option) (*Checker, error) {
	if node == nil {
		return nil, fmt.Errorf("node is required")
	}
	if cfg.MaxResponseTime <= 0 {
		return nil, fmt.Errorf("max response time must be positive")
	}

	c := &Checker{
		logger:        logger.With("module", "health"),
		node:          node,
		cfg:           cfg,
		now:           time.Now,
		cacheDuration: cfg.CacheDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastProgress = c.now()
	return c, nil
}

// Check performs a comprehensive health check
func (c *Checker) Check(ctx context.Context, detailed bool) (*HealthCheck, error) {
	// Return cached result if still valid
	if !detailed && c.shouldUseCached() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.cachedHealth, nil
	}

	health := &HealthCheck{
		Timestamp:  c.now(),
		Version:    c.cfg.Version,
		Components: make(map[string]ComponentHealth),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	type check struct {
		name string
		fn   func(context.Context) ComponentHealth
	}
	checks := []check{
		{"store", c.checkStore},
		{"blocks", c.checkBlocks},
	}
	if c.telemetry != nil {
		checks = append(checks, check{"telemetry", c.checkTelemetry})
	}
	if detailed {
		checks = append(checks, check{"modules", c.checkModules})
	}

	for _, ch := range checks {
		wg.Add(1)
		go func(name string, fn func(context.Context) ComponentHealth) {
			defer wg.Done()
			result := fn(ctx)
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}(ch.name, ch.fn)
	}

	wg.Wait()

	health.Status = calculateOverallStatus(health.Components)

	c.mu.Lock()
	c.lastCheck = c.now()
	c.cachedHealth = health
	c.mu.Unlock()

	return health, nil
}

// checkStore reads module state back through the node
func (c *Checker) checkStore(ctx context.Context) ComponentHealth {
	start := c.now()
	_, err := c.moduleStats(ctx)
	duration := c.now().Sub(start)

	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("state query failed: %v", err),
			Timestamp: c.now(),
		}
	}

	status := StatusHealthy
	message := "state is readable"
	if duration > c.cfg.MaxResponseTime/2 {
		status = StatusDegraded
		message = "state query time is degraded"
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: c.now(),
		Metrics:   map[string]any{"query_time_ms": duration.Milliseconds()},
	}
}

// checkBlocks verifies the chain is initialized and still advancing
func (c *Checker) checkBlocks(_ context.Context) ComponentHealth {
	height := c.node.LastBlockHeight()
	now := c.now()

	c.mu.Lock()
	if height != c.lastHeight {
		c.lastHeight = height
		c.lastProgress = now
	}
	age := now.Sub(c.lastProgress)
	c.mu.Unlock()

	metrics := map[string]any{
		"latest_block_height": height,
		"block_age_seconds":   age.Seconds(),
	}

	if height == 0 {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   "chain is not initialized",
			Timestamp: now,
			Metrics:   metrics,
		}
	}
	if c.cfg.MaxBlockAge > 0 && age > c.cfg.MaxBlockAge {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   fmt.Sprintf("no new block for %.1f seconds", age.Seconds()),
			Timestamp: now,
			Metrics:   metrics,
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "chain is producing blocks",
		Timestamp: now,
		Metrics:   metrics,
	}
}

func (c *Checker) checkTelemetry(_ context.Context) ComponentHealth {
	if err := c.telemetry.HealthCheck(); err != nil {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   err.Error(),
			Timestamp: c.now(),
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "telemetry providers initialized",
		Timestamp: c.now(),
	}
}

// checkModules reports per-module state counts. Suspended DCA schedules
// need owner attention and degrade the component.
func (c *Checker) checkModules(ctx context.Context) ComponentHealth {
	stats, err := c.moduleStats(ctx)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnknown,
			Message:   fmt.Sprintf("module stats unavailable: %v", err),
			Timestamp: c.now(),
		}
	}

	status := StatusHealthy
	message := "all modules operational"
	if suspended, ok := stats["dca_suspended"].(int); ok && suspended > 0 {
		status = StatusDegraded
		message = fmt.Sprintf("%d dca schedules suspended", suspended)
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: c.now(),
		Metrics:   stats,
	}
}

func (c *Checker) moduleStats(ctx context.Context) (map[string]any, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.cfg.MaxResponseTime)
	defer cancel()

	type result struct {
		stats map[string]any
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := c.node.ModuleStats(timeoutCtx)
		done <- result{stats, err}
	}()

	select {
	case r := <-done:
		return r.stats, r.err
	case <-timeoutCtx.Done():
		return nil, timeoutCtx.Err()
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// shouldUseCached determines if cached health check results should be used
func (c *Checker) shouldUseCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil {
		return false
	}
	return c.now().Sub(c.lastCheck) < c.cacheDuration
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

// handleHealth handles the basic liveness check endpoint
func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": c.now().Format(time.RFC3339),
	})
}

// handleHealthReady handles the readiness check endpoint. A degraded node
// is still ready.
func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	c.handleCheck(w, r, false)
}

// handleHealthDetailed handles the detailed health check endpoint
func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	c.handleCheck(w, r, true)
}

func (c *Checker) handleCheck(w http.ResponseWriter, r *http.Request, detailed bool) {
	health, err := c.Check(r.Context(), detailed)
	if err != nil {
		c.logger.Error("health check failed", "detailed", detailed, "error", err)
		c.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.writeJSON(w, statusCode, health)
}

func (c *Checker) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("failed to write health response", "error", err)
	}
}
