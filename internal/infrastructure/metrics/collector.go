package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/mkondo/giveaway/pkg/cache"
	"github.com/mkondo/giveaway/pkg/cache/memorycache"
)

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// API metrics, keyed by route (method + path pattern)
	apiRequests sync.Map // map[string]*uint64 - route -> count
	apiErrors   sync.Map // map[string]*uint64 - route -> error count
	apiDuration sync.Map // map[string]*durationValue - route -> total duration in seconds

	// Session cache reference (optional, for querying cache-specific metrics)
	sessions cache.Cache
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// SessionMetrics holds session cache performance metrics.
type SessionMetrics struct {
	Hits        uint64
	Misses      uint64
	HitRate     float64
	KeysCurrent int64
	MemoryBytes int64
	Evictions   uint64
}

// APIMetrics holds API request metrics.
type APIMetrics struct {
	RequestCounts        map[string]uint64
	ErrorCounts          map[string]uint64
	TotalDurationSeconds map[string]float64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetSessionCache sets the session cache instance for collecting cache metrics.
func (c *Collector) SetSessionCache(sessions cache.Cache) {
	c.sessions = sessions
}

// RecordRequest records an API request.
func (c *Collector) RecordRequest(route string) {
	counter := c.getOrCreateCounter(&c.apiRequests, route)
	atomic.AddUint64(counter, 1)
}

// RecordError records an API error.
func (c *Collector) RecordError(route string) {
	counter := c.getOrCreateCounter(&c.apiErrors, route)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of an API call in seconds.
func (c *Collector) RecordDuration(route string, durationSeconds float64) {
	val, _ := c.apiDuration.LoadOrStore(route, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// GetSessionMetrics returns current session cache metrics.
func (c *Collector) GetSessionMetrics() *SessionMetrics {
	if c.sessions == nil {
		return &SessionMetrics{}
	}

	metrics := c.sessions.Metrics()
	if metrics == nil {
		return &SessionMetrics{}
	}

	result := &SessionMetrics{
		Hits:      metrics.Hits,
		Misses:    metrics.Misses,
		HitRate:   metrics.HitRate(),
		Evictions: metrics.KeysEvicted,
	}

	// Get current keys and memory if available
	if memCache, ok := c.sessions.(*memorycache.Cache); ok {
		result.KeysCurrent = int64(memCache.Len())
		result.MemoryBytes = memCache.Size()
	}

	return result
}

// GetAPIMetrics returns current API metrics.
func (c *Collector) GetAPIMetrics() *APIMetrics {
	result := &APIMetrics{
		RequestCounts:        make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	c.apiRequests.Range(func(key, value interface{}) bool {
		route := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.RequestCounts[route] = count
		return true
	})

	c.apiErrors.Range(func(key, value interface{}) bool {
		route := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.ErrorCounts[route] = count
		return true
	})

	c.apiDuration.Range(func(key, value interface{}) bool {
		route := key.(string)
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[route] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
