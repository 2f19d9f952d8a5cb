// Package monitoring provides in-process prediction metrics, the realtime
// WebSocket feed and the model artifact watcher.
package monitoring

import (
	"sync"
	"time"
)

// Metrics counts prediction outcomes since process start. All methods are
// safe for concurrent use.
type Metrics struct {
	mu sync.RWMutex

	total              int64
	safe               int64
	unsafe             int64
	validationFailures int64
	inferenceFailures  int64
	cacheHits          int64
	startTime          time.Time
	lastPrediction     time.Time
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Total              int64     `json:"total"`
	Safe               int64     `json:"safe"`
	Unsafe             int64     `json:"unsafe"`
	ValidationFailures int64     `json:"validation_failures"`
	InferenceFailures  int64     `json:"inference_failures"`
	CacheHits          int64     `json:"cache_hits"`
	StartTime          time.Time `json:"start_time"`
	LastPrediction     time.Time `json:"last_prediction,omitempty"`
	Uptime             string    `json:"uptime"`
}

// NewMetrics creates a metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordPrediction counts one completed prediction.
func (m *Metrics) RecordPrediction(safe bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	if safe {
		m.safe++
	} else {
		m.unsafe++
	}
	m.lastPrediction = time.Now()
}

// RecordValidationFailure counts one rejected input.
func (m *Metrics) RecordValidationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures++
}

// RecordInferenceFailure counts one classifier-side failure.
func (m *Metrics) RecordInferenceFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inferenceFailures++
}

// RecordCacheHit counts one prediction served from the LRU cache.
func (m *Metrics) RecordCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		Total:              m.total,
		Safe:               m.safe,
		Unsafe:             m.unsafe,
		ValidationFailures: m.validationFailures,
		InferenceFailures:  m.inferenceFailures,
		CacheHits:          m.cacheHits,
		StartTime:          m.startTime,
		LastPrediction:     m.lastPrediction,
		Uptime:             time.Since(m.startTime).String(),
	}
}
