package models

import "time"

// SystemMetrics summarises process level counters for the status endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DropsTotal               uint64    `json:"drops_total"`
	ConflictingDrops         uint64    `json:"conflicting_drops"`
	LessonsTrimmed           uint64    `json:"lessons_trimmed"`
	PersistFailures          uint64    `json:"persist_failures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
