package shared

// Task types processed by cmd/worker.
const (
	TypeCompensateOrphanStory = "story:compensate_orphan"
	TypeSweepOrphanStories    = "story:sweep_orphans"
	TypeFetchTraceMetadata    = "trace:fetch_metadata"
)

// Queues, highest priority first.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// CompensateOrphanPayload identifies a story row whose place link was never written.
type CompensateOrphanPayload struct {
	StoryID string `json:"story_id"`
	PlaceID string `json:"place_id,omitempty"`
}

// SweepOrphansPayload bounds one sweep run.
type SweepOrphansPayload struct {
	MinAgeSeconds int `json:"min_age_seconds"`
	Limit         int `json:"limit"`
}

// FetchTraceMetadataPayload asks the worker to enrich a freshly submitted trace.
type FetchTraceMetadataPayload struct {
	TraceID string `json:"trace_id"`
}
