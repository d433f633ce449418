package telemetry

import "time"

// Event is an immutable record of one behavioral observation.
//
// Invariants:
// - Events are never updated or deleted; the store is append-only and
//   insertion order equals arrival order.
// - workspace_id is required for tenancy isolation.
// - Sentiment is derived from Features.MessageText exactly once, at ingest.

type Event struct {
	EventID     string `json:"event_id"`
	WorkspaceID string `json:"workspace_id"`

	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Department string `json:"department"`

	Timestamp time.Time `json:"timestamp"`

	Features RawFeatures `json:"features"`

	// Sentiment is the lexicon score of Features.MessageText, in [-1, 1].
	Sentiment float64 `json:"sentiment"`
}

// RawFeatures is the feature bundle as reported by the telemetry source.
// Missing numeric inputs are zero values; there is no error path here.
type RawFeatures struct {
	// OffHoursActivity is the fraction of activity outside business hours, in [0, 1].
	OffHoursActivity float64 `json:"off_hours_activity"`

	// FileDownloads24h is the raw download count over the trailing 24 hours.
	FileDownloads24h int `json:"file_downloads_24h"`

	USBActivity bool `json:"usb_activity"`

	// UnusualProcessCount is the raw count of processes outside the user's baseline.
	UnusualProcessCount int `json:"unusual_process_count"`

	// MessageText feeds the sentiment lexicon; it is not stored anywhere else.
	MessageText string `json:"message_text"`
}

// FeatureVector is the normalized input consumed by the scoring engine.
//
// Bounds: OffHours, Downloads, USB, UnusualProcesses in [0, 1];
// Sentiment in [-1, 1]. Raw counts are preserved alongside because the
// scorer's anomaly boosts trigger on raw values, not normalized ones.
type FeatureVector struct {
	OffHours         float64
	Downloads        float64
	USB              float64
	UnusualProcesses float64
	Sentiment        float64

	RawDownloads int
	RawUSB       bool
}
