package scoring

import (
	"sentinel-platform/internal/telemetry"
)

// Weights of the linear ensemble. Fixed constants; tuning happens offline.
//
// The sentiment weight is negative and is applied to the *signed* sentiment
// value: negative sentiment contributes positively to risk, positive
// sentiment reduces it.
const (
	WeightOffHours         = 0.30
	WeightDownloads        = 0.25
	WeightSentiment        = -0.20
	WeightUSB              = 0.12
	WeightUnusualProcesses = 0.13
)

// Anomaly boosts are additive, each independently triggerable, and
// order-independent. They fire on raw feature values, not normalized ones.
const (
	boostDownloadSpike  = 0.12
	boostHostileOffHour = 0.10
	boostUSBExfil       = 0.08

	downloadSpikeThreshold  = 30
	usbDownloadThreshold    = 10
	offHoursBoostThreshold  = 0.6
	sentimentBoostThreshold = 0.3
)

// Contribution map keys. These names are part of the explainability
// contract with consumers; keep them stable.
const (
	ContribOffHours         = "off_hours_activity"
	ContribDownloads        = "file_downloads"
	ContribSentiment        = "sentiment"
	ContribUSB              = "usb_activity"
	ContribUnusualProcesses = "unusual_processes"
	ContribAnomalyBoost     = "anomaly_boost"
)

// Contributions maps feature names to their signed weighted terms plus one
// aggregate anomaly_boost entry. Contributions are for explainability only:
// when the final score is clamped they do not sum to it, and that residual
// is expected.
type Contributions map[string]float64

// Score computes the bounded risk score for a normalized feature vector.
//
// It is a pure, total function: identical inputs always yield identical
// results and there are no failure modes.
func Score(v telemetry.FeatureVector) (float64, Contributions) {
	contrib := Contributions{
		ContribOffHours:         WeightOffHours * v.OffHours,
		ContribDownloads:        WeightDownloads * v.Downloads,
		ContribSentiment:        WeightSentiment * v.Sentiment,
		ContribUSB:              WeightUSB * v.USB,
		ContribUnusualProcesses: WeightUnusualProcesses * v.UnusualProcesses,
	}

	base := contrib[ContribOffHours] +
		contrib[ContribDownloads] +
		contrib[ContribSentiment] +
		contrib[ContribUSB] +
		contrib[ContribUnusualProcesses]

	var boost float64
	if v.RawDownloads > downloadSpikeThreshold {
		boost += boostDownloadSpike
	}
	if v.OffHours > offHoursBoostThreshold && -v.Sentiment > sentimentBoostThreshold {
		boost += boostHostileOffHour
	}
	if v.RawUSB && v.RawDownloads > usbDownloadThreshold {
		boost += boostUSBExfil
	}
	contrib[ContribAnomalyBoost] = boost

	score := base + boost
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, contrib
}

// Triage bands.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Severity maps a score to a triage band for display and prioritization.
func Severity(score float64) string {
	switch {
	case score >= 0.85:
		return SeverityCritical
	case score >= 0.65:
		return SeverityHigh
	case score >= 0.40:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
