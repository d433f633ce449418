package telemetry

// Soft caps for count-valued features. Values at or above the cap saturate
// to 1.0 after division.
const (
	downloadsSoftCap        = 50.0
	unusualProcessesSoftCap = 5.0
)

// Normalize converts raw inputs into a bounded feature vector.
// It is total: unknown or out-of-range inputs are clamped, never rejected.
func Normalize(raw RawFeatures) FeatureVector {
	v := FeatureVector{
		OffHours:     clamp01(raw.OffHoursActivity),
		RawDownloads: raw.FileDownloads24h,
		RawUSB:       raw.USBActivity,
	}

	if raw.FileDownloads24h > 0 {
		v.Downloads = clamp01(float64(raw.FileDownloads24h) / downloadsSoftCap)
	}
	if raw.UnusualProcessCount > 0 {
		v.UnusualProcesses = clamp01(float64(raw.UnusualProcessCount) / unusualProcessesSoftCap)
	}
	if raw.USBActivity {
		v.USB = 1.0
	}

	v.Sentiment = SentimentScore(raw.MessageText)
	return v
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
