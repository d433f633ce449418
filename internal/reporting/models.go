package reporting

// Summary is a point-in-time KPI snapshot for one workspace. All figures
// are computed on demand from the live stores; nothing is cached.
type Summary struct {
	WorkspaceID string `json:"workspace_id"`

	TotalAlerts    int            `json:"total_alerts"`
	AlertsByStatus map[string]int `json:"alerts_by_status"`
	MitigatedCount int            `json:"mitigated_count"`
	AverageScore   float64        `json:"average_score"`
	HighRiskCount  int            `json:"high_risk_count"`

	OpenCases   int `json:"open_cases"`
	ClosedCases int `json:"closed_cases"`

	Sentiment SentimentSplit `json:"sentiment"`
}

// SentimentSplit buckets alert events by derived sentiment. Thresholds:
// above 0.2 is positive, below -0.2 negative, the rest neutral.
type SentimentSplit struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}
