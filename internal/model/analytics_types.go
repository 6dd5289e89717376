package model

// RegulationStats summarizes a learner's regulation sessions over a
// date range.
type RegulationStats struct {
	TotalSessions          int64          `json:"totalSessions"`
	CompletedSessions      int64          `json:"completedSessions"`
	AverageEffectiveness   *float64       `json:"averageEffectiveness,omitempty"`
	TotalMinutes           int            `json:"totalMinutes"`
	ByActivityType         map[string]int `json:"byActivityType"`
	MostEffectiveActivity  *string        `json:"mostEffectiveActivity,omitempty"`
	EmotionImprovementRate float64        `json:"emotionImprovementRate"`
}

// EmotionTrend is the direction of a learner's negative-emotion intensity
// over a range.
type EmotionTrend string

const (
	TrendImproving        EmotionTrend = "improving"
	TrendDeclining        EmotionTrend = "declining"
	TrendStable           EmotionTrend = "stable"
	TrendInsufficientData EmotionTrend = "insufficient_data"
)

type EmotionSummary struct {
	TotalEntries        int64          `json:"totalEntries"`
	MostFrequentEmotion *string        `json:"mostFrequentEmotion,omitempty"`
	AverageLevel        float64        `json:"averageLevel"`
	EmotionCounts       map[string]int `json:"emotionCounts"`
	TopTriggers         []string       `json:"topTriggers"`
	TopStrategies       []string       `json:"topStrategies"`
	Trend               EmotionTrend   `json:"trend"`
}
