package service

import (
	"math"
	"sort"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"
)

// negativeEmotions is the set used for trend analysis. It is wider than
// the distress set in the emotion service: "tired" counts toward trend
// but never triggers a parent notification.
var negativeEmotions = map[string]bool{
	"angry":       true,
	"anxious":     true,
	"frustrated":  true,
	"overwhelmed": true,
	"sad":         true,
	"tired":       true,
}

// trendThreshold is the minimum half-to-half mean shift that counts as a
// direction change.
const trendThreshold = 0.3

// minTrendEntries is the number of qualifying negative check-ins needed
// before a trend is reported at all.
const minTrendEntries = 4

type AnalyticsService struct {
	RegulationRepo *repository.RegulationSessionRepository
	EmotionRepo    *repository.EmotionHistoryRepository
}

func NewAnalyticsService(regulationRepo *repository.RegulationSessionRepository, emotionRepo *repository.EmotionHistoryRepository) *AnalyticsService {
	return &AnalyticsService{
		RegulationRepo: regulationRepo,
		EmotionRepo:    emotionRepo,
	}
}

// GetRegulationStats aggregates a learner's regulation sessions in the
// given range. Stats are computed from a point-in-time snapshot; no
// transaction covers concurrent writers.
func (s *AnalyticsService) GetRegulationStats(learnerID uint, from, to *time.Time) (*model.RegulationStats, error) {
	sessions, err := s.RegulationRepo.FindForRange(learnerID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &model.RegulationStats{
		TotalSessions:  int64(len(sessions)),
		ByActivityType: make(map[string]int),
	}

	var effSum, effCount int
	var totalSeconds int
	var improved, qualifying int

	typeOrder := make([]model.ActivityType, 0)
	typeEffSum := make(map[model.ActivityType]int)
	typeEffCount := make(map[model.ActivityType]int)

	for _, session := range sessions {
		stats.ByActivityType[string(session.ActivityType)]++
		if session.Completed {
			stats.CompletedSessions++
		}
		if session.DurationSeconds != nil {
			totalSeconds += *session.DurationSeconds
		}
		if session.Effectiveness != nil {
			effSum += *session.Effectiveness
			effCount++
			if typeEffCount[session.ActivityType] == 0 {
				typeOrder = append(typeOrder, session.ActivityType)
			}
			typeEffSum[session.ActivityType] += *session.Effectiveness
			typeEffCount[session.ActivityType]++
		}
		// Improvement compares numeric intensity; sessions missing either
		// reading are excluded from numerator and denominator alike.
		if session.Completed && session.EmotionLevelBefore != nil && session.EmotionLevelAfter != nil {
			qualifying++
			if *session.EmotionLevelAfter < *session.EmotionLevelBefore {
				improved++
			}
		}
	}

	stats.TotalMinutes = totalSeconds / 60

	if effCount > 0 {
		avg := round1(float64(effSum) / float64(effCount))
		stats.AverageEffectiveness = &avg

		bestMean := -1.0
		var best model.ActivityType
		for _, activityType := range typeOrder {
			mean := float64(typeEffSum[activityType]) / float64(typeEffCount[activityType])
			if mean > bestMean {
				bestMean = mean
				best = activityType
			}
		}
		bestStr := string(best)
		stats.MostEffectiveActivity = &bestStr
	}

	if qualifying > 0 {
		stats.EmotionImprovementRate = float64(improved) / float64(qualifying)
	}

	return stats, nil
}

// GetEmotionSummary aggregates a learner's check-ins in the given range.
func (s *AnalyticsService) GetEmotionSummary(learnerID uint, from, to *time.Time) (*model.EmotionSummary, error) {
	entries, err := s.EmotionRepo.FindForRange(learnerID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &model.EmotionSummary{
		TotalEntries:  int64(len(entries)),
		EmotionCounts: make(map[string]int),
		TopTriggers:   []string{},
		TopStrategies: []string{},
		Trend:         s.computeTrend(entries),
	}

	if len(entries) == 0 {
		return summary, nil
	}

	levelSum := 0
	emotionOrder := make([]string, 0)
	triggerCounts := newOrderedCounter()
	strategyCounts := newOrderedCounter()

	for _, entry := range entries {
		if summary.EmotionCounts[entry.Emotion] == 0 {
			emotionOrder = append(emotionOrder, entry.Emotion)
		}
		summary.EmotionCounts[entry.Emotion]++
		levelSum += entry.Level
		triggerCounts.add(entry.Trigger)
		strategyCounts.add(entry.Strategy)
	}

	summary.AverageLevel = round1(float64(levelSum) / float64(len(entries)))

	// Count-descending only; ties keep first-encountered order.
	sort.SliceStable(emotionOrder, func(i, j int) bool {
		return summary.EmotionCounts[emotionOrder[i]] > summary.EmotionCounts[emotionOrder[j]]
	})
	summary.MostFrequentEmotion = &emotionOrder[0]

	summary.TopTriggers = triggerCounts.top(5)
	summary.TopStrategies = strategyCounts.top(5)

	return summary, nil
}

// computeTrend compares the mean intensity of the chronological first and
// second halves of the learner's negative check-ins.
func (s *AnalyticsService) computeTrend(entries []model.EmotionHistory) model.EmotionTrend {
	var negative []model.EmotionHistory
	for _, entry := range entries {
		if negativeEmotions[entry.Emotion] {
			negative = append(negative, entry)
		}
	}
	if len(negative) < minTrendEntries {
		return model.TrendInsufficientData
	}

	half := len(negative) / 2
	firstMean := meanLevel(negative[:half])
	secondMean := meanLevel(negative[half:])

	switch {
	case secondMean < firstMean-trendThreshold:
		return model.TrendImproving
	case secondMean > firstMean+trendThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// GetRegulationStreak counts consecutive calendar days with at least one
// completed regulation session, walking back from today. A missing
// session today does not break a streak through yesterday.
func (s *AnalyticsService) GetRegulationStreak(learnerID uint) (int, error) {
	times, err := s.RegulationRepo.CompletedStartTimes(learnerID)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(times))
	for _, t := range times {
		days[t.Local().Format(util.DateFormat)] = true
	}

	day := time.Now()
	if !days[day.Format(util.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format(util.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func meanLevel(entries []model.EmotionHistory) float64 {
	sum := 0
	for _, entry := range entries {
		sum += entry.Level
	}
	return float64(sum) / float64(len(entries))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// orderedCounter counts non-empty strings while remembering first
// appearance, so count ties resolve deterministically.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(value string) {
	if value == "" {
		return
	}
	if c.counts[value] == 0 {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

func (c *orderedCounter) top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
