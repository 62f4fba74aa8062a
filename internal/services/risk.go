package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/astravine/mirelle/internal/models"
)

const (
	RiskLevelLow      = "Low"
	RiskLevelModerate = "Moderate"
	RiskLevelElevated = "Elevated"
	RiskLevelHigh     = "High"
)

// RiskAssessment is the bounded, explainable result of scoring a log
// history. It is derived on demand and never persisted.
type RiskAssessment struct {
	RiskScore      int      `json:"riskScore"`
	RiskLevel      string   `json:"riskLevel,omitempty"`
	Markers        []string `json:"markers"`
	AssessmentText string   `json:"assessmentText"`
}

// AssessRisk scores a user's recent log history (most recent first, capped at
// 90 by the caller). It is pure: no I/O, deterministic for a given input.
func AssessRisk(entries []models.LogEntry) RiskAssessment {
	if len(entries) == 0 {
		return RiskAssessment{
			RiskScore:      0,
			Markers:        []string{},
			AssessmentText: "Not enough data yet. Continue logging your symptoms daily to receive a personalized PCOS risk assessment.",
		}
	}

	frequency := make(map[string]int)
	for _, entry := range entries {
		for _, tag := range entry.Symptoms.Tags() {
			frequency[tag]++
		}
	}

	score := 0
	markers := make([]string, 0, len(HighRiskMarkers)+len(ModerateRiskMarkers)+1)

	for _, marker := range HighRiskMarkers {
		count := frequency[marker]
		switch {
		case count >= 3:
			score += 15
			markers = append(markers, marker)
		case count >= 1:
			score += 8
			markers = append(markers, marker)
		}
	}

	for _, marker := range ModerateRiskMarkers {
		count := frequency[marker]
		switch {
		case count >= 3:
			score += 8
			markers = append(markers, marker)
		case count >= 1:
			score += 4
		}
	}

	irregularity := cycleIrregularityScore(entries)
	score += irregularity
	if irregularity > 0 {
		markers = append(markers, MarkerCycleIrregularity)
	}

	// Sparse histories dampen the signal before it can inflate a risk score.
	totalEntries := len(entries)
	uniqueDays := countDistinctDays(entries)
	consistency := float64(uniqueDays) / float64(minInt(totalEntries, 30))
	if consistency < 0.5 && totalEntries < 10 {
		score = int(math.Round(float64(score) * 0.7))
	}

	riskScore := clampInt(score, 0, 100)
	level, text := riskNarrative(riskScore, markers)

	return RiskAssessment{
		RiskScore:      riskScore,
		RiskLevel:      level,
		Markers:        markers,
		AssessmentText: text,
	}
}

// cycleIrregularityScore inspects the gaps between period_start entries.
// Mean gap outside 21–35 days counts as an irregular cycle length; mean
// absolute deviation above 7 days counts as high variability.
func cycleIrregularityScore(entries []models.LogEntry) int {
	starts := make([]time.Time, 0)
	for _, entry := range entries {
		if entry.Symptoms.Contains(models.TagPeriodStart) {
			starts = append(starts, dateOnly(entry.LogDate))
		}
	}
	if len(starts) < 2 {
		return 0
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	gaps := make([]float64, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		gaps = append(gaps, math.Round(starts[i].Sub(starts[i-1]).Hours()/24))
	}

	var total float64
	for _, gap := range gaps {
		total += gap
	}
	meanGap := total / float64(len(gaps))

	var deviation float64
	for _, gap := range gaps {
		deviation += math.Abs(gap - meanGap)
	}
	meanAbsDeviation := deviation / float64(len(gaps))

	score := 0
	if meanGap < 21 || meanGap > 35 {
		score += 25
	}
	if meanAbsDeviation > 7 {
		score += 15
	}
	return score
}

func riskNarrative(riskScore int, markers []string) (string, string) {
	switch {
	case riskScore < 20:
		return RiskLevelLow,
			"Your logged symptoms suggest a low likelihood of PCOS-related patterns. Keep logging consistently for a more accurate picture."
	case riskScore < 45:
		return RiskLevelModerate,
			fmt.Sprintf("Some markers associated with hormonal imbalance have been detected (%s). Consider discussing these patterns with your healthcare provider.", citeMarkers(markers, 3))
	case riskScore < 70:
		return RiskLevelElevated,
			fmt.Sprintf("Multiple PCOS-associated markers are present in your logs, including %s. This warrants a conversation with a gynecologist or endocrinologist.", citeMarkers(markers, 3))
	default:
		return RiskLevelHigh,
			fmt.Sprintf("Your symptom history shows a strong pattern of PCOS-associated markers (%s). We strongly recommend scheduling a clinical evaluation. Use the \"Download Clinical Report\" feature to prepare documentation for your appointment.", citeMarkers(markers, 4))
	}
}

func citeMarkers(markers []string, limit int) string {
	if len(markers) > limit {
		markers = markers[:limit]
	}
	return strings.Join(markers, ", ")
}

func countDistinctDays(entries []models.LogEntry) int {
	days := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		days[entry.LogDate.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
