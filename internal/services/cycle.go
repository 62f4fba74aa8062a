package services

import (
	"math"
	"time"

	"github.com/astravine/mirelle/internal/models"
)

const (
	PhaseMenstrual  = "Menstrual (The Reset)"
	PhaseFollicular = "Follicular (The Creative High)"
	PhaseOvulatory  = "Ovulatory (The Peak)"
	PhaseLuteal     = "Luteal (The Deep Work)"
)

// CyclePhaseEstimate is derived on demand from the log history or an
// explicit override; it feeds schedule prompt construction.
type CyclePhaseEstimate struct {
	CycleDay int    `json:"cycleDay"`
	Phase    string `json:"phase"`
}

// EstimateCyclePhase resolves the current cycle day and phase. An override
// greater than zero wins outright. Otherwise the most recent entry tagged
// period_start anchors the count; with no anchor the estimate defaults to
// day 1. Entries must already be ordered most recent first.
func EstimateCyclePhase(entries []models.LogEntry, overrideDay int, now time.Time) CyclePhaseEstimate {
	cycleDay := 1
	if overrideDay > 0 {
		cycleDay = overrideDay
	} else if anchor, found := latestPeriodStart(entries); found {
		diff := now.Sub(anchor)
		if diff < 0 {
			diff = -diff
		}
		days := int(math.Ceil(diff.Hours() / 24))
		if days > 0 {
			cycleDay = days
		}
	}
	return CyclePhaseEstimate{CycleDay: cycleDay, Phase: PhaseForDay(cycleDay)}
}

// PhaseForDay maps a cycle day to its phase label. Days below 1 are clamped.
func PhaseForDay(cycleDay int) string {
	switch {
	case cycleDay <= 5:
		return PhaseMenstrual
	case cycleDay <= 13:
		return PhaseFollicular
	case cycleDay <= 16:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}

func latestPeriodStart(entries []models.LogEntry) (time.Time, bool) {
	for _, entry := range entries {
		if !entry.Symptoms.Contains(models.TagPeriodStart) {
			continue
		}
		if entry.LogDate.IsZero() {
			continue
		}
		return dateOnly(entry.LogDate), true
	}
	return time.Time{}, false
}
