package services

import "strings"

// Marker catalogs used by the risk scoring engine. Order matters: markers are
// reported in catalog order, and narratives cite the first few.
var (
	HighRiskMarkers     = []string{"acne", "hirsutism", "weight_gain", "irregular_period"}
	ModerateRiskMarkers = []string{"fatigue", "mood_swings", "bloating", "insomnia"}
)

// MarkerCycleIrregularity is appended when the cycle-irregularity sub-score
// is non-zero.
const MarkerCycleIrregularity = "cycle_irregularity"

// KnownSymptomTags is the closed vocabulary the chat extraction prompt is
// allowed to produce.
var KnownSymptomTags = []string{
	"cramps", "bloating", "headache", "fatigue", "acne", "hirsutism",
	"weight_gain", "irregular_period", "period_start", "period_end",
	"mood_swings", "anxiety", "insomnia", "hot_flashes", "nausea",
	"breast_tenderness", "spotting",
}

// HumanizeTag turns a snake_case tag into display text.
func HumanizeTag(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}
