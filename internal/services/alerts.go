package services

// SubmissionAlert is raised synchronously when a freshly submitted log
// matches one of the fixed safety rules. Reason is the canonical English
// text that gets persisted; Key lets the API localize the response.
type SubmissionAlert struct {
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
	Key      string `json:"-"`
}

const (
	AlertKeyHeavyFlowCramps = "alert.heavy_flow_cramps"
	AlertKeyAnemiaRisk      = "alert.anemia_risk"
	AlertKeyEmergency       = "alert.emergency"
)

const (
	alertHeavyFlowCramps = "Possible heavy flow with cramps; track closely and stay hydrated."
	alertAnemiaRisk      = "Heavy bleeding with fatigue can indicate anemia. Please consult a doctor if this persists."
	alertEmergency       = "Multiple severe symptoms reported; please consult a health worker immediately."
)

// EvaluateSubmissionAlert applies the rules in priority order over the
// normalized tag list. A nil result means no alert.
func EvaluateSubmissionAlert(tags []string) *SubmissionAlert {
	present := make(map[string]bool, len(tags))
	for _, tag := range tags {
		present[tag] = true
	}

	switch {
	case present["heavy bleeding"] && present["cramps"]:
		return &SubmissionAlert{Severity: "warning", Reason: alertHeavyFlowCramps, Key: AlertKeyHeavyFlowCramps}
	case present["heavy bleeding"] && present["fatigue"]:
		return &SubmissionAlert{Severity: "warning", Reason: alertAnemiaRisk, Key: AlertKeyAnemiaRisk}
	case present["severe"] || len(tags) > 4:
		return &SubmissionAlert{Severity: "emergency", Reason: alertEmergency, Key: AlertKeyEmergency}
	default:
		return nil
	}
}
