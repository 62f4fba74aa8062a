package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/astravine/mirelle/internal/models"
	"github.com/astravine/mirelle/internal/services"
)

const systemPrompt = `You are a warm, knowledgeable, and engaging health companion for women.
Your goal is to provide helpful, friendly advice and tips based on the user's current input.

Guidelines:
1. Focus on the Now: Address the user's latest message directly. Do not over-reference previous messages unless strictly relevant.
2. Be Engaging & Helpful: Offer practical tips, tricks, or comforting words. Make the conversation feel alive and supportive.
3. Use Context Subtly: You have access to cycle logs and past chat history. Weave this knowledge naturally into your response.
4. Safety First: Do not provide medical diagnoses. Always suggest consulting a healthcare professional for serious concerns.
5. Tone: Empathetic, positive, and professional yet accessible.
6. Brevity: Keep responses concise (approx. 3-4 sentences) unless a detailed explanation is requested.
7. Markdown: Use markdown sparingly and only when it meaningfully enhances readability.`

func chatContextPrompt(firstName string, language string, logs []models.LogEntry) string {
	var builder strings.Builder
	builder.WriteString(systemPrompt)

	if firstName != "" {
		fmt.Fprintf(&builder,
			"\n[System Note: The user's name is %q and their language is %q. Respond in that language when appropriate. Use their name occasionally.]",
			firstName, language)
	}

	if len(logs) > 0 {
		builder.WriteString("\n\n[System Note: User's Recent Health Logs]\n")
		for index, entry := range logs {
			if index > 0 {
				builder.WriteString("\n")
			}
			fmt.Fprintf(&builder, "- Date: %s, Symptoms: %s",
				entry.LogDate.Format("2006-01-02"), describeSymptoms(entry.Symptoms))
		}
	}
	return builder.String()
}

func describeSymptoms(payload models.SymptomPayload) string {
	if payload.Record != nil {
		encoded, err := json.Marshal(payload.Record)
		if err == nil {
			return string(encoded)
		}
	}
	return strings.Join(payload.Tags(), ", ")
}

func seedHistory(contextPrompt string, firstName string) []Message {
	acknowledgment := "Understood. I am ready to be a supportive and insightful health companion"
	if firstName != "" {
		acknowledgment += " for " + firstName
	}
	acknowledgment += "."
	return []Message{
		{Role: "user", Content: contextPrompt},
		{Role: "model", Content: acknowledgment},
	}
}

func extractionPrompt(message string) string {
	return fmt.Sprintf(`You are a clinical data extraction system. Analyze the following patient message and extract any health symptoms, conditions, or observations mentioned.

Patient message: %q

Return ONLY a valid JSON object with this exact structure (no markdown, no extra text):
{
  "symptoms": [],
  "mood": null,
  "pain_level": null,
  "cycle_phase_indicator": null,
  "notes": null
}

Where:
- "symptoms" is an array of strings from this list if mentioned: [%s]
- "mood" is one of: "happy", "sad", "anxious", "irritable", "calm", "depressed", or null
- "pain_level" is an integer 1-10 or null
- "cycle_phase_indicator" is one of: "menstrual", "follicular", "ovulatory", "luteal" or null
- "notes" is a brief free-text observation or null

If no clinical information is present, return the structure with empty/null values.`,
		message, quotedTagList())
}

func quotedTagList() string {
	quoted := make([]string, 0, len(services.KnownSymptomTags))
	for _, tag := range services.KnownSymptomTags {
		quoted = append(quoted, fmt.Sprintf("%q", tag))
	}
	return strings.Join(quoted, ", ")
}

func schedulePrompt(phase string, cycleDay int) string {
	return fmt.Sprintf(`You are a Bio-Hacking Assistant.
The user is currently in the %s phase (Cycle Day %d).
Generate a 7-day optimized schedule starting from today.

Return ONLY a valid JSON array of objects (no markdown blocks, no extra text).
Each object should represent a day and have this structure:
{
    "day": "Monday",
    "focus": "Creative|Execution|Rest|Social",
    "taskTip": "Specific work advice...",
    "workout": "Type of exercise...",
    "energy": "High|Medium|Low"
}`, phase, cycleDay)
}

func calendarPrompt(phase string, cycleDay int, startDay time.Time) string {
	return fmt.Sprintf(`You are a certified women's health and biohacking expert. The user is currently on cycle day %d in their %s phase.

Generate a 7-day personalized hormonal productivity and wellness schedule starting from %s.

Return ONLY a valid JSON array of 7 objects. No markdown fences, no extra text. Each object must have exactly these fields:
{
  "day": "Day name (e.g. Monday)",
  "date": "Short date label (e.g. Feb 20)",
  "focus": "One of: Creative, Execution, Rest, Social, Deep Work, Recovery",
  "taskTip": "One specific, actionable work or study tip (1-2 sentences) tailored to the current hormonal phase and day energy level",
  "workout": "A specific workout recommendation with duration (e.g. 30-min yoga flow, 45-min strength training)",
  "nutrition": "One key nutritional focus for hormonal support (e.g. Prioritize iron-rich foods like lentils and leafy greens)",
  "energy": "One of: High, Medium, Low"
}`, cycleDay, phase, startDay.Weekday().String())
}

// FormatLogsForClinician renders a log history the way the SOAP prompt
// expects: one numbered line per entry with every structured field spelled
// out.
func FormatLogsForClinician(logs []models.LogEntry) string {
	lines := make([]string, 0, len(logs))
	for index, entry := range logs {
		lines = append(lines, fmt.Sprintf("Entry %d [%s]: %s",
			index+1, entry.LogDate.Format("2006-01-02"), clinicianSymptomLine(entry.Symptoms)))
	}
	return strings.Join(lines, "\n")
}

func clinicianSymptomLine(payload models.SymptomPayload) string {
	const fallback = "No specific symptoms recorded"

	if record := payload.Record; record != nil {
		parts := make([]string, 0, 5)
		if len(record.Symptoms) > 0 {
			parts = append(parts, "Symptoms: "+strings.Join(record.Symptoms, ", "))
		}
		if record.Mood != nil && *record.Mood != "" {
			parts = append(parts, "Mood: "+*record.Mood)
		}
		if record.PainLevel != nil {
			parts = append(parts, fmt.Sprintf("Pain Level: %d/10", *record.PainLevel))
		}
		if record.CyclePhaseIndicator != nil && *record.CyclePhaseIndicator != "" {
			parts = append(parts, "Phase: "+*record.CyclePhaseIndicator)
		}
		if record.Notes != nil && *record.Notes != "" {
			parts = append(parts, "Notes: "+*record.Notes)
		}
		if len(parts) == 0 {
			return fallback
		}
		return strings.Join(parts, "; ")
	}

	tags := payload.Tags()
	if len(tags) == 0 {
		return fallback
	}
	return strings.Join(tags, ", ")
}

func reportPrompt(formattedLogs string, reportDate time.Time) string {
	return fmt.Sprintf(`You are a licensed gynecologist and clinical documentation specialist. You have been provided with a patient's self-reported health log spanning the past 30 days from a health tracking application.

Your task is to format these logs into a formal SOAP (Subjective, Objective, Assessment, Plan) clinical note that the patient can present to their physician.

Patient-reported logs:
%s

Format the output as a professional SOAP note. Use the following strict structure:

CLINICAL SUMMARY REPORT
Generated: %s
(Patient Self-Reported via Health Tracking Application)

SUBJECTIVE (S):
[Summarize the patient's reported symptoms in a clinical, first-person narrative as the patient would describe them. Include duration, frequency, and pattern of symptoms. Note any recurring complaints and their timeline.]

OBJECTIVE (O):
[Present the quantifiable, observable data extracted from the logs. Include: frequency counts of specific symptoms, documented pain levels, mood patterns, and cycle phase observations. Present as structured bullet points with dates where relevant.]

ASSESSMENT (A):
[Provide a differential clinical assessment based purely on the presented data. Identify potential symptom clusters. Note any patterns consistent with hormonal imbalances, menstrual irregularities, or conditions warranting further investigation. Include a statement that this is a preliminary assessment based on self-reported data and should not replace formal clinical evaluation.]

PLAN (P):
[Recommend 3-5 specific, actionable next steps for the attending physician to consider. Include suggested diagnostic tests (e.g., hormonal panels, ultrasound) and referrals if warranted by the symptom pattern.]

DISCLAIMER: This report is generated from patient self-reported data and is intended as a clinical advocacy tool to facilitate informed discussions with healthcare providers. It does not constitute a medical diagnosis.`,
		formattedLogs, reportDate.Format("January 2, 2006"))
}

// SymptomSummary collects the distinct humanized tags across a log window,
// preserving first-seen order. Used by the accommodation email prompt.
func SymptomSummary(logs []models.LogEntry) string {
	seen := make(map[string]struct{})
	ordered := make([]string, 0)
	for _, entry := range logs {
		for _, tag := range entry.Symptoms.Tags() {
			humanized := services.HumanizeTag(tag)
			if _, duplicate := seen[humanized]; duplicate {
				continue
			}
			seen[humanized] = struct{}{}
			ordered = append(ordered, humanized)
		}
	}
	if len(ordered) == 0 {
		return "no specific symptoms documented"
	}
	return strings.Join(ordered, ", ")
}

func accommodationEmailPrompt(symptomSummary string) string {
	return fmt.Sprintf(`You are an expert HR communication specialist and patient advocate.

Draft a professional workplace accommodation request email for an employee experiencing a chronic women's health condition. The email should be privacy-preserving, firm, empathetic, and legally informed.

Context:
- The employee has been tracking recurring health symptoms over recent weeks including: %s
- These symptoms periodically impact their ability to maintain standard work schedules and physical presence requirements

Draft an email that:
1. Is addressed generically to "HR Department / [Manager Name]"
2. Opens with a clear, professional statement of purpose
3. Names the general nature of the condition as "a documented chronic gynecological health condition" without disclosing specifics
4. References relevant accommodation provisions (e.g., flexible scheduling, remote work options, medical leave entitlements under applicable employment law)
5. Requests a confidential meeting to discuss accommodations
6. Maintains a calm, professional, and assertive tone that prevents medical gaslighting
7. Closes with a request for written acknowledgment of receipt
8. Uses [Your Name], [Your Department], [Your Employee ID] as placeholders

Return ONLY the email text, starting with "Subject:" and ending with the signature block. No preamble or explanation.`, symptomSummary)
}
