package gemini

import "strings"

// StripCodeFences removes markdown code fences the model wraps JSON in
// despite being told not to.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// SliceJSONArray cuts the text down to the outermost [...] span, dropping
// any prose the model added around it. Returns the input unchanged when no
// array is present.
func SliceJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

// SliceJSONObject is SliceJSONArray for {...} spans.
func SliceJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
