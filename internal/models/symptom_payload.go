package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SymptomRecord is the structured form of a symptom submission, produced by
// the chat extraction pipeline.
type SymptomRecord struct {
	Symptoms            []string `json:"symptoms"`
	Mood                *string  `json:"mood"`
	PainLevel           *int     `json:"pain_level"`
	CyclePhaseIndicator *string  `json:"cycle_phase_indicator"`
	Notes               *string  `json:"notes"`
}

// HasData reports whether the record carries anything worth persisting.
func (record SymptomRecord) HasData() bool {
	if len(record.Symptoms) > 0 {
		return true
	}
	if record.Mood != nil && *record.Mood != "" {
		return true
	}
	if record.PainLevel != nil && *record.PainLevel > 0 {
		return true
	}
	if record.Notes != nil && *record.Notes != "" {
		return true
	}
	return false
}

// SymptomPayload is the symptom field of a log entry. The stored shape is
// polymorphic: a plain tag array, a structured record, a generic object whose
// string values are treated as tags, or a legacy comma-delimited string.
// Consumers never branch on the shape; they call Tags.
type SymptomPayload struct {
	List   []string
	Record *SymptomRecord
	Fields map[string]string
	Legacy string
}

// PayloadFromTags wraps a plain tag list.
func PayloadFromTags(tags ...string) SymptomPayload {
	return SymptomPayload{List: tags}
}

// PayloadFromRecord wraps a structured record.
func PayloadFromRecord(record SymptomRecord) SymptomPayload {
	return SymptomPayload{Record: &record}
}

// Tags flattens the payload into its canonical tag list. It is idempotent,
// tolerates malformed input, and returns an empty slice rather than failing.
func (payload SymptomPayload) Tags() []string {
	switch {
	case payload.Record != nil:
		return cleanTags(payload.Record.Symptoms)
	case payload.List != nil:
		return cleanTags(payload.List)
	case payload.Fields != nil:
		keys := make([]string, 0, len(payload.Fields))
		for key := range payload.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		values := make([]string, 0, len(keys))
		for _, key := range keys {
			values = append(values, payload.Fields[key])
		}
		return cleanTags(values)
	case payload.Legacy != "":
		return legacyTags(payload.Legacy)
	default:
		return []string{}
	}
}

// Contains reports whether the canonical tag list includes the given tag.
func (payload SymptomPayload) Contains(tag string) bool {
	for _, candidate := range payload.Tags() {
		if candidate == tag {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the payload normalizes to no tags and carries no
// structured data.
func (payload SymptomPayload) IsEmpty() bool {
	if payload.Record != nil {
		return !payload.Record.HasData()
	}
	return len(payload.Tags()) == 0
}

func (payload SymptomPayload) MarshalJSON() ([]byte, error) {
	switch {
	case payload.Record != nil:
		return json.Marshal(payload.Record)
	case payload.List != nil:
		return json.Marshal(payload.List)
	case payload.Fields != nil:
		return json.Marshal(payload.Fields)
	case payload.Legacy != "":
		return json.Marshal(payload.Legacy)
	default:
		return []byte("[]"), nil
	}
}

func (payload *SymptomPayload) UnmarshalJSON(data []byte) error {
	*payload = decodePayload(data)
	return nil
}

// Value implements driver.Valuer so GORM stores the payload as a JSON column.
func (payload SymptomPayload) Value() (driver.Value, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode symptom payload: %w", err)
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner. Rows written by older clients can hold bare
// delimited strings instead of JSON; those are accepted as the legacy form.
func (payload *SymptomPayload) Scan(value any) error {
	switch typed := value.(type) {
	case nil:
		*payload = SymptomPayload{}
		return nil
	case []byte:
		*payload = decodePayload(typed)
		return nil
	case string:
		*payload = decodePayload([]byte(typed))
		return nil
	default:
		*payload = SymptomPayload{}
		return nil
	}
}

func decodePayload(data []byte) SymptomPayload {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return SymptomPayload{}
	}

	switch trimmed[0] {
	case '[':
		var raw []any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return SymptomPayload{Legacy: string(trimmed)}
		}
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			if tag, ok := item.(string); ok {
				list = append(list, tag)
			}
		}
		return SymptomPayload{List: list}
	case '{':
		return decodeObjectPayload(trimmed)
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return SymptomPayload{Legacy: string(trimmed)}
		}
		// A quoted value may itself hold encoded JSON from an older client.
		nested := bytes.TrimSpace([]byte(text))
		if len(nested) > 0 && (nested[0] == '[' || nested[0] == '{') {
			return decodePayload(nested)
		}
		return SymptomPayload{Legacy: text}
	default:
		return SymptomPayload{Legacy: string(trimmed)}
	}
}

func decodeObjectPayload(data []byte) SymptomPayload {
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return SymptomPayload{Legacy: string(data)}
	}

	if _, ok := generic["symptoms"].([]any); ok {
		var record SymptomRecord
		if err := json.Unmarshal(data, &record); err == nil {
			return SymptomPayload{Record: &record}
		}
	}

	fields := make(map[string]string)
	for key, value := range generic {
		if text, ok := value.(string); ok {
			fields[key] = text
		}
	}
	return SymptomPayload{Fields: fields}
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func legacyTags(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}
	if trimmed[0] == '[' || trimmed[0] == '{' {
		// Unparseable JSON ends up here; a broken blob yields no tags.
		return []string{}
	}
	return cleanTags(strings.Split(trimmed, ","))
}
