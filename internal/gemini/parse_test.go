package gemini

import (
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n[1,2]\n```", want: "[1,2]"},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: "{\"a\":1}"},
		{name: "no fence", in: "  plain text  ", want: "plain text"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			if got := StripCodeFences(testCase.in); got != testCase.want {
				t.Fatalf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestSliceJSONArray(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "surrounded by prose", in: "Here is your plan: [1,2,3] enjoy!", want: "[1,2,3]"},
		{name: "already clean", in: "[1]", want: "[1]"},
		{name: "no array", in: "sorry, no data", want: "sorry, no data"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			if got := SliceJSONArray(testCase.in); got != testCase.want {
				t.Fatalf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	raw := "```json\n[{\"day\":\"Day 1\",\"focus\":\"Rest\",\"taskTip\":\"light tasks\",\"workout\":\"yoga\",\"energy\":\"Low\"}]\n```"
	schedule, err := ParseSchedule(raw)
	if err != nil {
		t.Fatalf("parse schedule: %v", err)
	}
	if len(schedule) != 1 {
		t.Fatalf("expected 1 day, got %d", len(schedule))
	}
	if schedule[0].Focus != "Rest" || schedule[0].Energy != "Low" {
		t.Fatalf("unexpected day %+v", schedule[0])
	}
}

func TestParseSchedule_MalformedOutput(t *testing.T) {
	t.Parallel()

	if _, err := ParseSchedule("I cannot generate a schedule today."); err == nil {
		t.Fatal("expected an error for prose output")
	}
}

func TestParseExtraction(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"symptoms\":[\"cramps\",\"fatigue\"],\"mood\":\"sad\",\"pain_level\":7,\"cycle_phase_indicator\":null,\"notes\":null}\n```"
	record := ParseExtraction(raw)

	if len(record.Symptoms) != 2 || record.Symptoms[0] != "cramps" {
		t.Fatalf("unexpected symptoms %v", record.Symptoms)
	}
	if record.Mood == nil || *record.Mood != "sad" {
		t.Fatalf("unexpected mood %+v", record.Mood)
	}
	if record.PainLevel == nil || *record.PainLevel != 7 {
		t.Fatalf("unexpected pain level %+v", record.PainLevel)
	}
	if !record.HasData() {
		t.Fatal("expected record to report data")
	}
}

func TestParseExtraction_MalformedFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	record := ParseExtraction("the patient seems fine")
	if record.HasData() {
		t.Fatalf("expected empty record, got %+v", record)
	}
}

func TestParseCalendar(t *testing.T) {
	t.Parallel()

	raw := "Here is your plan:\n```json\n[{\"day\":\"Friday\",\"date\":\"Feb 20\",\"focus\":\"Recovery\",\"taskTip\":\"wrap up loose ends\",\"workout\":\"30-min yoga flow\",\"nutrition\":\"Prioritize iron-rich foods\",\"energy\":\"Low\"}]\n```"
	calendar, err := ParseCalendar(raw)
	if err != nil {
		t.Fatalf("parse calendar: %v", err)
	}
	if len(calendar) != 1 {
		t.Fatalf("expected 1 day, got %d", len(calendar))
	}
	if calendar[0].Date != "Feb 20" || calendar[0].Nutrition != "Prioritize iron-rich foods" {
		t.Fatalf("unexpected day %+v", calendar[0])
	}
}

func TestParseCalendar_MalformedOutput(t *testing.T) {
	t.Parallel()

	if _, err := ParseCalendar("no calendar today"); err == nil {
		t.Fatal("expected an error for prose output")
	}
}
