package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSymptomPayloadTags_WireShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "tag array", raw: `["cramps","fatigue"]`, want: []string{"cramps", "fatigue"}},
		{name: "array drops non-strings", raw: `["cramps",3,null,["nested"]]`, want: []string{"cramps"}},
		{name: "structured record", raw: `{"symptoms":["acne","bloating"],"mood":"sad","pain_level":6}`, want: []string{"acne", "bloating"}},
		{name: "generic object keeps string values", raw: `{"b":"fatigue","a":"cramps","n":7}`, want: []string{"cramps", "fatigue"}},
		{name: "quoted delimited string", raw: `"cramps, fatigue , "`, want: []string{"cramps", "fatigue"}},
		{name: "quoted encoded array", raw: `"[\"acne\"]"`, want: []string{"acne"}},
		{name: "null", raw: `null`, want: []string{}},
		{name: "empty array", raw: `[]`, want: []string{}},
		{name: "malformed json", raw: `[broken`, want: []string{}},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			var payload SymptomPayload
			if err := json.Unmarshal([]byte(testCase.raw), &payload); err != nil {
				t.Fatalf("unmarshal must never fail, got %v", err)
			}
			got := payload.Tags()
			if !reflect.DeepEqual(got, testCase.want) {
				t.Fatalf("expected tags %v, got %v", testCase.want, got)
			}
		})
	}
}

func TestSymptomPayloadTags_Idempotent(t *testing.T) {
	t.Parallel()

	raw := []string{
		`["cramps","period_start"]`,
		`{"symptoms":["acne"],"mood":null,"pain_level":null,"cycle_phase_indicator":null,"notes":null}`,
		`"headache,nausea"`,
	}

	for _, input := range raw {
		var payload SymptomPayload
		if err := json.Unmarshal([]byte(input), &payload); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		once := payload.Tags()
		renormalized := PayloadFromTags(once...).Tags()
		if !reflect.DeepEqual(once, renormalized) {
			t.Fatalf("normalization not idempotent for %s: %v != %v", input, once, renormalized)
		}
	}
}

func TestSymptomPayloadScan_LegacyBareString(t *testing.T) {
	t.Parallel()

	var payload SymptomPayload
	if err := payload.Scan("cramps,mood_swings"); err != nil {
		t.Fatalf("scan legacy string: %v", err)
	}
	want := []string{"cramps", "mood_swings"}
	if got := payload.Tags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSymptomPayload_RoundTripPreservesShape(t *testing.T) {
	t.Parallel()

	mood := "anxious"
	pain := 4
	payload := PayloadFromRecord(SymptomRecord{
		Symptoms:  []string{"cramps"},
		Mood:      &mood,
		PainLevel: &pain,
	})

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded SymptomPayload
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Record == nil {
		t.Fatal("expected structured record to survive a round trip")
	}
	if decoded.Record.Mood == nil || *decoded.Record.Mood != mood {
		t.Fatalf("expected mood %q to survive, got %+v", mood, decoded.Record.Mood)
	}
	if !decoded.Contains("cramps") {
		t.Fatal("expected cramps tag after round trip")
	}
}

func TestSymptomRecordHasData(t *testing.T) {
	t.Parallel()

	empty := SymptomRecord{}
	if empty.HasData() {
		t.Fatal("empty record must report no data")
	}

	notes := "slept badly"
	withNotes := SymptomRecord{Notes: &notes}
	if !withNotes.HasData() {
		t.Fatal("record with notes must report data")
	}
}
