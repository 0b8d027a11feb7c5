package jsonexport

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

func sampleScore() *types.Score {
	c5 := types.NewNote(types.NoteSpec{Step: "C", Octave: 5, Duration: 4, Staff: "1", Voice: "1"})
	e5 := types.NewNote(types.NoteSpec{Step: "E", Octave: 5, Duration: 4, Staff: "1", Voice: "1", Chord: true})
	rest := types.NewRest(2, "1", "2")
	tied := types.NewNote(types.NoteSpec{Step: "F", Alter: 1, Octave: 4, Duration: 2, Staff: "1", Voice: "2", Tie: types.Tie{Start: true}})

	m := types.NewMeasure(1, 4, []types.Event{c5, e5, rest, tied}, []types.Repeat{{Direction: types.RepeatBackward}})
	return &types.Score{
		Title:    "Etude",
		Parts:    []types.Part{{ID: "P1", Measures: []types.Measure{m}}},
		Warnings: []types.Warning{{Stage: "pitch", Message: "note has no octave", Part: "P1", Measure: "3"}},
	}
}

func TestFromScore(t *testing.T) {
	got := FromScore(sampleScore())

	want := Score{
		Title: "Etude",
		Parts: []Part{{
			ID:        "P1",
			Divisions: 4,
			Measures: []Measure{{
				Number:    1,
				Divisions: 4,
				Duration:  4,
				Repeat:    &types.Repeat{Direction: types.RepeatBackward},
				Voices: [][]Event{
					{{
						Kind: KindChord, Name: "E5\nC5", Duration: 4, Staff: "1", Voice: "1",
						Notes: []Event{
							{Kind: KindNote, Name: "E5", Duration: 4, Staff: "1", Voice: "1", InChord: true,
								Pitch: &types.Pitch{Step: "E", Octave: 5}},
							{Kind: KindNote, Name: "C5", Duration: 4, Staff: "1", Voice: "1",
								Pitch: &types.Pitch{Step: "C", Octave: 5}},
						},
					}},
					{
						{Kind: KindRest, Name: "-", Duration: 2, Staff: "1", Voice: "2"},
						{Kind: KindNote, Name: "F#4" + types.TieGlyph, Duration: 2, Staff: "1", Voice: "2",
							Pitch: &types.Pitch{Step: "F", Accidental: "#", Octave: 4, Alter: 1},
							Tie:   &types.Tie{Start: true}},
					},
				},
			}},
		}},
		Warnings: []Warning{{Stage: "pitch", Message: "note has no octave", Part: "P1", Measure: "3"}},
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(types.Pitch{})); diff != "" {
		t.Errorf("FromScore() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleScore(), false); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"title":"Etude"`, `"kind":"chord"`, `"direction":"backward"`, `"accidental":"#"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %s:\n%s", want, out)
		}
	}

	var decoded Score
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestEncode_EmptyScore(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &types.Score{}, false); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"parts":[]}` {
		t.Errorf("Encode() = %s, want {\"parts\":[]}", got)
	}
}

func TestValidate(t *testing.T) {
	e := &exporter{}
	score := sampleScore()

	var buf bytes.Buffer
	if err := e.Export(&buf, score); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := e.Validate(bytes.NewReader(buf.Bytes()), score); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	other := sampleScore()
	other.Title = "Other"
	if err := e.Validate(bytes.NewReader(buf.Bytes()), other); err == nil {
		t.Error("Validate() should fail on title mismatch")
	}
}

func TestRegistered(t *testing.T) {
	if registry.GetExporter(types.ExportJSON) == nil {
		t.Error("no exporter registered for JSON")
	}
}
