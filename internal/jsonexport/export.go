// Package jsonexport writes a score model as JSON.
//
// The JSON mirrors the model's output surface: parts, measures with their
// derived duration and repeat sign, and per-voice event sequences. It is
// the format served by the HTTP API and written by "mxl dump".
package jsonexport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

// Event kinds.
const (
	KindNote  = "note"
	KindRest  = "rest"
	KindChord = "chord"
)

// Score is the JSON form of types.Score.
type Score struct {
	Title    string    `json:"title,omitempty"`
	Parts    []Part    `json:"parts"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Part is the JSON form of types.Part.
type Part struct {
	ID        string    `json:"id"`
	Divisions int       `json:"divisions,omitempty"`
	Measures  []Measure `json:"measures"`
}

// Measure is the JSON form of types.Measure.
type Measure struct {
	Number    int            `json:"number"`
	Divisions int            `json:"divisions,omitempty"`
	Duration  int            `json:"duration"`
	Repeat    *types.Repeat  `json:"repeat,omitempty"`
	Repeats   []types.Repeat `json:"repeats,omitempty"`
	Voices    [][]Event      `json:"voices"`
}

// Event is the JSON form of a note, rest or chord. Chords list their notes,
// highest first.
type Event struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name"`
	Duration int          `json:"duration"`
	Staff    string       `json:"staff,omitempty"`
	Voice    string       `json:"voice,omitempty"`
	InChord  bool         `json:"in_chord,omitempty"`
	Pitch    *types.Pitch `json:"pitch,omitempty"`
	Tie      *types.Tie   `json:"tie,omitempty"`
	Notes    []Event      `json:"notes,omitempty"`
}

// Warning is the JSON form of types.Warning.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Part    string `json:"part,omitempty"`
	Measure string `json:"measure,omitempty"`
}

// FromScore converts the model to its JSON form.
func FromScore(s *types.Score) Score {
	out := Score{Title: s.Title, Parts: make([]Part, 0, len(s.Parts))}

	for _, p := range s.Parts {
		part := Part{ID: p.ID, Divisions: p.Divisions(), Measures: make([]Measure, 0, len(p.Measures))}
		for _, m := range p.Measures {
			part.Measures = append(part.Measures, fromMeasure(m))
		}
		out.Parts = append(out.Parts, part)
	}

	for _, w := range s.Warnings {
		out.Warnings = append(out.Warnings, Warning(w))
	}
	return out
}

func fromMeasure(m types.Measure) Measure {
	out := Measure{
		Number:    m.Number,
		Divisions: m.Divisions,
		Duration:  m.Duration(),
		Repeat:    m.Repeat(),
		Voices:    [][]Event{},
	}
	if repeats := m.Repeats(); len(repeats) > 1 {
		out.Repeats = repeats
	}

	for _, voice := range m.NotesAndChordsByStaff() {
		events := make([]Event, 0, len(voice))
		for _, e := range voice {
			events = append(events, fromEvent(e))
		}
		out.Voices = append(out.Voices, events)
	}
	return out
}

func fromEvent(e types.Event) Event {
	out := Event{
		Name:     e.Name(),
		Duration: e.Duration(),
		Staff:    e.Staff(),
		Voice:    e.Voice(),
		InChord:  e.InChord(),
	}

	switch ev := e.(type) {
	case *types.Note:
		out.Kind = KindNote
		pitch := ev.Pitch()
		out.Pitch = &pitch
		if tie := ev.Tie(); tie.Start || tie.Stop {
			out.Tie = &tie
		}
	case *types.Rest:
		out.Kind = KindRest
	case *types.Chord:
		out.Kind = KindChord
		for _, n := range ev.Notes() {
			out.Notes = append(out.Notes, fromEvent(n))
		}
	}
	return out
}

// Encode writes the JSON form of s to w, indented when indent is set.
func Encode(w io.Writer, s *types.Score, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(FromScore(s)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// exporter implements registry.Exporter and registry.Validator.
type exporter struct{}

func (e *exporter) Export(w io.Writer, score *types.Score) error {
	return Encode(w, score, true)
}

// Validate decodes exported JSON and compares its shape with score.
func (e *exporter) Validate(r io.Reader, score *types.Score) error {
	var got Score
	if err := json.NewDecoder(r).Decode(&got); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if got.Title != score.Title {
		return fmt.Errorf("title mismatch: got %q, want %q", got.Title, score.Title)
	}
	if len(got.Parts) != len(score.Parts) {
		return fmt.Errorf("part count mismatch: got %d, want %d", len(got.Parts), len(score.Parts))
	}
	for i, p := range got.Parts {
		if len(p.Measures) != len(score.Parts[i].Measures) {
			return fmt.Errorf("part %s: measure count mismatch: got %d, want %d",
				p.ID, len(p.Measures), len(score.Parts[i].Measures))
		}
	}
	return nil
}

func init() {
	registry.RegisterExporter(types.ExportJSON, &exporter{})
}
