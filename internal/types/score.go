package types

import (
	"errors"
	"fmt"

	"github.com/simonhull/musicxml/internal/document"
)

// Score is the model of one MusicXML document.
type Score struct {
	// Title is the first work title in the document, or "" when it has none.
	Title string

	// Parts in document order.
	Parts []Part

	// Warnings collects the soft failures met while building the model.
	Warnings []Warning
}

// Part is one instrument or voice group of a score.
type Part struct {
	ID       string
	Measures []Measure
}

// Divisions returns the first divisions value declared in the part, or 0.
func (p Part) Divisions() int {
	for _, m := range p.Measures {
		if m.Divisions > 0 {
			return m.Divisions
		}
	}
	return 0
}

// FromDocument builds a Score from a parsed document rooted at its
// top-level element.
//
// Building never fails: missing or unreadable fields degrade to zero
// values, unresolved pitches or empty parts and are reported in
// Score.Warnings. Each call allocates a fresh model, so independent
// documents may be converted concurrently.
func FromDocument(doc *document.Node) *Score {
	b := &builder{}
	s := &Score{}

	if doc == nil {
		return s
	}

	if title, ok := doc.TextOf("work-title"); ok {
		s.Title = title
	}

	if doc.Name == "score-timewise" {
		b.warn(Warning{
			Stage:   "layout",
			Message: "time-wise scores are not supported; no parts were read",
		})
		s.Warnings = b.warnings
		return s
	}

	for _, el := range doc.ElementsByTag("part") {
		s.Parts = append(s.Parts, b.part(el))
	}

	s.Warnings = b.warnings
	return s
}

// builder carries the warning list and position through one conversion.
type builder struct {
	warnings []Warning
	partID   string
	number   string
}

func (b *builder) warn(w Warning) {
	b.warnings = append(b.warnings, w)
}

func (b *builder) warnf(stage, format string, args ...any) {
	b.warn(Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Part:    b.partID,
		Measure: b.number,
	})
}

func (b *builder) part(el *document.Node) Part {
	id, _ := el.Attr("id")
	b.partID, b.number = id, ""

	p := Part{ID: id}
	for _, m := range el.ElementsByTag("measure") {
		p.Measures = append(p.Measures, b.measureOf(m))
	}
	return p
}

func (b *builder) measureOf(el *document.Node) Measure {
	raw, _ := el.Attr("number")
	b.number = raw

	number, err := document.ParseInt(raw)
	if err != nil {
		b.warnf("measure", "measure number %q is not a whole number", raw)
		number = 0
	}

	divisions, err := el.IntOf("divisions")
	if err != nil && !errors.Is(err, document.ErrNotFound) {
		b.warnf("measure", "divisions: %v", err)
	}
	divisions = max(divisions, 0)

	var events []Event
	for _, n := range el.ElementsByTag("note") {
		events = append(events, b.event(n))
	}

	var repeats []Repeat
	for _, bar := range el.ElementsByTag("barline") {
		for _, r := range bar.ElementsByTag("repeat") {
			if dir, ok := r.Attr("direction"); ok {
				repeats = append(repeats, Repeat{Direction: dir})
			}
		}
	}

	return NewMeasure(number, divisions, events, repeats)
}

func (b *builder) event(el *document.Node) Event {
	staff, _ := el.TextOf("staff")
	voice, _ := el.TextOf("voice")

	// Grace notes carry no duration.
	duration, err := el.IntOf("duration")
	if err != nil && !errors.Is(err, document.ErrNotFound) {
		b.warnf("duration", "%v; treated as 0", err)
		duration = 0
	}
	if duration < 0 {
		b.warnf("duration", "negative duration %d; treated as 0", duration)
	}

	if el.Has("rest") {
		return NewRest(duration, staff, voice)
	}

	spec := NoteSpec{
		Duration: duration,
		Staff:    staff,
		Voice:    voice,
		Chord:    el.Has("chord"),
		Tie:      tieOf(el),
	}
	b.pitch(el.First("pitch"), &spec)

	return NewNote(spec)
}

func (b *builder) pitch(el *document.Node, spec *NoteSpec) {
	if el == nil {
		spec.MissingOctave = true
		b.warnf("pitch", "note has no pitch")
		return
	}

	step, ok := el.TextOf("step")
	if !ok || step == "" {
		b.warnf("pitch", "note has no step")
	} else if stepIndex(step) < 0 {
		b.warnf("pitch", "step %q is not a letter from A to G", step)
	}
	spec.Step = step

	alter, err := el.IntOf("alter")
	switch {
	case errors.Is(err, document.ErrNotFound):
	case err != nil:
		b.warnf("pitch", "alter: %v; spelled natural", err)
	default:
		spec.Alter = alter
	}

	octave, err := el.IntOf("octave")
	if err != nil {
		spec.MissingOctave = true
		if errors.Is(err, document.ErrNotFound) {
			b.warnf("pitch", "note has no octave")
		} else {
			b.warnf("pitch", "octave: %v", err)
		}
		return
	}
	spec.Octave = octave
}

// tieOf reads every tie element of a note; a note may both stop one tie
// and start the next.
func tieOf(el *document.Node) Tie {
	var t Tie
	for _, tie := range el.ElementsByTag("tie") {
		switch typ, _ := tie.Attr("type"); typ {
		case "start":
			t.Start = true
		case "stop":
			t.Stop = true
		}
	}
	return t
}
