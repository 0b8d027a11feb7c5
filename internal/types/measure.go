package types

import "slices"

// Repeat directions.
const (
	RepeatForward  = "forward"
	RepeatBackward = "backward"
)

// Repeat is a repeat sign on one of a measure's barlines.
type Repeat struct {
	Direction string `json:"direction"`
}

// Measure is one measure of a part.
//
// The voice grouping is computed once when the measure is built; every
// accessor returns fresh slices so callers cannot alter the measure.
type Measure struct {
	// Number is the measure's number attribute. It is not unique and not
	// necessarily increasing (pickups, repeats and cadenzas reuse numbers).
	Number int

	// Divisions is the number of duration units per quarter note declared
	// in this measure, or 0 when the measure does not declare it.
	Divisions int

	events  []Event
	voices  [][]Event
	repeats []Repeat
}

// NewMeasure builds a measure from its events in document order and the
// repeat signs of its barlines.
func NewMeasure(number, divisions int, events []Event, repeats []Repeat) Measure {
	events = slices.Clone(events)
	return Measure{
		Number:    number,
		Divisions: divisions,
		events:    events,
		voices:    GroupVoices(events),
		repeats:   slices.Clone(repeats),
	}
}

// Notes returns the measure's notes and rests in document order, before
// any chord folding.
func (m Measure) Notes() []Event {
	return slices.Clone(m.events)
}

// NotesAndChordsByStaff returns one event sequence per (staff, voice) pair,
// with simultaneous notes folded into chords.
func (m Measure) NotesAndChordsByStaff() [][]Event {
	out := make([][]Event, len(m.voices))
	for i, v := range m.voices {
		out[i] = slices.Clone(v)
	}
	return out
}

// Duration is the longest event duration across all voices, or 0 for an
// empty measure.
func (m Measure) Duration() int {
	d := 0
	for _, voice := range m.voices {
		for _, e := range voice {
			d = max(d, e.Duration())
		}
	}
	return d
}

// Repeat returns the first repeat sign of the measure, or nil.
func (m Measure) Repeat() *Repeat {
	if len(m.repeats) == 0 {
		return nil
	}
	r := m.repeats[0]
	return &r
}

// Repeats returns every repeat sign of the measure in document order.
// A measure repeated on its own carries both a forward and a backward sign.
func (m Measure) Repeats() []Repeat {
	return slices.Clone(m.repeats)
}
