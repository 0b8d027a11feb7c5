package musicxml

import "github.com/simonhull/musicxml/internal/types"

// Model types, re-exported from internal/types.
type (
	// Score is an ordered list of parts plus a title.
	Score = types.Score
	// Part is an ordered list of measures.
	Part = types.Part
	// Measure holds one measure's events grouped by staff and voice.
	Measure = types.Measure
	// Repeat is a repeat sign on a barline.
	Repeat = types.Repeat

	// Event is a Note, Rest or Chord.
	Event = types.Event
	Note  = types.Note
	Rest  = types.Rest
	Chord = types.Chord

	// NoteSpec carries the raw fields a Note is built from.
	NoteSpec = types.NoteSpec
	Tie      = types.Tie
	Pitch    = types.Pitch
)

// Display constants and repeat directions.
const (
	TieGlyph       = types.TieGlyph
	RestName       = types.RestName
	RepeatForward  = types.RepeatForward
	RepeatBackward = types.RepeatBackward
)

// ResolvePitch spells a raw step, alteration and octave. See types.ResolvePitch.
func ResolvePitch(step string, alter, octave int, hasOctave bool) Pitch {
	return types.ResolvePitch(step, alter, octave, hasOctave)
}

// NewNote builds a note from raw fields.
func NewNote(spec NoteSpec) *Note {
	return types.NewNote(spec)
}

// NewRest builds a rest.
func NewRest(duration int, staff, voice string) *Rest {
	return types.NewRest(duration, staff, voice)
}

// NewChord builds a chord of two or more notes, highest first.
func NewChord(notes ...*Note) (*Chord, error) {
	return types.NewChord(notes...)
}

// GroupVoices folds a measure's events into one sequence per staff and
// voice. See types.GroupVoices.
func GroupVoices(events []Event) [][]Event {
	return types.GroupVoices(events)
}

// NewMeasure builds a measure from events in document order.
func NewMeasure(number, divisions int, events []Event, repeats []Repeat) Measure {
	return types.NewMeasure(number, divisions, events, repeats)
}
