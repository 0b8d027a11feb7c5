package types

import (
	"cmp"
	"slices"
	"strings"
)

// TieGlyph marks the tied side of a note name: it prefixes a note that ends
// a tie and suffixes a note that starts one.
const TieGlyph = "︵"

// RestName is the display name of every rest.
const RestName = "-"

// Event is something notated in a voice: a Note, a Rest or a Chord.
//
// The set of implementations is closed; code that needs variant-specific
// behaviour switches on *Note, *Rest and *Chord.
type Event interface {
	// Name is the display name, e.g. "C#4", "-" or a newline-joined chord.
	Name() string
	// Duration is the length in document divisions, never negative.
	Duration() int
	Staff() string
	Voice() string
	// InChord reports whether the event sounds together with the previous
	// event of its voice. Only notes can be chord members.
	InChord() bool

	event()
}

// Tie is the tie state of a note. A note may both end and start a tie.
type Tie struct {
	Start bool `json:"start,omitempty"`
	Stop  bool `json:"stop,omitempty"`
}

// NoteSpec carries the raw fields a Note is built from.
type NoteSpec struct {
	Step          string
	Alter         int
	Octave        int
	MissingOctave bool

	Duration int
	Staff    string
	Voice    string
	Chord    bool
	Tie      Tie
}

// Note is a pitched event.
type Note struct {
	step          string
	alter         int
	octave        int
	missingOctave bool

	duration int
	staff    string
	voice    string
	chord    bool
	tie      Tie
}

// NewNote builds a note from raw fields. Negative durations are clamped to 0.
func NewNote(s NoteSpec) *Note {
	return &Note{
		step:          s.Step,
		alter:         s.Alter,
		octave:        s.Octave,
		missingOctave: s.MissingOctave,
		duration:      max(s.Duration, 0),
		staff:         s.Staff,
		voice:         s.Voice,
		chord:         s.Chord,
		tie:           s.Tie,
	}
}

func (n *Note) event() {}

// Pitch spells the note. It is recomputed on every call.
func (n *Note) Pitch() Pitch {
	return ResolvePitch(n.step, n.alter, n.octave, !n.missingOctave)
}

// Tie returns the note's tie state.
func (n *Note) Tie() Tie { return n.tie }

// Name returns the pitch name wrapped in tie glyphs.
func (n *Note) Name() string {
	var b strings.Builder
	if n.tie.Stop {
		b.WriteString(TieGlyph)
	}
	b.WriteString(n.Pitch().String())
	if n.tie.Start {
		b.WriteString(TieGlyph)
	}
	return b.String()
}

func (n *Note) Duration() int { return n.duration }
func (n *Note) Staff() string { return n.staff }
func (n *Note) Voice() string { return n.voice }
func (n *Note) InChord() bool { return n.chord }

// semitones maps C..B to their offset above C.
var semitones = map[string]int{"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11}

// Key returns the MIDI key number of the raw pitch (middle C, C4, is 60).
// It reports false for unresolved pitches and keys outside 0-127.
func (n *Note) Key() (int, bool) {
	semi, ok := semitones[n.step]
	if !ok || n.missingOctave {
		return 0, false
	}
	key := semi + n.alter + (n.octave+1)*12
	if key < 0 || key > 127 {
		return 0, false
	}
	return key, true
}

// Rest is an unpitched event.
type Rest struct {
	duration int
	staff    string
	voice    string
}

// NewRest builds a rest. Negative durations are clamped to 0.
func NewRest(duration int, staff, voice string) *Rest {
	return &Rest{duration: max(duration, 0), staff: staff, voice: voice}
}

func (r *Rest) event() {}

func (r *Rest) Name() string { return RestName }
func (r *Rest) Duration() int { return r.duration }
func (r *Rest) Staff() string { return r.staff }
func (r *Rest) Voice() string { return r.voice }
func (r *Rest) InChord() bool { return false }

// Chord is two or more notes of one voice sounding together.
type Chord struct {
	notes []*Note
}

// NewChord builds a chord, ordering its notes highest first (see
// CompareNotes). Notes with equal pitch keep their given order.
func NewChord(notes ...*Note) (*Chord, error) {
	if len(notes) < 2 {
		return nil, ErrChordTooSmall
	}
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, CompareNotes)
	return &Chord{notes: sorted}, nil
}

func (c *Chord) event() {}

// Notes returns the chord's notes, highest first.
func (c *Chord) Notes() []*Note {
	return slices.Clone(c.notes)
}

// Name joins the note names with newlines, highest first.
func (c *Chord) Name() string {
	names := make([]string, len(c.notes))
	for i, n := range c.notes {
		names[i] = n.Name()
	}
	return strings.Join(names, "\n")
}

// Duration is the longest note duration in the chord.
func (c *Chord) Duration() int {
	d := 0
	for _, n := range c.notes {
		d = max(d, n.Duration())
	}
	return d
}

func (c *Chord) Staff() string {
	if len(c.notes) == 0 {
		return ""
	}
	return c.notes[0].Staff()
}

func (c *Chord) Voice() string {
	if len(c.notes) == 0 {
		return ""
	}
	return c.notes[0].Voice()
}

// InChord is always false: chords do not nest.
func (c *Chord) InChord() bool { return false }

// CompareNotes orders notes highest first: by octave, then letter within
// C..B, then raw alteration, all descending. Unresolved pitches sort after
// resolved ones and compare equal to each other.
func CompareNotes(a, b *Note) int {
	pa, pb := a.Pitch(), b.Pitch()

	if pa.Unresolved || pb.Unresolved {
		switch {
		case pa.Unresolved && pb.Unresolved:
			return 0
		case pa.Unresolved:
			return 1
		default:
			return -1
		}
	}

	if c := cmp.Compare(pb.Octave, pa.Octave); c != 0 {
		return c
	}
	if c := cmp.Compare(pb.stepIndex(), pa.stepIndex()); c != 0 {
		return c
	}
	return cmp.Compare(pb.Alter, pa.Alter)
}
