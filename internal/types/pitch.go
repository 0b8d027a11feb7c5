package types

import "strconv"

// steps is the letter cycle used both for spelling and for chord ordering.
var steps = [...]string{"C", "D", "E", "F", "G", "A", "B"}

func stepIndex(step string) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return -1
}

// moveStep shifts a letter index around the cycle, wrapping in both directions.
func moveStep(idx, distance int) int {
	n := len(steps)
	return ((idx+distance)%n + n) % n
}

// Pitch is the spelled pitch of a note.
//
// A Pitch is derived from a note's raw fields every time it is asked for.
// When the step or octave is missing, or the step is not a letter A-G,
// the pitch is Unresolved and Step/Octave hold whatever raw values exist.
type Pitch struct {
	Step       string `json:"step"`
	Accidental string `json:"accidental,omitempty"`
	Octave     int    `json:"octave"`

	// Alter is the raw alteration code the pitch was spelled from.
	Alter int `json:"alter,omitempty"`

	Unresolved bool `json:"unresolved,omitempty"`

	octaveMissing bool
}

// ResolvePitch spells a raw step/alter/octave triple.
//
// Single alterations keep the letter and add "#" or "b". Double
// alterations move the letter one position around C..B instead of adding a
// glyph, carrying the octave when the result crosses the B/C boundary:
// B with +2 becomes C one octave up, C with -2 becomes B one octave down.
// Any other alteration code is spelled as natural.
func ResolvePitch(step string, alter, octave int, hasOctave bool) Pitch {
	p := Pitch{Step: step, Octave: octave, Alter: alter}

	idx := stepIndex(step)
	if idx < 0 || !hasOctave {
		p.Unresolved = true
		p.octaveMissing = !hasOctave
		p.Accidental = singleAccidental(alter)
		return p
	}

	switch alter {
	case 1, -1:
		p.Accidental = singleAccidental(alter)
	case 2:
		idx = moveStep(idx, 1)
		if steps[idx] == "C" {
			p.Octave++
		}
	case -2:
		idx = moveStep(idx, -1)
		if steps[idx] == "B" {
			p.Octave--
		}
	}

	p.Step = steps[idx]
	return p
}

func singleAccidental(alter int) string {
	switch alter {
	case 1:
		return "#"
	case -1:
		return "b"
	default:
		return ""
	}
}

// String returns the pitch name, e.g. "C#4". Unresolved parts print as "?".
func (p Pitch) String() string {
	step := p.Step
	if step == "" {
		step = "?"
	}
	octave := "?"
	if !p.octaveMissing {
		octave = strconv.Itoa(p.Octave)
	}
	return step + p.Accidental + octave
}

// stepIndex returns the position of the spelled letter in C..B, or -1.
func (p Pitch) stepIndex() int {
	if p.Unresolved {
		return -1
	}
	return stepIndex(p.Step)
}
