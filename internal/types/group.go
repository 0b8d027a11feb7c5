package types

// voiceKey identifies one voice of one staff. Staff and voice are kept
// apart so that staff "1" voice "12" never collides with staff "11" voice "2".
type voiceKey struct {
	staff string
	voice string
}

// GroupVoices buckets a measure's events, in document order, into one
// sequence per (staff, voice), folding chord-flagged notes into the
// preceding entry of their voice.
//
// A chord-flagged note turns a preceding note into a two-note Chord, or is
// added to a preceding Chord, which is rebuilt and re-sorted. With nothing
// to attach to (an empty voice or a preceding rest) the note is appended as
// an entry of its own. Sequences are returned in the order their voice was
// first seen.
func GroupVoices(events []Event) [][]Event {
	index := make(map[voiceKey]int)
	var groups [][]Event

	for _, e := range events {
		key := voiceKey{staff: e.Staff(), voice: e.Voice()}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}

		note, isNote := e.(*Note)
		if !isNote || !note.InChord() || len(groups[i]) == 0 {
			groups[i] = append(groups[i], e)
			continue
		}

		last := len(groups[i]) - 1
		switch prev := groups[i][last].(type) {
		case *Note:
			groups[i][last] = mustChord(prev, note)
		case *Chord:
			groups[i][last] = mustChord(append(prev.Notes(), note)...)
		default:
			groups[i] = append(groups[i], e)
		}
	}

	return groups
}

// mustChord is only called with two or more notes.
func mustChord(notes ...*Note) *Chord {
	c, err := NewChord(notes...)
	if err != nil {
		panic(err)
	}
	return c
}
