package types

import "testing"

func TestMeasure_Duration(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{name: "empty", events: nil, want: 0},
		{name: "single rest", events: []Event{NewRest(12, "", "")}, want: 12},
		{
			name: "longest across voices",
			events: []Event{
				NewNote(NoteSpec{Step: "C", Octave: 4, Duration: 2, Voice: "1"}),
				NewNote(NoteSpec{Step: "D", Octave: 4, Duration: 2, Voice: "1"}),
				NewRest(8, "", "2"),
			},
			want: 8,
		},
		{
			name: "chord counts its longest note",
			events: []Event{
				NewNote(NoteSpec{Step: "C", Octave: 4, Duration: 2, Voice: "1"}),
				NewNote(NoteSpec{Step: "E", Octave: 4, Duration: 6, Voice: "1", Chord: true}),
				NewRest(4, "", "2"),
			},
			want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeasure(1, 0, tt.events, nil)
			if got := m.Duration(); got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeasure_ChordAndRestExample(t *testing.T) {
	c5 := NewNote(NoteSpec{Step: "C", Octave: 5, Duration: 4, Staff: "1", Voice: "1"})
	e5 := NewNote(NoteSpec{Step: "E", Octave: 5, Duration: 4, Staff: "1", Voice: "1", Chord: true})
	rest := NewRest(2, "1", "2")

	m := NewMeasure(3, 4, []Event{c5, e5, rest}, nil)

	voices := m.NotesAndChordsByStaff()
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
	if len(voices[0]) != 1 || voices[0][0].Name() != "E5\nC5" {
		t.Errorf("first voice = %q, want one chord E5\\nC5", names(voices)[0])
	}
	if len(voices[1]) != 1 || voices[1][0].Name() != RestName {
		t.Errorf("second voice = %q, want one rest", names(voices)[1])
	}
	if got, want := m.Duration(), max(voices[0][0].Duration(), rest.Duration()); got != want {
		t.Errorf("Duration() = %d, want %d", got, want)
	}
	if got := len(m.Notes()); got != 3 {
		t.Errorf("Notes() has %d events, want 3", got)
	}
}

func TestMeasure_Repeat(t *testing.T) {
	none := NewMeasure(1, 0, nil, nil)
	if none.Repeat() != nil {
		t.Errorf("Repeat() = %v, want nil", none.Repeat())
	}

	both := NewMeasure(2, 0, nil, []Repeat{{Direction: RepeatForward}, {Direction: RepeatBackward}})
	if r := both.Repeat(); r == nil || r.Direction != RepeatForward {
		t.Errorf("Repeat() = %v, want forward", r)
	}
	if got := both.Repeats(); len(got) != 2 || got[1].Direction != RepeatBackward {
		t.Errorf("Repeats() = %v", got)
	}
}

func TestMeasure_AccessorsReturnCopies(t *testing.T) {
	m := NewMeasure(1, 0, []Event{NewRest(1, "", "")}, []Repeat{{Direction: RepeatBackward}})

	m.Notes()[0] = nil
	m.NotesAndChordsByStaff()[0][0] = nil
	m.Repeat().Direction = RepeatForward

	if m.Notes()[0] == nil || m.NotesAndChordsByStaff()[0][0] == nil {
		t.Error("event accessors should return copies")
	}
	if m.Repeat().Direction != RepeatBackward {
		t.Error("Repeat() should return a copy")
	}
}
