package types

import "testing"

func TestResolvePitch(t *testing.T) {
	tests := []struct {
		name       string
		step       string
		alter      int
		octave     int
		wantStep   string
		wantAcc    string
		wantOctave int
		wantString string
	}{
		{name: "natural", step: "C", alter: 0, octave: 4, wantStep: "C", wantAcc: "", wantOctave: 4, wantString: "C4"},
		{name: "sharp", step: "F", alter: 1, octave: 3, wantStep: "F", wantAcc: "#", wantOctave: 3, wantString: "F#3"},
		{name: "flat", step: "B", alter: -1, octave: 2, wantStep: "B", wantAcc: "b", wantOctave: 2, wantString: "Bb2"},
		{name: "double sharp", step: "F", alter: 2, octave: 4, wantStep: "G", wantAcc: "", wantOctave: 4, wantString: "G4"},
		{name: "double flat", step: "E", alter: -2, octave: 5, wantStep: "D", wantAcc: "", wantOctave: 5, wantString: "D5"},
		{name: "double sharp on B crosses octave", step: "B", alter: 2, octave: 4, wantStep: "C", wantAcc: "", wantOctave: 5, wantString: "C5"},
		{name: "double flat on C crosses octave", step: "C", alter: -2, octave: 4, wantStep: "B", wantAcc: "", wantOctave: 3, wantString: "B3"},
		{name: "double sharp on A wraps without octave change", step: "A", alter: 2, octave: 0, wantStep: "B", wantAcc: "", wantOctave: 0, wantString: "B0"},
		{name: "double flat on D stays in octave", step: "D", alter: -2, octave: 1, wantStep: "C", wantAcc: "", wantOctave: 1, wantString: "C1"},
		{name: "unknown alteration is natural", step: "G", alter: 3, octave: 4, wantStep: "G", wantAcc: "", wantOctave: 4, wantString: "G4"},
		{name: "negative octave", step: "C", alter: -2, octave: 0, wantStep: "B", wantAcc: "", wantOctave: -1, wantString: "B-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePitch(tt.step, tt.alter, tt.octave, true)

			if p.Unresolved {
				t.Fatal("pitch should be resolved")
			}
			if p.Step != tt.wantStep {
				t.Errorf("Step = %q, want %q", p.Step, tt.wantStep)
			}
			if p.Accidental != tt.wantAcc {
				t.Errorf("Accidental = %q, want %q", p.Accidental, tt.wantAcc)
			}
			if p.Octave != tt.wantOctave {
				t.Errorf("Octave = %d, want %d", p.Octave, tt.wantOctave)
			}
			if got := p.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestResolvePitch_EveryDoubleSharpAndFlat(t *testing.T) {
	for i, step := range steps {
		up := ResolvePitch(step, 2, 4, true)
		wantUp := steps[(i+1)%len(steps)]
		if up.Step != wantUp {
			t.Errorf("%s##: Step = %q, want %q", step, up.Step, wantUp)
		}
		if wantOctave := 4 + boolInt(step == "B"); up.Octave != wantOctave {
			t.Errorf("%s##: Octave = %d, want %d", step, up.Octave, wantOctave)
		}

		down := ResolvePitch(step, -2, 4, true)
		wantDown := steps[(i+len(steps)-1)%len(steps)]
		if down.Step != wantDown {
			t.Errorf("%sbb: Step = %q, want %q", step, down.Step, wantDown)
		}
		if wantOctave := 4 - boolInt(step == "C"); down.Octave != wantOctave {
			t.Errorf("%sbb: Octave = %d, want %d", step, down.Octave, wantOctave)
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestResolvePitch_Unresolved(t *testing.T) {
	tests := []struct {
		name       string
		step       string
		alter      int
		hasOctave  bool
		wantString string
	}{
		{name: "missing octave", step: "C", hasOctave: false, wantString: "C?"},
		{name: "missing step", step: "", hasOctave: true, wantString: "?4"},
		{name: "missing both", step: "", hasOctave: false, wantString: "??"},
		{name: "step outside A-G", step: "H", hasOctave: true, wantString: "H4"},
		{name: "sharp kept on missing octave", step: "D", alter: 1, hasOctave: false, wantString: "D#?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePitch(tt.step, tt.alter, 4, tt.hasOctave)
			if !p.Unresolved {
				t.Fatal("pitch should be unresolved")
			}
			if got := p.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}
