// Package musicxml reads MusicXML scores into a small, immutable music model.
//
// A score is read from plain MusicXML (.musicxml, .xml) or from a compressed
// archive (.mxl), and becomes a Score: parts, measures, and in each measure
// the notes, rests and chords of every staff and voice.
//
// # Quick Start
//
//	file, err := musicxml.Open("etude.mxl")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, part := range file.Score.Parts {
//		for _, m := range part.Measures {
//			for _, voice := range m.NotesAndChordsByStaff() {
//				for _, e := range voice {
//					fmt.Print(e.Name(), " ")
//				}
//				fmt.Println()
//			}
//		}
//	}
//
// # The Model
//
//	[Score]              - Title and parts, in document order
//	  └─ [Part]          - Measures, in document order
//	       └─ [Measure]  - Number, divisions, repeats and voices
//	            └─ [Event] - A Note, a Rest or a Chord
//
// Pitches are spelled with sharps ("#") and flats ("b"); double sharps and
// double flats are respelled onto the neighbouring letter, so an F double
// sharp reads as G. A note whose step or octave is missing keeps an
// unresolved pitch and prints "?" in its place.
//
// Notes flagged as chord members fold into the previous note or chord of
// the same staff and voice. Chords list their notes highest first.
//
// # Soft Failures
//
// Missing or unreadable fields never abort a load. They produce a neutral
// value and a Warning:
//
//	if len(file.Warnings) > 0 {
//		for _, w := range file.Warnings {
//			log.Printf("warning: %s", w)
//		}
//	}
//
// WithStrictParsing turns the first warning into an error. Only documents
// that cannot be parsed at all, and archives without a usable root file,
// fail with an error by default.
//
// # Export
//
// A loaded score can be written as a Standard MIDI File or as JSON:
//
//	err := file.ExportTo("etude.mid", musicxml.ExportUnknown,
//		musicxml.WithBackup(".bak"),
//		musicxml.WithValidation(),
//	)
//
// # Concurrency
//
// Every model value is immutable once built and safe to share between
// goroutines. OpenMany loads several files in parallel.
package musicxml
