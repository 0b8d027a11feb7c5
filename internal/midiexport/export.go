// Package midiexport writes a score model as a Standard MIDI File.
//
// Each part becomes one track. Time is counted in divisions: the file's
// ticks per quarter is the first declared divisions value, and measures
// declaring a different value are rescaled to it. No tempo is written, so
// players use the MIDI default. Every voice of a measure starts at the
// measure's start, and the next measure starts after the longest voice.
package midiexport

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

const (
	velocity    = 100
	drumChannel = 9

	// maxResolution is the largest ticks-per-quarter an SMF header holds.
	maxResolution = 0x7FFF
)

// exporter implements registry.Exporter and registry.Validator.
type exporter struct{}

// Export writes score to w.
func (e *exporter) Export(w io.Writer, score *types.Score) error {
	s, err := Build(score)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write midi: %w", err)
	}
	return nil
}

// Validate reads an exported file back and checks it has one track per part.
func (e *exporter) Validate(r io.Reader, score *types.Score) error {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return fmt.Errorf("read midi: %w", err)
	}
	if got, want := len(s.Tracks), max(len(score.Parts), 1); got != want {
		return fmt.Errorf("midi has %d tracks, want %d", got, want)
	}
	return nil
}

// Build converts score to an SMF without writing it.
func Build(score *types.Score) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution(score))

	if len(score.Parts) == 0 {
		var tr smf.Track
		if score.Title != "" {
			tr.Add(0, smf.MetaTrackSequenceName(score.Title))
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return nil, fmt.Errorf("add track: %w", err)
		}
		return s, nil
	}

	for i, part := range score.Parts {
		tr := buildTrack(part, channelFor(i), resolution(score))
		if err := s.Add(tr); err != nil {
			return nil, fmt.Errorf("add track %s: %w", part.ID, err)
		}
	}
	return s, nil
}

// resolution picks one ticks-per-quarter value for the whole file: the
// divisions of the first part that declares any, or 1.
func resolution(score *types.Score) uint16 {
	for _, p := range score.Parts {
		if d := p.Divisions(); d > 0 {
			return uint16(min(d, maxResolution))
		}
	}
	return 1
}

// channelFor spreads parts over the melodic channels.
func channelFor(part int) uint8 {
	ch := part % 15
	if ch >= drumChannel {
		ch++
	}
	return uint8(ch)
}

// noteEvent is a note switching on or off at an absolute tick.
type noteEvent struct {
	tick int64
	on   bool
	key  uint8
}

func buildTrack(part types.Part, channel uint8, tpq uint16) smf.Track {
	var events []noteEvent

	divisions := max(part.Divisions(), 1)
	var start int64
	for _, m := range part.Measures {
		if m.Divisions > 0 {
			divisions = m.Divisions
		}
		scale := func(d int) int64 {
			return int64(d) * int64(tpq) / int64(divisions)
		}

		end := start + scale(m.Duration())
		for _, voice := range m.NotesAndChordsByStaff() {
			cursor := start
			for _, e := range voice {
				length := scale(e.Duration())
				switch ev := e.(type) {
				case *types.Note:
					events = appendNote(events, ev, cursor, length)
				case *types.Chord:
					for _, n := range ev.Notes() {
						events = appendNote(events, n, cursor, scale(n.Duration()))
					}
				}
				cursor += length
			}
			end = max(end, cursor)
		}
		start = end
	}

	// Releases sort before strikes on the same tick so a repeated key is
	// not cut off by its own previous note.
	slices.SortStableFunc(events, func(a, b noteEvent) int {
		if c := cmp.Compare(a.tick, b.tick); c != 0 {
			return c
		}
		switch {
		case a.on == b.on:
			return 0
		case a.on:
			return 1
		default:
			return -1
		}
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(part.ID))

	held := make(map[uint8]int)
	var last int64
	for _, ev := range events {
		if !ev.on && held[ev.key] == 0 {
			continue
		}
		delta := uint32(ev.tick - last)
		last = ev.tick
		if ev.on {
			held[ev.key]++
			tr.Add(delta, midi.NoteOn(channel, ev.key, velocity))
		} else {
			held[ev.key]--
			tr.Add(delta, midi.NoteOff(channel, ev.key))
		}
	}

	// Ties that start but never stop are released at the end of the part.
	keys := make([]uint8, 0, len(held))
	for k, n := range held {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	delta := uint32(max(start-last, 0))
	for _, k := range keys {
		for range held[k] {
			tr.Add(delta, midi.NoteOff(channel, k))
			delta = 0
		}
	}

	tr.Close(0)
	return tr
}

// appendNote adds the strike and release of one note. A note ending a tie
// is not struck again and a note starting a tie is not released.
// Unresolved pitches and zero-length notes are skipped.
func appendNote(events []noteEvent, n *types.Note, at, length int64) []noteEvent {
	key, ok := n.Key()
	if !ok || length <= 0 {
		return events
	}
	tie := n.Tie()
	if !tie.Stop {
		events = append(events, noteEvent{tick: at, on: true, key: uint8(key)})
	}
	if !tie.Start {
		events = append(events, noteEvent{tick: at + length, on: false, key: uint8(key)})
	}
	return events
}

func init() {
	registry.RegisterExporter(types.ExportMIDI, &exporter{})
}
