// Package render draws a score model as text for the terminal.
//
// Each measure is a bordered box with one line per voice. An event takes a
// share of the box's width proportional to its duration, never less than
// three cells, and the longest voice spans the whole box. Chords stack their
// note names, highest on top. Every tenth measure carries its number above
// the box, and repeat signs appear as a ":" on the side the repeat faces.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/musicxml/internal/types"
)

const (
	minCell             = 3
	defaultMeasureWidth = 24
	defaultWidth        = 100
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	partStyle    = lipgloss.NewStyle().Faint(true)
	measureStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	numberStyle  = lipgloss.NewStyle().Faint(true)
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the line width measures are wrapped at.
func WithWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.width = n
		}
	}
}

// WithMeasureWidth sets the width, in cells, a full measure's voice spans.
func WithMeasureWidth(n int) Option {
	return func(r *Renderer) {
		if n >= minCell {
			r.measureWidth = n
		}
	}
}

// Renderer turns models into text. The zero value is not usable; use New.
type Renderer struct {
	width        int
	measureWidth int
}

// New returns a Renderer with the given options applied.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, measureWidth: defaultMeasureWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Score renders the title followed by every part.
func (r *Renderer) Score(s *types.Score) string {
	var blocks []string
	if s.Title != "" {
		blocks = append(blocks, titleStyle.Render(s.Title))
	}
	for _, p := range s.Parts {
		blocks = append(blocks, r.Part(p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// Part renders a part's measures in order, wrapped to the configured width.
func (r *Renderer) Part(p types.Part) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, m := range p.Measures {
		box := r.Measure(m)
		w := lipgloss.Width(box)
		if len(row) > 0 && rowWidth+w > r.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, box)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, row...))
	}

	header := partStyle.Render(p.ID)
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

// Measure renders a single measure box with its number and repeat marker.
func (r *Renderer) Measure(m types.Measure) string {
	voices := m.NotesAndChordsByStaff()
	total := span(m, voices)

	var lines []string
	for _, voice := range voices {
		lines = append(lines, r.voice(voice, total))
	}
	if len(lines) == 0 {
		lines = append(lines, strings.Repeat(" ", r.measureWidth))
	}
	box := measureStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if rep := m.Repeat(); rep != nil {
		switch rep.Direction {
		case types.RepeatForward:
			box = lipgloss.JoinHorizontal(lipgloss.Center, ":", box)
		case types.RepeatBackward:
			box = lipgloss.JoinHorizontal(lipgloss.Center, box, ":")
		}
	}

	if label := measureLabel(m); label != "" {
		return lipgloss.JoinVertical(lipgloss.Left, numberStyle.Render(label), box)
	}
	return box
}

func (r *Renderer) voice(events []types.Event, total int) string {
	cells := make([]string, len(events))
	for i, e := range events {
		name := e.Name()
		w := max(cellWidth(e.Duration(), total, r.measureWidth), lipgloss.Width(name))
		cells[i] = lipgloss.NewStyle().Width(w).Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// span is the length of the longest voice, so that voices of a full
// measure fill the box. It is never shorter than the measure's duration.
func span(m types.Measure, voices [][]types.Event) int {
	total := m.Duration()
	for _, voice := range voices {
		sum := 0
		for _, e := range voice {
			sum += e.Duration()
		}
		total = max(total, sum)
	}
	return total
}

// cellWidth scales duration against the measure's duration.
func cellWidth(duration, total, width int) int {
	if total <= 0 || duration <= 0 {
		return minCell
	}
	w := int(math.Round(float64(width) * float64(duration) / float64(total)))
	return max(w, minCell)
}

// measureLabel is the number shown above every tenth measure.
func measureLabel(m types.Measure) string {
	if m.Number%10 != 0 {
		return ""
	}
	return strconv.Itoa(m.Number)
}
