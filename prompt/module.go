package prompt

import (
	"strings"

	"github.com/grovetools/prompt/style"
)

// Segment is one named piece of module text. An empty Style means the
// module's style applies.
type Segment struct {
	Name  string
	Value string
	Style string
}

// Module is the output of one prompt module for one render pass.
type Module struct {
	Name string
	// Style is the style string applied to segments without their own.
	Style string
	// Prefix and Suffix surround the styled segments and are never styled.
	Prefix string
	Suffix string

	segments []Segment
}

// SetStyle sets the module style.
func (m *Module) SetStyle(s string) {
	m.Style = s
}

// CreateSegment appends a segment rendered with the module style.
func (m *Module) CreateSegment(name, value string) {
	m.segments = append(m.segments, Segment{Name: name, Value: value})
}

// CreateStyledSegment appends a segment with its own style.
func (m *Module) CreateStyledSegment(name, value, style string) {
	m.segments = append(m.segments, Segment{Name: name, Value: value, Style: style})
}

// Segments returns a copy of the segments in append order.
func (m *Module) Segments() []Segment {
	out := make([]Segment, len(m.segments))
	copy(out, m.segments)
	return out
}

// IsEmpty reports whether every segment is blank.
func (m *Module) IsEmpty() bool {
	for _, seg := range m.segments {
		if seg.Value != "" {
			return false
		}
	}
	return true
}

// Text returns the segment values concatenated, without any styling.
func (m *Module) Text() string {
	var b strings.Builder
	for _, seg := range m.segments {
		b.WriteString(seg.Value)
	}
	return b.String()
}

// Render paints the module. Consecutive segments sharing a style are painted
// as one run, so "🐪 " and "v5.30.0" under the same style produce a single
// escape sequence pair.
func (m *Module) Render(r *style.Renderer) string {
	var b strings.Builder
	b.WriteString(m.Prefix)

	var run strings.Builder
	runStyle := ""
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(r.Paint(runStyle, run.String()))
			run.Reset()
		}
	}
	for i, seg := range m.segments {
		s := seg.Style
		if s == "" {
			s = m.Style
		}
		if i > 0 && s != runStyle {
			flush()
		}
		runStyle = s
		run.WriteString(seg.Value)
	}
	flush()

	b.WriteString(m.Suffix)
	return b.String()
}
