package plot

import (
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// TraceStyle is one per-trace presentation update.
type TraceStyle struct {
	Name       string
	ShowLegend *bool
}

// Apply writes the update onto a trace's passthrough fields.
func (s TraceStyle) Apply(t *figure.Trace) {
	if t.Fields == nil {
		t.Fields = make(map[string]any)
	}
	if s.Name != "" {
		t.Fields["name"] = s.Name
	}
	if s.ShowLegend != nil {
		t.Fields["showlegend"] = *s.ShowLegend
	}
}

// StyleCursor is a finite, single-pass sequence of per-trace style updates.
//
// Drawing code creates one cursor for a whole multi-column request and
// every subsequent column continues consuming where the previous one
// stopped, so later columns pick up the visual-style progression (legend
// names, color cycling) exactly where earlier columns left it. A cursor is
// never restarted.
type StyleCursor struct {
	updates []TraceStyle
	pos     int
}

// NewStyleCursor builds a cursor over the given ordered updates.
func NewStyleCursor(updates ...TraceStyle) *StyleCursor {
	return &StyleCursor{updates: updates}
}

// Next consumes and returns the next update. It reports false once the
// sequence is exhausted.
func (c *StyleCursor) Next() (TraceStyle, bool) {
	if c == nil || c.pos >= len(c.updates) {
		return TraceStyle{}, false
	}
	u := c.updates[c.pos]
	c.pos++
	return u, true
}

// Remaining returns how many updates have not been consumed yet.
func (c *StyleCursor) Remaining() int {
	if c == nil {
		return 0
	}
	return len(c.updates) - c.pos
}

// LegendCursor builds the legend progression for the given columns: each
// trace is named after its column and forced visible in the legend.
func LegendCursor(cols []string) *StyleCursor {
	show := true
	updates := make([]TraceStyle, len(cols))
	for i, col := range cols {
		updates[i] = TraceStyle{Name: col, ShowLegend: &show}
	}
	return NewStyleCursor(updates...)
}

// ApplyStyles applies cursor updates to the figure's traces in order,
// stopping when either the traces or the cursor run out.
func ApplyStyles(fig *figure.Figure, cursor *StyleCursor) {
	for _, t := range fig.Traces {
		update, ok := cursor.Next()
		if !ok {
			return
		}
		update.Apply(t)
	}
}
