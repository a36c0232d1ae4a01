package figure

import (
	"maps"

	"github.com/google/uuid"
)

// DataMapping associates source data columns with one trace's visual
// channels. The composition core treats mappings as opaque except for one
// operation: when a figure's traces are appended into a larger trace
// sequence, every mapping's trace index must shift by the number of traces
// accumulated so far.
type DataMapping struct {
	ID        string            `json:"id"`
	TableID   string            `json:"table_id"`
	Variables map[string]string `json:"variables,omitempty"` // visual channel -> source column
	Trace     int               `json:"trace"`
}

// NewDataMapping builds a mapping for the trace at index trace with a fresh
// unique ID.
func NewDataMapping(tableID string, trace int, variables map[string]string) DataMapping {
	return DataMapping{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Variables: variables,
		Trace:     trace,
	}
}

// WithOffset returns a copy of the mapping with its trace index shifted by
// offset. The variables map is cloned so the copy shares no state with the
// original.
func (m DataMapping) WithOffset(offset int) DataMapping {
	m.Trace += offset
	m.Variables = maps.Clone(m.Variables)
	return m
}

// CompositeFigure wraps a chart specification with the metadata the wider
// plotting system carries alongside it: data mappings for interactivity,
// template/color provenance flags, and whether the figure already spans a
// composed multi-region canvas.
type CompositeFigure struct {
	Fig      *Figure
	Mappings []DataMapping

	HasTemplate bool
	HasColor    bool
	HasSubplots bool
}

// NewComposite wraps fig with empty metadata.
func NewComposite(fig *Figure) *CompositeFigure {
	return &CompositeFigure{Fig: fig}
}

// CopyMappings returns the figure's data mappings re-expressed under an
// additive trace-index offset.
func (c *CompositeFigure) CopyMappings(offset int) []DataMapping {
	if len(c.Mappings) == 0 {
		return nil
	}
	out := make([]DataMapping, len(c.Mappings))
	for i, m := range c.Mappings {
		out[i] = m.WithOffset(offset)
	}
	return out
}
