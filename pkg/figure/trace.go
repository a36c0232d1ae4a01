package figure

import (
	"encoding/json"

	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
)

// DomainBox is a sub-rectangle of the canvas, expressed as independent
// [lo, hi] fractions per dimension. A nil side means "do not resize along
// that axis".
type DomainBox struct {
	X []float64 `json:"x,omitempty"`
	Y []float64 `json:"y,omitempty"`
}

// Empty reports whether neither dimension is set.
func (d DomainBox) Empty() bool {
	return d.X == nil && d.Y == nil
}

// Validate checks that every present side is a well-formed span.
func (d DomainBox) Validate() error {
	if d.X != nil {
		if err := errors.ValidateDomainSpan(d.X); err != nil {
			return err
		}
	}
	if d.Y != nil {
		if err := errors.ValidateDomainSpan(d.Y); err != nil {
			return err
		}
	}
	return nil
}

// Trace is one plot series in a figure. The composition core inspects and
// rewrites only the axis reference fields, the inline domain box and the
// UID; every other plot-specific field rides along in Fields.
type Trace struct {
	XAxis   string     // reference like "x" or "x2" into the layout
	YAxis   string     // reference like "y" or "y2"
	Scene   string     // reference like "scene" or "scene3"
	Subplot string     // polar subplot reference like "polar2"
	Ternary string     // reference like "ternary" or "ternary2"
	Domain  *DomainBox // inline bounding box (pie, parcoords, ...)
	UID     string     // stable trace identity for downstream interactivity

	Fields map[string]any // passthrough for uninspected fields
}

// traceKnownKeys are the JSON keys lifted out of the passthrough bag.
var traceKnownKeys = []string{"xaxis", "yaxis", "scene", "subplot", "ternary", "domain", "uid"}

// MarshalJSON folds the known fields and the passthrough bag into a single
// flat object, matching the wire form of a plotly trace.
func (t *Trace) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Fields)+len(traceKnownKeys))
	for k, v := range t.Fields {
		out[k] = v
	}
	setIfNonEmpty(out, "xaxis", t.XAxis)
	setIfNonEmpty(out, "yaxis", t.YAxis)
	setIfNonEmpty(out, "scene", t.Scene)
	setIfNonEmpty(out, "subplot", t.Subplot)
	setIfNonEmpty(out, "ternary", t.Ternary)
	setIfNonEmpty(out, "uid", t.UID)
	if t.Domain != nil {
		out["domain"] = t.Domain
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat trace object into known fields and the
// passthrough bag.
func (t *Trace) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := popString(raw, "xaxis", &t.XAxis); err != nil {
		return err
	}
	if err := popString(raw, "yaxis", &t.YAxis); err != nil {
		return err
	}
	if err := popString(raw, "scene", &t.Scene); err != nil {
		return err
	}
	if err := popString(raw, "subplot", &t.Subplot); err != nil {
		return err
	}
	if err := popString(raw, "ternary", &t.Ternary); err != nil {
		return err
	}
	if err := popString(raw, "uid", &t.UID); err != nil {
		return err
	}
	if msg, ok := raw["domain"]; ok {
		var box DomainBox
		if err := json.Unmarshal(msg, &box); err != nil {
			return err
		}
		t.Domain = &box
		delete(raw, "domain")
	}

	if len(raw) > 0 {
		t.Fields = make(map[string]any, len(raw))
		for k, msg := range raw {
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return err
			}
			t.Fields[k] = v
		}
	}
	return nil
}

// AxisRef returns the trace's reference for the given family, if set.
func (t *Trace) AxisRef(f Family) string {
	switch f {
	case FamilyXAxis:
		return t.XAxis
	case FamilyYAxis:
		return t.YAxis
	case FamilyScene:
		return t.Scene
	case FamilyPolar:
		return t.Subplot
	case FamilyTernary:
		return t.Ternary
	}
	return ""
}

// SetAxisRef sets the trace's reference for the given family.
func (t *Trace) SetAxisRef(f Family, ref string) {
	switch f {
	case FamilyXAxis:
		t.XAxis = ref
	case FamilyYAxis:
		t.YAxis = ref
	case FamilyScene:
		t.Scene = ref
	case FamilyPolar:
		t.Subplot = ref
	case FamilyTernary:
		t.Ternary = ref
	}
}

func setIfNonEmpty(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

func popString(raw map[string]json.RawMessage, key string, dst *string) error {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return err
	}
	delete(raw, key)
	return nil
}
