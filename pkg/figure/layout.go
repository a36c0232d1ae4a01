package figure

import (
	"encoding/json"
)

// Layout is the layout half of a chart specification: axis objects keyed by
// "<family><number>", plus arbitrary top-level layout properties (title,
// legend, showlegend, ...) that ride along in Props.
type Layout struct {
	Axes  map[string]*AxisObject
	Props map[string]any
}

// NewLayout returns an empty layout with initialized maps.
func NewLayout() *Layout {
	return &Layout{
		Axes:  make(map[string]*AxisObject),
		Props: make(map[string]any),
	}
}

// SetAxis stores an axis object under the given layout key and returns the
// layout for chaining.
func (l *Layout) SetAxis(key string, ax *AxisObject) *Layout {
	if l.Axes == nil {
		l.Axes = make(map[string]*AxisObject)
	}
	l.Axes[key] = ax
	return l
}

// SetProp stores a top-level layout property and returns the layout for
// chaining.
func (l *Layout) SetProp(key string, v any) *Layout {
	if l.Props == nil {
		l.Props = make(map[string]any)
	}
	l.Props[key] = v
	return l
}

// Merge copies every axis object and property from other into l. Entries
// from other win on key collision, mirroring painting order: later layers
// overwrite earlier ones.
func (l *Layout) Merge(other *Layout) {
	if other == nil {
		return
	}
	for k, ax := range other.Axes {
		l.SetAxis(k, ax)
	}
	for k, v := range other.Props {
		l.SetProp(k, v)
	}
}

// SetAxisTitle sets the title text on the layout object for the first
// member of the given family, creating the object if the layout has none.
func (l *Layout) SetAxisTitle(f Family, text string) {
	key := f.Key(1)
	ax := l.Axes[key]
	if ax == nil {
		ax = &AxisObject{}
		l.SetAxis(key, ax)
	}
	ax.SetExtra("title", map[string]any{"text": text})
}

// MarshalJSON flattens axis objects and properties into a single object.
func (l *Layout) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Axes)+len(l.Props))
	for k, v := range l.Props {
		out[k] = v
	}
	for k, ax := range l.Axes {
		out[k] = ax
	}
	return json.Marshal(out)
}

// UnmarshalJSON classifies every key of a flat layout object: axis-family
// keys become AxisObjects, everything else lands in Props.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Axes = make(map[string]*AxisObject, len(raw))
	l.Props = make(map[string]any)
	for k, msg := range raw {
		if _, ok := ClassifyAxisKey(k); ok {
			var ax AxisObject
			if err := json.Unmarshal(msg, &ax); err != nil {
				return err
			}
			l.Axes[k] = &ax
			continue
		}
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return err
		}
		l.Props[k] = v
	}
	return nil
}
