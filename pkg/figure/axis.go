package figure

import (
	"bytes"
	"encoding/json"
)

// AxisObject is one layout object: a 2-D axis or a container subplot
// (scene, polar, ternary). The two shapes share a JSON key "domain" but
// disagree on its form: 2-D axes hold a [lo, hi] span, containers hold a
// full bounding box. Exactly one of Domain and BoxDomain is set when the
// object carries positional information; both are nil when it does not.
type AxisObject struct {
	Domain    []float64  // span form, 2-D axes only
	BoxDomain *DomainBox // box form, container families only
	Position  *float64   // fraction along the orthogonal axis, 2-D only
	Anchor    string     // reference to the anchoring axis, or "free"
	Overlaying string    // reference to the overlaid axis

	Extra map[string]any // passthrough for uninspected fields
}

// FreeAnchor is the sentinel anchor value that references no axis.
// Reindexing leaves it untouched.
const FreeAnchor = "free"

// MarshalJSON folds the known fields and the passthrough bag into a single
// flat object.
func (a *AxisObject) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+4)
	for k, v := range a.Extra {
		out[k] = v
	}
	if a.Domain != nil {
		out["domain"] = a.Domain
	} else if a.BoxDomain != nil {
		out["domain"] = a.BoxDomain
	}
	if a.Position != nil {
		out["position"] = *a.Position
	}
	setIfNonEmpty(out, "anchor", a.Anchor)
	setIfNonEmpty(out, "overlaying", a.Overlaying)
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat layout object into known fields and the
// passthrough bag, discriminating the two domain shapes by their leading
// token.
func (a *AxisObject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if msg, ok := raw["domain"]; ok {
		trimmed := bytes.TrimLeft(msg, " \t\r\n")
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(msg, &a.Domain); err != nil {
				return err
			}
		} else {
			var box DomainBox
			if err := json.Unmarshal(msg, &box); err != nil {
				return err
			}
			a.BoxDomain = &box
		}
		delete(raw, "domain")
	}
	if msg, ok := raw["position"]; ok {
		var pos float64
		if err := json.Unmarshal(msg, &pos); err != nil {
			return err
		}
		a.Position = &pos
		delete(raw, "position")
	}
	if err := popString(raw, "anchor", &a.Anchor); err != nil {
		return err
	}
	if err := popString(raw, "overlaying", &a.Overlaying); err != nil {
		return err
	}

	if len(raw) > 0 {
		a.Extra = make(map[string]any, len(raw))
		for k, msg := range raw {
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return err
			}
			a.Extra[k] = v
		}
	}
	return nil
}

// SetExtra stores a passthrough field, initializing the bag if needed.
func (a *AxisObject) SetExtra(key string, v any) {
	if a.Extra == nil {
		a.Extra = make(map[string]any)
	}
	a.Extra[key] = v
}
