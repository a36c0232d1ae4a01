// Package figure models plotly-style chart specifications as open documents.
//
// A chart specification is a pair of traces and layout. Both are open
// records: the library inspects and rewrites a small set of known fields
// (axis references, domains, anchor positions) and carries everything else
// through untouched in passthrough bags. This preserves round-trip fidelity
// for plot-specific fields the composition core never looks at.
//
// # Axis Families
//
// Layout objects are keyed by "<family><number>" where number is omitted for
// the first member of a family ("xaxis", "xaxis2", "xaxis3", ...). Five
// families are supported: the 2-D xaxis/yaxis pair plus the scene, polar and
// ternary container families. The 2-D families use a span domain and an
// orthogonal position; the container families hold a full bounding box.
//
// # Trace References
//
// Traces reference layout objects by a short form that drops the "axis"
// infix for the 2-D families: a trace bound to layout key "xaxis2" carries
// the reference "x2". Container families use the layout key itself.
package figure

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Family identifies one of the five supported subplot coordinate systems.
type Family string

// The supported axis families. Ordered by classification precedence; the
// prefixes are mutually exclusive by construction, so first match wins.
const (
	FamilyXAxis   Family = "xaxis"
	FamilyYAxis   Family = "yaxis"
	FamilyScene   Family = "scene"
	FamilyPolar   Family = "polar"
	FamilyTernary Family = "ternary"
)

// Families lists all axis families in classification precedence order.
var Families = []Family{FamilyXAxis, FamilyYAxis, FamilyScene, FamilyPolar, FamilyTernary}

// IsXY reports whether the family is one of the 2-D axis families.
// The 2-D families carry span domains and orthogonal positions; the
// container families (scene, polar, ternary) are resized as a single box.
func (f Family) IsXY() bool {
	return f == FamilyXAxis || f == FamilyYAxis
}

// Key builds the layout key for the member of the family with the given
// number. Numbering starts at 1 and the 1 is dropped, so Key(1) is the bare
// family name.
func (f Family) Key(num int) string {
	if num <= 1 {
		return string(f)
	}
	return string(f) + strconv.Itoa(num)
}

// TraceRef converts a layout key of this family to the reference form used
// on traces. For the 2-D families the "axis" infix is dropped ("xaxis2"
// becomes "x2"); container families use the layout key unchanged.
func (f Family) TraceRef(key string) string {
	if !f.IsXY() {
		return key
	}
	return strings.Replace(key, "axis", "", 1)
}

// ClassifyAxisKey determines which family a layout key belongs to.
// A key matches when it is the family name followed by an optional numeric
// suffix. Non-axis layout keys (title, legend, ...) return false.
func ClassifyAxisKey(key string) (Family, bool) {
	for _, f := range Families {
		rest, ok := strings.CutPrefix(key, string(f))
		if !ok {
			continue
		}
		if rest == "" || isDigits(rest) {
			return f, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Figure is a chart specification: an ordered trace sequence plus a layout.
// A Figure is owned by its producer until it is handed to the layering
// engine, which consumes it exactly once.
type Figure struct {
	Traces []*Trace
	Layout *Layout
}

// New returns an empty figure with an initialized layout.
func New() *Figure {
	return &Figure{Layout: NewLayout()}
}

// AddTrace appends a trace to the figure and returns the figure for
// chaining.
func (f *Figure) AddTrace(t *Trace) *Figure {
	f.Traces = append(f.Traces, t)
	return f
}

// EnsureTraceUIDs assigns a fresh UID to every trace that lacks one.
// Downstream interactivity keys on trace UIDs the same way it keys on data
// mappings, so the composite result guarantees their presence.
func (f *Figure) EnsureTraceUIDs() {
	for _, t := range f.Traces {
		if t.UID == "" {
			t.UID = uuid.NewString()
		}
	}
}
