package compose

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// Counters tracks the next free axis number per family. One Counters value
// is created per composition and threaded through every input in order,
// which guarantees numbers assigned to one input are never reused by a
// later one.
type Counters map[figure.Family]int

// NewCounters returns numbering state with every family starting at 1.
// Axis numbering starts at 1, and the 1 is dropped from layout keys.
func NewCounters() Counters {
	c := make(Counters, len(figure.Families))
	for _, f := range figure.Families {
		c[f] = 1
	}
	return c
}

// next consumes and returns the current number for the family.
func (c Counters) next(f figure.Family) int {
	n := c[f]
	c[f] = n + 1
	return n
}

// resizeFamilyMember resizes one layout object into newDomain under its
// freshly assigned number and reports how references to it must be
// rewritten: the new layout key, plus the old and new trace-level reference
// forms. The trace form differs from the layout key for 2-D families
// ("xaxis2" on the layout, "x2" on a trace), hence the need for both.
func resizeFamilyMember(fam figure.Family, oldKey string, ax *figure.AxisObject, num int, newDomain figure.DomainBox) (newKey, oldRef, newRef string, err error) {
	newKey = fam.Key(num)

	if fam.IsXY() {
		if err := resizeAxis(ax, newDomain, fam); err != nil {
			return "", "", "", err
		}
		return newKey, fam.TraceRef(oldKey), fam.TraceRef(newKey), nil
	}

	if err := resizeBoxDomain(ax.BoxDomain, newDomain); err != nil {
		return "", "", "", err
	}
	return newKey, oldKey, newKey, nil
}

// ResizeFigure places one figure into newDomain, renumbering its axes from
// the shared counters so the result merges into a larger composition
// without key collisions.
//
// The rewrite is a single pass over the layout: every axis object receives
// the next free number of its family and is resized into the sub-region.
// All original axis keys are then dropped and replaced by the renumbered
// set; dropping is required because a high-numbered original ("xaxis7")
// left behind would collide with a number the counters hand out later.
// Finally every trace reference, inline trace domain, and anchor/overlaying
// attribute is rewritten to the new numbering. Anchor values outside the
// remap table, such as the "free" sentinel, are left as-is.
//
// With an empty newDomain the figure is returned untouched.
func ResizeFigure(traces []*figure.Trace, layout *figure.Layout, newDomain figure.DomainBox, counters Counters) error {
	if newDomain.Empty() {
		return nil
	}

	remapping := make(map[string]string)
	newAxes := make(map[string]*figure.AxisObject, len(layout.Axes))

	for _, oldKey := range sortedAxisKeys(layout) {
		fam, ok := figure.ClassifyAxisKey(oldKey)
		if !ok {
			continue
		}
		ax := layout.Axes[oldKey]

		newKey, oldRef, newRef, err := resizeFamilyMember(fam, oldKey, ax, counters.next(fam), newDomain)
		if err != nil {
			return err
		}
		newAxes[newKey] = ax
		remapping[oldRef] = newRef
	}

	layout.Axes = newAxes

	for _, t := range traces {
		reassignTraceAxes(t, remapping)
		if err := resizeBoxDomain(t.Domain, newDomain); err != nil {
			return err
		}
	}

	for _, ax := range layout.Axes {
		reassignAxisAttributes(ax, remapping)
	}
	return nil
}

// reassignTraceAxes rewrites the trace's axis references through the
// remapping. Fields absent on the trace are left untouched.
func reassignTraceAxes(t *figure.Trace, remapping map[string]string) {
	for _, fam := range figure.Families {
		ref := t.AxisRef(fam)
		if ref == "" {
			continue
		}
		if mapped, ok := remapping[ref]; ok {
			t.SetAxisRef(fam, mapped)
		}
	}
}

// reassignAxisAttributes rewrites anchor and overlaying references through
// the remapping. Values not present in the table (notably "free" anchors)
// do not refer to a renumbered axis and stay unchanged.
func reassignAxisAttributes(ax *figure.AxisObject, remapping map[string]string) {
	if mapped, ok := remapping[ax.Anchor]; ok {
		ax.Anchor = mapped
	}
	if mapped, ok := remapping[ax.Overlaying]; ok {
		ax.Overlaying = mapped
	}
}

// sortedAxisKeys returns the layout's axis keys ordered by family
// precedence, then by member number. Map iteration order must not leak into
// number assignment.
func sortedAxisKeys(layout *figure.Layout) []string {
	keys := make([]string, 0, len(layout.Axes))
	for k := range layout.Axes {
		keys = append(keys, k)
	}

	rank := func(key string) (int, int) {
		for i, f := range figure.Families {
			if rest, ok := strings.CutPrefix(key, string(f)); ok {
				num := 1
				if rest != "" {
					if n, err := strconv.Atoi(rest); err == nil {
						num = n
					}
				}
				return i, num
			}
		}
		return len(figure.Families), 0
	}

	sort.Slice(keys, func(i, j int) bool {
		fi, ni := rank(keys[i])
		fj, nj := rank(keys[j])
		if fi != fj {
			return fi < fj
		}
		return ni < nj
	})
	return keys
}
