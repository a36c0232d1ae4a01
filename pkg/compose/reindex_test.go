package compose

import (
	"math"
	"testing"

	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// xyFigure builds a single-trace figure with one x/y axis pair at the
// implicit first keys, each spanning the full canvas.
func xyFigure() *figure.Figure {
	fig := figure.New()
	fig.AddTrace(&figure.Trace{XAxis: "x", YAxis: "y"})
	fig.Layout.SetAxis("xaxis", &figure.AxisObject{Domain: []float64{0, 1}, Anchor: "y"})
	fig.Layout.SetAxis("yaxis", &figure.AxisObject{Domain: []float64{0, 1}, Anchor: "x"})
	return fig
}

func TestResizeFigure_EmptyDomainIsNoOp(t *testing.T) {
	fig := xyFigure()
	counters := NewCounters()

	if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{}, counters); err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	if _, ok := fig.Layout.Axes["xaxis"]; !ok {
		t.Error("xaxis key missing after no-op resize")
	}
	if counters[figure.FamilyXAxis] != 1 {
		t.Errorf("counter consumed by no-op resize: %d, want 1", counters[figure.FamilyXAxis])
	}
}

func TestResizeFigure_FirstFigureKeepsImplicitKeys(t *testing.T) {
	fig := xyFigure()
	counters := NewCounters()

	err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0, 0.5}}, counters)
	if err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	// The first member of a family in a composition keeps the
	// unqualified key.
	if _, ok := fig.Layout.Axes["xaxis"]; !ok {
		t.Errorf("layout keys = %v, want xaxis present", axisKeys(fig.Layout))
	}
	if fig.Traces[0].XAxis != "x" || fig.Traces[0].YAxis != "y" {
		t.Errorf("trace refs = %q/%q, want x/y", fig.Traces[0].XAxis, fig.Traces[0].YAxis)
	}

	got := fig.Layout.Axes["xaxis"].Domain
	if math.Abs(got[0]-0) > tolerance || math.Abs(got[1]-0.5) > tolerance {
		t.Errorf("xaxis domain = %v, want [0 0.5]", got)
	}
	// The y-axis is untouched along y but its anchor still resolves.
	if fig.Layout.Axes["yaxis"].Anchor != "x" {
		t.Errorf("yaxis anchor = %q, want x", fig.Layout.Axes["yaxis"].Anchor)
	}
}

func TestResizeFigure_SecondFigureGetsFreshNumbers(t *testing.T) {
	counters := NewCounters()

	first := xyFigure()
	if err := ResizeFigure(first.Traces, first.Layout, figure.DomainBox{X: []float64{0, 0.5}}, counters); err != nil {
		t.Fatalf("ResizeFigure(first) error = %v", err)
	}

	second := xyFigure()
	if err := ResizeFigure(second.Traces, second.Layout, figure.DomainBox{X: []float64{0.5, 1}}, counters); err != nil {
		t.Fatalf("ResizeFigure(second) error = %v", err)
	}

	if _, ok := second.Layout.Axes["xaxis2"]; !ok {
		t.Errorf("second layout keys = %v, want xaxis2 present", axisKeys(second.Layout))
	}
	if second.Traces[0].XAxis != "x2" || second.Traces[0].YAxis != "y2" {
		t.Errorf("second trace refs = %q/%q, want x2/y2", second.Traces[0].XAxis, second.Traces[0].YAxis)
	}
	if second.Layout.Axes["xaxis2"].Anchor != "y2" {
		t.Errorf("xaxis2 anchor = %q, want y2", second.Layout.Axes["xaxis2"].Anchor)
	}

	got := second.Layout.Axes["xaxis2"].Domain
	if math.Abs(got[0]-0.5) > tolerance || math.Abs(got[1]-1) > tolerance {
		t.Errorf("xaxis2 domain = %v, want [0.5 1]", got)
	}
}

func TestResizeFigure_HighNumberedOriginalRemoved(t *testing.T) {
	// A figure carrying an unusually high axis number must not leave that
	// key behind where a later assignment could collide with it.
	fig := figure.New()
	fig.AddTrace(&figure.Trace{XAxis: "x7", YAxis: "y"})
	fig.Layout.SetAxis("xaxis7", &figure.AxisObject{Domain: []float64{0, 1}})
	fig.Layout.SetAxis("yaxis", &figure.AxisObject{Domain: []float64{0, 1}})

	counters := NewCounters()
	if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{Y: []float64{0, 0.5}}, counters); err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	if _, ok := fig.Layout.Axes["xaxis7"]; ok {
		t.Error("original xaxis7 key left in layout")
	}
	if _, ok := fig.Layout.Axes["xaxis"]; !ok {
		t.Errorf("layout keys = %v, want xaxis present", axisKeys(fig.Layout))
	}
	if fig.Traces[0].XAxis != "x" {
		t.Errorf("trace x ref = %q, want x", fig.Traces[0].XAxis)
	}
}

func TestResizeFigure_TraceRefsAlwaysResolve(t *testing.T) {
	counters := NewCounters()

	for i := 0; i < 3; i++ {
		fig := xyFigure()
		if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0, 0.5}}, counters); err != nil {
			t.Fatalf("ResizeFigure() error = %v", err)
		}

		for _, tr := range fig.Traces {
			for _, fam := range []figure.Family{figure.FamilyXAxis, figure.FamilyYAxis} {
				ref := tr.AxisRef(fam)
				key := keyForTraceRef(fam, ref)
				if _, ok := fig.Layout.Axes[key]; !ok {
					t.Errorf("figure %d: trace ref %q has no layout key %q (keys %v)", i, ref, key, axisKeys(fig.Layout))
				}
			}
		}
	}
}

func TestResizeFigure_NumberingUniqueAcrossComposition(t *testing.T) {
	counters := NewCounters()
	seen := make(map[string]int)

	for i := 0; i < 4; i++ {
		fig := xyFigure()
		if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0, 0.5}}, counters); err != nil {
			t.Fatalf("ResizeFigure() error = %v", err)
		}
		for key := range fig.Layout.Axes {
			seen[key]++
		}
	}

	for key, count := range seen {
		if count > 1 {
			t.Errorf("axis key %q assigned %d times, want 1", key, count)
		}
	}
	if len(seen) != 8 {
		t.Errorf("distinct axis keys = %d, want 8", len(seen))
	}
}

func TestResizeFigure_FreeAnchorUntouched(t *testing.T) {
	fig := figure.New()
	fig.AddTrace(&figure.Trace{XAxis: "x", YAxis: "y"})
	fig.Layout.SetAxis("xaxis", &figure.AxisObject{Domain: []float64{0, 1}})
	fig.Layout.SetAxis("yaxis", &figure.AxisObject{Domain: []float64{0, 1}, Anchor: figure.FreeAnchor})

	counters := NewCounters()
	counters[figure.FamilyXAxis] = 3
	counters[figure.FamilyYAxis] = 3

	if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0.5, 1}}, counters); err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	if got := fig.Layout.Axes["yaxis3"].Anchor; got != figure.FreeAnchor {
		t.Errorf("anchor = %q, want %q", got, figure.FreeAnchor)
	}
}

func TestResizeFigure_OverlayingRemapped(t *testing.T) {
	fig := figure.New()
	fig.AddTrace(&figure.Trace{XAxis: "x", YAxis: "y"})
	fig.AddTrace(&figure.Trace{XAxis: "x", YAxis: "y2"})
	fig.Layout.SetAxis("xaxis", &figure.AxisObject{Domain: []float64{0, 1}})
	fig.Layout.SetAxis("yaxis", &figure.AxisObject{Domain: []float64{0, 1}})
	fig.Layout.SetAxis("yaxis2", &figure.AxisObject{Domain: []float64{0, 1}, Overlaying: "y"})

	counters := NewCounters()
	counters[figure.FamilyYAxis] = 5

	if err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0, 0.5}}, counters); err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	// yaxis became yaxis5, yaxis2 became yaxis6, and the overlay follows.
	if got := fig.Layout.Axes["yaxis6"].Overlaying; got != "y5" {
		t.Errorf("overlaying = %q, want y5", got)
	}
	if fig.Traces[1].YAxis != "y6" {
		t.Errorf("second trace y ref = %q, want y6", fig.Traces[1].YAxis)
	}
}

func TestResizeFigure_PositionFollowsOrthogonalDomain(t *testing.T) {
	pos := 0.5
	fig := figure.New()
	fig.AddTrace(&figure.Trace{XAxis: "x", YAxis: "y"})
	fig.Layout.SetAxis("xaxis", &figure.AxisObject{Domain: []float64{0, 1}, Position: &pos})
	fig.Layout.SetAxis("yaxis", &figure.AxisObject{Domain: []float64{0, 1}})

	counters := NewCounters()
	err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{Y: []float64{0.5, 1}}, counters)
	if err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	got := fig.Layout.Axes["xaxis"].Position
	if got == nil || math.Abs(*got-0.75) > tolerance {
		t.Errorf("xaxis position = %v, want 0.75", got)
	}
}

func TestResizeFigure_ContainerFamiliesResizedAsBox(t *testing.T) {
	fig := figure.New()
	fig.AddTrace(&figure.Trace{Scene: "scene"})
	fig.AddTrace(&figure.Trace{Subplot: "polar"})
	fig.Layout.SetAxis("scene", &figure.AxisObject{
		BoxDomain: &figure.DomainBox{X: []float64{0, 1}, Y: []float64{0, 1}},
	})
	fig.Layout.SetAxis("polar", &figure.AxisObject{
		BoxDomain: &figure.DomainBox{X: []float64{0, 0.4}, Y: []float64{0, 1}},
	})

	counters := NewCounters()
	counters[figure.FamilyScene] = 2

	err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0.5, 1}}, counters)
	if err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	scene, ok := fig.Layout.Axes["scene2"]
	if !ok {
		t.Fatalf("layout keys = %v, want scene2 present", axisKeys(fig.Layout))
	}
	if got := scene.BoxDomain.X; math.Abs(got[0]-0.5) > tolerance || math.Abs(got[1]-1) > tolerance {
		t.Errorf("scene2 x domain = %v, want [0.5 1]", got)
	}
	// The y side was not placed, so the box keeps its y span.
	if got := scene.BoxDomain.Y; got[0] != 0 || got[1] != 1 {
		t.Errorf("scene2 y domain = %v, want [0 1]", got)
	}

	if fig.Traces[0].Scene != "scene2" {
		t.Errorf("scene trace ref = %q, want scene2", fig.Traces[0].Scene)
	}
	polar, ok := fig.Layout.Axes["polar"]
	if !ok {
		t.Fatalf("layout keys = %v, want polar present", axisKeys(fig.Layout))
	}
	if got := polar.BoxDomain.X; math.Abs(got[0]-0.5) > tolerance || math.Abs(got[1]-0.7) > tolerance {
		t.Errorf("polar x domain = %v, want [0.5 0.7]", got)
	}
	if fig.Traces[1].Subplot != "polar" {
		t.Errorf("polar trace ref = %q, want polar", fig.Traces[1].Subplot)
	}
}

func TestResizeFigure_InlineTraceDomainResized(t *testing.T) {
	fig := figure.New()
	fig.AddTrace(&figure.Trace{
		Domain: &figure.DomainBox{X: []float64{0, 1}, Y: []float64{0, 1}},
		Fields: map[string]any{"type": "pie"},
	})

	counters := NewCounters()
	err := ResizeFigure(fig.Traces, fig.Layout, figure.DomainBox{X: []float64{0, 0.5}, Y: []float64{0.5, 1}}, counters)
	if err != nil {
		t.Fatalf("ResizeFigure() error = %v", err)
	}

	box := fig.Traces[0].Domain
	if math.Abs(box.X[1]-0.5) > tolerance {
		t.Errorf("trace x domain = %v, want [0 0.5]", box.X)
	}
	if math.Abs(box.Y[0]-0.5) > tolerance || math.Abs(box.Y[1]-1) > tolerance {
		t.Errorf("trace y domain = %v, want [0.5 1]", box.Y)
	}
}

func keyForTraceRef(fam figure.Family, ref string) string {
	if !fam.IsXY() {
		return ref
	}
	// "x2" -> "xaxis2"
	return string(fam[0]) + "axis" + ref[1:]
}

func axisKeys(l *figure.Layout) []string {
	keys := make([]string, 0, len(l.Axes))
	for k := range l.Axes {
		keys = append(keys, k)
	}
	return keys
}
