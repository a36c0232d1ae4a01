package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// FinishFunc adjusts a composed figure before it is wrapped. It may mutate
// the figure in place and return nil, or return a replacement.
type FinishFunc func(*figure.Figure) *figure.Figure

// Options configures one call to [Layer].
type Options struct {
	// WhichLayout selects a single input as the layout source. When nil,
	// all layouts merge in painting order (later inputs win on collision).
	// Ignored when Domains is set, since domain placement renumbers every
	// input's layout into disjoint keys.
	WhichLayout *int

	// Domains places each input into a sub-region of the canvas, one box
	// per input. Leave nil to compose on a shared canvas.
	Domains []figure.DomainBox

	// Finish runs on the merged figure before wrapping. Defaults to the
	// identity.
	Finish FinishFunc

	// Logger reports composition progress. Defaults to a discard logger.
	Logger *log.Logger
}

// WhichLayout wraps an input index for Options.WhichLayout.
func WhichLayout(i int) *int {
	return &i
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Layer composes the provided figures into one composite figure.
//
// Inputs are folded in order and may be raw figures (*figure.Figure) or
// metadata-wrapped composites (*figure.CompositeFigure); anything else is a
// TYPE_MISMATCH error. Raw figures are treated as composites with empty
// metadata.
//
// With Options.Domains, each input is placed into its sub-region via
// [ResizeFigure] through a single shared [Counters] state, so axis numbers
// stay unique across the whole composition. Without domains, traces
// concatenate at full scale and layouts merge under the painting-order
// policy, optionally restricted to one input by Options.WhichLayout.
//
// Composite inputs contribute their data mappings shifted by the number of
// traces accumulated before them, and their template/color flags fold into
// the result. A composite that already spans a composed canvas
// (HasSubplots) cannot be nested as a new layer and is rejected as
// UNSUPPORTED.
//
// The result always has HasSubplots set: it spans a composed canvas even
// when domains were not used.
func Layer(opts Options, inputs ...any) (*figure.CompositeFigure, error) {
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no figures provided to compose")
	}
	opts.setDefaults()

	if opts.Domains != nil {
		if len(opts.Domains) != len(inputs) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"got %d domains for %d figures", len(opts.Domains), len(inputs))
		}
		for _, d := range opts.Domains {
			if err := d.Validate(); err != nil {
				return nil, err
			}
		}
	}

	var (
		traces      []*figure.Trace
		mappings    []figure.DataMapping
		hasTemplate bool
		hasColor    bool
	)
	layout := figure.NewLayout()
	counters := NewCounters()

	for i, input := range inputs {
		var fig *figure.Figure

		switch v := input.(type) {
		case *figure.Figure:
			fig = v
		case *figure.CompositeFigure:
			if v.HasSubplots {
				return nil, errors.New(errors.ErrCodeUnsupported,
					"cannot add a figure with subplots as a subplot")
			}
			mappings = append(mappings, v.CopyMappings(len(traces))...)
			hasTemplate = hasTemplate || v.HasTemplate
			hasColor = hasColor || v.HasColor
			fig = v.Fig
		default:
			return nil, errors.New(errors.ErrCodeTypeMismatch,
				"argument %d is %T, want *figure.Figure or *figure.CompositeFigure", i, input)
		}

		figLayout, err := placeInput(fig, i, opts, counters)
		if err != nil {
			return nil, err
		}

		traces = append(traces, fig.Traces...)
		layout.Merge(figLayout)

		opts.Logger.Debug("layered figure",
			"index", i,
			"traces", len(fig.Traces),
			"axes", len(fig.Layout.Axes))
	}

	result := &figure.Figure{Traces: traces, Layout: layout}
	result.EnsureTraceUIDs()

	if opts.Finish != nil {
		if finished := opts.Finish(result); finished != nil {
			result = finished
		}
	}

	opts.Logger.Debug("composed figures",
		"figures", len(inputs),
		"traces", len(result.Traces),
		"mappings", len(mappings))

	return &figure.CompositeFigure{
		Fig:         result,
		Mappings:    mappings,
		HasTemplate: hasTemplate,
		HasColor:    hasColor,
		HasSubplots: true,
	}, nil
}

// placeInput resolves one input's layout contribution. With domains the
// figure is resized in place and its renumbered layout always contributes;
// otherwise the layout contributes only under the merge policy selected by
// WhichLayout.
func placeInput(fig *figure.Figure, i int, opts Options, counters Counters) (*figure.Layout, error) {
	if opts.Domains != nil {
		// Domains takes precedence; WhichLayout is ignored on this path.
		if err := ResizeFigure(fig.Traces, fig.Layout, opts.Domains[i], counters); err != nil {
			return nil, err
		}
		return fig.Layout, nil
	}

	if opts.WhichLayout == nil || *opts.WhichLayout == i {
		return fig.Layout, nil
	}
	return nil, nil
}
