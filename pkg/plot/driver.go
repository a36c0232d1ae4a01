package plot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mattrunyon/deephaven-plugins/pkg/compose"
	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// Preprocessor turns the data source and the requested columns into a
// plottable form: a new table plus the primary and secondary data columns.
// In per-column mode it is called once per column with a single name; with
// Options.SkipLayer it sees all columns at once.
type Preprocessor func(t Table, cols []string) (Table, string, string, error)

// DrawFunc produces one figure from the argument record, generally backed
// by plot-type-specific drawing code. The style cursor is nil on the first
// call; the callback returns the cursor it created so later calls continue
// the same progression.
type DrawFunc func(args Args, styles *StyleCursor) (*figure.CompositeFigure, *StyleCursor, error)

// Finisher adjusts the fully normalized figure after composition. It may
// mutate in place and return nil, or return a replacement.
type Finisher func(*figure.CompositeFigure) *figure.CompositeFigure

// Options configures one call to [LayerOverColumns].
type Options struct {
	// Orientation is copied into the argument record when set.
	Orientation string

	// Axis titles, applied only when non-empty. The Str pair is used when
	// the column argument was a single name, the List pair when it was a
	// list of any length, including one.
	StrVarAxisTitle  string
	StrValAxisTitle  string
	ListVarAxisTitle string
	ListValAxisTitle string

	// SkipLayer passes all columns to the preprocessor together and takes
	// the single resulting figure as-is. Used when preprocessing must see
	// every series at once, such as shared histogram bucketing.
	SkipLayer bool

	// Finish runs on the normalized result. Defaults to the identity.
	Finish Finisher

	// Logger reports driver progress. Defaults to a discard logger.
	Logger *log.Logger
}

// LayerOverColumns turns a "plot over one or many columns" request into one
// figure per column and layers the results onto shared axes.
//
// For each requested column the preprocessor produces a plottable table and
// column pair, assigned into the argument record as (table, x, y) when role
// is x and (table, y, x) when role is y, and the draw callback produces one
// figure. A single style cursor created on the first column is shared
// across all columns so the visual-style progression continues across the
// whole request.
//
// The per-column figures are layered with the first figure's layout as the
// only layout source: later figures were drawn against the same axes and
// contribute traces only. Legend and axis-title presentation is then
// normalized by whether the original request used a single column or a
// list, and the finishing callback runs last.
func LayerOverColumns(preprocess Preprocessor, draw DrawFunc, args Args, role Role, opts Options) (*figure.CompositeFigure, error) {
	if err := ValidateCommonArgs(args); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	request := args.Columns(role)
	if request.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no %s columns to plot over", role)
	}
	isList := request.IsList()
	cols := request.Names()
	for _, col := range cols {
		if err := errors.ValidateColumnName(col); err != nil {
			return nil, err
		}
	}

	if opts.Orientation != "" {
		args.Orientation = opts.Orientation
	}

	table := args.Table
	var figs []*figure.CompositeFigure
	var cursor *StyleCursor

	if opts.SkipLayer {
		fig, _, err := drawPreprocessed(preprocess, draw, args, role, table, cols, nil)
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)

		// A skipped layer with a single column titles the var axis with
		// that column's name.
		if !isList {
			opts.StrVarAxisTitle = cols[0]
		}
	} else {
		for _, col := range cols {
			fig, next, err := drawPreprocessed(preprocess, draw, args, role, table, []string{col}, cursor)
			if err != nil {
				return nil, err
			}
			figs = append(figs, fig)
			if cursor == nil {
				cursor = next
			}
		}
	}

	opts.Logger.Debug("drew column figures", "columns", cols, "figures", len(figs))

	inputs := make([]any, len(figs))
	for i, f := range figs {
		inputs[i] = f
	}
	layered, err := compose.Layer(compose.Options{
		WhichLayout: compose.WhichLayout(0),
		Logger:      opts.Logger,
	}, inputs...)
	if err != nil {
		return nil, err
	}

	normalizeLegendAndTitles(layered, role, cols, isList, opts)

	if opts.Finish != nil {
		if finished := opts.Finish(layered); finished != nil {
			layered = finished
		}
	}
	return layered, nil
}

// drawPreprocessed runs one preprocess+draw cycle against a fresh copy of
// the argument record.
func drawPreprocessed(preprocess Preprocessor, draw DrawFunc, args Args, role Role, table Table, cols []string, cursor *StyleCursor) (*figure.CompositeFigure, *StyleCursor, error) {
	newTable, primary, secondary, err := preprocess(table, cols)
	if err != nil {
		return nil, nil, err
	}

	// Preprocessor output is assigned as (table, x, y) for role x and
	// (table, y, x) for role y.
	args.Table = newTable
	args.setColumn(role, primary)
	args.setColumn(role.Other(), secondary)

	return draw(args, cursor)
}

// legendTitle is the fixed legend title for multi-column requests.
const legendTitle = "variable"

// normalizeLegendAndTitles applies the legend and axis-title presentation
// policy to the merged figure. A list request names every trace after its
// column in order, shows the legend, and uses the caller's list titles; a
// scalar request hides the legend and uses the scalar titles. Titles apply
// only when non-empty.
func normalizeLegendAndTitles(composite *figure.CompositeFigure, role Role, cols []string, isList bool, opts Options) {
	layout := composite.Fig.Layout
	roleFam, otherFam := familyFor(role), familyFor(role.Other())

	if isList {
		ApplyStyles(composite.Fig, LegendCursor(cols))
		layout.SetProp("legend", map[string]any{
			"title":         map[string]any{"text": legendTitle},
			"tracegroupgap": 0,
		})

		if opts.ListVarAxisTitle != "" {
			layout.SetAxisTitle(roleFam, opts.ListVarAxisTitle)
		}
		if opts.ListValAxisTitle != "" {
			layout.SetAxisTitle(otherFam, opts.ListValAxisTitle)
		}
		return
	}

	// Hide the legend outright for single-column requests; some drawing
	// code turns it on for grouped traces.
	layout.SetProp("showlegend", false)

	if opts.StrVarAxisTitle != "" {
		layout.SetAxisTitle(roleFam, opts.StrVarAxisTitle)
	}
	if opts.StrValAxisTitle != "" {
		layout.SetAxisTitle(otherFam, opts.StrValAxisTitle)
	}
}

func familyFor(role Role) figure.Family {
	if role == RoleX {
		return figure.FamilyXAxis
	}
	return figure.FamilyYAxis
}
