package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattrunyon/deephaven-plugins/pkg/compose"
	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// layerOpts holds the command-line flags for the layer command.
type layerOpts struct {
	output      string // output file path (stdout if empty)
	whichLayout int    // index of the input whose layout wins
	domains     string // per-input domain specs
}

// newLayerCmd creates the layer command for combining figure files.
// Inputs are layered in argument order; later inputs paint over earlier ones.
//
// Domain specs assign each input a region of the unit square and are separated
// by semicolons, one per input:
//
//	x=0:0.5,y=0:1;x=0.5:1,y=0:1
//
// When --domains is given, every input contributes its layout and axes are
// renumbered so the inputs sit side by side. Without it the layouts are merged
// with later inputs winning, unless --which-layout selects a single source.
func newLayerCmd() *cobra.Command {
	var opts layerOpts

	cmd := &cobra.Command{
		Use:   "layer <file>...",
		Short: "Combine figure JSON files into a single layered figure",
		Long: `Combine two or more figure JSON files into a single figure.

Examples:
  chartlayer layer scatter.json line.json -o combined.json
  chartlayer layer a.json b.json --which-layout 0 -o combined.json
  chartlayer layer a.json b.json --domains "x=0:0.5,y=0:1;x=0.5:1,y=0:1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layerArgs := compose.Options{}
			if cmd.Flags().Changed("which-layout") {
				layerArgs.WhichLayout = compose.WhichLayout(opts.whichLayout)
			}
			if opts.domains != "" {
				domains, err := parseDomains(opts.domains)
				if err != nil {
					return err
				}
				layerArgs.Domains = domains
			}
			return runLayer(cmd.Context(), args, layerArgs, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&opts.whichLayout, "which-layout", 0, "index of the input whose layout is used (default: merge all)")
	cmd.Flags().StringVar(&opts.domains, "domains", "", "per-input domain specs, e.g. \"x=0:0.5,y=0:1;x=0.5:1,y=0:1\"")

	return cmd
}

// runLayer loads the input figures, layers them, and writes the result.
func runLayer(ctx context.Context, paths []string, opts compose.Options, output string) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	inputs := make([]any, 0, len(paths))
	for _, path := range paths {
		fig, err := figure.ImportFile(path)
		if err != nil {
			return err
		}
		logger.Debugf("Loaded %s: %d traces", path, len(fig.Traces))
		inputs = append(inputs, fig)
	}

	combined, err := compose.Layer(opts, inputs...)
	if err != nil {
		return err
	}
	logger.Infof("Layered %d figures: %d traces", len(paths), len(combined.Fig.Traces))

	return writeFigure(combined.Fig, output)
}

// writeFigure writes the figure to the output path, or stdout if empty.
func writeFigure(fig *figure.Figure, output string) error {
	if output == "" {
		return figure.WriteJSON(os.Stdout, fig)
	}
	if err := figure.ExportFile(output, fig); err != nil {
		return err
	}
	printSuccess("Wrote combined figure")
	printFile(output)
	return nil
}

// parseDomains parses a --domains flag value into one domain box per input.
// Specs are separated by semicolons; each spec is a comma-separated list of
// "x=lo:hi" or "y=lo:hi" assignments.
func parseDomains(s string) ([]figure.DomainBox, error) {
	specs := strings.Split(s, ";")
	domains := make([]figure.DomainBox, 0, len(specs))
	for _, spec := range specs {
		box, err := parseDomainSpec(spec)
		if err != nil {
			return nil, err
		}
		domains = append(domains, box)
	}
	return domains, nil
}

// parseDomainSpec parses a single domain spec like "x=0:0.5,y=0:1".
func parseDomainSpec(spec string) (figure.DomainBox, error) {
	var box figure.DomainBox
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		axis, rangeStr, ok := strings.Cut(part, "=")
		if !ok {
			return box, errors.New(errors.ErrCodeInvalidInput, "invalid domain spec %q: expected x=lo:hi or y=lo:hi", part)
		}
		span, err := parseSpan(rangeStr)
		if err != nil {
			return box, err
		}
		switch strings.TrimSpace(axis) {
		case "x":
			box.X = span
		case "y":
			box.Y = span
		default:
			return box, errors.New(errors.ErrCodeInvalidInput, "invalid domain axis %q: must be x or y", axis)
		}
	}
	if err := box.Validate(); err != nil {
		return box, err
	}
	return box, nil
}

// parseSpan parses a "lo:hi" range into a two-element span.
func parseSpan(s string) ([]float64, error) {
	loStr, hiStr, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid range %q: expected lo:hi", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(loStr), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid range bound %q", loStr)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(hiStr), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid range bound %q", hiStr)
	}
	span := []float64{lo, hi}
	if err := errors.ValidateDomainSpan(span); err != nil {
		return nil, err
	}
	return span, nil
}
