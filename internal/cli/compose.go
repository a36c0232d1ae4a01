package cli

import (
	"context"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/mattrunyon/deephaven-plugins/pkg/compose"
	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// manifest describes a composition: the input figures, how their layouts
// combine, and where the result goes.
type manifest struct {
	Output      string          `toml:"output"`
	WhichLayout *int            `toml:"which_layout"`
	Inputs      []manifestInput `toml:"input"`
}

// manifestInput is one figure in a composition manifest.
type manifestInput struct {
	Path   string            `toml:"path"`
	Domain *figure.DomainBox `toml:"domain"`
}

// newComposeCmd creates the compose command for manifest-driven composition.
//
// A manifest is a TOML file naming the inputs and the output:
//
//	output = "combined.json"
//
//	[[input]]
//	path = "scatter.json"
//	domain = { x = [0.0, 0.5], y = [0.0, 1.0] }
//
//	[[input]]
//	path = "line.json"
//	domain = { x = [0.5, 1.0], y = [0.0, 1.0] }
//
// Domains are optional; when present every input must carry one.
func newComposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compose <manifest.toml>",
		Short: "Run a composition described by a TOML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}
			return runCompose(cmd.Context(), m)
		},
	}
}

// loadManifest reads and validates a composition manifest.
func loadManifest(path string) (*manifest, error) {
	var m manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read manifest %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// validateManifest checks structural requirements before any file is touched.
func validateManifest(m *manifest) error {
	if len(m.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no [[input]] entries")
	}
	withDomain := 0
	for i, in := range m.Inputs {
		if in.Path == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "input %d has no path", i)
		}
		if in.Domain != nil {
			if err := in.Domain.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "input %d has an invalid domain", i)
			}
			withDomain++
		}
	}
	if withDomain > 0 && withDomain != len(m.Inputs) {
		return errors.New(errors.ErrCodeInvalidManifest, "domains set on %d of %d inputs: set all or none", withDomain, len(m.Inputs))
	}
	if m.WhichLayout != nil && (*m.WhichLayout < 0 || *m.WhichLayout >= len(m.Inputs)) {
		return errors.New(errors.ErrCodeInvalidManifest, "which_layout %d out of range for %d inputs", *m.WhichLayout, len(m.Inputs))
	}
	return nil
}

// runCompose loads the manifest inputs, layers them, and writes the result.
func runCompose(ctx context.Context, m *manifest) error {
	logger := loggerFromContext(ctx)

	opts := compose.Options{WhichLayout: m.WhichLayout, Logger: logger}
	inputs := make([]any, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		fig, err := figure.ImportFile(in.Path)
		if err != nil {
			return err
		}
		logger.Debugf("Loaded %s: %d traces", in.Path, len(fig.Traces))
		inputs = append(inputs, fig)
		if in.Domain != nil {
			opts.Domains = append(opts.Domains, *in.Domain)
		}
	}

	combined, err := compose.Layer(opts, inputs...)
	if err != nil {
		return err
	}
	logger.Infof("Layered %d figures: %d traces", len(m.Inputs), len(combined.Fig.Traces))

	return writeFigure(combined.Fig, m.Output)
}
