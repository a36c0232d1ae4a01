package figure

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
)

// Clone returns a deep copy of the figure, including the passthrough bags.
// The layering engine mutates figures in place, so callers that want to
// keep the original intact hand the engine a clone.
func (f *Figure) Clone() (*Figure, error) {
	out := &Figure{}
	if err := deepcopy.Copy(out, f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "clone figure")
	}
	return out, nil
}

// Clone returns a deep copy of the composite figure and its metadata.
func (c *CompositeFigure) Clone() (*CompositeFigure, error) {
	out := &CompositeFigure{}
	if err := deepcopy.Copy(out, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "clone composite figure")
	}
	return out, nil
}
