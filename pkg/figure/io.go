package figure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a chart specification from r.
//
// The input must be a JSON object with "data" and "layout" members, the
// wire form plotly uses:
//
//	{
//	  "data": [{"type": "scatter", "xaxis": "x", "yaxis": "y"}],
//	  "layout": {"xaxis": {"domain": [0, 1]}, "yaxis": {"domain": [0, 1]}}
//	}
//
// Unknown trace and layout fields are preserved in the passthrough bags and
// survive a write round trip. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Figure, error) {
	var doc struct {
		Data   []*Trace `json:"data"`
		Layout *Layout  `json:"layout"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	fig := &Figure{Traces: doc.Data, Layout: doc.Layout}
	if fig.Layout == nil {
		fig.Layout = NewLayout()
	}
	return fig, nil
}

// WriteJSON encodes the figure to w in the same "data"/"layout" wire form
// that ReadJSON accepts.
func WriteJSON(w io.Writer, fig *Figure) error {
	doc := struct {
		Data   []*Trace `json:"data"`
		Layout *Layout  `json:"layout"`
	}{
		Data:   fig.Traces,
		Layout: fig.Layout,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportFile reads a JSON figure file at path.
//
// ImportFile opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportFile(path string) (*Figure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fig, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return fig, nil
}

// ExportFile writes the figure as JSON to path, creating or truncating the
// file.
func ExportFile(path string, fig *Figure) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, fig); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
