package figure

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFigure = `{
  "data": [
    {
      "type": "scatter",
      "x": [1, 2, 3],
      "y": [4, 5, 6],
      "xaxis": "x",
      "yaxis": "y",
      "marker": {"color": "blue"}
    },
    {
      "type": "pie",
      "domain": {"x": [0, 0.5], "y": [0, 1]},
      "labels": ["a", "b"]
    }
  ],
  "layout": {
    "title": {"text": "sample"},
    "showlegend": true,
    "xaxis": {"domain": [0, 1], "anchor": "y", "tickformat": ".2f"},
    "yaxis": {"domain": [0, 1], "position": 0.5},
    "scene": {"domain": {"x": [0.5, 1], "y": [0, 1]}}
  }
}`

func TestReadJSON(t *testing.T) {
	fig, err := ReadJSON(strings.NewReader(sampleFigure))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got := len(fig.Traces); got != 2 {
		t.Fatalf("trace count = %d, want 2", got)
	}

	scatter := fig.Traces[0]
	if scatter.XAxis != "x" || scatter.YAxis != "y" {
		t.Errorf("scatter refs = %q/%q, want x/y", scatter.XAxis, scatter.YAxis)
	}
	if scatter.Fields["type"] != "scatter" {
		t.Errorf("scatter type = %v, want scatter", scatter.Fields["type"])
	}
	if _, ok := scatter.Fields["marker"]; !ok {
		t.Error("marker field lost from passthrough bag")
	}

	pie := fig.Traces[1]
	if pie.Domain == nil || pie.Domain.X[1] != 0.5 {
		t.Errorf("pie domain = %+v, want x [0 0.5]", pie.Domain)
	}

	xaxis := fig.Layout.Axes["xaxis"]
	if xaxis == nil || xaxis.Anchor != "y" {
		t.Fatalf("xaxis = %+v, want anchor y", xaxis)
	}
	if xaxis.Extra["tickformat"] != ".2f" {
		t.Errorf("tickformat = %v, want .2f", xaxis.Extra["tickformat"])
	}

	yaxis := fig.Layout.Axes["yaxis"]
	if yaxis.Position == nil || *yaxis.Position != 0.5 {
		t.Errorf("yaxis position = %v, want 0.5", yaxis.Position)
	}

	scene := fig.Layout.Axes["scene"]
	if scene == nil || scene.BoxDomain == nil || scene.BoxDomain.X[0] != 0.5 {
		t.Errorf("scene = %+v, want box domain x [0.5 1]", scene)
	}

	if fig.Layout.Props["showlegend"] != true {
		t.Error("showlegend lost from layout props")
	}
	if _, ok := fig.Layout.Props["title"]; !ok {
		t.Error("title lost from layout props")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	fig, err := ReadJSON(strings.NewReader(sampleFigure))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, fig); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	// Unknown fields survive the round trip byte-for-byte at the
	// document level.
	var original, written map[string]any
	if err := json.Unmarshal([]byte(sampleFigure), &original); err != nil {
		t.Fatalf("unmarshal original: %v", err)
	}
	if err := json.Unmarshal(buf.Bytes(), &written); err != nil {
		t.Fatalf("unmarshal written: %v", err)
	}

	origData, _ := json.Marshal(original["data"])
	writtenData, _ := json.Marshal(written["data"])
	var origTraces, writtenTraces []map[string]any
	json.Unmarshal(origData, &origTraces)
	json.Unmarshal(writtenData, &writtenTraces)

	for i := range origTraces {
		for k, v := range origTraces[i] {
			got, _ := json.Marshal(writtenTraces[i][k])
			want, _ := json.Marshal(v)
			if !bytes.Equal(got, want) {
				t.Errorf("trace %d field %q = %s, want %s", i, k, got, want)
			}
		}
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.json")

	fig, err := ReadJSON(strings.NewReader(sampleFigure))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if err := ExportFile(path, fig); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	loaded, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if got := len(loaded.Traces); got != 2 {
		t.Errorf("trace count = %d, want 2", got)
	}
}

func TestImportFile_Missing(t *testing.T) {
	if _, err := ImportFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportFile() error = nil, want open error")
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("ReadJSON() error = nil, want decode error")
	}
}
