package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Exporter writes a Summary in one format.
type Exporter interface {
	Export(w io.Writer, s Summary) error
	// Ext is the file extension including the dot, e.g. ".pdf".
	Ext() string
	// ContentType is the MIME type served by the API.
	ContentType() string
}

var exporters = map[string]func() Exporter{
	"json":     func() Exporter { return JSONExporter{} },
	"markdown": func() Exporter { return MarkdownExporter{} },
	"md":       func() Exporter { return MarkdownExporter{} },
	"pdf":      func() Exporter { return PDFExporter{} },
}

// New returns the exporter for format (json, markdown/md or pdf).
func New(format string) (Exporter, error) {
	f, ok := exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return f(), nil
}

// Formats lists the accepted format names.
func Formats() []string {
	out := make([]string, 0, len(exporters))
	for k := range exporters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// JSONExporter writes the summary as indented JSON.
type JSONExporter struct{}

func (JSONExporter) Export(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func (JSONExporter) Ext() string         { return ".json" }
func (JSONExporter) ContentType() string { return "application/json" }
