// Package result renders snapshots of the task collection for download.
package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"taskbench/internal/store"
	"taskbench/pkg/cache"

	"github.com/jung-kurt/gofpdf"
)

// ContentType returns the MIME type for a supported format, or "" if the
// format is unknown.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	}
	return ""
}

type Exporter struct {
	st    *store.Store
	cache *cache.MemoryCache
}

// NewExporter wraps the store. cache may be nil to render on every call.
func NewExporter(st *store.Store, c *cache.MemoryCache) *Exporter {
	return &Exporter{st: st, cache: c}
}

// Export renders the current tasks in the given format. Rendered bytes are
// cached per store generation, so any mutation invalidates the entry.
func (e *Exporter) Export(format string) ([]byte, error) {
	format = strings.ToLower(format)
	if ContentType(format) == "" {
		return nil, fmt.Errorf("unknown format %s", format)
	}
	key := format + ":" + strconv.FormatUint(e.st.Generation(), 10)
	if e.cache != nil {
		if b, ok := e.cache.Get(key); ok {
			return b, nil
		}
	}
	b, err := e.render(format)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(key, b)
	}
	return b, nil
}

func (e *Exporter) render(format string) ([]byte, error) {
	all := e.st.List()
	switch format {
	case "json":
		return json.MarshalIndent(all, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "completed"})
		for _, t := range all {
			_ = w.Write([]string{strconv.Itoa(t.ID), t.Title, t.Description, strconv.FormatBool(t.Completed)})
		}
		w.Flush()
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Task Report")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, t := range all {
			status := "open"
			if t.Completed {
				status = "done"
			}
			line := fmt.Sprintf("#%d [%s] %s - %s", t.ID, status, t.Title, t.Description)
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf strings.Builder
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
