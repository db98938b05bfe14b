package output

import (
	"bytes"
	"encoding/json"

	"github.com/sambabib/webcompat/pkg/report"
)

// GenerateJSONReport encodes the report as indented JSON
func GenerateJSONReport(r *report.ScanReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // locations are URLs, keep & and <> readable
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
