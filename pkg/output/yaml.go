package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/sambabib/webcompat/pkg/report"
)

// GenerateYAMLReport encodes the report as YAML
func GenerateYAMLReport(r *report.ScanReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
