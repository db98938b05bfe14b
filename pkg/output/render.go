package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sambabib/webcompat/pkg/logger"
	"github.com/sambabib/webcompat/pkg/report"
)

// Render encodes the report in the given format.
func Render(r *report.ScanReport, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return GenerateJSONReport(r)
	case FormatYAML:
		return GenerateYAMLReport(r)
	case FormatMarkdown:
		return GenerateMarkdownReport(r), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// ReportFileName returns the default report file name for a report written at t,
// e.g. compatibility-report-2026-10-18T09-30-05-123Z.json.
func ReportFileName(t time.Time, f Format) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(report.Timestamp(t))
	return fmt.Sprintf("compatibility-report-%s.%s", ts, Extension(f))
}

// WriteReport renders the report and writes it to outputPath, or to an auto-named file
// inside dir when outputPath is empty. The format token is validated before any file is
// touched. It returns the path written.
func WriteReport(r *report.ScanReport, token, outputPath, dir string) (string, error) {
	f, err := ParseFormat(token)
	if err != nil {
		return "", err
	}

	content, err := Render(r, f)
	if err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", f, err)
	}

	path := outputPath
	if path == "" {
		path = filepath.Join(dir, ReportFileName(time.Now(), f))
	}

	logger.Debugf("Writing %s report to %s", f, path)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
