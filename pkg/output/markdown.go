package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sambabib/webcompat/pkg/aggregator"
	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/report"
)

// GenerateMarkdownReport renders the report as a markdown document.
// Only the first locations of each feature are listed.
func GenerateMarkdownReport(r *report.ScanReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Web Compatibility Report\n\n")
	fmt.Fprintf(&b, "- **Timestamp**: %s\n", r.Timestamp)
	fmt.Fprintf(&b, "- **Project**: %s\n\n", r.Project)
	fmt.Fprintf(&b, "## Summary\n\n")

	if len(r.Features) == 0 {
		fmt.Fprintf(&b, "No web features detected.\n")
		return []byte(b.String())
	}

	for _, f := range r.Features {
		fmt.Fprintf(&b, "### %s (%s)\n\n", f.Name, f.ID)
		fmt.Fprintf(&b, "- **Status**: %s\n", statusLabel(f.Status))
		fmt.Fprintf(&b, "- **Since**: %s\n", f.Since)

		if len(f.Browsers) > 0 {
			fmt.Fprintf(&b, "- **Browser Support**:\n")
			for _, browser := range sortedKeys(f.Browsers) {
				fmt.Fprintf(&b, "  - %s: %s\n", browser, f.Browsers[browser])
			}
		}

		if len(f.Targets) > 0 {
			fmt.Fprintf(&b, "- **Targets**:\n")
			for _, t := range f.Targets {
				if t.Required != "" {
					fmt.Fprintf(&b, "  - %s %s: %s (requires %s)\n", t.Browser, t.Target, t.Status, t.Required)
				} else {
					fmt.Fprintf(&b, "  - %s %s: %s\n", t.Browser, t.Target, t.Status)
				}
			}
		}

		if len(f.Locations) > 0 {
			fmt.Fprintf(&b, "- **Found in**:\n")
			for i, loc := range f.Locations {
				if i == aggregator.MaxLocations {
					break
				}
				fmt.Fprintf(&b, "  - %s\n", loc)
			}
		}
		b.WriteString("\n")
	}

	return []byte(b.String())
}

func statusLabel(status string) string {
	if status == catalog.StatusBaseline {
		return "Baseline"
	}
	return status
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
