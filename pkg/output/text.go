package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/compat"
	"github.com/sambabib/webcompat/pkg/report"
)

const verboseLocationLimit = 3 // locations listed per feature in verbose mode

// PrintTextReport prints a summary of the report in a tabular text format
func PrintTextReport(w io.Writer, r *report.ScanReport, verbose bool) {
	fmt.Fprintln(w, "Feature Compatibility Summary")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if len(r.Features) == 0 {
		fmt.Fprintln(w, "\nNo web features detected in the scanned files.")
		return
	}

	withTargets := false
	for _, f := range r.Features {
		if len(f.Targets) > 0 {
			withTargets = true
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) // minwidth, tabwidth, padding, padchar, flags

	header, rule := "NAME\tID\tSTATUS\tSINCE\tCOUNT\tBROWSERS", "----\t--\t------\t-----\t-----\t--------"
	if withTargets {
		header, rule = header+"\tTARGETS", rule+"\t-------"
	}
	fmt.Fprintln(tw, header)
	fmt.Fprintln(tw, rule)

	for _, f := range r.Features {
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%s",
			f.Name,
			f.ID,
			statusGlyph(f.Status),
			f.Since,
			f.Count,
			browserList(f.Browsers),
		)
		if withTargets {
			row += "\t" + compat.Summarize(f.Targets)
		}
		fmt.Fprintln(tw, row)
	}
	tw.Flush()

	if !verbose {
		return
	}
	for _, f := range r.Features {
		if len(f.Locations) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s) found in:\n", f.Name, f.ID)
		for i, loc := range f.Locations {
			if i == verboseLocationLimit {
				break
			}
			fmt.Fprintf(w, "  - %s\n", loc)
		}
		if len(f.Locations) > verboseLocationLimit {
			fmt.Fprintf(w, "  ... and %d more locations\n", len(f.Locations)-verboseLocationLimit)
		}
	}
}

func statusGlyph(status string) string {
	if status == catalog.StatusBaseline {
		return "✓ Baseline"
	}
	return "⚠ " + status
}

func browserList(browsers map[string]string) string {
	if len(browsers) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(browsers))
	for _, b := range sortedKeys(browsers) {
		parts = append(parts, b+" "+browsers[b])
	}
	return strings.Join(parts, ", ")
}
