package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/detector"
)

// featuresCmd lists the features the scanner can detect
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List detectable web features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		detectors, err := detector.NewSet(cat)
		if err != nil {
			return err
		}

		// content types each feature is detected in
		scopes := map[string][]string{}
		for _, r := range detectors.Rules() {
			scope := "any"
			if len(r.Types) > 0 {
				parts := make([]string, 0, len(r.Types))
				for _, t := range r.Types {
					parts = append(parts, string(t))
				}
				scope = strings.Join(parts, ",")
			}
			scopes[r.Feature] = appendUnique(scopes[r.Feature], scope)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSINCE\tSCANNED IN")
		fmt.Fprintln(w, "--\t----\t------\t-----\t----------")
		for _, id := range cat.IDs() {
			d := cat.MustLookup(id)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Status, d.Since, strings.Join(scopes[id], ","))
		}
		return w.Flush()
	},
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	list = append(list, s)
	sort.Strings(list)
	return list
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}
