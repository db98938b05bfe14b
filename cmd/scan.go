package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambabib/webcompat/pkg/compat"
	"github.com/sambabib/webcompat/pkg/config"
	"github.com/sambabib/webcompat/pkg/fetcher"
	"github.com/sambabib/webcompat/pkg/logger"
	"github.com/sambabib/webcompat/pkg/output"
	"github.com/sambabib/webcompat/pkg/report"
	"github.com/sambabib/webcompat/pkg/scanner"
)

var (
	scanURL     string
	scanFormat  string // output format: json, yaml or md
	scanOutput  string
	scanVerbose bool
	scanConfig  string
	scanTargets string
)

// scanCmd represents the scan subcommand
var scanCmd = &cobra.Command{
	Use:          "scan [directory]",
	Short:        "Scan a project directory or web page for web feature usage",
	Long:         "Scan HTML, CSS and JS/TS files under a directory (default: current directory), or a web page and its linked stylesheets and scripts with --url, and write a compatibility report.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	directory := "."
	if len(args) > 0 {
		directory = args[0]
	}
	logger.SetVerbose(scanVerbose)

	cfg, err := loadScanConfig(directory)
	if err != nil {
		return err
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)

	// Flags win over the config file
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = scanFormat
	}
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}
	outputPath := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputPath = scanOutput
	}
	targets := cfg.Targets
	if scanTargets != "" {
		parsed, err := compat.ParseTargets(scanTargets)
		if err != nil {
			return err
		}
		targets = targets.Merge(parsed)
	}

	s, err := scanner.NewDefault(fetcher.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent), scanner.Options{
		FileBatchSize:  cfg.Concurrency.Files,
		AssetBatchSize: cfg.Concurrency.Assets,
		Exclude:        cfg.IsPathExcluded,
		Targets:        targets,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var r *report.ScanReport
	reportDir := directory
	if scanURL != "" {
		fmt.Fprintf(out, "Scanning %s for web feature compatibility...\n", scanURL)
		r, err = s.ScanURL(cmd.Context(), scanURL)
		reportDir = "." // url reports land in the working directory
	} else {
		fmt.Fprintf(out, "Scanning %s for web feature compatibility...\n", directory)
		r, err = s.ScanDirectory(cmd.Context(), directory)
	}
	if err != nil {
		return err
	}

	path, err := output.WriteReport(r, format, outputPath, reportDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nScan Complete!\n\n")
	output.PrintTextReport(out, r, scanVerbose)
	fmt.Fprintf(out, "\nReport generated: %s\n", path)
	if !scanVerbose {
		fmt.Fprintln(out, "Tip: use --verbose to see detailed file locations")
	}
	return nil
}

func loadScanConfig(directory string) (*config.Config, error) {
	switch {
	case scanConfig != "":
		return config.LoadConfig(scanConfig)
	case scanURL != "":
		return config.LoadConfig("")
	default:
		return config.FindAndLoadConfig(directory)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanURL, "url", "", "Scan a website URL instead of a local directory")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "json", "Output format: json, yaml or md")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Output file path (default: auto-named in the scanned directory)")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "V", false, "Show detailed output")
	scanCmd.Flags().StringVar(&scanConfig, "config", "", "Path to a config file (default: "+config.FileName+" in the project or its parents)")
	scanCmd.Flags().StringVar(&scanTargets, "targets", "", "Browser targets to check, e.g. chrome=90,safari=14")
}
