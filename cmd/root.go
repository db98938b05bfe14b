package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version is set during build using ldflags
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "webcompat",
	Short:   "Scans web projects for browser feature compatibility",
	Long:    `webcompat scans HTML, CSS and JavaScript/TypeScript sources, or a live web page and its linked assets, detects usage of web platform features and writes a compatibility report.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
