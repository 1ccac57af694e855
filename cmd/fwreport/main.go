package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/fwreport/internal/config"
	"github.com/breeze-rmm/fwreport/internal/logging"
	"github.com/breeze-rmm/fwreport/internal/reporter"
	"github.com/breeze-rmm/fwreport/internal/wua"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Seams for tests.
var (
	newService           = wua.NewService
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
)

var (
	cfgFile string
	verbose bool
	output  string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "fwreport",
	Short: "Report firmware updates known to Windows Update",
	Long: `fwreport lists firmware, BIOS, UEFI, embedded controller and management
engine updates that Windows Update offers for this machine, the ones already
installed according to the update history, and those not yet downloaded.

It only reads update state; nothing is downloaded or installed. Run it from an
elevated prompt on a machine that can reach its update service.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fwreport %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is fwreport.yaml in the config dir or working directory)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "narrate progress on stderr")
	rootCmd.Flags().StringVarP(&output, "output", "o", config.OutputText, "output format: text, json or yaml")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured section headers")

	rootCmd.AddCommand(versionCmd)
}

// The outcome of a run is reported on stdout and stderr only; the process
// exit status is left at its default.
func main() {
	// cobra prints usage errors itself.
	_ = rootCmd.Execute()
}

func runReport(cmd *cobra.Command) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return
	}
	applyFlags(cmd, cfg)
	cfg.Validate()

	logging.Init(cfg.LogFormat, cfg.LogLevel, stderr)
	ctx := logging.NewContext(context.Background(), logging.L("reporter"))

	r := reporter.New(newService(), stdout, reporter.Options{
		Format:  cfg.Output,
		NoColor: cfg.NoColor,
	})
	if err := r.Run(ctx); err != nil {
		fmt.Fprintln(stderr, errorLine(err))
	}
}

// applyFlags lets explicitly set flags override config and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if verbose {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = noColor
	}
}

// errorLine formats a failed run as the single line written to stderr.
func errorLine(err error) string {
	line := fmt.Sprintf("Failed to query Windows Update for firmware updates: %v", err)
	if hint := wua.Hint(err); hint != "" {
		line += " (" + hint + ")"
	}
	return line
}
