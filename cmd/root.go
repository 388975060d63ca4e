package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagProfile      string
)

var rootCmd = &cobra.Command{
	Use:   "storyd",
	Short: "Story crawler with HTML and EPUB output",
	Long: `storyd follows a story's pages (and, with --series, the chapters linked
after it), matches every chapter to the author's listing and writes the result
as one HTML blob or an EPUB.

Settings come from the active config profile; flags override them for one run.`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "use this config profile instead of the active one")
}

// loadConfig applies the global flags to opts before loading.
func loadConfig(opts config.Options) (*config.Config, string, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Profile = flagProfile
	opts.Debug = opts.Debug || flagDebug

	return config.LoadMerged(opts)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
