package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/storyd/internal/config"
	"github.com/brogergvhs/storyd/internal/history"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent crawls",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(context.Background(), flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No crawls recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "WHEN\tAUTHOR\tTITLE\tCHAPTERS\tFORMAT\tOUTPUT")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Author, e.Title, e.Chapters, e.Format, e.Output)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
