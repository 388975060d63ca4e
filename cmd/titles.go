package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/storyd/internal/config"
	"github.com/brogergvhs/storyd/internal/extract"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles <story-url>",
	Short: "List every title of the story's author, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		idx, _, err := s.crawler(nil).IndexFor(context.Background(), extract.ResolveURL("", args[0]))
		if err != nil {
			return err
		}

		titles := idx.SortedByDate()
		fmt.Printf("%s: %d titles\n\n", idx.Name, len(titles))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "DATE\tTITLE\tDESCRIPTION\tURL")
		for _, t := range titles {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Date, t.Name, t.Description, t.URL)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titlesCmd)
}
