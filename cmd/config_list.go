package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles with their selector overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.List()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No configs yet. Run `storyd config init` to create one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "LABEL\tACTIVE\tOVERRIDES\tPATH")

		for _, p := range list {
			active := ""
			if p.Active {
				active = "yes"
			}

			overrides := "?"
			if cfg, err := config.LoadFile(p.Path); err == nil {
				overrides = fmt.Sprint(len(cfg.Overrides()))
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Label, active, overrides, p.Path)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
