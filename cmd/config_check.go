package cmd

import (
	"fmt"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/spf13/cobra"
)

var configCheckCmd = &cobra.Command{
	Use:   "check [label]",
	Short: "Validate a profile: YAML syntax, timeout and every site selector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			p   config.Profile
			err error
		)
		if len(args) == 1 {
			p, err = config.Lookup(args[0])
		} else {
			p, err = config.Active()
		}
		if err != nil {
			return err
		}

		cfg, err := config.LoadFile(p.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Path, err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", p.Path, err)
		}

		over := cfg.Overrides()
		fmt.Printf("%s is valid (%d selector overrides)\n", p.Label, len(over))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
}
