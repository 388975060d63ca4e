package cmd

import (
	"fmt"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no configs available")
			}

			items := make([]string, 0, len(list))
			cursor := 0
			for i, c := range list {
				if c.Active {
					items = append(items, c.Label+"  (active)")
					cursor = i
				} else {
					items = append(items, c.Label)
				}
			}

			prompt := promptui.Select{
				Label:     "Select config",
				Items:     items,
				Size:      10,
				CursorPos: cursor,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}

			label = list[idx].Label
		}

		if err := config.Use(label); err != nil {
			return err
		}

		p, _ := config.Lookup(label)
		fmt.Printf("Switched to: %s (%s)\n", label, p.Path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
