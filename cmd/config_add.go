package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/spf13/cobra"
)

var flagConfigFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a profile from the defaults or, with --from, from a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			fmt.Print("Enter label for new config: ")
			label, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		}
		label = strings.TrimSpace(label)

		var (
			path string
			err  error
		)
		if flagConfigFrom != "" {
			path, err = config.Import(label, flagConfigFrom)
		} else {
			path, err = config.Create(label, config.DefaultConfig())
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created config %q: %s\n", label, path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagConfigFrom, "from", "", "copy settings from this YAML file (validated first)")
	configCmd.AddCommand(configAddCmd)
}
