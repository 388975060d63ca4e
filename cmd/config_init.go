package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/storyd/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default profile and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		fmt.Printf("Create the %s config under %s? [y/N]: ", config.DefaultLabel, config.ProfilesDir())
		resp, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))

		if resp != "y" && resp != "yes" {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.Init()
		if errors.Is(err, os.ErrExist) {
			fmt.Printf("%s already exists and is now active.\n", path)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created %s (active).\n", path)
		fmt.Println("Add a selectors: block there to follow site markup changes without a rebuild.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
