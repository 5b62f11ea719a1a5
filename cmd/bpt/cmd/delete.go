package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <key> <value>",
	Aliases: []string{"remove"},
	Short:   "Remove a specific (key, value) pair",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		value, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer tree.Close()

		return tree.Remove(key, value)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
