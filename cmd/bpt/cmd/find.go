package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <key>",
	Short: "List every value stored under key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}

		tree, err := openTree()
		if err != nil {
			return err
		}
		defer tree.Close()

		values, err := tree.Find(key)
		if err != nil {
			return err
		}
		printFindResult(values)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

// printFindResult follows the textual protocol observed from the tree's
// CLI collaborators: the literal "null" when no values exist, or the
// values separated by spaces on a single line.
func printFindResult(values []int64) {
	if len(values) == 0 {
		fmt.Println("null")
		return
	}
	for i, v := range values {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(v)
	}
	fmt.Println()
}
