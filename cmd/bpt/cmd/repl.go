package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the newline-delimited command loop against one tree instance",
	Long: `repl opens the tree once and consumes newline-separated records from
stdin of the forms:

  insert <key> <value>
  find <key>
  delete <key> <value>
  remove <key> <value>

find prints "null" when no values exist, or the matching values
separated by spaces on a single line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := openTree()
		if err != nil {
			return err
		}
		defer tree.Close()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := runReplLine(tree, scanner.Text()); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runReplLine(tree *treeHandle, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "insert":
		if len(fields) != 3 {
			return errors.Newf("insert requires <key> <value>")
		}
		key, value, err := parseKV(fields[1], fields[2])
		if err != nil {
			return err
		}
		return tree.Insert(key, value)

	case "find":
		if len(fields) != 2 {
			return errors.Newf("find requires <key>")
		}
		key, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return errors.Wrap(err, "find: parse key")
		}
		values, err := tree.Find(key)
		if err != nil {
			return err
		}
		printFindResult(values)
		return nil

	case "delete", "remove":
		if len(fields) != 3 {
			return errors.Newf("%s requires <key> <value>", fields[0])
		}
		key, value, err := parseKV(fields[1], fields[2])
		if err != nil {
			return err
		}
		return tree.Remove(key, value)

	default:
		return errors.Newf("unrecognized command %q", fields[0])
	}
}

func parseKV(keyStr, valueStr string) (int64, int64, error) {
	key, err := strconv.ParseInt(keyStr, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse key")
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse value")
	}
	return key, value, nil
}
