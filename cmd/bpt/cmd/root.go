// Package cmd implements the bpt command-line tool, structured the way
// freyjadb's cmd/freyja/cmd lays out its cobra commands: a root command
// carrying persistent flags, with leaf verbs registered from their own
// files via init().
package cmd

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/bptreekv/bptreekv/bptree"
	"github.com/bptreekv/bptreekv/codec"
)

var (
	dbStem string
	lMax   int
	iMax   int
	log    logr.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bpt",
	Short: "Inspect and drive a disk-backed B+ tree multimap",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = stdr.New(nil)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbStem, "db", "bpt-data", "filename stem; backed by <stem>.index and <stem>.block")
	rootCmd.PersistentFlags().IntVar(&lMax, "lmax", 4, "maximum entries per leaf")
	rootCmd.PersistentFlags().IntVar(&iMax, "imax", 4, "maximum separators per internal node")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// treeHandle is the concrete int64-keyed, int64-valued tree the CLI
// drives; string keys are expected to be hashed by the caller before
// reaching this tool, per the tree's string-key-agnostic design.
type treeHandle = bptree.Tree[int64, int64]

func openTree() (*treeHandle, error) {
	return bptree.Open[int64, int64](dbStem+".block", dbStem+".index", codec.Int64(), codec.Int64(), bptree.Options{
		LMax: lMax,
		IMax: iMax,
		Log:  log,
	})
}
