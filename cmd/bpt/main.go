// Command bpt is a CLI collaborator for the tree engine: scriptable
// insert/find/delete subcommands plus a repl mode implementing the
// newline-delimited protocol external drivers speak against it.
package main

import "github.com/bptreekv/bptreekv/cmd/bpt/cmd"

func main() {
	cmd.Execute()
}
