package main

import (
	"fmt"
	"os"

	"fjacquet/txsearch/cmd/batch"
	"fjacquet/txsearch/cmd/catalog"
	"fjacquet/txsearch/cmd/operators"
	"fjacquet/txsearch/cmd/root"
	"fjacquet/txsearch/cmd/search"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(operators.Cmd)
	root.Cmd.AddCommand(catalog.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
