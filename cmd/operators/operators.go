// Package operators implements the operators command
package operators

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/txsearch/cmd/root"
	"fjacquet/txsearch/internal/operator"

	"github.com/spf13/cobra"
)

// Cmd represents the operators command
var Cmd = &cobra.Command{
	Use:   "operators",
	Short: "List the search operators enabled in the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Print(cmd.OutOrStdout(), c.GetRegistry())
	},
}

// Print writes one row per enabled operator in registration order.
func Print(w io.Writer, registry *operator.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "OPERATOR\tCLASS\tDESCRIPTION"); err != nil {
		return err
	}
	for _, op := range registry.Operators() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Name, op.Class, op.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}
