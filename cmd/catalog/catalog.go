// Package catalog implements the catalog command and its subcommands
package catalog

import (
	"context"
	"fmt"
	"io"

	"fjacquet/txsearch/cmd/root"
	"fjacquet/txsearch/internal/container"
	"fjacquet/txsearch/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the catalog command
var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the entity catalog or import it into SQLite",
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the YAML catalog into the SQLite database",
	Long: `Load catalog.file, validate it and replace the content of the SQLite
database at catalog.sqlite_path with it. The database schema is migrated
first. Set catalog.backend to sqlite to search against the imported data.

Example:
  txsearch catalog import --config config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Import(cmd.Context(), c, cmd.OutOrStdout())
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the number of catalog entries per kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Show(c, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(importCmd)
	Cmd.AddCommand(showCmd)
}

// Import copies the YAML catalog into SQLite and reports the entry count.
func Import(ctx context.Context, c *container.Container, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	n, err := c.ImportCatalog(ctx)
	if err != nil {
		return err
	}
	c.GetLogger().Info("Catalog imported",
		logging.F(logging.FieldCount, n),
		logging.F(logging.FieldFile, c.GetConfig().Catalog.SQLitePath))
	_, err = fmt.Fprintf(w, "Imported %d catalog entries into %s\n", n, c.GetConfig().Catalog.SQLitePath)
	return err
}

// Show prints per-kind entry counts of the YAML catalog.
func Show(c *container.Container, w io.Writer) error {
	catalog, err := c.GetStore().LoadCatalog()
	if err != nil {
		return err
	}
	rows := []struct {
		kind  string
		count int
	}{
		{"accounts", len(catalog.Accounts)},
		{"categories", len(catalog.Categories)},
		{"budgets", len(catalog.Budgets)},
		{"tags", len(catalog.Tags)},
		{"bills", len(catalog.Bills)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-11s %d\n", r.kind+":", r.count); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%-11s %d\n", "total:", catalog.Size())
	return err
}
