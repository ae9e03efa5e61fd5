// Package search implements the search command
package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/txsearch/cmd/root"
	"fjacquet/txsearch/internal/container"
	"fjacquet/txsearch/internal/executor"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/report"
	"fjacquet/txsearch/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of a single search.
type Options struct {
	Query        string
	Transactions string
	Page         int
	Format       string
}

var (
	transactionsFile string
	page             int
	format           string
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Parse a search query and optionally run it against transactions",
	Long: `Parse a search query into a structured filter.

Free words become text terms, field:value pairs apply operators such as
from, category, amount_min or date_after. Entity names are resolved against
the catalog. When a transactions CSV is given (flag or transactions.file)
the filter is applied to it and the matching page is printed.

Example:
  txsearch search 'dinner amount_min:20 category:Groceries' -t transactions.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}

		out, closeOut, err := root.OpenOutput(cmd.OutOrStdout(), root.SharedFlags.Output)
		if err != nil {
			return err
		}
		defer closeOut()

		return Run(cmd.Context(), c, out, Options{
			Query:        strings.Join(args, " "),
			Transactions: transactionsFile,
			Page:         page,
			Format:       format,
		})
	},
}

func init() {
	Cmd.Flags().StringVarP(&transactionsFile, "transactions", "t", "", "Transactions CSV to search (default: transactions.file)")
	Cmd.Flags().IntVar(&page, "page", 1, "Page of matching transactions to print")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format (text, json, yaml)")
}

// Run evaluates opts.Query, applies it to the transactions when a file is
// available and writes the report to w.
func Run(ctx context.Context, c *container.Container, w io.Writer, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()

	if err := validation.IsValidOutputFormat(opts.Format, report.Formats()); err != nil {
		return err
	}
	if err := validation.IsValidPage(opts.Page); err != nil {
		return err
	}
	if opts.Transactions != "" {
		if err := validation.IsValidInputFile(opts.Transactions); err != nil {
			return err
		}
	}

	result, err := c.GetSearcher().ParseQuery(ctx, opts.Query)
	if err != nil {
		return err
	}

	r := report.SearchReport{Result: result}
	if opts.Transactions != "" || c.GetConfig().Transactions.File != "" {
		txs, err := c.LoadTransactions(opts.Transactions)
		if err != nil {
			return err
		}
		matches := executor.Execute(result.Filter, txs, opts.Page, c.GetConfig().Search.PageSize)
		r.Matches = &matches
		logger.WithFields(
			logging.F("matches", matches.Total),
			logging.F("searched", len(txs)),
		).Debug("Executed search")
	}

	data, err := c.GetReportGenerator().GenerateSearchReport(r, opts.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
