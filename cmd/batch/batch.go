// Package batch implements the batch command
package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/txsearch/cmd/root"
	"fjacquet/txsearch/internal/batch"
	"fjacquet/txsearch/internal/container"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/report"
	"fjacquet/txsearch/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of a batch run.
type Options struct {
	Transactions string
	Format       string
	FailOnError  bool
}

var (
	transactionsFile string
	format           string
	failOnError      bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a file of search queries concurrently",
	Long: `Evaluate a file of search queries, one per line, and print an aggregated report.

Blank lines and lines starting with '#' are skipped. Queries run in parallel
up to search.max_parallel. A failing query is reported with its line number
and does not stop the others. When a transactions CSV is given every filter
is also applied to it.

Example:
  txsearch batch -i queries.txt -o report.json -f json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}

		in := cmd.InOrStdin()
		if path := root.SharedFlags.Input; path != "" && path != "-" {
			if err := validation.IsValidInputFile(path); err != nil {
				return err
			}
			f, err := os.Open(path) // #nosec G304 -- path comes from the command line
			if err != nil {
				return fmt.Errorf("failed to open query file: %w", err)
			}
			defer f.Close()
			in = f
		}

		out, closeOut, err := root.OpenOutput(cmd.OutOrStdout(), root.SharedFlags.Output)
		if err != nil {
			return err
		}
		defer closeOut()

		return Run(cmd.Context(), c, in, out, Options{
			Transactions: transactionsFile,
			Format:       format,
			FailOnError:  failOnError,
		})
	},
}

func init() {
	Cmd.Flags().StringVarP(&transactionsFile, "transactions", "t", "", "Transactions CSV to search (default: transactions.file)")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format (text, json, yaml)")
	Cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit with an error when any query fails")
}

// Run reads queries from in, evaluates them and writes the report to out.
// The report is written even when queries fail.
func Run(ctx context.Context, c *container.Container, in io.Reader, out io.Writer, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()

	if err := validation.IsValidOutputFormat(opts.Format, report.Formats()); err != nil {
		return err
	}
	if opts.Transactions != "" {
		if err := validation.IsValidInputFile(opts.Transactions); err != nil {
			return err
		}
	}

	queries, err := batch.ReadQueries(in)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		logger.Warn("No queries to run")
	}

	runner := c.NewBatchRunner()
	if opts.Transactions != "" || c.GetConfig().Transactions.File != "" {
		txs, err := c.LoadTransactions(opts.Transactions)
		if err != nil {
			return err
		}
		runner.WithTransactions(txs, c.GetConfig().Search.PageSize)
		logger.Debug("Loaded transactions for batch", logging.F(logging.FieldCount, len(txs)))
	}

	rep := runner.Run(ctx, queries)

	data, err := c.GetReportGenerator().GenerateBatchReport(rep, opts.Format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}

	if opts.FailOnError && rep.Failed > 0 {
		return fmt.Errorf("%d of %d queries failed", rep.Failed, rep.Total)
	}
	return nil
}
