// Package batch runs many search queries concurrently and aggregates the
// outcomes into a single report.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/txsearch/internal/executor"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"
	"fjacquet/txsearch/internal/search"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent queries when none is configured.
const DefaultParallelism = 4

// QueryParser evaluates one raw query. *search.Searcher implements it.
type QueryParser interface {
	ParseQuery(ctx context.Context, raw string) (*search.Result, error)
}

// Outcome is the result of one query of a batch. Exactly one of Result and
// Error is set.
type Outcome struct {
	Line    int            `json:"line" yaml:"line"`
	Query   string         `json:"query" yaml:"query"`
	Result  *search.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Matches *executor.Page `json:"matches,omitempty" yaml:"matches,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Bad     bool           `json:"bad_request,omitempty" yaml:"bad_request,omitempty"`
}

// Failed reports whether the query did not evaluate.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Query is one line of a query file.
type Query struct {
	Line int
	Text string
}

// Runner evaluates query batches with bounded parallelism. When transactions
// are set every successful query is also executed against them.
type Runner struct {
	parser       QueryParser
	logger       logging.Logger
	parallel     int
	transactions []models.Transaction
	pageSize     int
}

// NewRunner creates a Runner. parallel below 1 selects DefaultParallelism.
func NewRunner(parser QueryParser, logger logging.Logger, parallel int) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	if parallel < 1 {
		parallel = DefaultParallelism
	}
	return &Runner{parser: parser, logger: logger, parallel: parallel}
}

// WithTransactions makes the runner execute filters against txs, returning
// the first page of pageSize matches.
func (r *Runner) WithTransactions(txs []models.Transaction, pageSize int) *Runner {
	r.transactions = txs
	r.pageSize = pageSize
	return r
}

// Run evaluates every query and returns the aggregated report. Query
// failures are recorded in their outcome; only a cancelled context stops the
// batch early, in which case the remaining outcomes carry the context error.
func (r *Runner) Run(ctx context.Context, queries []Query) *Report {
	start := time.Now()
	outcomes := make([]Outcome, len(queries))

	r.logger.Info("Starting batch search",
		logging.F(logging.FieldCount, len(queries)),
		logging.F("parallel", r.parallel))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			outcomes[i] = r.runOne(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	report := Aggregate(outcomes)
	report.Duration = time.Since(start)
	r.logger.Info("Batch search finished",
		logging.F("succeeded", report.Succeeded),
		logging.F("failed", report.Failed),
		logging.F(logging.FieldDuration, report.Duration.Milliseconds()))
	return report
}

func (r *Runner) runOne(ctx context.Context, q Query) Outcome {
	out := Outcome{Line: q.Line, Query: q.Text}
	if err := ctx.Err(); err != nil {
		out.Error = err.Error()
		return out
	}

	res, err := r.parser.ParseQuery(ctx, q.Text)
	if err != nil {
		r.logger.WithError(err).Warn("Query failed",
			logging.F(logging.FieldQuery, q.Text),
			logging.F("line", q.Line))
		out.Error = err.Error()
		out.Bad = isBadRequest(err)
		return out
	}
	out.Result = res

	if r.transactions != nil {
		page := executor.Execute(res.Filter, r.transactions, 1, r.pageSize)
		out.Matches = &page
	}
	return out
}

// ReadQueries reads one query per line. Blank lines and lines starting with
// '#' are skipped; line numbers are 1-based positions in the input.
func ReadQueries(in io.Reader) ([]Query, error) {
	var queries []Query
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		queries = append(queries, Query{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading queries: %w", err)
	}
	return queries, nil
}
