package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/txsearch/internal/config"
	"fjacquet/txsearch/internal/container"
	"fjacquet/txsearch/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `accounts:
  - {id: 1, name: Checking, type: asset}
categories:
  - {id: 7, name: Groceries}
`

const transactionsCSV = `ID,Date,Description,Amount,SourceAccount,DestinationAccount,Category
1,2020-01-15,Weekly groceries,-45.50,Checking,Supermarket,Groceries
2,2020-01-16,Cinema,-15,Checking,Cinema,
`

const queries = `# monthly review
groceries category:Groceries

from:Checking amount_max:20
bogus:x
`

func newContainer(t *testing.T) (*container.Container, string) {
	t.Helper()
	dir := t.TempDir()
	catalogFile := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogFile, []byte(catalogYAML), 0600))
	txFile := filepath.Join(dir, "tx.csv")
	require.NoError(t, os.WriteFile(txFile, []byte(transactionsCSV), 0600))

	cfg := &config.Config{
		Log:          config.LogConfig{Level: "info", Format: "text"},
		Search:       config.SearchConfig{ResolverLimit: 25, PageSize: 10, MaxParallel: 2},
		Catalog:      config.CatalogConfig{Backend: config.BackendYAML, File: catalogFile},
		Cache:        config.CacheConfig{Enabled: true, Size: 8, TTLSeconds: 60},
		Transactions: config.TransactionsConfig{Delimiter: ","},
	}
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, txFile
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Short, "search queries")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.RunE)

	for _, name := range []string{"transactions", "format", "fail-on-error"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestRun_TextReport(t *testing.T) {
	c, _ := newContainer(t)

	var out bytes.Buffer
	err := Run(context.Background(), c, strings.NewReader(queries), &out, Options{Format: "text"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Queries: 3 (succeeded 2, failed 1, bad requests 1)")
	assert.Contains(t, text, "[line 2] groceries category:Groceries")
	assert.Contains(t, text, "[line 4] from:Checking amount_max:20")
	assert.Contains(t, text, "[line 5] bogus:x")
}

func TestRun_JSONReportWithTransactions(t *testing.T) {
	c, txFile := newContainer(t)

	var out bytes.Buffer
	err := Run(context.Background(), c, strings.NewReader(queries), &out, Options{
		Transactions: txFile,
		Format:       "json",
	})
	require.NoError(t, err)

	var decoded struct {
		Total        int `json:"total"`
		Failed       int `json:"failed"`
		TotalMatches int `json:"total_matches"`
		Outcomes     []struct {
			Line  int    `json:"line"`
			Error string `json:"error"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Total)
	assert.Equal(t, 1, decoded.Failed)
	// groceries matches tx 1, from:Checking amount_max:20 matches tx 2
	assert.Equal(t, 2, decoded.TotalMatches)
	require.Len(t, decoded.Outcomes, 3)
	assert.Equal(t, []int{2, 4, 5}, []int{decoded.Outcomes[0].Line, decoded.Outcomes[1].Line, decoded.Outcomes[2].Line})
	assert.NotEmpty(t, decoded.Outcomes[2].Error)
}

func TestRun_FailOnError(t *testing.T) {
	c, _ := newContainer(t)

	var out bytes.Buffer
	err := Run(context.Background(), c, strings.NewReader(queries), &out, Options{Format: "text", FailOnError: true})
	assert.EqualError(t, err, "1 of 3 queries failed")
	assert.NotEmpty(t, out.String())

	out.Reset()
	err = Run(context.Background(), c, strings.NewReader("dinner\n"), &out, Options{Format: "text", FailOnError: true})
	assert.NoError(t, err)
}

func TestRun_EmptyInput(t *testing.T) {
	c, _ := newContainer(t)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, strings.NewReader("\n# nothing\n"), &out, Options{Format: "text"}))
	assert.Contains(t, out.String(), "Queries: 0")
}

func TestRun_BadFormat(t *testing.T) {
	c, _ := newContainer(t)

	var out bytes.Buffer
	err := Run(context.Background(), c, strings.NewReader("dinner\n"), &out, Options{Format: "xml"})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
