package report

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/txsearch/internal/batch"
	"fjacquet/txsearch/internal/collector"
	"fjacquet/txsearch/internal/executor"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"
	"fjacquet/txsearch/internal/search"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
}

func sampleSearchReport() SearchReport {
	amountMin := decimal.NewFromInt(20)
	res := &search.Result{
		RequestID: "req-1",
		Query:     "dinner amount_min:20 category:Groceries from:Checking",
		Words:     []string{"dinner"},
		Modifiers: []search.Modifier{
			{Type: "amount_min", Value: "20"},
			{Type: "category", Value: "Groceries"},
			{Type: "from", Value: "Checking"},
		},
		Filter: collector.Filter{
			Words:          []string{"dinner"},
			SourceAccounts: []models.Account{{ID: 1, Name: "Checking", Type: models.AccountTypeAsset}},
			Categories:     []models.EntityRef{{ID: 7, Name: "Groceries"}},
			AmountMin:      &amountMin,
		},
		Duration: 1500 * time.Microsecond,
	}
	page := &executor.Page{
		Transactions: []models.Transaction{{
			ID:                 "1",
			Date:               time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			Description:        "Dinner at Luigi's",
			Amount:             decimal.RequireFromString("-45.5"),
			Currency:           "CHF",
			Type:               "Withdrawal",
			SourceAccount:      "Checking",
			DestinationAccount: "Luigi's",
		}},
		Total:    1,
		Page:     1,
		PageSize: 50,
	}
	return SearchReport{Result: res, Matches: page}
}

func sampleBatchReport() *batch.Report {
	amount := decimal.NewFromInt(5)
	return &batch.Report{
		Total:       3,
		Succeeded:   2,
		Failed:      1,
		BadRequests: 1,
		OperatorUsage: []batch.UsageCount{
			{Operator: "amount", Count: 1},
			{Operator: "type", Count: 1},
		},
		Outcomes: []batch.Outcome{
			{Line: 1, Query: "coffee", Result: &search.Result{Filter: collector.Filter{Words: []string{"coffee"}}}},
			{Line: 2, Query: "amount:5 type:deposit", Result: &search.Result{Filter: collector.Filter{
				AmountEquals: &amount,
				Types:        []string{"Deposit"},
			}}},
			{Line: 4, Query: "bogus:x", Error: `unsupported search operator: "bogus"`, Bad: true},
		},
	}
}

func TestGenerateSearchReport_Text(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateSearchReport(sampleSearchReport(), FormatText)
	require.NoError(t, err)
	newGolden(t).Assert(t, "search_text", out)
}

func TestGenerateSearchReport_TextWithoutMatches(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateSearchReport(SearchReport{Result: &search.Result{Query: "coffee", Words: []string{"coffee"}}}, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Query: coffee\nWords: coffee\n", string(out))
}

func TestGenerateSearchReport_JSON(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateSearchReport(sampleSearchReport(), FormatJSON)
	require.NoError(t, err)

	var decoded struct {
		Result struct {
			RequestID string `json:"request_id"`
			Filter    struct {
				AmountMin string `json:"amount_min"`
			} `json:"filter"`
			Modifiers []search.Modifier `json:"modifiers"`
		} `json:"result"`
		Matches executor.Page `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "req-1", decoded.Result.RequestID)
	assert.Equal(t, "20", decoded.Result.Filter.AmountMin)
	assert.Len(t, decoded.Result.Modifiers, 3)
	assert.Equal(t, 1, decoded.Matches.Total)
	assert.Equal(t, "Dinner at Luigi's", decoded.Matches.Transactions[0].Description)
}

func TestGenerateSearchReport_YAML(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateSearchReport(sampleSearchReport(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	result, ok := decoded["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "req-1", result["request_id"])
	assert.Contains(t, decoded, "matches")
}

func TestGenerateBatchReport_Text(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateBatchReport(sampleBatchReport(), FormatText)
	require.NoError(t, err)
	newGolden(t).Assert(t, "batch_text", out)
}

func TestGenerateBatchReport_JSON(t *testing.T) {
	g := NewReportGenerator(nil)
	out, err := g.GenerateBatchReport(sampleBatchReport(), FormatJSON)
	require.NoError(t, err)

	var decoded batch.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 3, decoded.Total)
	require.Len(t, decoded.Outcomes, 3)
	assert.True(t, decoded.Outcomes[2].Bad)
	assert.Equal(t, []string{"Deposit"}, decoded.Outcomes[1].Result.Filter.Types)
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger)

	_, err := g.GenerateSearchReport(sampleSearchReport(), "xml")
	assert.EqualError(t, err, "unsupported report format: xml")
	_, err = g.GenerateBatchReport(sampleBatchReport(), "csv")
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml"}, Formats())
}
