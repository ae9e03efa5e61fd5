// Package report renders search results and batch reports as text, JSON or
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/txsearch/internal/batch"
	"fjacquet/txsearch/internal/collector"
	"fjacquet/txsearch/internal/dateutils"
	"fjacquet/txsearch/internal/executor"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"
	"fjacquet/txsearch/internal/search"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of the --format flag.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// SearchReport is the rendered view of a single query. Matches is nil when
// no transactions were searched.
type SearchReport struct {
	Result  *search.Result `json:"result" yaml:"result"`
	Matches *executor.Page `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// ReportGenerator renders reports in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ReportGenerator{logger: logger}
}

// GenerateSearchReport renders one query result in format.
func (g *ReportGenerator) GenerateSearchReport(r SearchReport, format string) ([]byte, error) {
	switch format {
	case FormatText:
		var b strings.Builder
		writeSearchText(&b, r)
		return []byte(b.String()), nil
	case FormatJSON:
		return g.marshalJSON(r)
	case FormatYAML:
		return g.marshalYAML(r)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateBatchReport renders a batch report in format.
func (g *ReportGenerator) GenerateBatchReport(r *batch.Report, format string) ([]byte, error) {
	switch format {
	case FormatText:
		var b strings.Builder
		writeBatchText(&b, r)
		return []byte(b.String()), nil
	case FormatJSON:
		return g.marshalJSON(r)
	case FormatYAML:
		return g.marshalYAML(r)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *ReportGenerator) marshalYAML(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}

func writeSearchText(b *strings.Builder, r SearchReport) {
	res := r.Result
	if res == nil {
		res = &search.Result{}
	}
	fmt.Fprintf(b, "Query: %s\n", res.Query)
	if len(res.Words) > 0 {
		fmt.Fprintf(b, "Words: %s\n", res.WordsAsString())
	}
	if res.HasModifiers() {
		b.WriteString("Modifiers:\n")
		for _, m := range res.Modifiers {
			fmt.Fprintf(b, "  %s: %s\n", m.Type, m.Value)
		}
	}
	if lines := describeFilter(res.Filter); len(lines) > 0 {
		b.WriteString("Filter:\n")
		for _, l := range lines {
			fmt.Fprintf(b, "  %s\n", l)
		}
	}
	if r.Matches != nil {
		writePageText(b, *r.Matches, "")
	}
}

func writePageText(b *strings.Builder, p executor.Page, indent string) {
	fmt.Fprintf(b, "%sMatches: %d of %d (page %d/%d)\n", indent, len(p.Transactions), p.Total, p.Page, p.Pages())
	for _, tx := range p.Transactions {
		fmt.Fprintf(b, "%s  %s  %s  %s  %s -> %s\n", indent,
			dateutils.ToISODate(tx.Date), tx.Money().String(), tx.Description,
			tx.SourceAccount, tx.DestinationAccount)
	}
}

func writeBatchText(b *strings.Builder, r *batch.Report) {
	fmt.Fprintf(b, "Queries: %d (succeeded %d, failed %d, bad requests %d)\n",
		r.Total, r.Succeeded, r.Failed, r.BadRequests)
	if r.TotalMatches > 0 {
		fmt.Fprintf(b, "Matches: %d\n", r.TotalMatches)
	}
	if len(r.OperatorUsage) > 0 {
		b.WriteString("Operators:\n")
		for _, u := range r.OperatorUsage {
			fmt.Fprintf(b, "  %s: %d\n", u.Operator, u.Count)
		}
	}
	for _, o := range r.Outcomes {
		if o.Failed() {
			fmt.Fprintf(b, "[line %d] %s\n  error: %s\n", o.Line, o.Query, o.Error)
			continue
		}
		fmt.Fprintf(b, "[line %d] %s\n", o.Line, o.Query)
		if o.Result != nil {
			for _, l := range describeFilter(o.Result.Filter) {
				fmt.Fprintf(b, "  %s\n", l)
			}
		}
		if o.Matches != nil {
			writePageText(b, *o.Matches, "  ")
		}
	}
}

// describeFilter lists the constraints of f in a fixed order, one per line.
func describeFilter(f collector.Filter) []string {
	var lines []string
	add := func(name, value string) {
		lines = append(lines, name+": "+value)
	}

	if len(f.Words) > 0 {
		add("words", strings.Join(f.Words, " "))
	}
	if len(f.SourceAccounts) > 0 {
		add("source accounts", accounts(f.SourceAccounts))
	}
	if len(f.DestinationAccounts) > 0 {
		add("destination accounts", accounts(f.DestinationAccounts))
	}
	if len(f.Categories) > 0 {
		add("categories", refs(f.Categories))
	}
	if len(f.Budgets) > 0 {
		add("budgets", refs(f.Budgets))
	}
	if len(f.Tags) > 0 {
		add("tags", refs(f.Tags))
	}
	if len(f.Bills) > 0 {
		add("bills", refs(f.Bills))
	}
	if f.AmountEquals != nil {
		add("amount", f.AmountEquals.String())
	}
	if f.AmountMin != nil {
		add("amount min", f.AmountMin.String())
	}
	if f.AmountMax != nil {
		add("amount max", f.AmountMax.String())
	}
	if f.DateOn != nil {
		add("date", dateutils.ToISODate(f.DateOn.Start)+" .. "+dateutils.ToISODate(f.DateOn.End))
	}
	if f.DateBefore != nil {
		add("before", dateutils.ToISODate(*f.DateBefore))
	}
	if f.DateAfter != nil {
		add("after", dateutils.ToISODate(*f.DateAfter))
	}
	if f.CreatedAt != nil {
		add("created on", dateutils.ToISODate(*f.CreatedAt))
	}
	if f.UpdatedAt != nil {
		add("updated on", dateutils.ToISODate(*f.UpdatedAt))
	}
	if len(f.Types) > 0 {
		add("types", strings.Join(f.Types, ", "))
	}
	if f.ExternalID != nil {
		add("external id", *f.ExternalID)
	}
	if f.InternalReference != nil {
		add("internal reference", *f.InternalReference)
	}
	return lines
}

func accounts(list []models.Account) string {
	parts := make([]string, 0, len(list))
	for _, a := range list {
		parts = append(parts, fmt.Sprintf("%s (#%d)", a.Name, a.ID))
	}
	return strings.Join(parts, ", ")
}

func refs(list []models.EntityRef) string {
	parts := make([]string, 0, len(list))
	for _, r := range list {
		parts = append(parts, fmt.Sprintf("%s (#%d)", r.Name, r.ID))
	}
	return strings.Join(parts, ", ")
}
