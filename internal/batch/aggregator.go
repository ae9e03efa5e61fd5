package batch

import (
	"errors"
	"sort"
	"time"

	"fjacquet/txsearch/internal/searcherror"
)

// Report aggregates the outcomes of a batch. Outcomes keep input order.
type Report struct {
	Total         int           `json:"total" yaml:"total"`
	Succeeded     int           `json:"succeeded" yaml:"succeeded"`
	Failed        int           `json:"failed" yaml:"failed"`
	BadRequests   int           `json:"bad_requests" yaml:"bad_requests"`
	OperatorUsage []UsageCount  `json:"operator_usage,omitempty" yaml:"operator_usage,omitempty"`
	TotalMatches  int           `json:"total_matches" yaml:"total_matches"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Outcomes      []Outcome     `json:"outcomes" yaml:"outcomes"`
}

// UsageCount is how many applied modifiers used an operator.
type UsageCount struct {
	Operator string `json:"operator" yaml:"operator"`
	Count    int    `json:"count" yaml:"count"`
}

// Aggregate builds a report from outcomes. Operator usage is sorted by
// descending count, then by name.
func Aggregate(outcomes []Outcome) *Report {
	report := &Report{Total: len(outcomes), Outcomes: outcomes}
	usage := make(map[string]int)

	for _, o := range outcomes {
		if o.Failed() {
			report.Failed++
			if o.Bad {
				report.BadRequests++
			}
			continue
		}
		report.Succeeded++
		if o.Result != nil {
			for _, m := range o.Result.Modifiers {
				usage[m.Type]++
			}
		}
		if o.Matches != nil {
			report.TotalMatches += o.Matches.Total
		}
	}

	for op, n := range usage {
		report.OperatorUsage = append(report.OperatorUsage, UsageCount{Operator: op, Count: n})
	}
	sort.Slice(report.OperatorUsage, func(i, j int) bool {
		a, b := report.OperatorUsage[i], report.OperatorUsage[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Operator < b.Operator
	})
	return report
}

func isBadRequest(err error) bool {
	return errors.Is(err, searcherror.ErrBadRequest)
}
