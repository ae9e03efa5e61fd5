package search

import (
	"strings"
	"time"

	"fjacquet/txsearch/internal/collector"
)

// Modifier records one applied field modifier, in query order.
type Modifier struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Result is the outcome of evaluating one query.
type Result struct {
	RequestID string           `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Query     string           `json:"query,omitempty" yaml:"query,omitempty"`
	Filter    collector.Filter `json:"filter" yaml:"filter"`
	Words     []string         `json:"words,omitempty" yaml:"words,omitempty"`
	Modifiers []Modifier       `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Duration  time.Duration    `json:"duration" yaml:"duration"`
}

// WordsAsString joins the free-text words with single spaces.
func (r *Result) WordsAsString() string {
	return strings.Join(r.Words, " ")
}

// HasModifiers reports whether at least one field modifier was applied.
func (r *Result) HasModifiers() bool {
	return len(r.Modifiers) > 0
}
