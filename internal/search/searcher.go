// Package search evaluates search queries into transaction filters.
//
// A Searcher walks the query nodes once, left to right. Words and phrases
// become free text; field modifiers are looked up in the operator registry
// and applied to a fresh collector, possibly after resolving the value into
// accounts or other entities. Later modifiers overwrite earlier ones of the
// same kind. The first error aborts the evaluation.
package search

import (
	"context"
	"fmt"
	"time"

	"fjacquet/txsearch/internal/collector"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/operator"
	"fjacquet/txsearch/internal/querynode"
	"fjacquet/txsearch/internal/resolver"
	"fjacquet/txsearch/internal/searcherror"
	"fjacquet/txsearch/internal/tokenizer"

	"github.com/google/uuid"
)

// DefaultResolverLimit caps the candidates returned by limited lookups.
const DefaultResolverLimit = 25

// Searcher is safe for concurrent use; every evaluation works on its own
// collector and modifier log.
type Searcher struct {
	registry  *operator.Registry
	resolvers resolver.Set
	logger    logging.Logger
	limit     int
	now       func() time.Time
	newID     func() string
	handlers  map[operator.Class]handlerFunc
}

// Option customises a Searcher.
type Option func(*Searcher)

// WithResolverLimit overrides DefaultResolverLimit. Values below 1 are
// ignored.
func WithResolverLimit(limit int) Option {
	return func(s *Searcher) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithClock sets the clock used for relative dates such as "today".
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRequestIDs sets the generator of request IDs used by ParseQuery.
func WithRequestIDs(newID func() string) Option {
	return func(s *Searcher) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewSearcher creates a Searcher. The registry decides which operators are
// accepted; every resolver in the set must be present.
func NewSearcher(registry *operator.Registry, resolvers resolver.Set, logger logging.Logger, opts ...Option) (*Searcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("operator registry cannot be nil")
	}
	if !resolvers.Complete() {
		return nil, fmt.Errorf("resolver set is incomplete")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Searcher{
		registry:  registry,
		resolvers: resolvers,
		logger:    logger,
		limit:     DefaultResolverLimit,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		handlers:  classHandlers(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, op := range registry.Operators() {
		if _, ok := s.handlers[op.Class]; !ok {
			return nil, fmt.Errorf("operator %q has no handler for class %q", op.Name, op.Class)
		}
	}
	return s, nil
}

// Registry returns the operator registry the searcher validates against.
func (s *Searcher) Registry() *operator.Registry {
	return s.registry
}

// ParseQuery tokenizes raw and evaluates the resulting nodes. Tokenizer
// errors are returned unchanged.
func (s *Searcher) ParseQuery(ctx context.Context, raw string) (*Result, error) {
	start := time.Now()
	requestID := s.newID()
	log := s.logger.WithFields(
		logging.F(logging.FieldRequestID, requestID),
		logging.F(logging.FieldQuery, raw),
	)
	log.Debug("Parsing search query")

	nodes, err := tokenizer.Tokenize(raw)
	if err != nil {
		log.WithError(err).Warn("Search query has invalid syntax")
		return nil, err
	}
	log.Debug("Tokenized search query", logging.F(logging.FieldCount, len(nodes)))

	result, err := s.process(ctx, nodes, log)
	if err != nil {
		return nil, err
	}
	result.RequestID = requestID
	result.Query = raw
	result.Duration = time.Since(start)
	log.Debug("Search query parsed",
		logging.F(logging.FieldDuration, result.Duration.Milliseconds()),
		logging.F(logging.FieldCount, len(result.Modifiers)))
	return result, nil
}

// Process evaluates an already tokenized query.
func (s *Searcher) Process(ctx context.Context, nodes []querynode.Node) (*Result, error) {
	return s.process(ctx, nodes, s.logger)
}

func (s *Searcher) process(ctx context.Context, nodes []querynode.Node, log logging.Logger) (*Result, error) {
	st := &state{
		collector: collector.New(),
		log:       log,
	}

	for _, node := range nodes {
		if err := s.handleNode(ctx, st, node); err != nil {
			return nil, err
		}
	}

	filter := st.collector.Filter()
	return &Result{
		Filter:    filter,
		Words:     append([]string(nil), filter.Words...),
		Modifiers: st.modifiers,
	}, nil
}

func (s *Searcher) handleNode(ctx context.Context, st *state, node querynode.Node) error {
	switch n := node.(type) {
	case querynode.Word:
		st.log.Debug("Now handle node", logging.F(logging.FieldNodeKind, n.Kind()))
		st.collector.AddWords(n.Text)
		return nil
	case querynode.Phrase:
		st.log.Debug("Now handle node", logging.F(logging.FieldNodeKind, n.Kind()))
		st.collector.AddWords(n.Text)
		return nil
	case querynode.Field:
		st.log.Debug("Now handle node", logging.F(logging.FieldNodeKind, n.Kind()))
		return s.handleField(ctx, st, n)
	default:
		kind := "unknown"
		if node != nil {
			kind = string(node.Kind())
		}
		st.log.Error("Cannot handle node", logging.F(logging.FieldNodeKind, kind))
		return &searcherror.UnsupportedNodeKindError{Kind: kind}
	}
}

func (s *Searcher) handleField(ctx context.Context, st *state, field querynode.Field) error {
	op, ok := s.registry.Lookup(field.Operator)
	if !ok {
		st.log.Error("No such operator", logging.F(logging.FieldOperator, field.Operator))
		return &searcherror.UnknownOperatorError{Operator: field.Operator}
	}

	log := st.log.WithFields(
		logging.F(logging.FieldOperator, op.Name),
		logging.F(logging.FieldValue, field.Value),
	)

	if op.Ignored() {
		log.Info("Ignore search operator")
	} else {
		handle := s.handlers[op.Class]
		if err := handle(ctx, s, &call{state: st, op: op, value: field.Value, log: log}); err != nil {
			return err
		}
	}

	st.modifiers = append(st.modifiers, Modifier{Type: op.Name, Value: field.Value})
	return nil
}

// state is the per-evaluation mutable data.
type state struct {
	collector *collector.Collector
	modifiers []Modifier
	log       logging.Logger
}
