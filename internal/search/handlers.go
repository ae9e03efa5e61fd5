package search

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"fjacquet/txsearch/internal/dateutils"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"
	"fjacquet/txsearch/internal/operator"
	"fjacquet/txsearch/internal/searcherror"

	"github.com/shopspring/decimal"
)

// call carries one field modifier through its handler.
type call struct {
	*state
	op    operator.Operator
	value string
	log   logging.Logger
}

// handlerFunc applies one operator class. It must validate and resolve
// everything before touching the collector so that a failing modifier leaves
// no trace.
type handlerFunc func(ctx context.Context, s *Searcher, c *call) error

func classHandlers() map[operator.Class]handlerFunc {
	return map[operator.Class]handlerFunc{
		operator.ClassSourceAccount:       sourceAccounts(nil),
		operator.ClassSourceAccountPrefix: sourceAccounts(strings.HasPrefix),
		operator.ClassSourceAccountSuffix: sourceAccounts(strings.HasSuffix),
		operator.ClassDestinationAccount:  destinationAccounts,
		operator.ClassCategory:            categories,
		operator.ClassBill:                bills,
		operator.ClassTag:                 tags,
		operator.ClassBudget:              budgets,
		operator.ClassAmountIs:            amount(func(c *call, d decimal.Decimal) { c.collector.AmountIs(d) }),
		operator.ClassAmountMax:           amount(func(c *call, d decimal.Decimal) { c.collector.AmountLess(d) }),
		operator.ClassAmountMin:           amount(func(c *call, d decimal.Decimal) { c.collector.AmountMore(d) }),
		operator.ClassType:                transactionType,
		operator.ClassDateOn:              date(func(c *call, d time.Time) { c.collector.SetRange(d, d) }),
		operator.ClassDateBefore:          date(func(c *call, d time.Time) { c.collector.SetBefore(d) }),
		operator.ClassDateAfter:           date(func(c *call, d time.Time) { c.collector.SetAfter(d) }),
		operator.ClassCreatedOn:           date(func(c *call, d time.Time) { c.collector.SetCreatedAt(d) }),
		operator.ClassUpdatedOn:           date(func(c *call, d time.Time) { c.collector.SetUpdatedAt(d) }),
		operator.ClassExternalID:          func(_ context.Context, _ *Searcher, c *call) error { c.collector.SetExternalID(c.value); return nil },
		operator.ClassInternalReference:   func(_ context.Context, _ *Searcher, c *call) error { c.collector.SetInternalReference(c.value); return nil },
		operator.ClassIgnored:             func(context.Context, *Searcher, *call) error { return nil },
	}
}

// sourceAccounts searches source-side accounts. With a non-nil match the
// candidates are narrowed to names for which match(name, value) holds. The
// source set is replaced only when something is left.
func sourceAccounts(match func(name, value string) bool) handlerFunc {
	return func(ctx context.Context, s *Searcher, c *call) error {
		accounts, err := s.resolvers.Accounts.SearchAccount(ctx, c.value, models.SourceAccountTypes(), s.limit)
		if err != nil {
			return resolverFailed(c, models.EntityAccount, err)
		}
		if len(accounts) == 0 {
			c.log.Debug("Found zero accounts, nothing to set")
			return nil
		}

		if match != nil {
			filtered := make([]models.Account, 0, len(accounts))
			for _, acc := range accounts {
				if match(acc.Name, c.value) {
					filtered = append(filtered, acc)
				}
			}
			c.log.Debug("Filtered account candidates",
				logging.F(logging.FieldCount, len(filtered)))
			if len(filtered) == 0 {
				return nil
			}
			accounts = filtered
		}

		c.log.Debug("Set source accounts", logging.F(logging.FieldCount, len(accounts)))
		c.collector.SetSourceAccounts(accounts)
		return nil
	}
}

func destinationAccounts(ctx context.Context, s *Searcher, c *call) error {
	accounts, err := s.resolvers.Accounts.SearchAccount(ctx, c.value, models.DestinationAccountTypes(), s.limit)
	if err != nil {
		return resolverFailed(c, models.EntityAccount, err)
	}
	if len(accounts) == 0 {
		c.log.Debug("Found zero accounts, nothing to set")
		return nil
	}
	c.log.Debug("Set destination accounts", logging.F(logging.FieldCount, len(accounts)))
	c.collector.SetDestinationAccounts(accounts)
	return nil
}

func categories(ctx context.Context, s *Searcher, c *call) error {
	refs, err := s.resolvers.Categories.SearchCategory(ctx, c.value, s.limit)
	return applyRefs(c, models.EntityCategory, refs, err, c.collector.SetCategories)
}

func bills(ctx context.Context, s *Searcher, c *call) error {
	refs, err := s.resolvers.Bills.SearchBill(ctx, c.value, s.limit)
	return applyRefs(c, models.EntityBill, refs, err, c.collector.SetBills)
}

// tags are searched without a limit.
func tags(ctx context.Context, s *Searcher, c *call) error {
	refs, err := s.resolvers.Tags.SearchTag(ctx, c.value, 0)
	return applyRefs(c, models.EntityTag, refs, err, c.collector.SetTags)
}

func budgets(ctx context.Context, s *Searcher, c *call) error {
	refs, err := s.resolvers.Budgets.SearchBudget(ctx, c.value, s.limit)
	return applyRefs(c, models.EntityBudget, refs, err, c.collector.SetBudgets)
}

func applyRefs(c *call, kind models.EntityKind, refs []models.EntityRef, err error, set func([]models.EntityRef)) error {
	if err != nil {
		return resolverFailed(c, kind, err)
	}
	c.log.Debug("Resolved entities",
		logging.F(logging.FieldEntity, kind),
		logging.F(logging.FieldCount, len(refs)))
	if len(refs) > 0 {
		set(refs)
	}
	return nil
}

func amount(set func(*call, decimal.Decimal)) handlerFunc {
	return func(_ context.Context, _ *Searcher, c *call) error {
		d, err := models.ParsePositiveAmount(c.value)
		if err != nil {
			return invalidValue(c, err)
		}
		c.log.Debug("Set amount using collector")
		set(c, d)
		return nil
	}
}

func date(set func(*call, time.Time)) handlerFunc {
	return func(_ context.Context, s *Searcher, c *call) error {
		d, err := dateutils.ParseDateRelative(c.value, s.now())
		if err != nil {
			return invalidValue(c, err)
		}
		c.log.Debug("Set date using collector", logging.F("date", dateutils.ToISODate(d)))
		set(c, d)
		return nil
	}
}

func transactionType(_ context.Context, _ *Searcher, c *call) error {
	t := upperFirst(c.value)
	c.log.Debug("Set type using collector", logging.F("type", t))
	c.collector.SetTypes([]string{t})
	return nil
}

// upperFirst upper-cases the first rune and leaves the rest untouched.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func invalidValue(c *call, err error) error {
	c.log.WithError(err).Warn("Invalid operator value")
	return &searcherror.InvalidOperatorValueError{Operator: c.op.Name, Value: c.value, Err: err}
}

func resolverFailed(c *call, kind models.EntityKind, err error) error {
	c.log.WithError(err).Error("Entity lookup failed", logging.F(logging.FieldEntity, kind))
	return &searcherror.ResolverError{Operator: c.op.Name, Entity: string(kind), Err: err}
}
