// Package validation implements the admission rules for new catalog
// products: synchronous structural and category-conditional rules plus
// store-backed uniqueness and business-limit checks, aggregated into a
// single ordered outcome.
package validation

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/averlon/catalog-api/internal/domain/product"
)

// DefaultDailyLimit is the default cap on products created per UTC day.
const DefaultDailyLimit = 500

// Engine validates product requests against the full rule set. The
// store-backed checks run concurrently with the synchronous rules; both
// always complete before the outcome is finalized.
type Engine struct {
	repo       product.Repository
	skus       *SKUFilter
	dailyLimit int
	now        func() time.Time
}

// NewEngine creates an Engine backed by the given repository. skus may be
// nil, in which case every request pays the duplicate-SKU query.
func NewEngine(repo product.Repository, skus *SKUFilter, dailyLimit int) *Engine {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &Engine{
		repo:       repo,
		skus:       skus,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

// EvaluateStatic runs the synchronous rules only: structural and content
// rules, category-conditional rules, and the cross-field rule. Failures
// are returned in rule-declaration order.
func EvaluateStatic(req product.Request, now time.Time) []FieldError {
	var failures []FieldError
	for _, rule := range structuralRules {
		if fe := rule(req, now); fe != nil {
			failures = append(failures, *fe)
		}
	}
	for _, rule := range categoryRules[req.Category] {
		if fe := rule(req, now); fe != nil {
			failures = append(failures, *fe)
		}
	}
	if fe := ruleExpensiveStock(req, now); fe != nil {
		failures = append(failures, *fe)
	}
	return failures
}

// Validate evaluates every applicable rule and returns the aggregated
// outcome. Evaluation never short-circuits: all failures are collected,
// ordered structural first, then category-conditional, cross-field,
// business limits, and finally the two uniqueness checks. A repository
// fault is returned as an error, never as an outcome.
func (e *Engine) Validate(ctx context.Context, req product.Request) (Outcome, error) {
	now := e.now().UTC()

	// Issue the I/O-bound checks up front; they depend only on the
	// repository, so they overlap with the synchronous rules below.
	var (
		nameTaken  bool
		skuTaken   bool
		todayCount int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exists, err := e.repo.ExistsByNameAndBrand(gctx, req.Name, req.Brand)
		if err != nil {
			return errors.Wrap(err, "check name uniqueness")
		}
		nameTaken = exists
		return nil
	})
	g.Go(func() error {
		// A negative bloom answer means the SKU was never admitted,
		// so the store query can be skipped. Positive answers are
		// always confirmed against the store.
		if e.skus != nil && !e.skus.MayContain(req.SKU) {
			return nil
		}
		exists, err := e.repo.ExistsBySKU(gctx, req.SKU)
		if err != nil {
			return errors.Wrap(err, "check SKU uniqueness")
		}
		skuTaken = exists
		return nil
	})
	g.Go(func() error {
		count, err := e.repo.CountCreatedOn(gctx, now)
		if err != nil {
			return errors.Wrap(err, "count daily creations")
		}
		todayCount = count
		return nil
	})

	failures := EvaluateStatic(req, now)

	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	if fe := businessLimits(req, todayCount, e.dailyLimit); fe != nil {
		failures = append(failures, *fe)
	}
	if nameTaken {
		failures = append(failures, FieldError{Field: "name", Message: "A product with this name already exists for this brand."})
	}
	if skuTaken {
		failures = append(failures, FieldError{Field: "sku", Message: "SKU already exists in the system."})
	}

	return Outcome{Failures: failures}, nil
}
