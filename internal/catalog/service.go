// Package catalog implements the product creation pipeline: validation,
// persistence, cache invalidation, and projection to the response view,
// with per-phase instrumentation.
package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/averlon/catalog-api/internal/domain/product"
	"github.com/averlon/catalog-api/internal/resolve"
	"github.com/averlon/catalog-api/internal/validation"
)

// AllProductsKey identifies the cached "all products" collection that is
// invalidated after every successful create.
const AllProductsKey = "products:all"

// Invalidator is the cache collaborator. Invalidation failures are logged
// and never fail the pipeline.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// ValidationError carries the full ordered failure list of a rejected
// request. It is always recoverable and surfaced verbatim to the caller.
type ValidationError struct {
	Failures []validation.FieldError
}

func (e *ValidationError) Error() string {
	return validation.Outcome{Failures: e.Failures}.String()
}

// Service sequences the creation pipeline. Each call is independent; the
// only shared collaborators are the repository and the cache, both of
// which must be safe for concurrent use.
type Service struct {
	repo    product.Repository
	engine  *validation.Engine
	skus    *validation.SKUFilter
	cache   Invalidator
	metrics MetricsSink
	now     func() time.Time
}

// NewService creates the pipeline with its collaborators. skus may be nil.
func NewService(
	repo product.Repository,
	engine *validation.Engine,
	skus *validation.SKUFilter,
	cache Invalidator,
	metrics MetricsSink,
) *Service {
	return &Service{
		repo:    repo,
		engine:  engine,
		skus:    skus,
		cache:   cache,
		metrics: metrics,
		now:     time.Now,
	}
}

// Create admits a new product into the catalog. It returns the resolved
// view on success, a *ValidationError when any rule fails, or a wrapped
// operational error on infrastructure faults. Exactly one CreationMetrics
// record is emitted per call. Cancellation aborts the operation up to the
// moment persistence begins; after that it runs to completion.
func (s *Service) Create(ctx context.Context, req product.Request) (*product.View, error) {
	opID := uuid.New().String()[:8]
	lg := zctx.From(ctx).With(
		zap.String("operation_id", opID),
		zap.String("product", req.Name),
		zap.String("sku", req.SKU),
		zap.String("category", string(req.Category)),
	)

	totalStart := time.Now()
	emit := func(valDur, dbDur time.Duration, success bool, reason string) {
		s.metrics.Record(ctx, CreationMetrics{
			OperationID:        opID,
			ProductName:        req.Name,
			SKU:                req.SKU,
			Category:           req.Category,
			ValidationDuration: valDur,
			PersistDuration:    dbDur,
			TotalDuration:      time.Since(totalStart),
			Success:            success,
			ErrorReason:        reason,
		})
	}

	lg.Info("Starting product creation", zap.String("brand", req.Brand))

	valStart := time.Now()
	outcome, err := s.engine.Validate(ctx, req)
	valDur := time.Since(valStart)
	if err != nil {
		emit(valDur, 0, false, err.Error())
		return nil, errors.Wrap(err, "validate product")
	}
	if !outcome.Valid() {
		reason := outcome.String()
		lg.Warn("Product validation failed",
			zap.Int("failures", len(outcome.Failures)),
			zap.String("errors", reason))
		emit(valDur, 0, false, reason)
		return nil, &ValidationError{Failures: outcome.Failures}
	}

	// Last cancellation checkpoint: nothing has been committed yet.
	if err := ctx.Err(); err != nil {
		emit(valDur, 0, false, err.Error())
		return nil, errors.Wrap(err, "create cancelled")
	}
	// From here on the operation runs to completion even if the caller
	// goes away; a half-reported create must still invalidate the cache.
	opCtx := context.WithoutCancel(ctx)

	now := s.now().UTC()
	p := &product.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		ReleaseDate:   req.ReleaseDate,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Available:     true,
		CreatedAt:     now,
	}

	dbStart := time.Now()
	if err := s.repo.Create(opCtx, p); err != nil {
		emit(valDur, time.Since(dbStart), false, err.Error())
		return nil, errors.Wrap(err, "persist product")
	}
	dbDur := time.Since(dbStart)

	if s.skus != nil {
		s.skus.Add(p.SKU)
	}

	if err := s.cache.Invalidate(opCtx, AllProductsKey); err != nil {
		lg.Warn("Cache invalidation failed",
			zap.String("key", AllProductsKey), zap.Error(err))
	}

	view := resolve.Project(*p, now)

	emit(valDur, dbDur, true, "")
	lg.Info("Product created",
		zap.String("product_id", p.ID),
		zap.Duration("validation_duration", valDur),
		zap.Duration("persist_duration", dbDur))

	return &view, nil
}
