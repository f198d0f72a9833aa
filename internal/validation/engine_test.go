package validation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averlon/catalog-api/internal/domain/product"
)

type mockRepo struct {
	mu sync.Mutex

	nameTaken  bool
	skuTaken   bool
	todayCount int

	nameErr  error
	skuErr   error
	countErr error

	skuCalls int
}

func (m *mockRepo) List(context.Context) ([]product.Product, error) { return nil, nil }

func (m *mockRepo) GetByID(context.Context, string) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (m *mockRepo) ExistsByNameAndBrand(context.Context, string, string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nameTaken, m.nameErr
}

func (m *mockRepo) ExistsBySKU(context.Context, string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skuCalls++
	return m.skuTaken, m.skuErr
}

func (m *mockRepo) CountCreatedOn(context.Context, time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.todayCount, m.countErr
}

func (m *mockRepo) ListSKUs(context.Context) ([]string, error) { return nil, nil }

func (m *mockRepo) Create(context.Context, *product.Product) error { return nil }

func newTestEngine(repo product.Repository, skus *SKUFilter) *Engine {
	e := NewEngine(repo, skus, 0)
	e.now = func() time.Time { return testNow }
	return e
}

func TestEngine_ValidRequest(t *testing.T) {
	e := newTestEngine(&mockRepo{}, nil)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	assert.True(t, outcome.Valid())
	assert.Empty(t, outcome.Failures)
}

func TestEngine_NameTaken(t *testing.T) {
	e := newTestEngine(&mockRepo{nameTaken: true}, nil)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, FieldError{
		Field:   "name",
		Message: "A product with this name already exists for this brand.",
	}, outcome.Failures[0])
}

func TestEngine_SKUTaken(t *testing.T) {
	e := newTestEngine(&mockRepo{skuTaken: true}, nil)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, FieldError{
		Field:   "sku",
		Message: "SKU already exists in the system.",
	}, outcome.Failures[0])
}

func TestEngine_DailyLimitReached(t *testing.T) {
	repo := &mockRepo{todayCount: DefaultDailyLimit}
	e := newTestEngine(repo, nil)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "request", outcome.Failures[0].Field)
	assert.Equal(t, "Product does not meet business requirements.", outcome.Failures[0].Message)
}

func TestEngine_DailyLimitBelowCap(t *testing.T) {
	repo := &mockRepo{todayCount: DefaultDailyLimit - 1}
	e := newTestEngine(repo, nil)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	assert.True(t, outcome.Valid())
}

func TestEngine_FailureOrdering(t *testing.T) {
	// A request that trips a structural rule, a store-backed limit, and
	// both uniqueness checks at once. Field rules must come first, then
	// the business limit, then name uniqueness, then SKU uniqueness.
	repo := &mockRepo{nameTaken: true, skuTaken: true, todayCount: DefaultDailyLimit}
	e := newTestEngine(repo, nil)

	req := validBooksRequest()
	req.Brand = "A"

	outcome, err := e.Validate(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, outcome.Failures, 4)
	assert.Equal(t, "Brand name must be at least 2 characters.", outcome.Failures[0].Message)
	assert.Equal(t, "Product does not meet business requirements.", outcome.Failures[1].Message)
	assert.Equal(t, "A product with this name already exists for this brand.", outcome.Failures[2].Message)
	assert.Equal(t, "SKU already exists in the system.", outcome.Failures[3].Message)
}

func TestEngine_RepositoryFault(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name string
		repo *mockRepo
	}{
		{"name check fails", &mockRepo{nameErr: boom}},
		{"sku check fails", &mockRepo{skuErr: boom}},
		{"daily count fails", &mockRepo{countErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.repo, nil)

			outcome, err := e.Validate(context.Background(), validBooksRequest())

			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Empty(t, outcome.Failures)
		})
	}
}

func TestEngine_SKUFilterSkipsStoreQuery(t *testing.T) {
	repo := &mockRepo{}
	skus := NewSKUFilter(1000, 0.001)
	skus.Warm([]string{"OTHER-SKU-1", "OTHER-SKU-2"})
	e := newTestEngine(repo, skus)

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	assert.True(t, outcome.Valid())
	assert.Zero(t, repo.skuCalls, "negative filter answer must skip the store query")
}

func TestEngine_SKUFilterPositiveConfirmedAgainstStore(t *testing.T) {
	req := validBooksRequest()

	repo := &mockRepo{skuTaken: true}
	skus := NewSKUFilter(1000, 0.001)
	skus.Add(req.SKU)
	e := newTestEngine(repo, skus)

	outcome, err := e.Validate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.skuCalls)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "sku", outcome.Failures[0].Field)
}

func TestEngine_CustomDailyLimit(t *testing.T) {
	repo := &mockRepo{todayCount: 3}
	e := NewEngine(repo, nil, 3)
	e.now = func() time.Time { return testNow }

	outcome, err := e.Validate(context.Background(), validBooksRequest())

	require.NoError(t, err)
	assert.False(t, outcome.Valid())
}
