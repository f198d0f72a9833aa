package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category enumerates the product categories accepted by the catalog.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
)

// Categories lists every known category, in declaration order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
}

// Known reports whether c is one of the enumerated categories.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Request is the immutable input for admitting a new product into the
// catalog. It is never mutated after construction.
type Request struct {
	Name          string
	Brand         string
	SKU           string
	Category      Category
	Price         decimal.Decimal
	ReleaseDate   time.Time
	StockQuantity int
	ImageURL      string
}

// Product is a persisted catalog entry. Once stored it is owned by the
// repository; the creation pipeline only holds a transient reference.
type Product struct {
	ID            string
	Name          string
	Brand         string
	SKU           string
	Category      Category
	Price         decimal.Decimal
	ReleaseDate   time.Time
	StockQuantity int
	ImageURL      string
	Available     bool
	CreatedAt     time.Time
}

// View is the response projection of a persisted product, enriched with
// display fields derived by the resolver chain. It is computed from a
// Product snapshot and never independently mutated.
type View struct {
	ID            string
	Name          string
	Brand         string
	SKU           string
	CategoryLabel string
	// Price is the display price. For Home products it carries the 10%
	// display discount; the stored price is unaffected.
	Price          decimal.Decimal
	FormattedPrice string
	ReleaseDate    time.Time
	CreatedAt      time.Time
	ImageURL       string
	Available      bool
	StockQuantity  int
	ProductAge     string
	BrandInitials  string
	Availability   string
}

// Repository defines the persistence operations the admission pipeline
// depends on. Implementations must be safe for concurrent use.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	// ExistsByNameAndBrand reports whether a product with the exact
	// (name, brand) pair is already in the catalog.
	ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error)
	// ExistsBySKU reports whether the SKU is already taken system-wide.
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	// CountCreatedOn returns the number of products created on the UTC
	// calendar day containing day.
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)
	// ListSKUs returns every SKU in the catalog. Used to warm the SKU
	// pre-filter at startup.
	ListSKUs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *Product) error
}
