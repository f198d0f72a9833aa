package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averlon/catalog-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

const productColumns = `id, name, brand, sku, category, price, release_date,
	stock_quantity, image_url, is_available, created_at`

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the full catalog, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate products")
	}
	return products, nil
}

// GetByID returns a single product. It returns product.ErrNotFound when
// no matching row exists.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %q", id)
	}
	return &p, nil
}

// ExistsByNameAndBrand reports whether the exact (name, brand) pair is
// already in the catalog.
func (r *ProductRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND brand = $2)`,
		name, brand,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "name/brand existence")
	}
	return exists, nil
}

// ExistsBySKU reports whether the SKU is already taken.
func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "sku existence")
	}
	return exists, nil
}

// CountCreatedOn counts products created on the UTC calendar day
// containing day.
func (r *ProductRepository) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "count daily creations")
	}
	return count, nil
}

// ListSKUs returns every SKU in the catalog.
func (r *ProductRepository) ListSKUs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, errors.Wrap(err, "list skus")
	}
	defer rows.Close()

	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, errors.Wrap(err, "scan sku")
		}
		skus = append(skus, sku)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate skus")
	}
	return skus, nil
}

// Create persists a new product row.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Brand, p.SKU, string(p.Category), p.Price,
		p.ReleaseDate, p.StockQuantity, p.ImageURL, p.Available, p.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "insert product %q", p.SKU)
	}
	return nil
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var (
		p        product.Product
		category string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.SKU, &category, &p.Price,
		&p.ReleaseDate, &p.StockQuantity, &p.ImageURL, &p.Available, &p.CreatedAt,
	)
	if err != nil {
		return product.Product{}, err
	}
	p.Category = product.Category(category)
	return p, nil
}
