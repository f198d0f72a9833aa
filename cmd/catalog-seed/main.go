// Command catalog-seed bulk-loads product dumps into the catalog. Each
// input file is a gzipped JSONL stream of product rows; files are
// processed in parallel. Rows that fail the synchronous admission rules
// are skipped with a warning instead of aborting the import.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/averlon/catalog-api/internal/domain/product"
	"github.com/averlon/catalog-api/internal/storage/postgres"
	"github.com/averlon/catalog-api/internal/validation"
)

const progressEvery = 10_000

type productRow struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   string          `json:"releaseDate"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
}

func main() {
	var (
		databaseURL string
		parallelism int
	)
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.IntVar(&parallelism, "parallelism", 3, "number of dump files processed concurrently")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	files := flag.Args()
	if len(files) == 0 {
		slog.Error("no dump files given: pass one or more .jsonl.gz paths")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, files, parallelism); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, databaseURL string, files []string, parallelism int) error {
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewProductRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, path := range files {
		g.Go(func() error {
			return importFile(gctx, repo, path)
		})
	}
	return g.Wait()
}

func importFile(ctx context.Context, repo *postgres.ProductRepository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gzip reader %s", path)
	}
	defer func() { _ = gz.Close() }()

	lg := slog.With(slog.String("file", path))
	now := time.Now().UTC()

	var imported, skipped int
	sc := bufio.NewScanner(gz)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var row productRow
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			lg.Warn("skipping malformed row", slog.String("error", err.Error()))
			skipped++
			continue
		}

		req, err := rowToRequest(row)
		if err != nil {
			lg.Warn("skipping row", slog.String("sku", row.SKU), slog.String("error", err.Error()))
			skipped++
			continue
		}
		if failures := validation.EvaluateStatic(req, now); len(failures) > 0 {
			lg.Warn("skipping invalid row",
				slog.String("sku", req.SKU),
				slog.String("reason", validation.Outcome{Failures: failures}.String()))
			skipped++
			continue
		}

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
		if err := repo.Create(ctx, p); err != nil {
			return errors.Wrapf(err, "insert %q", req.SKU)
		}

		imported++
		if imported%progressEvery == 0 {
			lg.Info("progress", slog.Int("imported", imported), slog.Int("skipped", skipped))
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	lg.Info("done", slog.Int("imported", imported), slog.Int("skipped", skipped))
	return nil
}

func rowToRequest(row productRow) (product.Request, error) {
	release, err := time.Parse("2006-01-02", row.ReleaseDate)
	if err != nil {
		release, err = time.Parse(time.RFC3339, row.ReleaseDate)
		if err != nil {
			return product.Request{}, errors.Wrap(err, "parse release date")
		}
	}
	return product.Request{
		Name:          row.Name,
		Brand:         row.Brand,
		SKU:           row.SKU,
		Category:      product.Category(row.Category),
		Price:         row.Price,
		ReleaseDate:   release,
		StockQuantity: row.StockQuantity,
		ImageURL:      row.ImageURL,
	}, nil
}
