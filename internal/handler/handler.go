// Package handler exposes the catalog over HTTP. Routing and binding are
// deliberately thin: requests are decoded with jx, handed to the domain
// layer, and domain errors are mapped to transport responses.
package handler

import (
	"context"
	"net/http"

	"github.com/go-faster/jx"

	"github.com/averlon/catalog-api/internal/catalog"
	"github.com/averlon/catalog-api/internal/domain/product"
	"github.com/averlon/catalog-api/internal/validation"
)

// ListCache is the read-side cache collaborator for the product collection.
type ListCache interface {
	GetProducts(ctx context.Context, key string) ([]product.Product, error)
	SetProducts(ctx context.Context, key string, products []product.Product) error
}

// Handler serves the product endpoints.
type Handler struct {
	products  product.Repository
	creations *catalog.Service
	cache     ListCache
}

// NewHandler constructs a Handler. cache may be nil to disable the
// read-side list cache.
func NewHandler(products product.Repository, creations *catalog.Service, cache ListCache) *Handler {
	return &Handler{
		products:  products,
		creations: creations,
		cache:     cache,
	}
}

// Register mounts the product routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/products", h.createProduct)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	writeJSON(w, status, e)
}

func writeValidationFailure(w http.ResponseWriter, failures []validation.FieldError) {
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(http.StatusBadRequest) })
		e.Field("message", func(e *jx.Encoder) { e.Str("validation failed") })
		e.Field("failures", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, f := range failures {
					e.Obj(func(e *jx.Encoder) {
						e.Field("field", func(e *jx.Encoder) { e.Str(f.Field) })
						e.Field("message", func(e *jx.Encoder) { e.Str(f.Message) })
					})
				}
			})
		})
	})
	writeJSON(w, http.StatusBadRequest, e)
}
