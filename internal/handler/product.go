package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/averlon/catalog-api/internal/catalog"
	"github.com/averlon/catalog-api/internal/domain/product"
	"github.com/averlon/catalog-api/internal/resolve"
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	view, err := h.creations.Create(r.Context(), req)
	if err != nil {
		var vErr *catalog.ValidationError
		if errors.As(err, &vErr) {
			writeValidationFailure(w, vErr.Failures)
			return
		}
		// Operational fault: generic message out, cause stays in
		// logs and metrics.
		zctx.From(r.Context()).Error("Product creation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	e := &jx.Encoder{}
	encodeView(e, *view)
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	if h.cache != nil {
		if cached, err := h.cache.GetProducts(ctx, catalog.AllProductsKey); err == nil {
			writeViews(w, cached, now)
			return
		}
	}

	products, err := h.products.List(ctx)
	if err != nil {
		zctx.From(ctx).Error("List products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if h.cache != nil {
		if err := h.cache.SetProducts(ctx, catalog.AllProductsKey, products); err != nil {
			zctx.From(ctx).Warn("Cache products failed", zap.Error(err))
		}
	}

	writeViews(w, products, now)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("Get product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	e := &jx.Encoder{}
	encodeView(e, resolve.Project(*p, time.Now().UTC()))
	writeJSON(w, http.StatusOK, e)
}

func writeViews(w http.ResponseWriter, products []product.Product, now time.Time) {
	e := &jx.Encoder{}
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeView(e, resolve.Project(p, now))
		}
	})
	writeJSON(w, http.StatusOK, e)
}

func encodeView(e *jx.Encoder, v product.View) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(v.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(v.Name) })
		e.Field("brand", func(e *jx.Encoder) { e.Str(v.Brand) })
		e.Field("sku", func(e *jx.Encoder) { e.Str(v.SKU) })
		e.Field("categoryLabel", func(e *jx.Encoder) { e.Str(v.CategoryLabel) })
		e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(v.Price.String())) })
		e.Field("formattedPrice", func(e *jx.Encoder) { e.Str(v.FormattedPrice) })
		e.Field("releaseDate", func(e *jx.Encoder) { e.Str(v.ReleaseDate.UTC().Format(time.RFC3339)) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(v.CreatedAt.UTC().Format(time.RFC3339)) })
		e.Field("imageUrl", func(e *jx.Encoder) { e.Str(v.ImageURL) })
		e.Field("available", func(e *jx.Encoder) { e.Bool(v.Available) })
		e.Field("stockQuantity", func(e *jx.Encoder) { e.Int(v.StockQuantity) })
		e.Field("productAge", func(e *jx.Encoder) { e.Str(v.ProductAge) })
		e.Field("brandInitials", func(e *jx.Encoder) { e.Str(v.BrandInitials) })
		e.Field("availabilityStatus", func(e *jx.Encoder) { e.Str(v.Availability) })
	})
}

// decodeCreateRequest decodes the create-product payload. Unknown fields
// are skipped; field-level validation happens in the validation engine,
// so only structurally unreadable payloads fail here.
func decodeCreateRequest(body io.Reader) (product.Request, error) {
	var req product.Request

	d := jx.Decode(body, 4096)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			req.Name, err = d.Str()
		case "brand":
			req.Brand, err = d.Str()
		case "sku":
			req.SKU, err = d.Str()
		case "category":
			var s string
			s, err = d.Str()
			req.Category = product.Category(s)
		case "price":
			var n jx.Num
			n, err = d.Num()
			if err == nil {
				req.Price, err = decimal.NewFromString(string(n))
			}
		case "releaseDate":
			var s string
			s, err = d.Str()
			if err == nil {
				req.ReleaseDate, err = parseDate(s)
			}
		case "stockQuantity":
			req.StockQuantity, err = d.Int()
		case "imageUrl":
			req.ImageURL, err = d.Str()
		default:
			return d.Skip()
		}
		return err
	})
	if err != nil {
		return product.Request{}, errors.Wrap(err, "decode create request")
	}
	return req, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
