package validation

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/averlon/catalog-api/internal/domain/product"
)

// Rule is a synchronous predicate over a product request. It returns nil
// when the request satisfies the rule, or a single FieldError otherwise.
type Rule func(req product.Request, now time.Time) *FieldError

// Process-wide content lists. Loaded once, read-only thereafter.
var (
	inappropriateWords  = []string{"badword1", "badword2", "inappropriate"}
	homeRestrictedWords = []string{"weapon", "violent", "adult"}
	technologyKeywords  = []string{
		"smart", "digital", "tech", "electronic", "wireless",
		"bluetooth", "wifi", "computer", "mobile", "processor",
	}
)

var (
	brandPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.]+$`)
	skuPattern   = regexp.MustCompile(`^[a-zA-Z0-9-]{5,20}$`)

	minReleaseDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxPrice       = decimal.NewFromInt(10_000)
	maxStock       = 100_000
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// structuralRules are the unconditional rules, in declaration order.
// The engine evaluates every rule; failures never short-circuit.
var structuralRules = []Rule{
	ruleNameLength,
	ruleNameContent,
	ruleBrand,
	ruleSKUFormat,
	ruleCategory,
	rulePriceRange,
	ruleReleaseDate,
	ruleStockRange,
	ruleImageURL,
}

func ruleNameLength(req product.Request, _ time.Time) *FieldError {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return &FieldError{Field: "name", Message: "Product name is required."}
	case len(req.Name) > 200:
		return &FieldError{Field: "name", Message: "Product name cannot exceed 200 characters."}
	}
	return nil
}

func ruleNameContent(req product.Request, _ time.Time) *FieldError {
	if containsAnyFold(req.Name, inappropriateWords) {
		return &FieldError{Field: "name", Message: "Product name contains inappropriate content."}
	}
	return nil
}

func ruleBrand(req product.Request, _ time.Time) *FieldError {
	switch {
	case strings.TrimSpace(req.Brand) == "":
		return &FieldError{Field: "brand", Message: "Brand name is required."}
	case len(req.Brand) < 2:
		return &FieldError{Field: "brand", Message: "Brand name must be at least 2 characters."}
	case len(req.Brand) > 100:
		return &FieldError{Field: "brand", Message: "Brand name cannot exceed 100 characters."}
	case !brandPattern.MatchString(req.Brand):
		return &FieldError{Field: "brand", Message: "Brand name contains invalid characters."}
	}
	return nil
}

func ruleSKUFormat(req product.Request, _ time.Time) *FieldError {
	if strings.TrimSpace(req.SKU) == "" {
		return &FieldError{Field: "sku", Message: "SKU is required."}
	}
	// Spaces are stripped before the format check, not for storage.
	cleaned := strings.ReplaceAll(req.SKU, " ", "")
	if !skuPattern.MatchString(cleaned) {
		return &FieldError{Field: "sku", Message: "SKU format is invalid. Must be alphanumeric with hyphens, 5-20 characters."}
	}
	return nil
}

func ruleCategory(req product.Request, _ time.Time) *FieldError {
	if !req.Category.Known() {
		return &FieldError{Field: "category", Message: "Invalid product category."}
	}
	return nil
}

func rulePriceRange(req product.Request, _ time.Time) *FieldError {
	switch {
	case req.Price.LessThanOrEqual(decimal.Zero):
		return &FieldError{Field: "price", Message: "Price must be greater than 0."}
	case req.Price.GreaterThanOrEqual(maxPrice):
		return &FieldError{Field: "price", Message: "Price must be less than $10,000."}
	}
	return nil
}

func ruleReleaseDate(req product.Request, now time.Time) *FieldError {
	switch {
	case req.ReleaseDate.After(now):
		return &FieldError{Field: "releaseDate", Message: "Release date cannot be in the future."}
	case !req.ReleaseDate.After(minReleaseDate):
		return &FieldError{Field: "releaseDate", Message: "Release date cannot be before year 1900."}
	}
	return nil
}

func ruleStockRange(req product.Request, _ time.Time) *FieldError {
	switch {
	case req.StockQuantity < 0:
		return &FieldError{Field: "stockQuantity", Message: "Stock quantity cannot be negative."}
	case req.StockQuantity > maxStock:
		return &FieldError{Field: "stockQuantity", Message: "Stock quantity cannot exceed 100,000."}
	}
	return nil
}

func ruleImageURL(req product.Request, _ time.Time) *FieldError {
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil
	}
	if !validImageURL(req.ImageURL) {
		return &FieldError{Field: "imageUrl", Message: "Image URL must be a valid HTTP/HTTPS URL ending with .jpg, .jpeg, .png, .gif, or .webp."}
	}
	return nil
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	lower := strings.ToLower(raw)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// containsAnyFold reports whether s contains any of the given substrings,
// case-insensitively.
func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
