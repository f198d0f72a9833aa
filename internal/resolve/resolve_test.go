package resolve

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/averlon/catalog-api/internal/domain/product"
)

var testNow = time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		category product.Category
		want     string
	}{
		{product.CategoryElectronics, "Electronics & Technology"},
		{product.CategoryClothing, "Clothing & Fashion"},
		{product.CategoryBooks, "Books & Media"},
		{product.CategoryHome, "Home & Garden"},
		{product.Category("Gadgets"), "Uncategorized"},
		{product.Category(""), "Uncategorized"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryLabel(tt.category))
	}
}

func TestDisplayPrice(t *testing.T) {
	t.Run("home discount", func(t *testing.T) {
		got := DisplayPrice(product.CategoryHome, decimal.RequireFromString("100.00"))
		assert.True(t, got.Equal(decimal.RequireFromString("90.00")), got.String())
	})

	t.Run("home discount rounds to cents", func(t *testing.T) {
		got := DisplayPrice(product.CategoryHome, decimal.RequireFromString("99.99"))
		assert.True(t, got.Equal(decimal.RequireFromString("89.99")), got.String())
	})

	t.Run("other categories unchanged", func(t *testing.T) {
		price := decimal.RequireFromString("149.99")
		for _, c := range []product.Category{product.CategoryElectronics, product.CategoryClothing, product.CategoryBooks} {
			assert.True(t, DisplayPrice(c, price).Equal(price))
		}
	})
}

func TestDisplayImageURL(t *testing.T) {
	assert.Empty(t, DisplayImageURL(product.CategoryHome, "https://cdn.example.com/vase.jpg"))
	assert.Equal(t,
		"https://cdn.example.com/phone.jpg",
		DisplayImageURL(product.CategoryElectronics, "https://cdn.example.com/phone.jpg"),
	)
}

func TestBrandInitials(t *testing.T) {
	tests := []struct {
		brand string
		want  string
	}{
		{"Tech Audio", "TA"},
		{"apple", "A"},
		{"three word brand", "TB"},
		{"  padded   name  ", "PN"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BrandInitials(tt.brand), "brand %q", tt.brand)
	}
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		stock     int
		want      string
	}{
		{"unavailable flag wins", false, 50, "Out of Stock"},
		{"zero stock", true, 0, "Out of Stock"},
		{"negative stock", true, -1, "Out of Stock"},
		{"single unit", true, 1, "Last Item"},
		{"low stock", true, 2, "Limited Stock"},
		{"threshold boundary", true, LowStockThreshold, "Limited Stock"},
		{"above threshold", true, LowStockThreshold + 1, "In Stock"},
		{"plenty", true, 500, "In Stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Availability(tt.available, tt.stock))
		})
	}
}

func TestProductAge(t *testing.T) {
	tests := []struct {
		name    string
		release time.Time
		want    string
	}{
		{"released today", testNow, "New Release"},
		{"29 days", testNow.AddDate(0, 0, -29), "New Release"},
		{"31 days", testNow.AddDate(0, 0, -31), "1 months old"},
		{"six months", testNow.AddDate(0, 0, -182), "6 months old"},
		{"just over a year", testNow.AddDate(0, 0, -366), "1 years old"},
		{"four years", testNow.AddDate(0, 0, -1460), "4 years old"},
		{"exactly 1825 days", testNow.AddDate(0, 0, -1825), "Classic"},
		{"1826 days", testNow.AddDate(0, 0, -1826), "Vintage"},
		{"decade", testNow.AddDate(-10, 0, 0), "Vintage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductAge(tt.release, testNow))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"149.99", "$149.99"},
		{"90", "$90.00"},
		{"1234.56", "$1,234.56"},
		{"0.5", "$0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.price)))
	}
}

func TestProject(t *testing.T) {
	p := product.Product{
		ID:            "0c8e9d62-1db0-4a5e-b3c1-1f6d2d9a1c55",
		Name:          "Smart Wireless Headphones",
		Brand:         "Tech Audio",
		SKU:           "TA-WH-2024",
		Category:      product.CategoryElectronics,
		Price:         decimal.RequireFromString("149.99"),
		ReleaseDate:   testNow.AddDate(0, 0, -200),
		StockQuantity: 15,
		ImageURL:      "https://cdn.example.com/headphones.jpg",
		Available:     true,
		CreatedAt:     testNow,
	}

	v := Project(p, testNow)

	assert.Equal(t, p.ID, v.ID)
	assert.Equal(t, "Electronics & Technology", v.CategoryLabel)
	assert.True(t, v.Price.Equal(p.Price))
	assert.Equal(t, "$149.99", v.FormattedPrice)
	assert.Equal(t, p.ImageURL, v.ImageURL)
	assert.Equal(t, "6 months old", v.ProductAge)
	assert.Equal(t, "TA", v.BrandInitials)
	assert.Equal(t, "In Stock", v.Availability)
}

func TestProject_HomeProduct(t *testing.T) {
	p := product.Product{
		ID:            "d2b4ed18-94af-4d55-9ae3-55f35e9f9e01",
		Name:          "Ceramic Vase",
		Brand:         "Casa Verde",
		SKU:           "CV-VASE-10",
		Category:      product.CategoryHome,
		Price:         decimal.RequireFromString("100.00"),
		ReleaseDate:   testNow.AddDate(0, 0, -10),
		StockQuantity: 8,
		ImageURL:      "https://cdn.example.com/vase.jpg",
		Available:     true,
		CreatedAt:     testNow,
	}

	v := Project(p, testNow)

	assert.True(t, v.Price.Equal(decimal.RequireFromString("90.00")), v.Price.String())
	assert.Equal(t, "$90.00", v.FormattedPrice)
	assert.Empty(t, v.ImageURL)
	assert.Equal(t, "Home & Garden", v.CategoryLabel)
	assert.Equal(t, "New Release", v.ProductAge)
	assert.Equal(t, "Limited Stock", v.Availability)
}

func TestProject_Idempotent(t *testing.T) {
	p := product.Product{
		ID:            "a6a2a1de-70cb-4a41-b44e-0d2fb6f3de09",
		Name:          "Linen Curtains",
		Brand:         "Casa Verde",
		SKU:           "CV-CURT-02",
		Category:      product.CategoryHome,
		Price:         decimal.RequireFromString("59.99"),
		ReleaseDate:   testNow.AddDate(0, 0, -40),
		StockQuantity: 3,
		Available:     true,
		CreatedAt:     testNow,
	}

	first := Project(p, testNow)
	second := Project(p, testNow)

	// The chain reads only the snapshot, so re-running it changes nothing.
	assert.Equal(t, first, second)
}
