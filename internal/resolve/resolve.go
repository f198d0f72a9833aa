// Package resolve derives the display-facing fields of a product view
// from a persisted product snapshot. Every resolver is a pure function:
// re-running the chain on the same snapshot yields identical values.
package resolve

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/averlon/catalog-api/internal/domain/product"
)

// LowStockThreshold is the stock count at or below which a product is
// reported as "Limited Stock".
const LowStockThreshold = 10

var homeDiscount = decimal.RequireFromString("0.9")

var usd = message.NewPrinter(language.AmericanEnglish)

// CategoryLabel maps a category to its display name. Unknown categories
// resolve to "Uncategorized".
func CategoryLabel(c product.Category) string {
	switch c {
	case product.CategoryElectronics:
		return "Electronics & Technology"
	case product.CategoryClothing:
		return "Clothing & Fashion"
	case product.CategoryBooks:
		return "Books & Media"
	case product.CategoryHome:
		return "Home & Garden"
	default:
		return "Uncategorized"
	}
}

// DisplayPrice returns the price shown to callers. Home products carry a
// 10% display discount; the stored price is never touched.
func DisplayPrice(c product.Category, price decimal.Decimal) decimal.Decimal {
	if c == product.CategoryHome {
		return price.Mul(homeDiscount).Round(2)
	}
	return price
}

// DisplayImageURL suppresses the image URL for Home products regardless
// of the stored value.
func DisplayImageURL(c product.Category, imageURL string) string {
	if c == product.CategoryHome {
		return ""
	}
	return imageURL
}

// BrandInitials returns the uppercased initials of the first and last
// whitespace-separated tokens of the brand. A single-token brand yields
// one letter; a blank brand yields the "?" placeholder.
func BrandInitials(brand string) string {
	parts := strings.Fields(brand)
	if len(parts) == 0 {
		return "?"
	}
	if len(parts) == 1 {
		return strings.ToUpper(parts[0][:1])
	}
	return strings.ToUpper(parts[0][:1] + parts[len(parts)-1][:1])
}

// Availability tiers the stock count into a status string. A zero or
// negative stock reads as out of stock even when the availability flag
// is still set.
func Availability(available bool, stock int) string {
	switch {
	case !available || stock <= 0:
		return "Out of Stock"
	case stock == 1:
		return "Last Item"
	case stock <= LowStockThreshold:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}

// ProductAge buckets the product's age in days since release. "Classic"
// is only reachable at exactly 1825 days (within a day); anything older
// is "Vintage".
func ProductAge(release, now time.Time) string {
	days := now.Sub(release).Hours() / 24

	switch {
	case days < 30:
		return "New Release"
	case days < 365:
		return fmt.Sprintf("%d months old", int(days/30))
	case days < 1825:
		return fmt.Sprintf("%d years old", int(days/365))
	case math.Abs(days-1825) < 1:
		return "Classic"
	default:
		return "Vintage"
	}
}

// FormatPrice renders a price as a US-locale currency string with two
// fraction digits and thousands grouping.
func FormatPrice(price decimal.Decimal) string {
	f, _ := price.Float64()
	return usd.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}

// Project runs the full resolver chain over a persisted product snapshot.
// The resolvers are independent and order-insensitive; Project only
// assembles their results.
func Project(p product.Product, now time.Time) product.View {
	displayPrice := DisplayPrice(p.Category, p.Price)

	return product.View{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		SKU:            p.SKU,
		CategoryLabel:  CategoryLabel(p.Category),
		Price:          displayPrice,
		FormattedPrice: FormatPrice(displayPrice),
		ReleaseDate:    p.ReleaseDate,
		CreatedAt:      p.CreatedAt,
		ImageURL:       DisplayImageURL(p.Category, p.ImageURL),
		Available:      p.Available,
		StockQuantity:  p.StockQuantity,
		ProductAge:     ProductAge(p.ReleaseDate, now),
		BrandInitials:  BrandInitials(p.Brand),
		Availability:   Availability(p.Available, p.StockQuantity),
	}
}
