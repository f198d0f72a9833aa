package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/averlon/catalog-api/internal/domain/product"
)

var (
	expensivePrice = decimal.NewFromInt(100)
	highValuePrice = decimal.NewFromInt(500)
)

// ruleExpensiveStock is the cross-field constraint: expensive products
// must carry limited stock.
func ruleExpensiveStock(req product.Request, _ time.Time) *FieldError {
	if req.Price.GreaterThan(expensivePrice) && req.StockQuantity > 20 {
		return &FieldError{Field: "request", Message: "Expensive products (>$100) must have limited stock (≤20 units)."}
	}
	return nil
}

// businessLimits is the store-backed business-limit rule. It runs after
// the field rules and contributes at most one failure, regardless of how
// many of its conditions trip. todayCount is the number of products
// already created on the current UTC calendar day.
func businessLimits(req product.Request, todayCount, dailyLimit int) *FieldError {
	fail := &FieldError{Field: "request", Message: "Product does not meet business requirements."}

	if dailyLimit > 0 && todayCount >= dailyLimit {
		return fail
	}
	// Safety nets for the category rules above; kept separate so a
	// misconfigured rule table still rejects these.
	if req.Category == product.CategoryElectronics && req.Price.LessThan(electronicsMinPrice) {
		return fail
	}
	if req.Category == product.CategoryHome && containsAnyFold(req.Name, homeRestrictedWords) {
		return fail
	}
	if req.Price.GreaterThan(highValuePrice) && req.StockQuantity > 10 {
		return fail
	}
	return nil
}
