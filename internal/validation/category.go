package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/averlon/catalog-api/internal/domain/product"
)

var (
	electronicsMinPrice = decimal.NewFromInt(50)
	homeMaxPrice        = decimal.NewFromInt(200)
)

// categoryRules maps each category to its extra rules, applied after the
// unconditional rule set only when the request's category matches. This
// keeps conditional dispatch out of the engine itself.
var categoryRules = map[product.Category][]Rule{
	product.CategoryElectronics: {
		ruleElectronicsMinPrice,
		ruleElectronicsTechName,
		ruleElectronicsRecency,
	},
	product.CategoryHome: {
		ruleHomeMaxPrice,
		ruleHomeNameContent,
	},
	product.CategoryClothing: {
		ruleClothingBrandLength,
	},
}

func ruleElectronicsMinPrice(req product.Request, _ time.Time) *FieldError {
	if req.Price.LessThan(electronicsMinPrice) {
		return &FieldError{Field: "price", Message: "Electronics products must have a minimum price of $50.00."}
	}
	return nil
}

func ruleElectronicsTechName(req product.Request, _ time.Time) *FieldError {
	if !containsAnyFold(req.Name, technologyKeywords) {
		return &FieldError{Field: "name", Message: "Electronics products must contain technology-related keywords in the name."}
	}
	return nil
}

func ruleElectronicsRecency(req product.Request, now time.Time) *FieldError {
	if !req.ReleaseDate.After(now.AddDate(-5, 0, 0)) {
		return &FieldError{Field: "releaseDate", Message: "Electronics products must be released within the last 5 years."}
	}
	return nil
}

func ruleHomeMaxPrice(req product.Request, _ time.Time) *FieldError {
	if req.Price.GreaterThan(homeMaxPrice) {
		return &FieldError{Field: "price", Message: "Home products must have a maximum price of $200.00."}
	}
	return nil
}

func ruleHomeNameContent(req product.Request, _ time.Time) *FieldError {
	if containsAnyFold(req.Name, homeRestrictedWords) {
		return &FieldError{Field: "name", Message: "Home product name contains restricted content."}
	}
	return nil
}

func ruleClothingBrandLength(req product.Request, _ time.Time) *FieldError {
	if len(req.Brand) < 3 {
		return &FieldError{Field: "brand", Message: "Clothing brand name must be at least 3 characters."}
	}
	return nil
}
