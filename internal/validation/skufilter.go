package validation

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SKUFilter is a bloom-filter pre-check for SKU existence. It answers
// "definitely not in the catalog" without touching the store; a positive
// answer may be a false positive and must be confirmed by the repository.
type SKUFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewSKUFilter creates a filter sized for the expected number of SKUs at
// the given false-positive rate.
func NewSKUFilter(capacity uint, fpr float64) *SKUFilter {
	return &SKUFilter{filter: bloom.NewWithEstimates(capacity, fpr)}
}

// Warm inserts the given SKUs, typically the full catalog at startup.
func (f *SKUFilter) Warm(skus []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sku := range skus {
		f.filter.AddString(sku)
	}
}

// Add records a newly persisted SKU.
func (f *SKUFilter) Add(sku string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(sku)
}

// MayContain reports whether sku might already exist. False means the SKU
// has definitely never been added.
func (f *SKUFilter) MayContain(sku string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(sku)
}
