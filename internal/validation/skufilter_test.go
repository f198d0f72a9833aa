package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSKUFilter(t *testing.T) {
	f := NewSKUFilter(10_000, 0.001)

	assert.False(t, f.MayContain("TA-WH-2024"))

	f.Add("TA-WH-2024")
	assert.True(t, f.MayContain("TA-WH-2024"))
}

func TestSKUFilter_Warm(t *testing.T) {
	f := NewSKUFilter(10_000, 0.001)

	skus := make([]string, 100)
	for i := range skus {
		skus[i] = fmt.Sprintf("SKU-%05d", i)
	}
	f.Warm(skus)

	for _, sku := range skus {
		assert.True(t, f.MayContain(sku), sku)
	}
}

func TestSKUFilter_ConcurrentAccess(t *testing.T) {
	f := NewSKUFilter(10_000, 0.001)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			f.Add(fmt.Sprintf("W-%05d", i))
		}
	}()
	for i := 0; i < 1000; i++ {
		f.MayContain(fmt.Sprintf("W-%05d", i))
	}
	<-done
}
