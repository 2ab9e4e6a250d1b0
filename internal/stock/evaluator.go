// Package stock holds the low stock decision rule.
package stock

// IsLow reports whether stockQuantity is at or below the minStock threshold.
func IsLow(stockQuantity, minStock int) bool {
	return stockQuantity <= minStock
}
