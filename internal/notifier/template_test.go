package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmail(t *testing.T) {
	body, err := RenderEmail(Alert{
		Subject:       "Low Stock Alert: Widget",
		Message:       `Product "Widget" (WID-1) is running low. Current stock: 3, Minimum: 10`,
		ProductName:   "Widget",
		SKU:           "WID-1",
		StockQuantity: 3,
		MinStock:      10,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Low Stock Alert: Widget")
	assert.Contains(t, body, "SKU: WID-1")
	assert.Contains(t, body, "Current Stock: 3")
	assert.Contains(t, body, "Minimum Stock: 10")
}

func TestRenderEmail_EscapesProductName(t *testing.T) {
	body, err := RenderEmail(Alert{ProductName: `<script>alert(1)</script>`})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
