package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/model"
)

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "ABC-123", NormalizeSKU("  abc-123 "))
	assert.Equal(t, "ABC-123", NormalizeSKU("ABC-123"))
	assert.Equal(t, "", NormalizeSKU("   "))
}

func TestProductService_CreateStoresNormalizedSKU(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "  ab-1 ", 50, 10))
	require.NoError(t, err)

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "AB-1", product.SKU)
	assert.Equal(t, "alice", product.CreatedByName)
	assert.NotEmpty(t, product.SectorName)
}

func TestProductService_DuplicateSKUIgnoresCaseAndWhitespace(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	_, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "abc-123", 50, 10))
	require.NoError(t, err)

	for _, sku := range []string{"ABC-123", " abc-123", "Abc-123  "} {
		_, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Copy", sku, 50, 10))
		assert.ErrorIs(t, err, apperrors.ErrDuplicateSKU, sku)
	}

	products, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestProductService_UpdateKeepsOwnSKU(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "WID-1", 50, 10))
	require.NoError(t, err)

	in := f.input(t, "Widget v2", " wid-1 ", 40, 10)
	require.NoError(t, f.products.UpdateProduct(ctx, id, in))

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", product.Name)
	assert.Equal(t, "WID-1", product.SKU)
	assert.Equal(t, 40, product.StockQuantity)
}

func TestProductService_UpdateRejectsAnotherProductsSKU(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	_, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "First", "SKU-1", 50, 10))
	require.NoError(t, err)
	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Second", "SKU-2", 50, 10))
	require.NoError(t, err)

	err = f.products.UpdateProduct(ctx, id, f.input(t, "Second", "sku-1", 50, 10))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateSKU)

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SKU-2", product.SKU)
}

func TestProductService_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	err := f.products.UpdateProduct(ctx, 999, f.input(t, "Ghost", "GHOST", 5, 10))
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	err = f.products.DeleteProduct(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	_, err = f.products.GetProduct(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestProductService_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	tests := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{name: "blank name", mutate: func(in *ProductInput) { in.Name = "  " }},
		{name: "blank sku", mutate: func(in *ProductInput) { in.SKU = " " }},
		{name: "zero price", mutate: func(in *ProductInput) { in.Price = decimal.Zero }},
		{name: "negative price", mutate: func(in *ProductInput) { in.Price = decimal.NewFromInt(-1) }},
		{name: "negative stock", mutate: func(in *ProductInput) { in.StockQuantity = intPtr(-1) }},
		{name: "missing stock", mutate: func(in *ProductInput) { in.StockQuantity = nil }},
		{name: "sub-cent price", mutate: func(in *ProductInput) { in.Price = decimal.RequireFromString("0.004") }},
		{name: "three decimal price", mutate: func(in *ProductInput) { in.Price = decimal.RequireFromString("1.995") }},
		{name: "negative min stock", mutate: func(in *ProductInput) { in.MinStock = intPtr(-1) }},
		{name: "missing sector", mutate: func(in *ProductInput) { in.SectorID = 0 }},
		{name: "unknown sector", mutate: func(in *ProductInput) { in.SectorID = 9999 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(t, "Widget", "VAL-1", 5, 10)
			tt.mutate(&in)

			_, err := f.products.CreateProduct(ctx, user.ID, in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	products, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	var notifications int64
	require.NoError(t, f.db.Model(&model.Notification{}).Count(&notifications).Error)
	assert.Zero(t, notifications)
}

func TestProductService_CreateRequiresUser(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.products.CreateProduct(context.Background(), 0, f.input(t, "Widget", "W-1", 5, 10))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestProductService_MinStockDefaults(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	in := f.input(t, "Widget", "MIN-1", 50, 0)
	in.MinStock = nil
	id, err := f.products.CreateProduct(ctx, user.ID, in)
	require.NoError(t, err)

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMinStock, product.MinStock)

	update := f.input(t, "Widget", "MIN-1", 50, 0)
	update.MinStock = intPtr(3)
	require.NoError(t, f.products.UpdateProduct(ctx, id, update))

	update.MinStock = nil
	require.NoError(t, f.products.UpdateProduct(ctx, id, update))

	product, err = f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, product.MinStock)
}

func TestProductService_SanitizesDescription(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	in := f.input(t, "Widget", "DESC-1", 50, 10)
	in.Description = `<script>alert("x")</script><b>Sturdy</b>`
	id, err := f.products.CreateProduct(ctx, user.ID, in)
	require.NoError(t, err)

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, product.Description, "<script>")
	assert.Contains(t, product.Description, "Sturdy")
}

func TestProductService_LowStockCreateAlertsCreator(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "low-1", 5, 10))
	require.NoError(t, err)

	rows := f.notificationsFor(t, user.ID, id)
	require.Len(t, rows, 1)
	assert.Equal(t, model.NotificationTypeLowStock, rows[0].Type)
	assert.Equal(t, "Low Stock Alert: Widget", rows[0].Title)
	assert.Equal(t, `Product "Widget" (LOW-1) is running low. Current stock: 5, Minimum: 10`, rows[0].Message)
	assert.False(t, rows[0].IsRead)
	assert.False(t, rows[0].IsSent)

	low, err := f.products.ListLowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, id, low[0].ID)

	stats, err := f.stats.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, int64(1), stats.UnreadNotifications)
}

func TestProductService_ThresholdIsInclusive(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	atThreshold, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "At", "AT-1", 10, 10))
	require.NoError(t, err)
	above, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Above", "ABOVE-1", 11, 10))
	require.NoError(t, err)

	assert.Len(t, f.notificationsFor(t, user.ID, atThreshold), 1)
	assert.Empty(t, f.notificationsFor(t, user.ID, above))
}

func TestProductService_RepeatedLowWritesDoNotDuplicate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "REP-1", 5, 10))
	require.NoError(t, err)

	for _, qty := range []int{4, 3, 2} {
		require.NoError(t, f.products.UpdateProduct(ctx, id, f.input(t, "Widget", "REP-1", qty, 10)))
	}

	assert.Len(t, f.notificationsFor(t, user.ID, id), 1)
}

func TestProductService_ReAlertsAfterRead(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "READ-1", 5, 10))
	require.NoError(t, err)

	rows := f.notificationsFor(t, user.ID, id)
	require.Len(t, rows, 1)
	require.NoError(t, f.notifications.MarkRead(ctx, user.ID, rows[0].ID))
	assert.Zero(t, f.unreadFor(t, user.ID, id))

	require.NoError(t, f.products.UpdateProduct(ctx, id, f.input(t, "Widget", "READ-1", 4, 10)))

	assert.Len(t, f.notificationsFor(t, user.ID, id), 2)
	assert.Equal(t, 1, f.unreadFor(t, user.ID, id))
}

func TestProductService_DeleteCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.createUser(t, "alice", false)
	bob := f.createUser(t, "bob", false)

	id, err := f.products.CreateProduct(ctx, alice.ID, f.input(t, "Widget", "DEL-1", 50, 10))
	require.NoError(t, err)
	require.NoError(t, f.watchlist.Watch(ctx, bob.ID, id))
	require.NoError(t, f.products.UpdateProduct(ctx, id, f.input(t, "Widget", "DEL-1", 2, 10)))
	require.Len(t, f.notificationsFor(t, bob.ID, id), 1)

	require.NoError(t, f.products.DeleteProduct(ctx, id))

	var notifications, watchers int64
	require.NoError(t, f.db.Model(&model.Notification{}).Where("product_id = ?", id).Count(&notifications).Error)
	require.NoError(t, f.db.Model(&model.WatchlistEntry{}).Where("product_id = ?", id).Count(&watchers).Error)
	assert.Zero(t, notifications)
	assert.Zero(t, watchers)

	stats, err := f.stats.GetStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.LowStockItems)
	assert.True(t, stats.TotalValue.IsZero())
	assert.Zero(t, stats.UnreadNotifications)
}

func TestProductService_ListSKUs(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	_, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "sku-a", 50, 10))
	require.NoError(t, err)

	entries, err := f.products.ListSKUs(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SKU-A", entries[0].SKU)
	assert.Equal(t, "SKU-A", entries[0].NormalizedSKU)
}

func TestProductService_UpdateWithoutStockKeepsProduct(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	id, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Widget", "STK-1", 50, 10))
	require.NoError(t, err)

	in := f.input(t, "Widget", "STK-1", 0, 10)
	in.StockQuantity = nil
	err = f.products.UpdateProduct(ctx, id, in)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	product, err := f.products.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50, product.StockQuantity)
	assert.Empty(t, f.notificationsFor(t, user.ID, id))
}

func TestProductService_AcceptsTrailingZeroPrice(t *testing.T) {
	f := newFixture(t, nil)
	user := f.createUser(t, "alice", false)

	in := f.input(t, "Widget", "PRICE-1", 50, 10)
	in.Price = decimal.RequireFromString("1.100")
	_, err := f.products.CreateProduct(context.Background(), user.ID, in)
	assert.NoError(t, err)
}

func TestProductService_ListLowStockOrdersEmptiestFirst(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.createUser(t, "alice", false)

	seven, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Seven", "LOW-7", 7, 10))
	require.NoError(t, err)
	_, err = f.products.CreateProduct(ctx, user.ID, f.input(t, "Healthy", "OK-50", 50, 10))
	require.NoError(t, err)
	zero, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Empty", "LOW-0", 0, 10))
	require.NoError(t, err)
	edge, err := f.products.CreateProduct(ctx, user.ID, f.input(t, "Edge", "LOW-10", 10, 10))
	require.NoError(t, err)

	low, err := f.products.ListLowStockProducts(ctx)
	require.NoError(t, err)

	ids := make([]uint, 0, len(low))
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []uint{zero, seven, edge}, ids)
}
