package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/db"
	"stockflow/internal/model"
	"stockflow/internal/notifier"
	"stockflow/internal/repository"
)

// MockNotifier is a mock implementation of notifier.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, alert notifier.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

// newTestDB opens a private in-memory SQLite database with the schema and sector catalog.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	_, err = db.SeedSectors(context.Background(), gormDB)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

// fixture wires the services against one test database.
type fixture struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	watchlistRepo    repository.WatchlistRepository
	dispatcher       *notifier.Dispatcher

	products      ProductService
	alerts        AlertService
	stats         StatsService
	notifications NotificationService
	watchlist     WatchlistService
}

// newFixture builds the services. A nil mailer disables external delivery.
func newFixture(t *testing.T, mailer *MockNotifier) *fixture {
	t.Helper()
	gormDB := newTestDB(t)

	userRepo := repository.NewUserRepository(gormDB)
	sectorRepo := repository.NewSectorRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)

	var n notifier.Notifier
	if mailer != nil {
		n = mailer
	}
	dispatcher := notifier.NewDispatcher(n, notificationRepo, zap.NewNop(), time.Second)

	alerts := NewAlertService(productRepo, notificationRepo,
		NewRecipientResolver(userRepo, watchlistRepo), dispatcher, zap.NewNop())

	return &fixture{
		db:               gormDB,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		watchlistRepo:    watchlistRepo,
		dispatcher:       dispatcher,
		products:         NewProductService(productRepo, sectorRepo, alerts, zap.NewNop()),
		alerts:           alerts,
		stats:            NewStatsService(productRepo, notificationRepo),
		notifications:    NewNotificationService(notificationRepo),
		watchlist:        NewWatchlistService(watchlistRepo, productRepo),
	}
}

func (f *fixture) createUser(t *testing.T, username string, emailNotifications bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:           username,
		Email:              username + "@example.com",
		PasswordHash:       "x",
		EmailNotifications: emailNotifications,
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) sectorID(t *testing.T) uint {
	t.Helper()
	var sector model.Sector
	require.NoError(t, f.db.Order("id").First(&sector).Error)
	return sector.ID
}

func (f *fixture) input(t *testing.T, name, sku string, stockQty, minStock int) ProductInput {
	t.Helper()
	return ProductInput{
		Name:          name,
		SKU:           sku,
		SectorID:      f.sectorID(t),
		Price:         decimal.RequireFromString("9.99"),
		StockQuantity: intPtr(stockQty),
		MinStock:      intPtr(minStock),
	}
}

func (f *fixture) notificationsFor(t *testing.T, userID, productID uint) []model.Notification {
	t.Helper()
	var rows []model.Notification
	require.NoError(t, f.db.Where("user_id = ? AND product_id = ?", userID, productID).Order("id").Find(&rows).Error)
	return rows
}

func (f *fixture) unreadFor(t *testing.T, userID, productID uint) int {
	t.Helper()
	unread := 0
	for _, n := range f.notificationsFor(t, userID, productID) {
		if !n.IsRead {
			unread++
		}
	}
	return unread
}

func intPtr(v int) *int {
	return &v
}
