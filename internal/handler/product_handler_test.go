package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockflow/internal/auth"
	"stockflow/internal/errors"
	"stockflow/internal/model"
	"stockflow/internal/service"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, userID uint, in service.ProductInput) (uint, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id uint, in service.ProductInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) GetProduct(ctx context.Context, id uint) (*model.ProductView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductView), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]model.ProductView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ProductView), args.Error(1)
}

func (m *MockProductService) ListLowStockProducts(ctx context.Context) ([]model.ProductView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ProductView), args.Error(1)
}

func (m *MockProductService) ListSKUs(ctx context.Context) ([]model.SKUEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.SKUEntry), args.Error(1)
}

// MockAlertService is a mock implementation of AlertService.
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) NotifyIfLowStock(ctx context.Context, productID uint) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func newContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(UserContextKey, &auth.Claims{UserID: userID, Username: "alice"})
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Code)
	resp, ok := httpErr.Message.(errors.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, code, resp.Code)
}

func TestProductHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockProductService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: `{"name":"Widget","sku":"wid-1","sector_id":1,"price":"19.99","stock_quantity":5,"min_stock":10}`,
			setupMock: func(m *MockProductService) {
				m.On("CreateProduct", mock.Anything, uint(1), mock.MatchedBy(func(in service.ProductInput) bool {
					return in.SKU == "wid-1" && in.Price.Equal(decimal.RequireFromString("19.99")) &&
						in.StockQuantity != nil && *in.StockQuantity == 5 &&
						in.MinStock != nil && *in.MinStock == 10
				})).Return(uint(42), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing sku",
			body:           `{"name":"Widget","sector_id":1,"price":"19.99","stock_quantity":5}`,
			setupMock:      func(m *MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "missing stock quantity",
			body:           `{"name":"Widget","sku":"w-1","sector_id":1,"price":"9.99"}`,
			setupMock:      func(m *MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "zero stock quantity is allowed",
			body:           `{"name":"Widget","sku":"w-0","sector_id":1,"price":"9.99","stock_quantity":0}`,
			setupMock: func(m *MockProductService) {
				m.On("CreateProduct", mock.Anything, uint(1), mock.MatchedBy(func(in service.ProductInput) bool {
					return in.StockQuantity != nil && *in.StockQuantity == 0
				})).Return(uint(42), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate sku",
			body: `{"name":"Widget","sku":"WID-1","sector_id":1,"price":19.99,"stock_quantity":5}`,
			setupMock: func(m *MockProductService) {
				m.On("CreateProduct", mock.Anything, uint(1), mock.Anything).Return(uint(0), errors.ErrDuplicateSKU)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "DUPLICATE_SKU",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			tt.setupMock(svc)
			h := NewProductHandler(svc, new(MockAlertService))

			c, rec := newContext(http.MethodPost, "/api/products", tt.body, 1)
			err := h.Create(c)

			if tt.expectedCode != "" {
				assertHTTPError(t, err, tt.expectedStatus, tt.expectedCode)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, rec.Code)

				var resp CreatedResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, uint(42), resp.ID)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_UpdateNotFound(t *testing.T) {
	svc := new(MockProductService)
	svc.On("UpdateProduct", mock.Anything, uint(9), mock.Anything).Return(errors.ErrProductNotFound)
	h := NewProductHandler(svc, new(MockAlertService))

	c, _ := newContext(http.MethodPut, "/api/products/9",
		`{"name":"Widget","sku":"W-9","sector_id":1,"price":"1.00","stock_quantity":1}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("9")

	assertHTTPError(t, h.Update(c), http.StatusNotFound, "PRODUCT_NOT_FOUND")
	svc.AssertExpectations(t)
}

func TestProductHandler_DeleteRejectsBadID(t *testing.T) {
	h := NewProductHandler(new(MockProductService), new(MockAlertService))

	c, _ := newContext(http.MethodDelete, "/api/products/abc", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	assertHTTPError(t, h.Delete(c), http.StatusBadRequest, "INVALID_ID")
}

func TestProductHandler_Notify(t *testing.T) {
	alerts := new(MockAlertService)
	alerts.On("NotifyIfLowStock", mock.Anything, uint(3)).Return(2, nil)
	h := NewProductHandler(new(MockProductService), alerts)

	c, rec := newContext(http.MethodPost, "/api/products/3/notify", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.Notify(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"created":2}`, rec.Body.String())
	alerts.AssertExpectations(t)
}

func TestProductHandler_ServiceFailureIsOpaque(t *testing.T) {
	svc := new(MockProductService)
	svc.On("ListLowStockProducts", mock.Anything).Return([]model.ProductView(nil), assert.AnError)
	h := NewProductHandler(svc, new(MockAlertService))

	c, _ := newContext(http.MethodGet, "/api/products/low-stock", "", 1)
	err := h.LowStock(c)

	assertHTTPError(t, err, http.StatusInternalServerError, "INTERNAL_ERROR")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.NotContains(t, httpErr.Message.(errors.ErrorResponse).Error, assert.AnError.Error())
}

func TestProductHandler_UpdateRequiresStockQuantity(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, new(MockAlertService))

	c, _ := newContext(http.MethodPut, "/api/products/9",
		`{"name":"Widget","sku":"W-9","sector_id":1,"price":"1.00"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("9")

	assertHTTPError(t, h.Update(c), http.StatusBadRequest, "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
}
