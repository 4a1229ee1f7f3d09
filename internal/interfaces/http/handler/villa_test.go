package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	societyapp "github.com/villaledger/backend/internal/application/society"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
	"github.com/villaledger/backend/internal/interfaces/http/dto"
)

// MockVillaRepository implements society.VillaRepository for testing
type MockVillaRepository struct {
	mock.Mock
}

func (m *MockVillaRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Villa, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Villa), args.Error(1)
}

func (m *MockVillaRepository) FindByNumber(ctx context.Context, villaNumber string) (*society.Villa, error) {
	args := m.Called(ctx, villaNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Villa), args.Error(1)
}

func (m *MockVillaRepository) FindAll(ctx context.Context, filter society.VillaFilter) ([]society.Villa, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Villa), args.Error(1)
}

func (m *MockVillaRepository) Save(ctx context.Context, villa *society.Villa) error {
	args := m.Called(ctx, villa)
	return args.Error(0)
}

func (m *MockVillaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVillaRepository) Count(ctx context.Context, filter society.VillaFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository implements society.PaymentRepository for testing
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTuple(ctx context.Context, villaID, categoryID uuid.UUID, month, year int) (*society.Payment, error) {
	args := m.Called(ctx, villaID, categoryID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByVilla(ctx context.Context, villaID uuid.UUID, filter society.PaymentFilter) ([]society.Payment, error) {
	args := m.Called(ctx, villaID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPeriod(ctx context.Context, month, year int) ([]society.Payment, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]society.Payment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]society.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateOrMerge(ctx context.Context, incoming *society.Payment) (*society.Payment, bool, error) {
	args := m.Called(ctx, incoming)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*society.Payment), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *society.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) CountByVilla(ctx context.Context, villaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, villaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumReceivedForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPaymentCategoryRepository implements society.PaymentCategoryRepository for testing
type MockPaymentCategoryRepository struct {
	mock.Mock
}

func (m *MockPaymentCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.PaymentCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.PaymentCategory), args.Error(1)
}

func (m *MockPaymentCategoryRepository) FindAll(ctx context.Context, filter society.CategoryFilter) ([]society.PaymentCategory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.PaymentCategory), args.Error(1)
}

func (m *MockPaymentCategoryRepository) Save(ctx context.Context, category *society.PaymentCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func setupVillaRouter(villaRepo *MockVillaRepository, paymentRepo *MockPaymentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := societyapp.NewVillaService(villaRepo, paymentRepo)
	h := NewVillaHandler(service)

	router := gin.New()
	router.POST("/villas", h.Create)
	router.GET("/villas", h.List)
	router.GET("/villas/:id", h.GetByID)
	router.PUT("/villas/:id", h.Update)
	router.DELETE("/villas/:id", h.Delete)
	return router
}

func newTestVilla(number string) *society.Villa {
	resident := "A Resident"
	villa, _ := society.NewVilla(number, &resident, nil)
	return villa
}

func TestVillaHandlerCreate(t *testing.T) {
	t.Run("creates villa", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		villaRepo.On("FindByNumber", mock.Anything, "V-101").Return(nil, shared.ErrNotFound)
		villaRepo.On("Save", mock.Anything, mock.AnythingOfType("*society.Villa")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"villa_number":  "V-101",
			"resident_name": "A Resident",
		})
		req := httptest.NewRequest("POST", "/villas", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		villaRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate villa number", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		villaRepo.On("FindByNumber", mock.Anything, "V-101").Return(newTestVilla("V-101"), nil)

		body, _ := json.Marshal(map[string]any{"villa_number": "V-101"})
		req := httptest.NewRequest("POST", "/villas", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("rejects missing villa number", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		req := httptest.NewRequest("POST", "/villas", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVillaHandlerGetByID(t *testing.T) {
	t.Run("returns villa", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		villa := newTestVilla("V-200")
		villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)

		req := httptest.NewRequest("GET", "/villas/"+villa.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "V-200")
	})

	t.Run("returns 404 for unknown villa", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		id := uuid.New()
		villaRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest("GET", "/villas/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		req := httptest.NewRequest("GET", "/villas/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVillaHandlerList(t *testing.T) {
	villaRepo := new(MockVillaRepository)
	paymentRepo := new(MockPaymentRepository)
	router := setupVillaRouter(villaRepo, paymentRepo)

	villas := []society.Villa{*newTestVilla("V-1"), *newTestVilla("V-2")}
	villaRepo.On("FindAll", mock.Anything, mock.AnythingOfType("society.VillaFilter")).Return(villas, nil)

	req := httptest.NewRequest("GET", "/villas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	items, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestVillaHandlerDelete(t *testing.T) {
	t.Run("deletes villa without payments", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		villa := newTestVilla("V-300")
		villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
		paymentRepo.On("CountByVilla", mock.Anything, villa.ID).Return(int64(0), nil)
		villaRepo.On("Delete", mock.Anything, villa.ID).Return(nil)

		req := httptest.NewRequest("DELETE", "/villas/"+villa.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		villaRepo.AssertExpectations(t)
	})

	t.Run("refuses villa with ledger history", func(t *testing.T) {
		villaRepo := new(MockVillaRepository)
		paymentRepo := new(MockPaymentRepository)
		router := setupVillaRouter(villaRepo, paymentRepo)

		villa := newTestVilla("V-301")
		villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
		paymentRepo.On("CountByVilla", mock.Anything, villa.ID).Return(int64(4), nil)

		req := httptest.NewRequest("DELETE", "/villas/"+villa.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeConstraintViolation, resp.Error.Code)
		villaRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
