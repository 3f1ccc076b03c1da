package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanslot/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAllocator struct{ mock.Mock }

func (m *MockAllocator) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockAllocator) Cancel(ctx context.Context, id int, phone string) error {
	return m.Called(ctx, id, phone).Error(0)
}

func (m *MockAllocator) ListByPhone(ctx context.Context, phone string) ([]BookingWithReview, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithReview), args.Error(1)
}

func (m *MockAllocator) ListAll(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockAllocator) AdminSetStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func newTestRouter(alloc Allocator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(alloc)

	r := gin.New()
	r.POST("/api/bookings", h.Create)
	r.GET("/api/bookings/check", h.CheckByPhone)
	r.DELETE("/api/bookings/:id", h.Cancel)
	r.PUT("/api/admin/bookings/:id/status", h.AdminUpdateStatus)
	return r
}

func createBody() []byte {
	body, _ := json.Marshal(CreateRequest{
		ServiceID:       1,
		CustomerName:    "Sara",
		CustomerPhone:   "0501234567",
		CustomerAddress: "12 Palm St",
		BookingDate:     "2025-06-06",
		BookingTime:     "10:00",
		PaymentMethod:   "cash",
	})
	return body
}

func TestHandlerCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		setupMock  func(*MockAllocator)
		wantStatus int
	}{
		{
			name: "success",
			body: createBody(),
			setupMock: func(m *MockAllocator) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(&Booking{ID: 1, Status: StatusPending}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed json",
			body:       []byte(`{"service_id":`),
			setupMock:  func(m *MockAllocator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad payment method",
			body: func() []byte {
				b, _ := json.Marshal(map[string]any{
					"service_id": 1, "customer_name": "Sara", "customer_phone": "0501234567",
					"customer_address": "12 Palm St", "booking_date": "2025-06-06",
					"booking_time": "10:00", "payment_method": "goats",
				})
				return b
			}(),
			setupMock:  func(m *MockAllocator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad date format",
			body: func() []byte {
				b, _ := json.Marshal(map[string]any{
					"service_id": 1, "customer_name": "Sara", "customer_phone": "0501234567",
					"customer_address": "12 Palm St", "booking_date": "06/06/2025",
					"booking_time": "10:00", "payment_method": "cash",
				})
				return b
			}(),
			setupMock:  func(m *MockAllocator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown service",
			body: createBody(),
			setupMock: func(m *MockAllocator) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, catalog.ErrServiceNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "unregistered customer",
			body: createBody(),
			setupMock: func(m *MockAllocator) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, ErrCustomerRequired)
			},
			wantStatus: http.StatusPreconditionFailed,
		},
		{
			name: "slot taken",
			body: createBody(),
			setupMock: func(m *MockAllocator) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, ErrSlotTaken)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := new(MockAllocator)
			tt.setupMock(alloc)
			router := newTestRouter(alloc)

			req := httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandlerCheckByPhone(t *testing.T) {
	alloc := new(MockAllocator)
	alloc.On("ListByPhone", mock.Anything, "0501234567").
		Return([]BookingWithReview{{Booking: Booking{ID: 1}, HasReview: true}}, nil)
	router := newTestRouter(alloc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/bookings/check?phone=0501234567", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var bookings []BookingWithReview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].HasReview)

	// missing phone parameter
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/bookings/check", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerCancel(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMock  func(*MockAllocator)
		wantStatus int
	}{
		{
			name: "success",
			url:  "/api/bookings/1?phone=0501234567",
			setupMock: func(m *MockAllocator) {
				m.On("Cancel", mock.Anything, 1, "0501234567").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-numeric id",
			url:        "/api/bookings/abc?phone=0501234567",
			setupMock:  func(m *MockAllocator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing phone",
			url:        "/api/bookings/1",
			setupMock:  func(m *MockAllocator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not found",
			url:  "/api/bookings/99?phone=0501234567",
			setupMock: func(m *MockAllocator) {
				m.On("Cancel", mock.Anything, 99, "0501234567").Return(ErrBookingNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong owner",
			url:  "/api/bookings/1?phone=0559999999",
			setupMock: func(m *MockAllocator) {
				m.On("Cancel", mock.Anything, 1, "0559999999").Return(ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "already terminal",
			url:  "/api/bookings/1?phone=0501234567",
			setupMock: func(m *MockAllocator) {
				m.On("Cancel", mock.Anything, 1, "0501234567").Return(ErrTerminalStatus)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := new(MockAllocator)
			tt.setupMock(alloc)
			router := newTestRouter(alloc)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("DELETE", tt.url, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandlerAdminUpdateStatus(t *testing.T) {
	alloc := new(MockAllocator)
	alloc.On("AdminSetStatus", mock.Anything, 5, "completed").Return(nil)
	router := newTestRouter(alloc)

	body, _ := json.Marshal(StatusUpdateRequest{Status: "completed"})
	req := httptest.NewRequest("PUT", "/api/admin/bookings/5/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// invalid status value
	alloc.On("AdminSetStatus", mock.Anything, 5, "archived").Return(ErrInvalidStatus)
	body, _ = json.Marshal(StatusUpdateRequest{Status: "archived"})
	req = httptest.NewRequest("PUT", "/api/admin/bookings/5/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
