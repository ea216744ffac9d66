package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inquiry-service/internal/models"
	"inquiry-service/internal/policy"
	"inquiry-service/internal/service"
	"inquiry-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type mockInquiryService struct {
	mock.Mock
}

func (m *mockInquiryService) Create(ctx context.Context, actor policy.Actor, req *service.CreateInquiryRequest) (*models.Inquiry, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *mockInquiryService) ListByBuyer(ctx context.Context, actor policy.Actor, buyerID int64) ([]models.InquiryDetail, error) {
	args := m.Called(ctx, actor, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Error(1)
}

func (m *mockInquiryService) ListBySeller(ctx context.Context, actor policy.Actor, sellerID int64) ([]models.InquiryDetail, error) {
	args := m.Called(ctx, actor, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Error(1)
}

func (m *mockInquiryService) UpdateStatus(ctx context.Context, actor policy.Actor, id int64, status string) (*models.Inquiry, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func newTestRouter(svc InquiryService) *gin.Engine {
	router := gin.New()
	NewHandler(svc, stubPinger{}, testAPIKey).SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func buyerHeaders(id string) map[string]string {
	return map[string]string{
		headerAPIKey:    testAPIKey,
		headerActorID:   id,
		headerActorRole: models.RoleBuyer,
	}
}

func sellerHeaders(id string) map[string]string {
	return map[string]string{
		headerAPIKey:    testAPIKey,
		headerActorID:   id,
		headerActorRole: models.RoleSeller,
	}
}

func TestMissingAPIKey(t *testing.T) {
	router := newTestRouter(&mockInquiryService{})

	w := doRequest(router, http.MethodGet, "/api/inquiries?buyer_id=3", nil, map[string]string{
		headerActorID:   "3",
		headerActorRole: models.RoleBuyer,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestWrongAPIKey(t *testing.T) {
	router := newTestRouter(&mockInquiryService{})

	headers := buyerHeaders("3")
	headers[headerAPIKey] = "wrong"
	w := doRequest(router, http.MethodGet, "/api/inquiries?buyer_id=3", nil, headers)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMissingActor(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/inquiries?buyer_id=3", nil, map[string]string{
		headerAPIKey: testAPIKey,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "ListByBuyer", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInquiry(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	svc.On("Create", mock.Anything, policy.Actor{ID: 3, Role: models.RoleBuyer}, mock.AnythingOfType("*service.CreateInquiryRequest")).
		Return(&models.Inquiry{ID: 101, CarID: 7, BuyerID: 3, SellerID: 42, Message: "Interested", Status: models.StatusNew}, nil)

	w := doRequest(router, http.MethodPost, "/api/inquiries", gin.H{
		"car_id":   7,
		"buyer_id": 3,
		"message":  "Interested",
	}, buyerHeaders("3"))

	require.Equal(t, http.StatusCreated, w.Code)

	var inq models.Inquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inq))
	assert.Equal(t, int64(101), inq.ID)
	assert.Equal(t, models.StatusNew, inq.Status)
	svc.AssertExpectations(t)
}

func TestCreateInquiryMissingFields(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/inquiries", gin.H{"car_id": 7}, buyerHeaders("3"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInquiryValidationError(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, store.ErrValidation)

	w := doRequest(router, http.MethodPost, "/api/inquiries", gin.H{
		"car_id":   7,
		"buyer_id": 3,
		"message":  "x",
	}, buyerHeaders("3"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope["error"])
}

func TestListByBuyer(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	items := []models.InquiryDetail{
		{Inquiry: models.Inquiry{ID: 2, BuyerID: 3, SellerID: 42, Status: models.StatusNew}, CarName: "Toyota Corolla"},
		{Inquiry: models.Inquiry{ID: 1, BuyerID: 3, SellerID: 42, Status: models.StatusDone}},
	}
	svc.On("ListByBuyer", mock.Anything, policy.Actor{ID: 3, Role: models.RoleBuyer}, int64(3)).Return(items, nil)

	w := doRequest(router, http.MethodGet, "/api/inquiries?buyer_id=3", nil, buyerHeaders("3"))

	require.Equal(t, http.StatusOK, w.Code)

	var got []models.InquiryDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Toyota Corolla", got[0].CarName)
}

func TestListBySellerForbidden(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	svc.On("ListBySeller", mock.Anything, mock.Anything, int64(6)).Return(nil, policy.ErrForbidden)

	w := doRequest(router, http.MethodGet, "/api/inquiries?seller_id=6", nil, sellerHeaders("5"))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListWithoutFilter(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/inquiries", nil, buyerHeaders("3"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/inquiries?buyer_id=3&seller_id=4", nil, buyerHeaders("3"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	svc.On("UpdateStatus", mock.Anything, policy.Actor{ID: 42, Role: models.RoleSeller}, int64(101), models.StatusAccepted).
		Return(&models.Inquiry{ID: 101, BuyerID: 3, SellerID: 42, Status: models.StatusAccepted}, nil)

	w := doRequest(router, http.MethodPut, "/api/inquiries/101/status", gin.H{"status": "accepted"}, sellerHeaders("42"))

	require.Equal(t, http.StatusOK, w.Code)

	var inq models.Inquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inq))
	assert.Equal(t, models.StatusAccepted, inq.Status)
}

func TestUpdateStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"invalid status", store.ErrInvalidStatus, http.StatusBadRequest},
		{"forbidden", policy.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInquiryService{}
			router := newTestRouter(svc)

			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err)

			w := doRequest(router, http.MethodPut, "/api/inquiries/101/status", gin.H{"status": "accepted"}, sellerHeaders("42"))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestUpdateStatusBadID(t *testing.T) {
	svc := &mockInquiryService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPut, "/api/inquiries/abc/status", gin.H{"status": "accepted"}, sellerHeaders("42"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&mockInquiryService{})

	w := doRequest(router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness(t *testing.T) {
	router := gin.New()
	NewHandler(&mockInquiryService{}, stubPinger{err: context.DeadlineExceeded}, testAPIKey).SetupRoutes(router)

	w := doRequest(router, http.MethodGet, "/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
