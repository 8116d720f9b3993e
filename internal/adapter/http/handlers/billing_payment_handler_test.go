package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repairshop/internal/adapter/http/handlers/mocks"
	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *BillingPaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments/job/:job_id", h.CreatePaymentByJobID)
	r.GET("/v1/payments/job/:job_id", h.GetPaymentByJobID)
	return r
}

func TestBillingPaymentHandler_CreatePaymentByJobID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created with raw provider body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().CreateForJob(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, jobID string, payload json.RawMessage) (entities.BillingPayment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("handler forwarded invalid json: %v", err)
				}
				if m["payment_method_id"] != "pix" {
					t.Fatalf("expected the provider body forwarded, got %v", m)
				}
				return entities.BillingPayment{ID: "mp-1", JobID: jobID, Amount: 2016, Status: entities.PaymentStatusApproved}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/job-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("provider_payload envelope is unwrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().CreateForJob(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, jobID string, payload json.RawMessage) (entities.BillingPayment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("handler forwarded invalid json: %v", err)
				}
				if m["payment_method_id"] != "bolbradesco" {
					t.Fatalf("expected the unwrapped payload, got %v", m)
				}
				return entities.BillingPayment{ID: "mp-2", JobID: jobID}, nil
			})

		body := `{"provider_payload":{"payment_method_id":"bolbradesco"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/job-1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/job-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("job not ready maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().CreateForJob(gomock.Any(), "job-1", gomock.Any()).
			Return(entities.BillingPayment{}, usecase.ErrJobNotReady)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/job-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway not configured maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().CreateForJob(gomock.Any(), "job-1", gomock.Any()).
			Return(entities.BillingPayment{}, usecase.ErrPaymentGatewayNotConfigured)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/job-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("job missing maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().CreateForJob(gomock.Any(), "ghost", gomock.Any()).
			Return(entities.BillingPayment{}, usecase.ErrJobNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/job/ghost", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestBillingPaymentHandler_GetPaymentByJobID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the latest payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
		uc.EXPECT().ListByJobID(gomock.Any(), "job-1").Return([]entities.BillingPayment{
			{ID: "pay-1", JobID: "job-1", Date: older},
			{ID: "pay-2", JobID: "job-1", Date: newer},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/job/job-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["id"] != "pay-2" {
			t.Fatalf("expected the latest payment pay-2, got %v", body["id"])
		}
	})

	t.Run("no payments maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		r := newPaymentRouter(NewBillingPaymentHandler(uc))

		uc.EXPECT().ListByJobID(gomock.Any(), "job-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/job/job-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
