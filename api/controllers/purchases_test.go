package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/internal/purchases"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
	"github.com/tmekonnen/stockroom-backend/pkg/types"
)

func TestCreatePurchase(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	makeRequest := func(stub *stubPurchaseService, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreatePurchase(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	validBody := func(status string) string {
		payload := map[string]any{
			"item_id":    uuid.New().String(),
			"vendor_id":  uuid.New().String(),
			"quantity":   4,
			"unit_price": "2.50",
		}
		if status != "" {
			payload["status"] = status
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		return string(raw)
	}

	t.Run("unknown status rejected", func(t *testing.T) {
		stub := &stubPurchaseService{}
		rec := makeRequest(stub, validBody("ordered"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
		}
		var envelope types.ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode error envelope: %v", err)
		}
		if envelope.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %q", envelope.Error.Code)
		}
		details, ok := envelope.Error.Details.(map[string]any)
		if !ok || details["field"] != "status" {
			t.Fatalf("expected details naming the status field, got %v", envelope.Error.Details)
		}
		if stub.created {
			t.Fatalf("service must not be called on invalid status")
		}
	})

	t.Run("malformed unit price rejected", func(t *testing.T) {
		stub := &stubPurchaseService{}
		body := `{"item_id":"` + uuid.New().String() + `","vendor_id":"` + uuid.New().String() + `","quantity":1,"unit_price":"two"}`
		rec := makeRequest(stub, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed unit price, got %d", rec.Code)
		}
		if stub.created {
			t.Fatalf("service must not be called on invalid price")
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubPurchaseService{}
		rec := makeRequest(stub, validBody("shipped"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on success, got %d", rec.Code)
		}
		if !stub.created {
			t.Fatalf("expected CreatePurchase to be invoked")
		}
		if stub.lastInput.Status == nil || *stub.lastInput.Status != enums.PurchaseStatusShipped {
			t.Fatalf("expected shipped status forwarded, got %v", stub.lastInput.Status)
		}
		if stub.lastInput.UnitPrice.String() != "2.5" {
			t.Fatalf("expected parsed unit price, got %s", stub.lastInput.UnitPrice)
		}
	})
}

type stubPurchaseService struct {
	created   bool
	lastInput purchases.CreatePurchaseInput
}

func (s *stubPurchaseService) CreatePurchase(ctx context.Context, input purchases.CreatePurchaseInput) (*purchases.PurchaseDTO, error) {
	s.created = true
	s.lastInput = input
	status := enums.PurchaseStatusPending
	if input.Status != nil {
		status = *input.Status
	}
	return &purchases.PurchaseDTO{
		ID:        uuid.New(),
		ItemID:    input.ItemID,
		VendorID:  input.VendorID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Status:    status,
	}, nil
}

func (s *stubPurchaseService) UpdatePurchase(ctx context.Context, id uuid.UUID, input purchases.UpdatePurchaseInput) (*purchases.PurchaseDTO, error) {
	panic("unimplemented")
}

func (s *stubPurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*purchases.PurchaseDTO, error) {
	panic("unimplemented")
}

func (s *stubPurchaseService) ListPurchases(ctx context.Context, params purchases.ListParams) (*purchases.ListResult, error) {
	panic("unimplemented")
}

func (s *stubPurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}
