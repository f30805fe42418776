package controllers

import (
	"net/http"
	"time"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/purchases"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type createPurchaseRequest struct {
	ItemID       string     `json:"item_id" validate:"required,uuid"`
	VendorID     string     `json:"vendor_id" validate:"required,uuid"`
	Quantity     int        `json:"quantity" validate:"required,min=1"`
	UnitPrice    string     `json:"unit_price" validate:"required"`
	Status       *string    `json:"status,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (req createPurchaseRequest) toInput() (purchases.CreatePurchaseInput, error) {
	itemID, err := parseUUIDField(req.ItemID, "item_id")
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	vendorID, err := parseUUIDField(req.VendorID, "vendor_id")
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	unitPrice, err := parseMoney(req.UnitPrice, "unit_price")
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	status, err := parsePurchaseStatusField(req.Status)
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}

	return purchases.CreatePurchaseInput{
		ItemID:       itemID,
		VendorID:     vendorID,
		Quantity:     req.Quantity,
		UnitPrice:    unitPrice,
		Status:       status,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	}, nil
}

type updatePurchaseRequest struct {
	Quantity     *int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
	UnitPrice    *string    `json:"unit_price,omitempty"`
	Status       *string    `json:"status,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (req updatePurchaseRequest) toInput() (purchases.UpdatePurchaseInput, error) {
	input := purchases.UpdatePurchaseInput{
		Quantity:     req.Quantity,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	}
	if req.UnitPrice != nil {
		unitPrice, err := parseMoney(*req.UnitPrice, "unit_price")
		if err != nil {
			return purchases.UpdatePurchaseInput{}, err
		}
		input.UnitPrice = &unitPrice
	}
	status, err := parsePurchaseStatusField(req.Status)
	if err != nil {
		return purchases.UpdatePurchaseInput{}, err
	}
	input.Status = status
	return input, nil
}

func parsePurchaseStatusField(raw *string) (*enums.PurchaseStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParsePurchaseStatus(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase status").
			WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}

// CreatePurchase places a replenishment order with a vendor.
func CreatePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		purchase, err := svc.CreatePurchase(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

// GetPurchase returns one purchase order.
func GetPurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		purchase, err := svc.GetPurchase(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, purchase)
	}
}

// ListPurchases returns a page of purchases, optionally filtered by status.
func ListPurchases(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := purchases.ListParams{Limit: limit, Cursor: cursor}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := parsePurchaseStatusField(&raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			params.Status = status
		}
		result, err := svc.ListPurchases(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdatePurchase applies partial changes, including status transitions.
// Moving to delivered is what credits stock, exactly once.
func UpdatePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		purchase, err := svc.UpdatePurchase(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, purchase)
	}
}

// DeletePurchase removes a purchase order. Stock already credited by a
// delivered purchase is not reversed.
func DeletePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePurchase(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
