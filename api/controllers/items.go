package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/catalog"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type createItemRequest struct {
	Name         string     `json:"name" validate:"required"`
	Slug         string     `json:"slug,omitempty"`
	Description  string     `json:"description,omitempty"`
	CategoryID   string     `json:"category_id" validate:"required,uuid"`
	Quantity     int        `json:"quantity" validate:"min=0"`
	Price        string     `json:"price" validate:"required"`
	ExpiringDate *time.Time `json:"expiring_date,omitempty"`
	VendorID     *string    `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
}

type updateItemRequest struct {
	Name         *string    `json:"name,omitempty"`
	Slug         *string    `json:"slug,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CategoryID   *string    `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Price        *string    `json:"price,omitempty"`
	ExpiringDate *time.Time `json:"expiring_date,omitempty"`
	VendorID     *string    `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}

func (p createItemRequest) toInput() (catalog.CreateItemInput, error) {
	categoryID, err := parseUUIDField(p.CategoryID, "category_id")
	if err != nil {
		return catalog.CreateItemInput{}, err
	}
	price, err := parseMoney(p.Price, "price")
	if err != nil {
		return catalog.CreateItemInput{}, err
	}
	input := catalog.CreateItemInput{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		CategoryID:   categoryID,
		Quantity:     p.Quantity,
		Price:        price,
		ExpiringDate: p.ExpiringDate,
	}
	if p.VendorID != nil {
		vendorID, err := parseUUIDField(*p.VendorID, "vendor_id")
		if err != nil {
			return catalog.CreateItemInput{}, err
		}
		input.VendorID = &vendorID
	}
	return input, nil
}

func (p updateItemRequest) toInput() (catalog.UpdateItemInput, error) {
	input := catalog.UpdateItemInput{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		ExpiringDate: p.ExpiringDate,
	}
	if p.CategoryID != nil {
		categoryID, err := parseUUIDField(*p.CategoryID, "category_id")
		if err != nil {
			return catalog.UpdateItemInput{}, err
		}
		input.CategoryID = &categoryID
	}
	if p.Price != nil {
		price, err := parseMoney(*p.Price, "price")
		if err != nil {
			return catalog.UpdateItemInput{}, err
		}
		input.Price = &price
	}
	if p.VendorID != nil {
		vendorID, err := parseUUIDField(*p.VendorID, "vendor_id")
		if err != nil {
			return catalog.UpdateItemInput{}, err
		}
		input.VendorID = &vendorID
	}
	return input, nil
}

// CreateItem adds a stocked item with its opening quantity.
func CreateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// GetItem returns one item.
func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ListItems returns a page of items, optionally filtered by category.
func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := catalog.ListParams{Limit: limit, Cursor: cursor}
		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			categoryID, err := parseUUIDField(raw, "category_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			params.CategoryID = &categoryID
		}
		result, err := svc.ListItems(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateItem applies partial changes to an item. Stock quantity is not
// editable here; it only moves through sales and delivered purchases.
func UpdateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// DeleteItem removes an item that no sale or purchase references.
func DeleteItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
