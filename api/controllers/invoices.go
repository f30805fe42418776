package controllers

import (
	"net/http"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/invoices"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type createInvoiceRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	ItemID        string `json:"item_id" validate:"required,uuid"`
	PricePerItem  string `json:"price_per_item" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	Shipping      string `json:"shipping,omitempty"`
}

func (req createInvoiceRequest) toInput() (invoices.CreateInvoiceInput, error) {
	itemID, err := parseUUIDField(req.ItemID, "item_id")
	if err != nil {
		return invoices.CreateInvoiceInput{}, err
	}
	price, err := parseMoney(req.PricePerItem, "price_per_item")
	if err != nil {
		return invoices.CreateInvoiceInput{}, err
	}
	input := invoices.CreateInvoiceInput{
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		ItemID:        itemID,
		PricePerItem:  price,
		Quantity:      req.Quantity,
	}
	if req.Shipping != "" {
		shipping, err := parseMoney(req.Shipping, "shipping")
		if err != nil {
			return invoices.CreateInvoiceInput{}, err
		}
		input.Shipping = shipping
	}
	return input, nil
}

// CreateInvoice issues an invoice with derived totals. Invoices are
// immutable once issued.
func CreateInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

// GetInvoice returns one invoice.
func GetInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// ListInvoices returns a page of invoices, newest first.
func ListInvoices(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), invoices.ListParams{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteInvoice removes an invoice.
func DeleteInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
