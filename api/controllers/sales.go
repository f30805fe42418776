package controllers

import (
	"net/http"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/sales"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type saleLineRequest struct {
	ItemID   string  `json:"item_id" validate:"required,uuid"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    *string `json:"price,omitempty"`
}

type createSaleRequest struct {
	CustomerID    string            `json:"customer_id" validate:"required,uuid"`
	TaxPercentage string            `json:"tax_percentage" validate:"required"`
	AmountPaid    string            `json:"amount_paid" validate:"required"`
	Lines         []saleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (req createSaleRequest) toInput() (sales.CreateSaleInput, error) {
	customerID, err := parseUUIDField(req.CustomerID, "customer_id")
	if err != nil {
		return sales.CreateSaleInput{}, err
	}
	taxPercentage, err := parseMoney(req.TaxPercentage, "tax_percentage")
	if err != nil {
		return sales.CreateSaleInput{}, err
	}
	amountPaid, err := parseMoney(req.AmountPaid, "amount_paid")
	if err != nil {
		return sales.CreateSaleInput{}, err
	}

	lines := make([]sales.SaleLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := parseUUIDField(line.ItemID, "item_id")
		if err != nil {
			return sales.CreateSaleInput{}, err
		}
		parsed := sales.SaleLineInput{
			ItemID:   itemID,
			Quantity: line.Quantity,
		}
		if line.Price != nil {
			price, err := parseMoney(*line.Price, "price")
			if err != nil {
				return sales.CreateSaleInput{}, err
			}
			parsed.Price = &price
		}
		lines = append(lines, parsed)
	}

	return sales.CreateSaleInput{
		CustomerID:    customerID,
		TaxPercentage: taxPercentage,
		AmountPaid:    amountPaid,
		Lines:         lines,
	}, nil
}

// CreateSale commits a sale: stock is decremented and totals are derived in
// one transaction.
func CreateSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.CreateSale(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// GetSale returns one sale with its line details.
func GetSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.GetSale(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// ListSales returns a page of sales, newest first.
func ListSales(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListSales(r.Context(), sales.ListParams{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteSale removes a sale record. Stock already sold stays sold.
func DeleteSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteSale(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
