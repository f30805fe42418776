package controllers

import (
	"net/http"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/bills"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type createBillRequest struct {
	InstitutionName string  `json:"institution_name" validate:"required"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Address         *string `json:"address,omitempty"`
	Description     *string `json:"description,omitempty"`
	PaymentDetails  string  `json:"payment_details" validate:"required"`
	Amount          string  `json:"amount" validate:"required"`
	Status          *string `json:"status,omitempty"`
}

func (req createBillRequest) toInput() (bills.CreateBillInput, error) {
	amount, err := parseMoney(req.Amount, "amount")
	if err != nil {
		return bills.CreateBillInput{}, err
	}
	status, err := parsePaymentStatusField(req.Status)
	if err != nil {
		return bills.CreateBillInput{}, err
	}
	return bills.CreateBillInput{
		InstitutionName: req.InstitutionName,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		Description:     req.Description,
		PaymentDetails:  req.PaymentDetails,
		Amount:          amount,
		Status:          status,
	}, nil
}

type updateBillRequest struct {
	InstitutionName *string `json:"institution_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Address         *string `json:"address,omitempty"`
	Description     *string `json:"description,omitempty"`
	PaymentDetails  *string `json:"payment_details,omitempty"`
	Amount          *string `json:"amount,omitempty"`
	Status          *string `json:"status,omitempty"`
}

func (req updateBillRequest) toInput() (bills.UpdateBillInput, error) {
	input := bills.UpdateBillInput{
		InstitutionName: req.InstitutionName,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		Description:     req.Description,
		PaymentDetails:  req.PaymentDetails,
	}
	if req.Amount != nil {
		amount, err := parseMoney(*req.Amount, "amount")
		if err != nil {
			return bills.UpdateBillInput{}, err
		}
		input.Amount = &amount
	}
	status, err := parsePaymentStatusField(req.Status)
	if err != nil {
		return bills.UpdateBillInput{}, err
	}
	input.Status = status
	return input, nil
}

func parsePaymentStatusField(raw *string) (*enums.PaymentStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParsePaymentStatus(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status").
			WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}

// CreateBill records a payable owed to an institution.
func CreateBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBillRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bill)
	}
}

// GetBill returns one bill.
func GetBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bill)
	}
}

// ListBills returns a page of bills, optionally filtered by payment status.
func ListBills(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), bills.ListParams{
			Limit:  limit,
			Cursor: cursor,
			Status: r.URL.Query().Get("status"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateBill applies partial changes. The amount is frozen once the bill
// is fully paid.
func UpdateBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateBillRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bill)
	}
}

// DeleteBill removes a bill.
func DeleteBill(svc bills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "billId")
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
