package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	"github.com/tmekonnen/stockroom-backend/internal/deliveries"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

type createDeliveryRequest struct {
	ItemID       *string   `json:"item_id,omitempty" validate:"omitempty,uuid"`
	CustomerName string    `json:"customer_name" validate:"required"`
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Date         time.Time `json:"date" validate:"required"`
	IsDelivered  *bool     `json:"is_delivered,omitempty"`
}

func (req createDeliveryRequest) toInput() (deliveries.CreateDeliveryInput, error) {
	itemID, err := parseOptionalUUIDField(req.ItemID, "item_id")
	if err != nil {
		return deliveries.CreateDeliveryInput{}, err
	}
	return deliveries.CreateDeliveryInput{
		ItemID:       itemID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Location:     req.Location,
		Date:         req.Date,
		IsDelivered:  req.IsDelivered,
	}, nil
}

type updateDeliveryRequest struct {
	ItemID       *string    `json:"item_id,omitempty" validate:"omitempty,uuid"`
	CustomerName *string    `json:"customer_name,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	IsDelivered  *bool      `json:"is_delivered,omitempty"`
}

func (req updateDeliveryRequest) toInput() (deliveries.UpdateDeliveryInput, error) {
	itemID, err := parseOptionalUUIDField(req.ItemID, "item_id")
	if err != nil {
		return deliveries.UpdateDeliveryInput{}, err
	}
	return deliveries.UpdateDeliveryInput{
		ItemID:       itemID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Location:     req.Location,
		Date:         req.Date,
		IsDelivered:  req.IsDelivered,
	}, nil
}

func parseOptionalUUIDField(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseUUIDField(*raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateDelivery schedules an outbound delivery. Deliveries never move stock.
func CreateDelivery(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createDeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, delivery)
	}
}

// GetDelivery returns one delivery record.
func GetDelivery(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

// ListDeliveries returns a page of deliveries, newest first.
func ListDeliveries(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, cursor, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), deliveries.ListParams{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateDelivery applies partial changes, including marking it delivered.
func UpdateDelivery(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "deliveryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateDeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

// DeleteDelivery removes a delivery record.
func DeleteDelivery(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "deliveryId")
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
