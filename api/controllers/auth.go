package controllers

import (
	"net/http"

	"github.com/tmekonnen/stockroom-backend/api/responses"
	"github.com/tmekonnen/stockroom-backend/api/validators"
	authsvc "github.com/tmekonnen/stockroom-backend/internal/auth"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
)

// AuthLogin exchanges staff credentials for an access token.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
