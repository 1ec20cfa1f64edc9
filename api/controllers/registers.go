package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/api/responses"
	"github.com/sgiordano/ventapos-backend/api/validators"
	"github.com/sgiordano/ventapos-backend/internal/registers"
	pkgerrors "github.com/sgiordano/ventapos-backend/pkg/errors"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
)

type openRegisterRequest struct {
	LocationID     *uuid.UUID      `json:"location_id,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type closeRegisterRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

func OpenRegister(svc *registers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registers service unavailable"))
			return
		}

		opCtx, err := operatorContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload openRegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locationID := payload.LocationID
		if locationID == nil {
			locationID = opCtx.LocationID
		}

		session, err := svc.Open(r.Context(), registers.OpenInput{
			TenantID:       opCtx.TenantID,
			OperatorID:     opCtx.OperatorID,
			LocationID:     locationID,
			OpeningBalance: payload.OpeningBalance,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, registers.NewSessionDTO(session))
	}
}

func CloseRegister(svc *registers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registers service unavailable"))
			return
		}

		opCtx, err := operatorContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id"))
			return
		}

		var payload closeRegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Close(r.Context(), registers.CloseInput{
			TenantID:       opCtx.TenantID,
			SessionID:      sessionID,
			OperatorID:     opCtx.OperatorID,
			ClosingBalance: payload.ClosingBalance,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, registers.NewSessionDTO(session))
	}
}
