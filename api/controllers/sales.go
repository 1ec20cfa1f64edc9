package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sgiordano/ventapos-backend/api/middleware"
	"github.com/sgiordano/ventapos-backend/api/responses"
	"github.com/sgiordano/ventapos-backend/api/validators"
	"github.com/sgiordano/ventapos-backend/internal/sales"
	pkgerrors "github.com/sgiordano/ventapos-backend/pkg/errors"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
	"github.com/sgiordano/ventapos-backend/pkg/pagination"
)

type saleListResponse struct {
	Sales      []sales.SaleDTO `json:"sales"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func PostSale(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		opCtx, err := operatorContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sales.PostSaleInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.PostSale(r.Context(), opCtx, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sales.NewSaleDTO(sale))
	}
}

func GetSale(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		opCtx, err := operatorContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id"))
			return
		}

		sale, err := svc.GetSale(r.Context(), opCtx.TenantID, saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales.NewSaleDTO(sale))
	}
}

func ListSales(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		opCtx, err := operatorContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := sales.ListParams{Cursor: r.URL.Query().Get("cursor")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		list, next, err := svc.ListSales(r.Context(), opCtx.TenantID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := saleListResponse{Sales: sales.NewSaleDTOs(list)}
		if next != nil {
			resp.NextCursor = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, resp)
	}
}

func operatorContext(r *http.Request) (sales.OperatorContext, error) {
	tenantID, ok := middleware.TenantIDFromContext(r.Context())
	if !ok {
		return sales.OperatorContext{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant context missing")
	}
	operatorID, ok := middleware.OperatorIDFromContext(r.Context())
	if !ok {
		return sales.OperatorContext{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator context missing")
	}
	return sales.OperatorContext{
		TenantID:   tenantID,
		OperatorID: operatorID,
		LocationID: middleware.LocationIDFromContext(r.Context()),
	}, nil
}
