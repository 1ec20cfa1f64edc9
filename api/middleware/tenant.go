package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sgiordano/ventapos-backend/api/responses"
	pkgerrors "github.com/sgiordano/ventapos-backend/pkg/errors"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
)

// Tenant and operator identity arrives from the authenticating gateway as
// trusted headers; this service never verifies credentials itself.
const (
	tenantIDHeader   = "X-Tenant-Id"
	operatorIDHeader = "X-Operator-Id"
	locationIDHeader = "X-Location-Id"
)

type tenantCtxKey struct{}
type operatorCtxKey struct{}
type locationCtxKey struct{}

// TenantContext extracts the tenant/operator scope headers into the
// request context and rejects requests missing them.
func TenantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tenantID, err := uuid.Parse(r.Header.Get(tenantIDHeader))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "tenant context missing"))
				return
			}
			operatorID, err := uuid.Parse(r.Header.Get(operatorIDHeader))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator context missing"))
				return
			}

			ctx = context.WithValue(ctx, tenantCtxKey{}, tenantID)
			ctx = context.WithValue(ctx, operatorCtxKey{}, operatorID)

			if raw := r.Header.Get(locationIDHeader); raw != "" {
				locationID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid location id"))
					return
				}
				ctx = context.WithValue(ctx, locationCtxKey{}, locationID)
			}

			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
				ctx = logg.WithOperatorID(ctx, operatorID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantIDFromContext returns the tenant scope of the request.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantCtxKey{}).(uuid.UUID)
	return id, ok
}

// OperatorIDFromContext returns the operator identity of the request.
func OperatorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(operatorCtxKey{}).(uuid.UUID)
	return id, ok
}

// LocationIDFromContext returns the optional location scope.
func LocationIDFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(locationCtxKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}
