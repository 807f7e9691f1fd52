package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service"
)

// errorStatus maps a service error to its HTTP status and message key.
// variationKey is the message used for service.ErrVariationNotFound, which
// differs between the wizard and the catalog endpoints.
func errorStatus(err error, variationKey string) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Key
	case errors.Is(err, service.ErrVariationNotFound):
		return http.StatusNotFound, variationKey
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, i18n.ErrKeyProductNotFound
	case errors.Is(err, service.ErrInvalidSessionToken):
		return http.StatusForbidden, i18n.ErrKeyInvalidSecurityToken
	case errors.Is(err, repository.ErrRevisionConflict):
		return http.StatusConflict, i18n.ErrKeyConflict
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyInternalError
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// respondError writes err with the status errorStatus assigns to it.
func respondError(builder *ResponseBuilder, err error, variationKey string) {
	status, key := errorStatus(err, variationKey)
	builder.Error(status, key, err)
}
