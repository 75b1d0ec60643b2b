package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
)

// Коды ошибок в теле ответа.
const (
	codeUnauthenticated     = "unauthenticated"
	codeForbidden           = "forbidden"
	codeInvalidArgument     = "invalid_argument"
	codeEmptyCart           = "empty_cart"
	codeNotFound            = "not_found"
	codeProductUnavailable  = "product_unavailable"
	codeInsufficientStock   = "insufficient_stock"
	codeConflict            = "conflict"
	codeRequestInProgress   = "request_in_progress"
	codeIdempotencyMismatch = "idempotency_key_reused"
	codeInternal            = "internal"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"product_id,omitempty"`
	Requested int32  `json:"requested,omitempty"`
	Available *int32 `json:"available,omitempty"`
}

// errorResponse переводит доменную ошибку в HTTP-статус и тело.
// retryable=true означает, что тот же запрос можно повторить позже.
func errorResponse(err error) (status int, body errorBody, retryable bool) {
	var stockErr *domain.InsufficientStockError
	var unavailableErr *domain.ProductUnavailableError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, newErrorBody(codeUnauthenticated, "actor identity is required"), false
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, newErrorBody(codeForbidden, "admin role required"), false
	case errors.As(err, &stockErr):
		available := stockErr.Available
		body = newErrorBody(codeInsufficientStock, stockErr.Error())
		body.Error.ProductID = stockErr.ProductID
		body.Error.Requested = stockErr.Requested
		body.Error.Available = &available
		return http.StatusConflict, body, false
	case errors.As(err, &unavailableErr):
		body = newErrorBody(codeProductUnavailable, unavailableErr.Error())
		body.Error.ProductID = unavailableErr.ProductID
		return http.StatusNotFound, body, false
	case domain.IsNotFound(err):
		return http.StatusNotFound, newErrorBody(codeNotFound, err.Error()), false
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, newErrorBody(codeEmptyCart, err.Error()), false
	case domain.IsValidation(err):
		return http.StatusBadRequest, newErrorBody(codeInvalidArgument, err.Error()), false
	case errors.Is(err, idempotency.ErrRequestInProgress):
		return http.StatusConflict, newErrorBody(codeRequestInProgress, err.Error()), true
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return http.StatusUnprocessableEntity, newErrorBody(codeIdempotencyMismatch, err.Error()), false
	case domain.IsConflict(err):
		return http.StatusConflict, newErrorBody(codeConflict, "checkout conflict, retry the request"), true
	default:
		return http.StatusInternalServerError, newErrorBody(codeInternal, "internal error"), true
	}
}

func newErrorBody(code, message string) errorBody {
	return errorBody{Error: errorDetail{Code: code, Message: message}}
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body, _ := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}
	h.respondJSON(w, status, body)
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Warn("failed to encode response")
	}
}

func (h *handler) respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.WithError(err).Warn("failed to write response")
	}
}
