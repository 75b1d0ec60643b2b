package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/shop/internal/auth"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
)

// POST /api/v1/orders
//
// Необязательный заголовок Idempotency-Key делает повтор запроса безопасным:
// второй вызов с тем же ключом и телом возвращает сохранённый ответ.
func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	outcome, replayed, err := h.deps.Idempotency.Execute(r.Context(), idempotency.Request{
		Key:       r.Header.Get(idempotencyKeyHeader),
		Scope:     actor.ID,
		Operation: "http.checkout",
		Payload:   req,
	}, func(ctx context.Context) idempotency.Outcome {
		details, err := h.deps.Checkout.Checkout(ctx, actor, req.ShippingAddress)
		if err != nil {
			return h.failureOutcome(r, err)
		}
		return h.successOutcome(http.StatusCreated, newOrderDTO(details))
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if replayed {
		w.Header().Set(replayedHeader, "true")
	}
	h.respondRaw(w, outcome.Code, outcome.Body)
}

// GET /api/v1/orders
func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	list, err := h.deps.Orders.List(r.Context(), actor, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newOrderListDTO(list))
}

// GET /api/v1/orders/{orderID}
func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	details, err := h.deps.Orders.Get(r.Context(), actor, chi.URLParam(r, "orderID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newOrderDTO(details))
}

// GET /api/v1/admin/orders
func (h *handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	list, err := h.deps.Orders.ListAll(r.Context(), actor, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newOrderListDTO(list))
}

// PATCH /api/v1/admin/orders/{orderID}/status
func (h *handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	details, err := h.deps.Orders.SetStatus(r.Context(), actor, chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newOrderDTO(details))
}

// GET /api/v1/admin/stats
func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	stats, err := h.deps.Orders.Stats(r.Context(), actor)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, statsDTO{
		TotalOrders:  stats.TotalOrders,
		Currency:     h.currency,
		Revenue:      formatMoney(stats.RevenueMinor),
		RevenueMinor: stats.RevenueMinor,
	})
}

func (h *handler) successOutcome(status int, data any) idempotency.Outcome {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode response")
		body, _ = json.Marshal(newErrorBody(codeInternal, "internal error"))
		return idempotency.Outcome{Code: http.StatusInternalServerError, Body: body, Failed: true, Retryable: true}
	}
	return idempotency.Outcome{Code: status, Body: body}
}

func (h *handler) failureOutcome(r *http.Request, err error) idempotency.Outcome {
	status, errBody, retryable := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	body, _ := json.Marshal(errBody)
	return idempotency.Outcome{Code: status, Body: body, Failed: true, Retryable: retryable}
}
