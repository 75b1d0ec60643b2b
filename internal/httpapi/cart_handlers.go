package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/shop/internal/auth"
	"github.com/vladislavdragonenkov/shop/internal/domain"
)

var errInvalidBody = errors.New("invalid request body")

// GET /api/v1/cart
func (h *handler) viewCart(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	cart, err := h.deps.Cart.View(r.Context(), actor)
	h.respondCart(w, r, cart, err)
}

// POST /api/v1/cart/items
func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	cart, err := h.deps.Cart.Add(r.Context(), actor, req.ProductID, req.Quantity)
	h.respondCart(w, r, cart, err)
}

// PATCH /api/v1/cart/items/{lineID}
func (h *handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondBadRequest(w, err)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())
	cart, err := h.deps.Cart.Update(r.Context(), actor, chi.URLParam(r, "lineID"), req.Quantity)
	h.respondCart(w, r, cart, err)
}

// DELETE /api/v1/cart/items/{lineID}
func (h *handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	cart, err := h.deps.Cart.Remove(r.Context(), actor, chi.URLParam(r, "lineID"))
	h.respondCart(w, r, cart, err)
}

// DELETE /api/v1/cart
func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	cart, err := h.deps.Cart.Clear(r.Context(), actor)
	h.respondCart(w, r, cart, err)
}

func (h *handler) respondCart(w http.ResponseWriter, r *http.Request, cart domain.Cart, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newCartDTO(cart, h.currency))
}

// decode читает JSON-тело с ограничением размера; неизвестные поля отклоняются.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func (h *handler) respondBadRequest(w http.ResponseWriter, err error) {
	h.respondJSON(w, http.StatusBadRequest, newErrorBody(codeInvalidArgument, err.Error()))
}

// parseLimit читает ?limit=; отсутствие значения означает "без ограничения".
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return limit, nil
}
