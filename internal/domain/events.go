package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// OrderCreatedEvent — payload события order.created.
type OrderCreatedEvent struct {
	OrderID     string           `json:"order_id"`
	CustomerID  string           `json:"customer_id"`
	Currency    string           `json:"currency"`
	AmountMinor int64            `json:"amount_minor"`
	Items       []OrderEventItem `json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OrderStatusChangedEvent — payload события order.status_changed.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Version    int64     `json:"version"`
	ChangedAt  time.Time `json:"changed_at"`
}

// NewOrderCreatedMessage готовит outbox-сообщение о новом заказе.
func NewOrderCreatedMessage(order Order) (OutboxMessage, error) {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{ProductID: item.ProductID, Qty: item.Qty, PriceMinor: item.PriceMinor})
	}
	return newOrderMessage(order.ID, EventTypeOrderCreated, OrderCreatedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Currency:    order.Currency,
		AmountMinor: order.AmountMinor,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}, order.CreatedAt)
}

// NewOrderStatusChangedMessage готовит outbox-сообщение о смене статуса.
func NewOrderStatusChangedMessage(order Order) (OutboxMessage, error) {
	return newOrderMessage(order.ID, EventTypeOrderStatusChanged, OrderStatusChangedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Version:    order.Version,
		ChangedAt:  order.UpdatedAt,
	}, order.UpdatedAt)
}

func newOrderMessage(orderID, eventType string, payload any, at time.Time) (OutboxMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxMessage{
		AggregateType: AggregateTypeOrder,
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       body,
		CreatedAt:     at,
	}, nil
}
