package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// moneyExponent: число знаков после запятой в денежных строках (центы).
const moneyExponent = -2

// formatMoney рендерит сумму в минимальных единицах как "12.50".
func formatMoney(minor int64) string {
	return decimal.New(minor, moneyExponent).StringFixed(-moneyExponent)
}

type cartLineDTO struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	ImageURL       string `json:"image_url"`
	Quantity       int32  `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	LineTotal      string `json:"line_total"`
	LineTotalMinor int64  `json:"line_total_minor"`
	InStock        int32  `json:"in_stock"`
}

type cartDTO struct {
	CustomerID string        `json:"customer_id"`
	Currency   string        `json:"currency"`
	Lines      []cartLineDTO `json:"lines"`
	Total      string        `json:"total"`
	TotalMinor int64         `json:"total_minor"`
}

func newCartDTO(cart domain.Cart, currency string) cartDTO {
	dto := cartDTO{
		CustomerID: cart.CustomerID,
		Currency:   currency,
		Lines:      make([]cartLineDTO, 0, len(cart.Lines)),
		Total:      formatMoney(cart.TotalMinor),
		TotalMinor: cart.TotalMinor,
	}
	for _, line := range cart.Lines {
		total := line.LineTotalMinor()
		dto.Lines = append(dto.Lines, cartLineDTO{
			ID:             line.Line.ID,
			ProductID:      line.Line.ProductID,
			Name:           line.Product.Name,
			Slug:           line.Product.Slug,
			ImageURL:       line.Product.ImageURL,
			Quantity:       line.Line.Qty,
			UnitPrice:      formatMoney(line.Product.PriceMinor),
			UnitPriceMinor: line.Product.PriceMinor,
			LineTotal:      formatMoney(total),
			LineTotalMinor: total,
			InStock:        line.Product.Stock,
		})
	}
	return dto
}

// orderItemDTO — позиция заказа. Цена всегда из заказа, а name/image_url берутся из текущих данных каталога.
type orderItemDTO struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Name           string `json:"name,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Quantity       int32  `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	LineTotal      string `json:"line_total"`
	LineTotalMinor int64  `json:"line_total_minor"`
}

type timelineEventDTO struct {
	Type       string    `json:"type"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type orderDTO struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	Status          string             `json:"status"`
	Currency        string             `json:"currency"`
	Total           string             `json:"total"`
	TotalMinor      int64              `json:"total_minor"`
	ShippingAddress string             `json:"shipping_address"`
	Version         int64              `json:"version"`
	Items           []orderItemDTO     `json:"items"`
	Timeline        []timelineEventDTO `json:"timeline,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func newOrderDTO(details domain.OrderDetails) orderDTO {
	order := details.Order
	dto := orderDTO{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		Currency:        order.Currency,
		Total:           formatMoney(order.AmountMinor),
		TotalMinor:      order.AmountMinor,
		ShippingAddress: order.ShippingAddress,
		Version:         order.Version,
		Items:           make([]orderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		display := details.Products[item.ProductID]
		total := item.LineTotalMinor()
		dto.Items = append(dto.Items, orderItemDTO{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Name:           display.Name,
			ImageURL:       display.ImageURL,
			Quantity:       item.Qty,
			UnitPrice:      formatMoney(item.PriceMinor),
			UnitPriceMinor: item.PriceMinor,
			LineTotal:      formatMoney(total),
			LineTotalMinor: total,
		})
	}
	for _, event := range details.Timeline {
		dto.Timeline = append(dto.Timeline, timelineEventDTO{
			Type:       event.Type,
			Reason:     event.Reason,
			OccurredAt: event.Occurred,
		})
	}
	return dto
}

func newOrderListDTO(list []domain.OrderDetails) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, details := range list {
		out = append(out, newOrderDTO(details))
	}
	return out
}

type statsDTO struct {
	TotalOrders  int64  `json:"total_orders"`
	Currency     string `json:"currency"`
	Revenue      string `json:"revenue"`
	RevenueMinor int64  `json:"revenue_minor"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}
