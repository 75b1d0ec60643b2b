package grpcsvc

import (
	"github.com/shopspring/decimal"

	shopv1 "github.com/vladislavdragonenkov/shop/api/shop/v1"
	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func toProtoMoney(currency string, minor int64) *shopv1.Money {
	return &shopv1.Money{
		Currency:    currency,
		AmountMinor: minor,
		Amount:      decimal.New(minor, -2).StringFixed(2),
	}
}

func toProtoCart(cart domain.Cart, currency string) *shopv1.Cart {
	lines := make([]*shopv1.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, &shopv1.CartLine{
			Id:        line.Line.ID,
			ProductId: line.Line.ProductID,
			Name:      line.Product.Name,
			Quantity:  line.Line.Qty,
			UnitPrice: toProtoMoney(currency, line.Product.PriceMinor),
			LineTotal: toProtoMoney(currency, line.LineTotalMinor()),
			InStock:   line.Product.Stock,
		})
	}
	return &shopv1.Cart{
		CustomerId: cart.CustomerID,
		Lines:      lines,
		Total:      toProtoMoney(currency, cart.TotalMinor),
	}
}

func toProtoOrder(details domain.OrderDetails) *shopv1.Order {
	order := details.Order
	items := make([]*shopv1.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &shopv1.OrderItem{
			Id:        item.ID,
			ProductId: item.ProductID,
			Name:      details.Products[item.ProductID].Name,
			Quantity:  item.Qty,
			UnitPrice: toProtoMoney(order.Currency, item.PriceMinor),
			LineTotal: toProtoMoney(order.Currency, item.LineTotalMinor()),
		})
	}

	return &shopv1.Order{
		Id:              order.ID,
		CustomerId:      order.CustomerID,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		Total:           toProtoMoney(order.Currency, order.AmountMinor),
		Items:           items,
		Version:         order.Version,
		CreatedUnix:     order.CreatedAt.Unix(),
		UpdatedUnix:     order.UpdatedAt.Unix(),
	}
}

func toProtoOrderList(list []domain.OrderDetails) *shopv1.ListOrdersResponse {
	orders := make([]*shopv1.Order, 0, len(list))
	for _, details := range list {
		orders = append(orders, toProtoOrder(details))
	}
	return &shopv1.ListOrdersResponse{Orders: orders}
}

func toProtoTimeline(events []domain.TimelineEvent) []*shopv1.TimelineEvent {
	if len(events) == 0 {
		return nil
	}
	result := make([]*shopv1.TimelineEvent, 0, len(events))
	for _, event := range events {
		result = append(result, &shopv1.TimelineEvent{
			Type:     event.Type,
			Reason:   event.Reason,
			UnixTime: event.Occurred.Unix(),
		})
	}
	return result
}
