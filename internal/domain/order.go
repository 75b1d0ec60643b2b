package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// OrderStatus — административная метка заказа. Переходы между статусами не проверяются,
// кроме длины и непустоты метки.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// MaxStatusLength ограничивает длины метки в символах.
const MaxStatusLength = 32

// NormalizeStatus обрезает пробелы вокруг метки.
func NormalizeStatus(raw string) (OrderStatus, error) {
	status := strings.TrimSpace(raw)
	if status == "" || utf8.RuneCountInString(status) > MaxStatusLength {
		return "", ErrStatusRequired
	}
	return OrderStatus(status), nil
}

// OrderItem — позиция заказа. Цена заморожена в момент checkout и больше не меняется,
// даже если товар в каталоге подорожал или исчез.
type OrderItem struct {
	ID         string
	ProductID  string
	Qty        int32
	PriceMinor int64
	CreatedAt  time.Time
}

func (i OrderItem) LineTotalMinor() int64 {
	return int64(i.Qty) * i.PriceMinor
}

type Order struct {
	ID              string
	CustomerID      string
	Status          OrderStatus
	Currency        string
	AmountMinor     int64
	ShippingAddress string
	Items           []OrderItem
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemsTotalMinor считает сумму qty*price по всем позициям.
func (o Order) ItemsTotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotalMinor()
	}
	return total
}

// Validate возвращает все нарушенные инварианты заказа через errors.Join, nil если их нет.
func (o Order) Validate() error {
	var errs []error
	require := func(ok bool, err error) {
		if !ok {
			errs = append(errs, err)
		}
	}

	require(o.CustomerID != "", ErrCustomerRequired)
	require(o.Currency != "", ErrCurrencyRequired)
	require(strings.TrimSpace(o.ShippingAddress) != "", ErrShippingAddressRequired)
	require(len(o.Items) > 0, ErrItemsRequired)
	require(o.AmountMinor >= 0, ErrAmountNegative)
	for _, item := range o.Items {
		require(item.Qty > 0, ErrItemQtyInvalid)
		require(item.PriceMinor >= 0, ErrItemPriceInvalid)
	}
	require(o.ItemsTotalMinor() == o.AmountMinor, ErrAmountMismatch)

	return errors.Join(errs...)
}

// Clone копирует заказ вместе со срезом позиций.
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// OrderDetails — заказ вместе с read-side данными для отображения.
// Products заполняется из текущего каталога и никогда не влияет на замороженные цены позиций.
type OrderDetails struct {
	Order    Order
	Products map[string]ProductDisplay
	Timeline []TimelineEvent
}

// OrderStats — агрегаты для административной панели.
type OrderStats struct {
	TotalOrders  int64
	RevenueMinor int64
}
