package domain

import "time"

// CartLine — одна позиция корзины. На пару (покупатель, товар) приходится не больше одной строки.
type CartLine struct {
	ID         string
	CustomerID string
	ProductID  string
	Qty        int32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLineView — позиция корзины с текущим снимком товара.
type CartLineView struct {
	Line    CartLine
	Product Product
}

// LineTotalMinor считает стоимость позиции по текущей цене каталога.
func (v CartLineView) LineTotalMinor() int64 {
	return int64(v.Line.Qty) * v.Product.PriceMinor
}

// Cart — корзина с информационной суммой по текущим ценам.
// TotalMinor не связан с суммой будущего заказа: цена фиксируется только при checkout.
type Cart struct {
	CustomerID string
	Lines      []CartLineView
	TotalMinor int64
}

// NewCart собирает корзину и считает сумму.
func NewCart(customerID string, lines []CartLineView) Cart {
	cart := Cart{CustomerID: customerID, Lines: lines}
	if cart.Lines == nil {
		cart.Lines = []CartLineView{}
	}
	for _, line := range cart.Lines {
		cart.TotalMinor += line.LineTotalMinor()
	}
	return cart
}
