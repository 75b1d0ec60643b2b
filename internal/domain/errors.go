package domain

import (
	"errors"
	"fmt"
)

// Ошибки входных данных; транспорт отдаёт их как 400 / InvalidArgument.
var (
	ErrCustomerRequired        = errors.New("customer_id is required")
	ErrCurrencyRequired        = errors.New("currency is required")
	ErrItemsRequired           = errors.New("order must contain at least one item")
	ErrAmountNegative          = errors.New("amount_minor must be non-negative")
	ErrItemQtyInvalid          = errors.New("item qty must be greater than zero")
	ErrItemPriceInvalid        = errors.New("item price must be non-negative")
	ErrAmountMismatch          = errors.New("order amount does not match items sum")
	ErrShippingAddressRequired = errors.New("shipping address is required")
	// ErrStatusRequired покрывает и пустую, и слишком длинную метку.
	ErrStatusRequired    = errors.New("order status label is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrProductIDRequired = errors.New("product_id is required")
)

// Не найдено. Чужой заказ неотличим от несуществующего.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")

	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Конфликты конкурентного доступа: клиент может повторить запрос.
var (
	// ErrConcurrentUpdate — serialization failure или deadlock, транзакция откатилась.
	ErrConcurrentUpdate = errors.New("concurrent update detected")
	// ErrCheckoutConflict: исчерпаны повторы checkout.
	ErrCheckoutConflict     = errors.New("checkout conflict, retry later")
	ErrOrderVersionConflict = errors.New("order version conflict")
)

var ErrOutboxPublish = errors.New("outbox publish failed")

var (
	notFoundErrors = []error{ErrProductNotFound, ErrCartLineNotFound, ErrOrderNotFound}
	conflictErrors = []error{ErrConcurrentUpdate, ErrCheckoutConflict, ErrOrderVersionConflict}

	validationErrors = []error{
		ErrCustomerRequired,
		ErrCurrencyRequired,
		ErrItemsRequired,
		ErrAmountNegative,
		ErrItemQtyInvalid,
		ErrItemPriceInvalid,
		ErrAmountMismatch,
		ErrShippingAddressRequired,
		ErrStatusRequired,
		ErrInvalidQuantity,
		ErrProductIDRequired,
	}
)

func isAny(err error, targets []error) bool {
	if err == nil {
		return false
	}
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StockPhase различает проверку остатка при добавлении в корзину и при checkout.
type StockPhase string

const (
	// StockPhaseAdd: подсказка при добавлении в корзину, не гарантия.
	StockPhaseAdd StockPhase = "add"
	// StockPhaseCheckout: авторитетная проверка под блокировкой строки.
	StockPhaseCheckout StockPhase = "checkout"
)

// InsufficientStockError называет товар, которого не хватило.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int32
	Available   int32
	Phase       StockPhase
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ProductUnavailableError — товар из корзины исчез из каталога или снят с продажи к моменту checkout.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is not available", e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error { return ErrProductNotFound }

func IsNotFound(err error) bool { return isAny(err, notFoundErrors) }

func IsInsufficientStock(err error) bool { return errors.Is(err, ErrInsufficientStock) }

// IsConflict выделяет ошибки, после которых запрос можно повторить без изменений.
func IsConflict(err error) bool { return isAny(err, conflictErrors) }

func IsVersionConflict(err error) bool { return errors.Is(err, ErrOrderVersionConflict) }

func IsValidation(err error) bool { return isAny(err, validationErrors) }
