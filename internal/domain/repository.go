package domain

import (
	"context"
	"time"
)

// CatalogReader — read-only доступ к каталогу. Значения считаются актуальными на момент чтения.
type CatalogReader interface {
	// GetProduct возвращает товар или ErrProductNotFound.
	GetProduct(ctx context.Context, productID string) (Product, error)
	// GetProducts возвращает найденные товары; отсутствующие id просто пропускаются.
	GetProducts(ctx context.Context, productIDs []string) (map[string]Product, error)
}

// CartRepository хранит корзины покупателей.
type CartRepository interface {
	// AddItem увеличивает количество существующей строки или создаёт новую.
	AddItem(ctx context.Context, customerID, productID string, qty int32) (CartLine, error)
	// SetQuantity задаёт количество строки ровно в qty (qty >= 1).
	SetQuantity(ctx context.Context, customerID, lineID string, qty int32) error
	// RemoveItem удаляет строку; ErrCartLineNotFound, если её нет у покупателя.
	RemoveItem(ctx context.Context, customerID, lineID string) error
	// Clear удаляет все строки покупателя.
	Clear(ctx context.Context, customerID string) error
	// List возвращает строки в порядке создания.
	List(ctx context.Context, customerID string) ([]CartLine, error)
}

// CheckoutStore выполняет checkout как одну транзакцию.
type CheckoutStore interface {
	// RunInTx вызывает fn внутри транзакции. Ошибка fn откатывает все изменения.
	// Конфликт сериализации возвращается как ErrConcurrentUpdate.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx CheckoutTx) error) error
}

// CheckoutTx — операции, доступные внутри транзакции checkout.
type CheckoutTx interface {
	// CartLines читает и блокирует корзину покупателя.
	CartLines(ctx context.Context, customerID string) ([]CartLine, error)
	// LockProducts перечитывает и блокирует строки товаров в порядке возрастания id.
	// Отсутствующие товары в результат не попадают.
	LockProducts(ctx context.Context, productIDs []string) (map[string]Product, error)
	// DecrementStock уменьшает остаток заблокированного товара.
	DecrementStock(ctx context.Context, productID string, qty int32) error
	// InsertOrder сохраняет заказ вместе с позициями.
	InsertOrder(ctx context.Context, order Order) error
	// ClearCart очищает корзину покупателя.
	ClearCart(ctx context.Context, customerID string) error
	// EnqueueOutbox пишет событие в outbox той же транзакцией.
	EnqueueOutbox(ctx context.Context, msg OutboxMessage) error
}

// OrderRepository описывает требования к архиву заказов.
type OrderRepository interface {
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// GetForCustomer возвращает заказ, только если он принадлежит покупателю; иначе ErrOrderNotFound.
	GetForCustomer(ctx context.Context, id, customerID string) (Order, error)
	// ListByCustomer возвращает заказы клиента, новые первыми, при limit <= 0 без ограничения.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
	// ListAll возвращает заказы всех клиентов, новые первыми.
	ListAll(ctx context.Context, limit int) ([]Order, error)
	// UpdateStatus меняет только метку статуса и возвращает обновлённый заказ.
	UpdateStatus(ctx context.Context, id string, status OrderStatus, updatedAt time.Time) (Order, error)
	// Stats возвращает агрегаты по всем заказам.
	Stats(ctx context.Context) (OrderStats, error)
}

// Catalog объединяет чтение снимков и данных для отображения.
type Catalog interface {
	CatalogReader
	ProductDisplayReader
}

// ProductDisplayReader отдаёт данные товаров для отображения (может быть кешем).
type ProductDisplayReader interface {
	Displays(ctx context.Context, productIDs []string) (map[string]ProductDisplay, error)
}
