package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/shop/internal/auth"
	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/httpapi"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
	"github.com/vladislavdragonenkov/shop/internal/service/outbox"
)

// backend объединяет репозитории одного хранилища и доступ к каталогу в обход API.
type backend struct {
	catalog       domain.Catalog
	carts         domain.CartRepository
	checkoutStore domain.CheckoutStore
	orders        domain.OrderRepository
	outbox        domain.OutboxRepository
	timeline      domain.TimelineRepository
	idempotency   domain.IdempotencyRepository

	seedProduct func(id string, priceMinor int64, stock int32)
	setPrice    func(id string, priceMinor int64)
	stock       func(id string) int32
}

// ShopSuite прогоняет сценарии магазина через HTTP API, outbox и Kafka.
type ShopSuite struct {
	suite.Suite

	newBackend func() backend

	backend  backend
	api      *httptest.Server
	producer *kafka.Producer
	kafka    *mocks.SyncProducer
	worker   *outbox.Worker
}

func (s *ShopSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	s.backend = s.newBackend()
	b := s.backend

	retry := checkout.DefaultRetryConfig()
	retry.MaxAttempts = 5

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cart: cart.NewService(b.carts, b.catalog, nil, logger),
		Checkout: checkout.NewEngine(b.checkoutStore, b.catalog, b.timeline,
			checkout.WithCurrency("EUR"),
			checkout.WithRetryConfig(retry),
			checkout.WithLogger(logger),
		),
		Orders:      orders.NewService(b.orders, b.outbox, b.timeline, b.catalog, nil, logger),
		Idempotency: idempotency.NewGuard(b.idempotency, time.Hour, logger),
	}, httpapi.Options{Currency: "EUR", Logger: logger})
	s.api = httptest.NewServer(router)

	s.kafka = mocks.NewSyncProducer(s.T(), nil)
	s.producer = kafka.NewProducerFromSync(s.kafka, logger)
	s.worker = outbox.NewWorker(b.outbox, kafka.NewOutboxPublisher(s.producer, kafka.TopicOrderEvents),
		outbox.WithRetryBaseDelay(0),
		outbox.WithLogger(logger),
	)
}

func (s *ShopSuite) TearDownTest() {
	s.api.Close()
	s.NoError(s.producer.Close())
}

type apiResponse struct {
	status  int
	headers http.Header
	body    []byte
}

func (s *ShopSuite) call(method, path, actorID, role string, body any, headers map[string]string) apiResponse {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, s.api.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(auth.HeaderActorID, actorID)
	}
	if role != "" {
		req.Header.Set(auth.HeaderActorRole, role)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.api.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return apiResponse{status: resp.StatusCode, headers: resp.Header, body: buf.Bytes()}
}

func (s *ShopSuite) decode(resp apiResponse, dst any) {
	s.Require().NoError(json.Unmarshal(resp.body, dst), string(resp.body))
}

type orderView struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	TotalMinor int64  `json:"total_minor"`
	Items      []struct {
		ProductID      string `json:"product_id"`
		Quantity       int32  `json:"quantity"`
		UnitPriceMinor int64  `json:"unit_price_minor"`
	} `json:"items"`
}

type cartView struct {
	Lines []struct {
		ID        string `json:"id"`
		ProductID string `json:"product_id"`
		Quantity  int32  `json:"quantity"`
	} `json:"lines"`
}

func (s *ShopSuite) addToCart(actorID, productID string, qty int32) {
	resp := s.call(http.MethodPost, "/api/v1/cart/items", actorID, "",
		map[string]any{"product_id": productID, "quantity": qty}, nil)
	s.Require().Equal(http.StatusOK, resp.status, string(resp.body))
}

func (s *ShopSuite) checkout(actorID string, headers map[string]string) apiResponse {
	return s.call(http.MethodPost, "/api/v1/orders", actorID, "",
		map[string]string{"shipping_address": "221B Baker Street"}, headers)
}

func (s *ShopSuite) TestCheckoutLifecycle() {
	s.backend.seedProduct("book-1", 1250, 5)
	s.addToCart("alice", "book-1", 2)

	key := map[string]string{"Idempotency-Key": "checkout-1"}
	placed := s.checkout("alice", key)
	s.Require().Equal(http.StatusCreated, placed.status, string(placed.body))
	var order orderView
	s.decode(placed, &order)
	s.Equal("pending", order.Status)
	s.Equal("25.00", order.Total)
	s.EqualValues(2500, order.TotalMinor)
	s.Equal(int32(3), s.backend.stock("book-1"))

	replay := s.checkout("alice", key)
	s.Require().Equal(http.StatusCreated, replay.status)
	s.Equal("true", replay.headers.Get("Idempotent-Replayed"))
	var replayed orderView
	s.decode(replay, &replayed)
	s.Equal(order.ID, replayed.ID)
	s.Equal(int32(3), s.backend.stock("book-1"), "replay must not touch stock")

	var emptyCart cartView
	s.decode(s.call(http.MethodGet, "/api/v1/cart", "alice", "", nil, nil), &emptyCart)
	s.Empty(emptyCart.Lines)

	foreign := s.call(http.MethodGet, "/api/v1/orders/"+order.ID, "bob", "", nil, nil)
	s.Equal(http.StatusNotFound, foreign.status)

	forbidden := s.call(http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", "alice", "",
		map[string]string{"status": "shipped"}, nil)
	s.Equal(http.StatusForbidden, forbidden.status)

	shipped := s.call(http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", "root", domain.RoleAdmin,
		map[string]string{"status": "shipped"}, nil)
	s.Require().Equal(http.StatusOK, shipped.status, string(shipped.body))
	var updated orderView
	s.decode(shipped, &updated)
	s.Equal("shipped", updated.Status)

	var stats struct {
		TotalOrders  int64 `json:"total_orders"`
		RevenueMinor int64 `json:"revenue_minor"`
	}
	s.decode(s.call(http.MethodGet, "/api/v1/admin/stats", "root", domain.RoleAdmin, nil, nil), &stats)
	s.EqualValues(1, stats.TotalOrders)
	s.EqualValues(2500, stats.RevenueMinor)

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicOrderEvents {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != order.ID {
			return fmt.Errorf("unexpected key %q", key)
		}
		for _, h := range msg.Headers {
			if string(h.Key) == kafka.HeaderEventType {
				mu.Lock()
				events = append(events, string(h.Value))
				mu.Unlock()
			}
		}
		return nil
	}
	s.kafka.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(record)
	s.kafka.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(record)

	s.Equal(2, s.worker.ProcessOnce(context.Background()))
	s.ElementsMatch([]string{domain.EventTypeOrderCreated, domain.EventTypeOrderStatusChanged}, events)
	s.Zero(s.worker.ProcessOnce(context.Background()), "sent messages must leave the backlog")
}

func (s *ShopSuite) TestIdempotencyKeyReuseWithDifferentBody() {
	s.backend.seedProduct("book-1", 100, 5)
	s.addToCart("alice", "book-1", 1)

	key := map[string]string{"Idempotency-Key": "checkout-1"}
	first := s.checkout("alice", key)
	s.Require().Equal(http.StatusCreated, first.status)

	other := s.call(http.MethodPost, "/api/v1/orders", "alice", "",
		map[string]string{"shipping_address": "Other street 2"}, key)
	s.Equal(http.StatusUnprocessableEntity, other.status)
}

func (s *ShopSuite) TestFailedCheckoutKeepsCart() {
	s.backend.seedProduct("book-1", 100, 2)
	s.addToCart("alice", "book-1", 2)
	s.backend.seedProduct("book-1", 100, 1)

	resp := s.checkout("alice", nil)
	s.Require().Equal(http.StatusConflict, resp.status, string(resp.body))

	var body struct {
		Error struct {
			Code      string `json:"code"`
			ProductID string `json:"product_id"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	s.Equal("book-1", body.Error.ProductID)

	var current cartView
	s.decode(s.call(http.MethodGet, "/api/v1/cart", "alice", "", nil, nil), &current)
	s.Require().Len(current.Lines, 1)
	s.EqualValues(2, current.Lines[0].Quantity)
	s.Equal(int32(1), s.backend.stock("book-1"))

	var list []orderView
	s.decode(s.call(http.MethodGet, "/api/v1/orders", "alice", "", nil, nil), &list)
	s.Empty(list)
}

func (s *ShopSuite) TestPlacedOrderKeepsPurchasePrice() {
	s.backend.seedProduct("book-1", 1000, 5)
	s.addToCart("alice", "book-1", 1)

	placed := s.checkout("alice", nil)
	s.Require().Equal(http.StatusCreated, placed.status)
	var order orderView
	s.decode(placed, &order)

	s.backend.setPrice("book-1", 2000)

	var reread orderView
	s.decode(s.call(http.MethodGet, "/api/v1/orders/"+order.ID, "alice", "", nil, nil), &reread)
	s.Require().Len(reread.Items, 1)
	s.EqualValues(1000, reread.Items[0].UnitPriceMinor)
	s.EqualValues(1000, reread.TotalMinor)
}

func (s *ShopSuite) TestConcurrentCheckoutsNeverOversell() {
	const (
		stock     = 3
		customers = 8
	)
	s.backend.seedProduct("book-1", 500, stock)
	for i := 0; i < customers; i++ {
		s.addToCart(fmt.Sprintf("customer-%d", i), "book-1", 1)
	}

	codes := make([]int, customers)
	var wg sync.WaitGroup
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.checkout(fmt.Sprintf("customer-%d", i), nil).status
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	s.Equal(stock, created)
	s.Equal(customers-stock, conflicts)
	s.Equal(int32(0), s.backend.stock("book-1"))
}
