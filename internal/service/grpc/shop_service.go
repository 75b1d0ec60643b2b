// Package grpcsvc реализует shop.v1.ShopService поверх сервисов корзины, checkout и архива заказов.
package grpcsvc

import (
	"context"
	"errors"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	shopv1 "github.com/vladislavdragonenkov/shop/api/shop/v1"
	"github.com/vladislavdragonenkov/shop/internal/auth"
	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
)

const (
	idempotencyKeyHeader = "idempotency-key"

	defaultListOrdersLimit = 100

	errorInfoDomain = "shop.v1"
)

// CartService — операции корзины.
type CartService interface {
	View(ctx context.Context, actor domain.Actor) (domain.Cart, error)
	Add(ctx context.Context, actor domain.Actor, productID string, qty int32) (domain.Cart, error)
	Update(ctx context.Context, actor domain.Actor, lineID string, qty int32) (domain.Cart, error)
	Remove(ctx context.Context, actor domain.Actor, lineID string) (domain.Cart, error)
	Clear(ctx context.Context, actor domain.Actor) (domain.Cart, error)
}

// CheckoutService оформляет заказ из корзины.
type CheckoutService interface {
	Checkout(ctx context.Context, actor domain.Actor, shippingAddress string) (domain.OrderDetails, error)
}

// OrderService — архив заказов.
type OrderService interface {
	List(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error)
	Get(ctx context.Context, actor domain.Actor, orderID string) (domain.OrderDetails, error)
	ListAll(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error)
	SetStatus(ctx context.Context, actor domain.Actor, orderID, status string) (domain.OrderDetails, error)
	Stats(ctx context.Context, actor domain.Actor) (domain.OrderStats, error)
}

// ShopService реализует gRPC API магазина.
type ShopService struct {
	shopv1.UnimplementedShopServiceServer

	cart     CartService
	checkout CheckoutService
	orders   OrderService
	guard    *idempotency.Guard
	currency string
	logger   *log.Entry
}

// NewShopService конструирует сервис с зависимостями. guard может быть nil.
func NewShopService(
	cart CartService,
	checkout CheckoutService,
	orders OrderService,
	guard *idempotency.Guard,
	currency string,
	logger *log.Entry,
) *ShopService {
	if logger == nil {
		logger = log.WithField("component", "shop-grpc")
	}
	return &ShopService{
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		guard:    guard,
		currency: currency,
		logger:   logger,
	}
}

// Checkout оформляет заказ. Необязательная metadata idempotency-key делает повтор безопасным.
func (s *ShopService) Checkout(ctx context.Context, req *shopv1.CheckoutRequest) (*shopv1.CheckoutResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor := auth.FromIncomingMetadata(ctx)
	if !actor.Valid() {
		return nil, s.toStatus(domain.ErrUnauthenticated, "Checkout")
	}

	payload, err := proto.MarshalOptions{Deterministic: true}.Marshal(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "failed to encode request")
	}

	var resp *shopv1.CheckoutResponse
	var runErr error
	outcome, replayed, err := s.guard.Execute(ctx, idempotency.Request{
		Key:       readIdempotencyKey(ctx),
		Scope:     actor.ID,
		Operation: shopv1.ShopService_Checkout_FullMethodName,
		Payload:   payload,
	}, func(ctx context.Context) idempotency.Outcome {
		details, err := s.checkout.Checkout(ctx, actor, req.ShippingAddress)
		if err != nil {
			runErr = s.toStatus(err, "Checkout")
			return failureOutcome(runErr)
		}
		resp = &shopv1.CheckoutResponse{
			Order:    toProtoOrder(details),
			Timeline: toProtoTimeline(details.Timeline),
		}
		return s.successOutcome(resp)
	})
	if err != nil {
		return nil, s.toStatus(err, "Checkout")
	}
	if !replayed {
		return resp, runErr
	}

	if outcome.Failed {
		return nil, decodeFailure(outcome)
	}
	cached := &shopv1.CheckoutResponse{}
	if err := protojson.Unmarshal(outcome.Body, cached); err != nil {
		s.logger.WithError(err).Warn("failed to decode cached checkout response")
		return nil, status.Error(codes.Internal, "failed to decode cached idempotency response")
	}
	return cached, nil
}

// GetOrder возвращает заказ вызывающего вместе с таймлайном.
func (s *ShopService) GetOrder(ctx context.Context, req *shopv1.GetOrderRequest) (*shopv1.GetOrderResponse, error) {
	if strings.TrimSpace(req.GetOrderId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	details, err := s.orders.Get(ctx, auth.FromIncomingMetadata(ctx), req.GetOrderId())
	if err != nil {
		return nil, s.toStatus(err, "GetOrder")
	}
	return &shopv1.GetOrderResponse{
		Order:    toProtoOrder(details),
		Timeline: toProtoTimeline(details.Timeline),
	}, nil
}

// ListOrders возвращает заказы вызывающего.
func (s *ShopService) ListOrders(ctx context.Context, req *shopv1.ListOrdersRequest) (*shopv1.ListOrdersResponse, error) {
	list, err := s.orders.List(ctx, auth.FromIncomingMetadata(ctx), pageSize(req.GetPageSize()))
	if err != nil {
		return nil, s.toStatus(err, "ListOrders")
	}
	return toProtoOrderList(list), nil
}

// ListAllOrders возвращает заказы всех покупателей (только администратор).
func (s *ShopService) ListAllOrders(ctx context.Context, req *shopv1.ListAllOrdersRequest) (*shopv1.ListOrdersResponse, error) {
	list, err := s.orders.ListAll(ctx, auth.FromIncomingMetadata(ctx), pageSize(req.GetPageSize()))
	if err != nil {
		return nil, s.toStatus(err, "ListAllOrders")
	}
	return toProtoOrderList(list), nil
}

// SetOrderStatus меняет метку статуса заказа (только администратор).
func (s *ShopService) SetOrderStatus(ctx context.Context, req *shopv1.SetOrderStatusRequest) (*shopv1.SetOrderStatusResponse, error) {
	if strings.TrimSpace(req.GetOrderId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	details, err := s.orders.SetStatus(ctx, auth.FromIncomingMetadata(ctx), req.GetOrderId(), req.GetStatus())
	if err != nil {
		return nil, s.toStatus(err, "SetOrderStatus")
	}
	return &shopv1.SetOrderStatusResponse{Order: toProtoOrder(details)}, nil
}

// GetStats возвращает число заказов и выручку (только администратор).
func (s *ShopService) GetStats(ctx context.Context, _ *shopv1.GetStatsRequest) (*shopv1.GetStatsResponse, error) {
	stats, err := s.orders.Stats(ctx, auth.FromIncomingMetadata(ctx))
	if err != nil {
		return nil, s.toStatus(err, "GetStats")
	}
	return &shopv1.GetStatsResponse{
		TotalOrders: stats.TotalOrders,
		Revenue:     toProtoMoney(s.currency, stats.RevenueMinor),
	}, nil
}

func (s *ShopService) GetCart(ctx context.Context, _ *shopv1.GetCartRequest) (*shopv1.CartResponse, error) {
	cart, err := s.cart.View(ctx, auth.FromIncomingMetadata(ctx))
	return s.cartResponse(cart, err, "GetCart")
}

func (s *ShopService) AddCartItem(ctx context.Context, req *shopv1.AddCartItemRequest) (*shopv1.CartResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	cart, err := s.cart.Add(ctx, auth.FromIncomingMetadata(ctx), req.GetProductId(), req.GetQuantity())
	return s.cartResponse(cart, err, "AddCartItem")
}

func (s *ShopService) UpdateCartItem(ctx context.Context, req *shopv1.UpdateCartItemRequest) (*shopv1.CartResponse, error) {
	if strings.TrimSpace(req.GetLineId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "line_id is required")
	}
	cart, err := s.cart.Update(ctx, auth.FromIncomingMetadata(ctx), req.GetLineId(), req.GetQuantity())
	return s.cartResponse(cart, err, "UpdateCartItem")
}

func (s *ShopService) RemoveCartItem(ctx context.Context, req *shopv1.RemoveCartItemRequest) (*shopv1.CartResponse, error) {
	if strings.TrimSpace(req.GetLineId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "line_id is required")
	}
	cart, err := s.cart.Remove(ctx, auth.FromIncomingMetadata(ctx), req.GetLineId())
	return s.cartResponse(cart, err, "RemoveCartItem")
}

func (s *ShopService) ClearCart(ctx context.Context, _ *shopv1.ClearCartRequest) (*shopv1.CartResponse, error) {
	cart, err := s.cart.Clear(ctx, auth.FromIncomingMetadata(ctx))
	return s.cartResponse(cart, err, "ClearCart")
}

func (s *ShopService) cartResponse(cart domain.Cart, err error, operation string) (*shopv1.CartResponse, error) {
	if err != nil {
		return nil, s.toStatus(err, operation)
	}
	return &shopv1.CartResponse{Cart: toProtoCart(cart, s.currency)}, nil
}

// toStatus переводит доменную ошибку в gRPC status. Внутренние ошибки логируются,
// клиенту уходит только общий текст.
func (s *ShopService) toStatus(err error, operation string) error {
	var stockErr *domain.InsufficientStockError
	var unavailableErr *domain.ProductUnavailableError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "x-actor-id metadata is required")
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, "admin role required")
	case errors.As(err, &stockErr):
		return withErrorInfo(codes.FailedPrecondition, stockErr.Error(), "INSUFFICIENT_STOCK", map[string]string{
			"product_id": stockErr.ProductID,
			"requested":  strconv.Itoa(int(stockErr.Requested)),
			"available":  strconv.Itoa(int(stockErr.Available)),
			"phase":      string(stockErr.Phase),
		})
	case errors.As(err, &unavailableErr):
		return withErrorInfo(codes.NotFound, unavailableErr.Error(), "PRODUCT_UNAVAILABLE", map[string]string{
			"product_id": unavailableErr.ProductID,
		})
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, idempotency.ErrRequestInProgress):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return status.Error(codes.AlreadyExists, "idempotency key is already used with different request payload")
	case domain.IsConflict(err):
		return status.Error(codes.Aborted, "checkout conflict, retry the request")
	default:
		s.logger.WithError(err).WithField("operation", operation).Error("request failed")
		return status.Error(codes.Internal, "internal error")
	}
}

func withErrorInfo(code codes.Code, msg, reason string, md map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorInfoDomain,
		Metadata: md,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func (s *ShopService) successOutcome(resp *shopv1.CheckoutResponse) idempotency.Outcome {
	body, err := protojson.Marshal(resp)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode checkout response for idempotency cache")
		return idempotency.Outcome{Code: int(codes.Internal), Failed: true, Retryable: true}
	}
	return idempotency.Outcome{Code: int(codes.OK), Body: body}
}

// failureOutcome сохраняет google.rpc.Status целиком, вместе с ErrorInfo.
func failureOutcome(err error) idempotency.Outcome {
	st := status.Convert(err)
	body, _ := protojson.Marshal(st.Proto())
	return idempotency.Outcome{
		Code:      int(st.Code()),
		Body:      body,
		Failed:    true,
		Retryable: retryableCode(st.Code()),
	}
}

func retryableCode(code codes.Code) bool {
	switch code {
	case codes.Aborted, codes.Internal, codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func decodeFailure(outcome idempotency.Outcome) error {
	payload := &spb.Status{}
	if err := protojson.Unmarshal(outcome.Body, payload); err == nil && payload.GetCode() > 0 && payload.GetCode() <= int32(codes.Unauthenticated) {
		if payload.GetMessage() == "" {
			payload.Message = "previous request with the same idempotency key failed"
		}
		return status.FromProto(payload).Err()
	}
	return status.Error(codes.Internal, "previous request with the same idempotency key failed")
}

func readIdempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(idempotencyKeyHeader)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func pageSize(size int32) int {
	if size <= 0 {
		return defaultListOrdersLimit
	}
	return int(size)
}
