// Команда loadtest гоняет сценарии покупки через gRPC API магазина
// и печатает сводку по кодам ответов и задержкам.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	shopv1 "github.com/vladislavdragonenkov/shop/api/shop/v1"
	"github.com/vladislavdragonenkov/shop/internal/auth"
	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const idempotencyHeader = "idempotency-key"

type loadMode string

const (
	// modeCheckout: положить товар в корзину и оформить заказ.
	modeCheckout loadMode = "checkout"
	// modeCheckoutRead дополнительно читает созданный заказ.
	modeCheckoutRead loadMode = "checkout-read"
	// modeCheckoutCancel дополнительно отменяет заказ от имени администратора.
	modeCheckoutCancel loadMode = "checkout-cancel"
)

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	cancelRate  int
	productID   string
	quantity    int
	customerTag string
	adminID     string
	soldOutOK   bool
	outputPath  string
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var modeValue string

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios to execute in count mode; in duration mode only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modeCheckout), "load mode: checkout | checkout-read | checkout-cancel")
	fs.IntVar(&cfg.cancelRate, "cancel-rate", 0, "cancel probability in percent for checkout mode (0..100)")
	fs.StringVar(&cfg.productID, "product", "book-1", "product id to buy")
	fs.IntVar(&cfg.quantity, "qty", 1, "quantity per order")
	fs.StringVar(&cfg.customerTag, "customer-tag", "load", "customer id prefix")
	fs.StringVar(&cfg.adminID, "admin", "load-admin", "admin actor id used for status changes")
	fs.BoolVar(&cfg.soldOutOK, "sold-out-ok", false, "count insufficient stock on checkout as an expected outcome")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	switch {
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return cfg, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	case cfg.quantity <= 0:
		return cfg, errors.New("qty must be > 0")
	case cfg.cancelRate < 0 || cfg.cancelRate > 100:
		return cfg, errors.New("cancel-rate must be between 0 and 100")
	case strings.TrimSpace(cfg.productID) == "":
		return cfg, errors.New("product is required")
	case strings.TrimSpace(cfg.customerTag) == "":
		return cfg, errors.New("customer-tag is required")
	case strings.TrimSpace(cfg.adminID) == "":
		return cfg, errors.New("admin is required")
	}
	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeCheckout, modeCheckoutRead, modeCheckoutCancel:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	result, err := run(cfg, os.Stdout)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// run открывает соединения, прогоняет сценарии и печатает отчёт.
func run(cfg config, out io.Writer) (report, error) {
	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]shopv1.ShopServiceClient, 0, cfg.connections)
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()
	for i := 0; i < cfg.connections; i++ {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return report{}, fmt.Errorf("create grpc client connection: %w", err)
		}
		conns = append(conns, conn)
		clients = append(clients, shopv1.NewShopServiceClient(conn))
	}

	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var wg sync.WaitGroup
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(client shopv1.ShopServiceClient) {
			defer wg.Done()
			for id := range jobs {
				_ = runScenario(client, cfg, id, runID, col)
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	result := col.buildReport(startedAt, time.Since(startedAt))
	printReport(out, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			return result, fmt.Errorf("write report: %w", err)
		}
	}
	return result, nil
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}
		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

// runScenario выполняет один сценарий от имени отдельного покупателя.
func runScenario(client shopv1.ShopServiceClient, cfg config, index int, runID string, col *collector) (err error) {
	scenarioStart := time.Now()
	defer func() {
		col.record(scenarioMetric, time.Since(scenarioStart), grpcCode(err))
	}()

	customer := domain.Actor{ID: fmt.Sprintf("%s-%s-%d", cfg.customerTag, runID, index)}
	soldOut := func(err error) bool {
		if cfg.soldOutOK && status.Code(err) == codes.FailedPrecondition {
			col.recordSoldOut()
			return true
		}
		return false
	}

	// Остаток проверяется и при добавлении в корзину, и при checkout.
	if err := callAddCartItem(client, cfg.timeout, customer, cfg.productID, int32(cfg.quantity), col); err != nil {
		if soldOut(err) {
			return nil
		}
		return err
	}

	key := fmt.Sprintf("lt-checkout-%s-%d", runID, index)
	resp, err := callCheckout(client, cfg.timeout, customer, key, col)
	if err != nil {
		if soldOut(err) {
			return nil
		}
		return err
	}
	if resp.GetOrder().GetId() == "" {
		return status.Error(codes.Internal, "checkout response returned empty order id")
	}
	orderID := resp.GetOrder().GetId()

	if cfg.mode == modeCheckoutRead {
		if err := callGetOrder(client, cfg.timeout, customer, orderID, col); err != nil {
			return err
		}
	}

	if cfg.mode == modeCheckoutCancel || (cfg.mode == modeCheckout && shouldCancelScenario(index, cfg.cancelRate)) {
		admin := domain.Actor{ID: cfg.adminID, Role: domain.RoleAdmin}
		if err := callCancelOrder(client, cfg.timeout, admin, orderID, col); err != nil {
			return err
		}
	}
	return nil
}

// timed выполняет RPC от имени actor и записывает код и задержку.
func timed(timeout time.Duration, actor domain.Actor, method string, col *collector, call func(ctx context.Context) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := call(auth.AppendToOutgoing(ctx, actor))
	col.record(method, time.Since(start), grpcCode(err))
	return err
}

func callAddCartItem(client shopv1.ShopServiceClient, timeout time.Duration, actor domain.Actor, productID string, qty int32, col *collector) error {
	return timed(timeout, actor, "AddCartItem", col, func(ctx context.Context) error {
		_, err := client.AddCartItem(ctx, &shopv1.AddCartItemRequest{ProductId: productID, Quantity: qty})
		return err
	})
}

func callCheckout(client shopv1.ShopServiceClient, timeout time.Duration, actor domain.Actor, key string, col *collector) (*shopv1.CheckoutResponse, error) {
	var resp *shopv1.CheckoutResponse
	err := timed(timeout, actor, "Checkout", col, func(ctx context.Context) error {
		var err error
		ctx = metadata.AppendToOutgoingContext(ctx, idempotencyHeader, key)
		resp, err = client.Checkout(ctx, &shopv1.CheckoutRequest{ShippingAddress: "Load test street 1"})
		return err
	})
	return resp, err
}

func callGetOrder(client shopv1.ShopServiceClient, timeout time.Duration, actor domain.Actor, orderID string, col *collector) error {
	return timed(timeout, actor, "GetOrder", col, func(ctx context.Context) error {
		_, err := client.GetOrder(ctx, &shopv1.GetOrderRequest{OrderId: orderID})
		return err
	})
}

func callCancelOrder(client shopv1.ShopServiceClient, timeout time.Duration, admin domain.Actor, orderID string, col *collector) error {
	return timed(timeout, admin, "SetOrderStatus", col, func(ctx context.Context) error {
		_, err := client.SetOrderStatus(ctx, &shopv1.SetOrderStatusRequest{
			OrderId: orderID,
			Status:  string(domain.OrderStatusCanceled),
		})
		return err
	})
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}

func shouldCancelScenario(index, cancelRate int) bool {
	if cancelRate <= 0 {
		return false
	}
	if cancelRate >= 100 {
		return true
	}
	return index%100 < cancelRate
}
