// Package health отдаёт состояние зависимостей сервиса для /healthz, /readyz
// и gRPC health protocol.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// DefaultCheckTimeout ограничивает один прогон всех проверок.
const DefaultCheckTimeout = 2 * time.Second

func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// ServingStatus переводит статус в gRPC health: degraded сервис продолжает обслуживать запросы.
func (s Status) ServingStatus() healthpb.HealthCheckResponse_ServingStatus {
	if s == StatusUnhealthy {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

// Check — результат проверки одного компонента.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Optional   bool   `json:"optional,omitempty"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response — тело /healthz.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

type Checker interface {
	Check(ctx context.Context) Check
}

type component struct {
	name     string
	checker  Checker
	optional bool
}

// Handler хранит зарегистрированные компоненты.
// Упавший обязательный компонент делает сервис unhealthy, необязательный только degraded.
type Handler struct {
	mu         sync.RWMutex
	components map[string]component
	version    string
	timeout    time.Duration
	started    time.Time
	now        func() time.Time
}

func NewHandler(version string) *Handler {
	return &Handler{
		components: make(map[string]component),
		version:    version,
		timeout:    DefaultCheckTimeout,
		started:    time.Now(),
		now:        time.Now,
	}
}

// RegisterChecker добавляет обязательный компонент, например хранилище.
func (h *Handler) RegisterChecker(name string, checker Checker) {
	h.add(component{name: name, checker: checker})
}

// RegisterOptional добавляет компонент, без которого сервис работает в деградированном режиме.
func (h *Handler) RegisterOptional(name string, checker Checker) {
	h.add(component{name: name, checker: checker, optional: true})
}

func (h *Handler) add(c component) {
	h.mu.Lock()
	h.components[c.name] = c
	h.mu.Unlock()
}

func (h *Handler) snapshot() []component {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]component, 0, len(h.components))
	for _, c := range h.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Run опрашивает компоненты параллельно в пределах общего таймаута.
func (h *Handler) Run(ctx context.Context) (Status, map[string]Check) {
	components := h.snapshot()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make([]Check, len(components))
	var g errgroup.Group
	for i, c := range components {
		g.Go(func() error {
			check := c.checker.Check(ctx)
			check.Optional = c.optional
			if c.optional && check.Status == StatusUnhealthy {
				check.Status = StatusDegraded
			}
			results[i] = check
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusHealthy
	checks := make(map[string]Check, len(results))
	for i, check := range results {
		checks[components[i].name] = check
		if check.Status.rank() > overall.rank() {
			overall = check.Status
		}
	}
	return overall, checks
}

// ServeHTTP отдаёт /healthz; 503 только при unhealthy.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	overall, checks := h.Run(r.Context())
	now := h.now()

	code := http.StatusOK
	if overall == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:        overall,
		Timestamp:     now.UTC(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(now.Sub(h.started).Seconds()),
	})
}

// LivenessHandler всегда отвечает 200: процесс жив, пока отвечает.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// ReadinessHandler отвечает 503, пока недоступен обязательный компонент.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if overall, _ := h.Run(r.Context()); overall == StatusUnhealthy {
		writeText(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	writeText(w, http.StatusOK, "ready")
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// ServingStatusSetter — часть grpc health.Server, которой нужен Mirror.
type ServingStatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// Mirror с периодом interval переносит итоговый статус в gRPC health server
// для каждого из services ("" означает весь сервер). Возвращается после отмены ctx.
func (h *Handler) Mirror(ctx context.Context, target ServingStatusSetter, interval time.Duration, services ...string) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if len(services) == 0 {
		services = []string{""}
	}

	publish := func() {
		overall, _ := h.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		for _, service := range services {
			target.SetServingStatus(service, overall.ServingStatus())
		}
	}

	publish()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish()
		}
	}
}

// PingChecker проверяет компонент функцией ping (Postgres, Redis, backlog outbox).
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingChecker(name string, ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.ping(ctx)

	check := Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}
