package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// DefaultTTL задаёт, сколько хранится ответ по ключу идемпотентности.
const DefaultTTL = 24 * time.Hour

// ErrRequestInProgress: запрос с тем же ключом ещё выполняется.
var ErrRequestInProgress = errors.New("request with the same idempotency key is still processing")

var guardRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shop_idempotency_requests_total",
	Help: "Requests carrying an idempotency key by outcome.",
}, []string{"result"})

// Request описывает вызов, защищённый ключом идемпотентности.
// Ключ действует в пределах Scope (идентификатор пользователя): один и тот же
// ключ у разных пользователей не пересекается.
type Request struct {
	Key       string
	Scope     string
	Operation string
	Payload   any
}

// Outcome — отрендеренный транспортом ответ, который сохраняется и отдаётся при повторе.
// Retryable-ошибки (конфликт, внутренняя ошибка) не сохраняются: ключ освобождается.
type Outcome struct {
	Code      int
	Body      []byte
	Failed    bool
	Retryable bool
}

// Guard сохраняет результат первого выполнения и повторяет его для запросов с тем же ключом.
type Guard struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	logger *log.Entry
	now    func() time.Time
}

// NewGuard создаёт Guard. nil-репозиторий отключает идемпотентность.
func NewGuard(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "idempotency")
	}
	return &Guard{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Execute выполняет handler не более одного раза на ключ.
//
// Без ключа handler вызывается как обычно. Повтор с тем же телом возвращает
// сохранённый Outcome и replayed=true. Повтор с другим телом даёт
// domain.ErrIdempotencyHashMismatch, а пока первый запрос не завершён —
// ErrRequestInProgress.
func (g *Guard) Execute(ctx context.Context, req Request, handler func(ctx context.Context) Outcome) (outcome Outcome, replayed bool, err error) {
	key := strings.TrimSpace(req.Key)
	if g == nil || g.repo == nil || key == "" {
		return handler(ctx), false, nil
	}

	hash, err := RequestHash(req.Operation, req.Scope, req.Payload)
	if err != nil {
		return Outcome{}, false, fmt.Errorf("hash idempotent request: %w", err)
	}

	storageKey := scopedKey(req.Scope, key)
	logger := g.logger.WithFields(log.Fields{
		"idempotency_key": key,
		"operation":       req.Operation,
	})

	record, err := g.repo.CreateProcessing(ctx, storageKey, hash, g.now().Add(g.ttl))
	if err != nil {
		return g.replay(logger, record, err)
	}
	guardRequestsTotal.WithLabelValues("new").Inc()

	outcome = handler(ctx)

	// Результат сохраняется даже если клиент уже ушёл.
	storeCtx := context.WithoutCancel(ctx)
	switch {
	case outcome.Failed && outcome.Retryable:
		err = g.repo.Release(storeCtx, storageKey)
	case outcome.Failed:
		err = g.repo.MarkFailed(storeCtx, storageKey, outcome.Body, outcome.Code)
	default:
		err = g.repo.MarkDone(storeCtx, storageKey, outcome.Body, outcome.Code)
	}
	if err != nil {
		logger.WithError(err).Warn("failed to store idempotent response")
	}
	return outcome, false, nil
}

func (g *Guard) replay(logger *log.Entry, record domain.IdempotencyRecord, createErr error) (Outcome, bool, error) {
	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		guardRequestsTotal.WithLabelValues("mismatch").Inc()
		return Outcome{}, false, domain.ErrIdempotencyHashMismatch
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
	default:
		logger.WithError(createErr).Warn("failed to create idempotency record")
		return Outcome{}, false, fmt.Errorf("create idempotency record: %w", createErr)
	}

	switch {
	case record.Status == domain.IdempotencyStatusProcessing:
		guardRequestsTotal.WithLabelValues("in_progress").Inc()
		return Outcome{}, false, ErrRequestInProgress
	case record.Status.Terminal():
		guardRequestsTotal.WithLabelValues("replayed").Inc()
		logger.Debug("replaying stored response")
		return Outcome{
			Code:   record.ResponseCode,
			Body:   append([]byte(nil), record.ResponseBody...),
			Failed: record.Status == domain.IdempotencyStatusFailed,
		}, true, nil
	default:
		return Outcome{}, false, fmt.Errorf("unknown idempotency status %q", record.Status)
	}
}

// RequestHash считает отпечаток запроса: операция, пользователь и тело.
// Готовые байты ([]byte) хешируются как есть, остальное кодируется в JSON.
func RequestHash(operation, scope string, payload any) (string, error) {
	data, ok := payload.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return "", err
		}
	}

	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{':'})
	h.Write([]byte(scope))
	h.Write([]byte{':'})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// scopedKey префиксует ключ длиной scope: пары ("a:b", "c") и ("a", "b:c") не совпадают.
func scopedKey(scope, key string) string {
	return strconv.Itoa(len(scope)) + ":" + scope + ":" + key
}
