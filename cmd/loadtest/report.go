package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"google.golang.org/grpc/codes"
)

const scenarioMetric = "scenario"

// latencyBuckets в секундах: от 1ms до 10s.
var latencyBuckets = prometheus.ExponentialBuckets(0.001, 2, 14)

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type methodReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Codes     map[string]int64 `json:"codes"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time               `json:"started_at"`
	DurationSeconds   float64                 `json:"duration_seconds"`
	TotalScenarios    int64                   `json:"total_scenarios"`
	SuccessScenarios  int64                   `json:"success_scenarios"`
	FailedScenarios   int64                   `json:"failed_scenarios"`
	SoldOut           int64                   `json:"sold_out"`
	ErrorRate         float64                 `json:"error_rate"`
	RPS               float64                 `json:"rps"`
	ScenarioLatencyMs latencySummary          `json:"scenario_latency_ms"`
	Methods           map[string]methodReport `json:"methods"`
}

// collector считает вызовы в собственном prometheus-реестре: счётчики по коду
// gRPC и гистограмму задержек. Точные перцентили считаются по сырым замерам.
type collector struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	soldOut  prometheus.Counter

	mu      sync.Mutex
	samples map[string][]float64
}

func newCollector() *collector {
	c := &collector{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loadtest_calls_total",
			Help: "Load test calls by method and gRPC code.",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loadtest_call_duration_seconds",
			Help:    "Load test call latency by method.",
			Buckets: latencyBuckets,
		}, []string{"method"}),
		soldOut: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loadtest_sold_out_total",
			Help: "Checkouts rejected with insufficient stock.",
		}),
		samples: make(map[string][]float64),
	}
	c.registry.MustRegister(c.calls, c.latency, c.soldOut)
	return c
}

func (c *collector) record(method string, latency time.Duration, code codes.Code) {
	c.calls.WithLabelValues(method, code.String()).Inc()
	c.latency.WithLabelValues(method).Observe(latency.Seconds())

	c.mu.Lock()
	c.samples[method] = append(c.samples[method], float64(latency.Microseconds())/1000.0)
	c.mu.Unlock()
}

func (c *collector) recordSoldOut() {
	c.soldOut.Inc()
}

func (c *collector) snapshot(method string) (methodReport, bool) {
	reports, _, err := c.gather()
	if err != nil {
		return methodReport{}, false
	}
	r, ok := reports[method]
	return r, ok
}

// gather собирает отчёты по методам из реестра.
func (c *collector) gather() (map[string]methodReport, int64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, 0, fmt.Errorf("gather load test metrics: %w", err)
	}

	reports := make(map[string]methodReport)
	var soldOut int64
	for _, family := range families {
		switch family.GetName() {
		case "loadtest_calls_total":
			for _, m := range family.GetMetric() {
				method, code := labelValue(m, "method"), labelValue(m, "code")
				r := reports[method]
				if r.Codes == nil {
					r.Codes = make(map[string]int64)
				}
				n := int64(m.GetCounter().GetValue())
				r.Codes[code] += n
				r.Calls += n
				if code == codes.OK.String() {
					r.Success += n
				} else {
					r.Failed += n
				}
				reports[method] = r
			}
		case "loadtest_sold_out_total":
			for _, m := range family.GetMetric() {
				soldOut += int64(m.GetCounter().GetValue())
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for method, r := range reports {
		r.ErrorRate = ratio(r.Failed, r.Calls)
		r.LatencyMs = buildLatencySummary(c.samples[method])
		reports[method] = r
	}
	return reports, soldOut, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, pair := range m.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}

func (c *collector) buildReport(startedAt time.Time, duration time.Duration) report {
	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: duration.Seconds(),
		Methods:         map[string]methodReport{},
	}

	methods, soldOut, err := c.gather()
	if err != nil {
		return result
	}
	result.Methods = methods
	result.SoldOut = soldOut

	if scenario, ok := methods[scenarioMetric]; ok {
		result.TotalScenarios = scenario.Calls
		result.SuccessScenarios = scenario.Success
		result.FailedScenarios = scenario.Failed
		result.ErrorRate = scenario.ErrorRate
		result.ScenarioLatencyMs = scenario.LatencyMs
	}
	if duration > 0 {
		result.RPS = float64(result.TotalScenarios) / duration.Seconds()
	}
	return result
}

// writeJSONReport пишет отчёт только внутрь текущего каталога.
func writeJSONReport(path string, result report) error {
	target := filepath.Clean(path)
	switch {
	case target == "." || target == string(filepath.Separator):
		return errors.New("output path must point to a file")
	case target == ".." || strings.HasPrefix(target, ".."+string(filepath.Separator)):
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(target, append(data, '\n'), 0o600)
}

func printReport(w io.Writer, result report, cfg config) {
	lines := []string{
		"Load test summary",
		fmt.Sprintf("mode=%s run=%s total=%d success=%d failed=%d sold_out=%d error_rate=%.4f",
			cfg.mode, runTarget(cfg), result.TotalScenarios, result.SuccessScenarios,
			result.FailedScenarios, result.SoldOut, result.ErrorRate),
		fmt.Sprintf("duration=%.2fs rps=%.2f", result.DurationSeconds, result.RPS),
		"scenario latency ms: " + result.ScenarioLatencyMs.String(),
	}

	methods := make([]string, 0, len(result.Methods))
	for method := range result.Methods {
		if method != scenarioMetric {
			methods = append(methods, method)
		}
	}
	slices.Sort(methods)
	for _, method := range methods {
		m := result.Methods[method]
		lines = append(lines, fmt.Sprintf("%s: calls=%d success=%d failed=%d error_rate=%.4f p95=%.2fms",
			method, m.Calls, m.Success, m.Failed, m.ErrorRate, m.LatencyMs.P95))
	}

	_, _ = io.WriteString(w, strings.Join(lines, "\n")+"\n")
}

func (l latencySummary) String() string {
	return fmt.Sprintf("min=%.2f avg=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f",
		l.Min, l.Avg, l.P50, l.P95, l.P99, l.Max)
}

func runTarget(cfg config) string {
	switch {
	case cfg.duration <= 0:
		return fmt.Sprintf("count:%d", cfg.total)
	case cfg.totalSet:
		return fmt.Sprintf("duration:%s,max-total:%d", cfg.duration, cfg.total)
	default:
		return fmt.Sprintf("duration:%s", cfg.duration)
	}
}

func buildLatencySummary(samples []float64) latencySummary {
	if len(samples) == 0 {
		return latencySummary{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	total := 0.0
	for _, v := range sorted {
		total += v
	}
	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: total / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile интерполирует между соседними замерами отсортированного среза.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p / 100 * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (sorted[i+1]-sorted[i])*(pos-float64(i))
}

func ratio(failed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total)
}
