package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	insightCacheHitsTotal       atomic.Uint64
	insightRegenerationsTotal   atomic.Uint64
	insightRegenerationFailures atomic.Uint64
	insightSweepsTotal          atomic.Uint64
	llmCallsTotal               atomic.Uint64
	llmFailuresTotal            atomic.Uint64

	llmDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncInsightCacheHit counts insight reads served from a fresh snapshot.
func IncInsightCacheHit() {
	insightCacheHitsTotal.Add(1)
}

// IncInsightRegenerated counts insight snapshots written after a provider call.
func IncInsightRegenerated() {
	insightRegenerationsTotal.Add(1)
}

// IncInsightRegenerationFailed counts regenerations that wrote nothing.
func IncInsightRegenerationFailed() {
	insightRegenerationFailures.Add(1)
}

// IncInsightSweep counts completed sweeps.
func IncInsightSweep() {
	insightSweepsTotal.Add(1)
}

// ObserveLLMCall records one provider call and its duration in milliseconds.
func ObserveLLMCall(durationMs float64, err error) {
	llmCallsTotal.Add(1)
	if err != nil {
		llmFailuresTotal.Add(1)
	}
	if durationMs < 0 {
		durationMs = 0
	}
	llmDuration.Observe(durationMs)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "insight_cache_hits_total", "Insight reads served without regeneration", insightCacheHitsTotal.Load())
	writeCounter(&buf, "insight_regenerations_total", "Insight snapshots regenerated", insightRegenerationsTotal.Load())
	writeCounter(&buf, "insight_regeneration_failures_total", "Insight regenerations that failed", insightRegenerationFailures.Load())
	writeCounter(&buf, "insight_sweeps_total", "Insight sweeps completed", insightSweepsTotal.Load())
	writeCounter(&buf, "llm_calls_total", "Generative provider calls", llmCallsTotal.Load())
	writeCounter(&buf, "llm_failures_total", "Generative provider calls that failed", llmFailuresTotal.Load())
	writeHistogram(&buf, "llm_duration_ms", "Generative provider latency in milliseconds", llmDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
