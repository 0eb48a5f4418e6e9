package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus counters for the streaming pipeline.
type Recorder struct {
	quotesPublished *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
}

// New registers and returns the stream metrics.
func New() *Recorder {
	return &Recorder{
		quotesPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockctl_quotes_published_total",
				Help: "Total quotes published to a sink",
			},
			[]string{"sink", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockctl_stream_errors_total",
				Help: "Total errors encountered while streaming",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockctl_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordQuotePublished counts a quote delivered to a sink.
func (r *Recorder) RecordQuotePublished(sink, symbol string) {
	r.quotesPublished.WithLabelValues(sink, symbol).Inc()
}

// RecordError counts an error by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice sets the last observed price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}
