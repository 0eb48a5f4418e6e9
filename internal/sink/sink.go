// Package sink delivers real-time quotes to a configurable backend:
// stdout for interactive use, Kafka for downstream consumers, or
// ClickHouse for direct storage.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/zhuxining/skills-dev/internal/longport"
)

// Sink receives quotes from the stream pipeline.
type Sink interface {
	Name() string
	Publish(ctx context.Context, quote longport.Quote) error
	Close() error
}

// StdoutSink writes one JSON line per quote.
type StdoutSink struct {
	w   io.Writer
	enc *json.Encoder
}

// NewStdoutSink creates a sink writing JSON lines to w.
func NewStdoutSink(w io.Writer) *StdoutSink {
	return &StdoutSink{w: w, enc: json.NewEncoder(w)}
}

func (s *StdoutSink) Name() string { return "stdout" }

func (s *StdoutSink) Publish(_ context.Context, quote longport.Quote) error {
	if err := s.enc.Encode(quote); err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	return nil
}

func (s *StdoutSink) Close() error { return nil }
