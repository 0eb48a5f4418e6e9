package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zhuxining/skills-dev/internal/longport"
)

// DDL for the quote and candlestick tables, safe to run on every start.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		ts       DateTime,
		symbol   String,
		price    Float64,
		volume   Int64,
		turnover Float64
	) ENGINE = MergeTree()
	ORDER BY (symbol, ts)`,
	`CREATE TABLE IF NOT EXISTS candlesticks (
		ts       DateTime,
		symbol   String,
		period   String,
		open     Float64,
		high     Float64,
		low      Float64,
		close    Float64,
		volume   Int64,
		turnover Float64
	) ENGINE = ReplacingMergeTree()
	ORDER BY (symbol, period, ts)`,
}

// ClickHouseSink buffers quotes and flushes them in batches to cut insert
// round-trips. Flush happens when the buffer fills or on Close.
type ClickHouseSink struct {
	db        *sql.DB
	batchSize int

	mu  sync.Mutex
	buf []longport.Quote
}

// NewClickHouseSink creates a buffered sink. batchSize rows are collected
// before each insert; values below 1 flush every quote.
func NewClickHouseSink(db *sql.DB, batchSize int) *ClickHouseSink {
	if batchSize < 1 {
		batchSize = 1
	}
	return &ClickHouseSink{
		db:        db,
		batchSize: batchSize,
		buf:       make([]longport.Quote, 0, batchSize),
	}
}

func (s *ClickHouseSink) Name() string { return "clickhouse" }

func (s *ClickHouseSink) Publish(ctx context.Context, quote longport.Quote) error {
	s.mu.Lock()
	s.buf = append(s.buf, quote)
	if len(s.buf) < s.batchSize {
		s.mu.Unlock()
		return nil
	}
	batch := s.buf
	s.buf = make([]longport.Quote, 0, s.batchSize)
	s.mu.Unlock()

	return s.insert(ctx, batch)
}

// Flush writes any buffered quotes immediately.
func (s *ClickHouseSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	if len(s.buf) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := s.buf
	s.buf = make([]longport.Quote, 0, s.batchSize)
	s.mu.Unlock()

	return s.insert(ctx, batch)
}

func (s *ClickHouseSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Flush(ctx)
}

func (s *ClickHouseSink) insert(ctx context.Context, quotes []longport.Quote) error {
	values := make([]string, 0, len(quotes))
	args := make([]interface{}, 0, len(quotes)*5)
	for _, q := range quotes {
		values = append(values, "(?, ?, ?, ?, ?)")
		args = append(args,
			time.Unix(q.Timestamp, 0),
			q.Symbol,
			q.Price.InexactFloat64(),
			q.Volume,
			q.Turnover.InexactFloat64(),
		)
	}
	query := fmt.Sprintf(
		"INSERT INTO quotes (ts, symbol, price, volume, turnover) VALUES %s",
		strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert quotes: %w", err)
	}
	return nil
}

// CandleStore writes candlestick history fetched over REST.
type CandleStore struct {
	db *sql.DB
}

// NewCandleStore wraps a ClickHouse connection for candlestick inserts.
func NewCandleStore(db *sql.DB) *CandleStore {
	return &CandleStore{db: db}
}

// Store inserts the given candlesticks in one statement. The table is a
// ReplacingMergeTree, so re-fetching the same range is harmless.
func (cs *CandleStore) Store(ctx context.Context, symbol string, period longport.Period, candles []longport.Candlestick) error {
	if len(candles) == 0 {
		return nil
	}
	values := make([]string, 0, len(candles))
	args := make([]interface{}, 0, len(candles)*9)
	for _, c := range candles {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			time.Unix(c.Timestamp, 0),
			symbol,
			string(period),
			c.Open.InexactFloat64(),
			c.High.InexactFloat64(),
			c.Low.InexactFloat64(),
			c.Close.InexactFloat64(),
			c.Volume,
			c.Turnover.InexactFloat64(),
		)
	}
	query := fmt.Sprintf(
		"INSERT INTO candlesticks (ts, symbol, period, open, high, low, close, volume, turnover) VALUES %s",
		strings.Join(values, ","))
	if _, err := cs.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert candlesticks: %w", err)
	}
	return nil
}
