package longport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhuxining/skills-dev/pkg/logger"
)

// QuoteHandler consumes one quote push event.
type QuoteHandler func(ctx context.Context, q Quote) error

// QuoteStream subscribes to real-time quote pushes over WebSocket.
type QuoteStream struct {
	cfg          *Config
	symbols      []string
	log          *logger.Logger
	pingInterval time.Duration

	conn *websocket.Conn
}

// NewQuoteStream creates a stream for the given symbols.
func NewQuoteStream(cfg *Config, symbols []string, log *logger.Logger) *QuoteStream {
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteStream{
		cfg:          cfg,
		symbols:      symbols,
		log:          log,
		pingInterval: 15 * time.Second,
	}
}

// Connect dials the quote push endpoint.
func (s *QuoteStream) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", s.cfg.QuoteWSURL, s.cfg.AccessToken)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("quote stream connect: %w", err)
	}
	s.conn = conn
	s.log.Info("quote stream connected")
	return nil
}

// Subscribe subscribes to the configured symbols.
func (s *QuoteStream) Subscribe(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("quote stream not connected")
	}
	msg := map[string]interface{}{"action": "subscribe", "symbols": s.symbols}
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	s.log.Info("subscribed", logger.Strings("symbols", s.symbols))
	return nil
}

type quoteEvent struct {
	Type string  `json:"type"`
	Data []Quote `json:"data"`
}

// Listen reads quote events and hands them to the handler until the
// context is canceled or the connection fails. Handler errors are logged
// and do not stop the stream.
func (s *QuoteStream) Listen(ctx context.Context, handle QuoteHandler) error {
	if s.conn == nil {
		return fmt.Errorf("quote stream not connected")
	}

	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// Unblocks the read loop below.
				_ = s.conn.Close()
				return
			case <-ticker.C:
				_ = s.conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	for {
		_, b, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("quote stream read: %w", err)
		}

		var ev quoteEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			// ignore non-quote frames
			continue
		}
		if ev.Type != "quote" {
			continue
		}
		for _, q := range ev.Data {
			if err := handle(ctx, q); err != nil {
				s.log.Error("quote handler failed", logger.String("symbol", q.Symbol), logger.Error(err))
			}
		}
	}
}

// Close closes the connection.
func (s *QuoteStream) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
