package longport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/zhuxining/skills-dev/pkg/cache"
	"github.com/zhuxining/skills-dev/pkg/httpclient"
	"github.com/zhuxining/skills-dev/pkg/logger"
)

// ErrGroupNotFound is returned when a watchlist group ID does not exist.
var ErrGroupNotFound = errors.New("longport: watchlist group not found")

// APIError is a non-zero business code in the response envelope.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("longport: api error %d: %s", e.Code, e.Message)
}

type apiResponse struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the LongPort OpenAPI over HTTPS.
type Client struct {
	cfg   *Config
	http  *httpclient.Client
	log   *logger.Logger
	cache cache.Service
	ttl   time.Duration
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithCache caches candlestick responses for ttl, keyed by request shape.
func WithCache(c cache.Service, ttl time.Duration) ClientOption {
	return func(cl *Client) {
		cl.cache = c
		cl.ttl = ttl
	}
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(cl *Client) {
		cl.log = l
	}
}

// New creates an API client from config.
func New(cfg *Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:  cfg,
		http: httpclient.New(httpclient.WithTimeout(cfg.Timeout)),
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Candlesticks fetches up to count bars for a symbol, oldest first.
func (c *Client) Candlesticks(ctx context.Context, symbol string, period Period, count int, adjust AdjustType) ([]Candlestick, error) {
	key := fmt.Sprintf("candles:%s:%s:%d:%d", symbol, period, count, adjust)
	if c.cache != nil {
		var cached string
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			var candles []Candlestick
			if err := json.Unmarshal([]byte(cached), &candles); err == nil {
				c.log.Debug("candlesticks cache hit", logger.String("key", key))
				return candles, nil
			}
		}
	}

	var data struct {
		Candlesticks []Candlestick `json:"candlesticks"`
	}
	query := map[string][]string{
		"symbol":      {symbol},
		"period":      {string(period)},
		"count":       {strconv.Itoa(count)},
		"adjust_type": {strconv.Itoa(int(adjust))},
	}
	if err := c.do(ctx, httpclient.MethodGet, "/v1/quote/candlestick", query, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch candlesticks %s: %w", symbol, err)
	}

	candles := data.Candlesticks
	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp < candles[j].Timestamp })

	if c.cache != nil {
		if b, err := json.Marshal(candles); err == nil {
			if err := c.cache.Set(ctx, key, string(b), c.ttl); err != nil {
				c.log.Warn("candlesticks cache store failed", logger.Error(err))
			}
		}
	}
	return candles, nil
}

// WatchlistGroups lists all watchlist groups.
func (c *Client) WatchlistGroups(ctx context.Context) ([]Group, error) {
	var data struct {
		Groups []Group `json:"groups"`
	}
	if err := c.do(ctx, httpclient.MethodGet, "/v1/watchlist/groups", nil, nil, &data); err != nil {
		return nil, fmt.Errorf("list watchlist groups: %w", err)
	}
	return data.Groups, nil
}

// WatchlistGroup fetches one group by ID.
func (c *Client) WatchlistGroup(ctx context.Context, id int64) (*Group, error) {
	groups, err := c.WatchlistGroups(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	return nil, ErrGroupNotFound
}

// CreateGroup creates a watchlist group and returns its ID.
func (c *Client) CreateGroup(ctx context.Context, name string, symbols []string) (int64, error) {
	body := map[string]interface{}{"name": name}
	if len(symbols) > 0 {
		body["securities"] = symbols
	}
	var data struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, httpclient.MethodPost, "/v1/watchlist/groups", nil, body, &data); err != nil {
		return 0, fmt.Errorf("create watchlist group %s: %w", name, err)
	}
	return data.ID, nil
}

// UpdateGroup adds, removes, or replaces group members.
func (c *Client) UpdateGroup(ctx context.Context, id int64, symbols []string, mode UpdateMode) error {
	body := map[string]interface{}{
		"securities": symbols,
		"mode":       string(mode),
	}
	path := fmt.Sprintf("/v1/watchlist/groups/%d", id)
	if err := c.do(ctx, httpclient.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("update watchlist group %d: %w", id, err)
	}
	return nil
}

// ClearGroup empties a group by replacing its members with nothing.
func (c *Client) ClearGroup(ctx context.Context, id int64) error {
	return c.UpdateGroup(ctx, id, []string{}, UpdateReplace)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string][]string, body interface{}, dest interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	opts := &httpclient.RequestOptions{
		Method:      method,
		URL:         c.cfg.HTTPURL + path,
		QueryParams: query,
		Headers: map[string]string{
			"X-Api-Key":       c.cfg.AppKey,
			"X-Timestamp":     ts,
			"X-Api-Signature": sign(c.cfg.AppSecret, method, path, ts, payload),
			"Authorization":   c.cfg.AccessToken,
		},
	}
	if payload != nil {
		opts.Body = payload
	}

	var env apiResponse
	if err := c.http.SendAndParse(ctx, opts, &env); err != nil {
		return err
	}
	if env.Code != 0 {
		return &APIError{Code: env.Code, Message: env.Message}
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
