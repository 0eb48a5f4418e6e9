package longport

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPURL    = "https://openapi.longportapp.com"
	defaultQuoteWSURL = "wss://openapi-quote.longportapp.com/v2"
	defaultTimeout    = 30 * time.Second
)

// Config carries API credentials and endpoints. All fields come from the
// environment; a .env file in the working directory is honored when present.
type Config struct {
	AppKey      string
	AppSecret   string
	AccessToken string
	HTTPURL     string
	QuoteWSURL  string
	Timeout     time.Duration
}

// ConfigFromEnv loads credentials from LONGPORT_* environment variables,
// reading .env first when one exists.
func ConfigFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppKey:      os.Getenv("LONGPORT_APP_KEY"),
		AppSecret:   os.Getenv("LONGPORT_APP_SECRET"),
		AccessToken: os.Getenv("LONGPORT_ACCESS_TOKEN"),
		HTTPURL:     os.Getenv("LONGPORT_HTTP_URL"),
		QuoteWSURL:  os.Getenv("LONGPORT_QUOTE_WS_URL"),
		Timeout:     defaultTimeout,
	}
	if cfg.HTTPURL == "" {
		cfg.HTTPURL = defaultHTTPURL
	}
	if cfg.QuoteWSURL == "" {
		cfg.QuoteWSURL = defaultQuoteWSURL
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{"LONGPORT_APP_KEY", cfg.AppKey},
		{"LONGPORT_APP_SECRET", cfg.AppSecret},
		{"LONGPORT_ACCESS_TOKEN", cfg.AccessToken},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
