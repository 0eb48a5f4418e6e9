package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhuxining/skills-dev/internal/export"
	"github.com/zhuxining/skills-dev/internal/indicator"
	"github.com/zhuxining/skills-dev/internal/longport"
	"github.com/zhuxining/skills-dev/internal/sink"
	"github.com/zhuxining/skills-dev/pkg/cache"
	"github.com/zhuxining/skills-dev/pkg/clickhouse"
	"github.com/zhuxining/skills-dev/pkg/logger"
	"github.com/zhuxining/skills-dev/pkg/util"
)

func newCandlesCmd() *cobra.Command {
	var (
		symbol     string
		period     string
		count      int
		noAdjust   bool
		indicators string
		core       bool
		output     string
		store      bool
	)

	cmd := &cobra.Command{
		Use:   "candles",
		Short: "Fetch candlestick history and compute technical indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := longport.ParsePeriod(period)
			if err != nil {
				return err
			}
			adjust := longport.AdjustForward
			if noAdjust {
				adjust = longport.AdjustNone
			}

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			sym := util.NormalizeSymbols([]string{symbol})[0]
			candles, err := client.Candlesticks(ctx, sym, p, count, adjust)
			if err != nil {
				return err
			}
			if len(candles) == 0 {
				return fmt.Errorf("no candlesticks returned for %s", sym)
			}
			log.Info("candlesticks fetched",
				logger.String("symbol", sym),
				logger.String("period", string(p)),
				logger.Int("bars", len(candles)))

			if store {
				if err := storeCandles(ctx, sym, p, candles); err != nil {
					return err
				}
			}

			frame := longport.ToFrame(sym, candles)
			switch {
			case indicators != "":
				frame, err = indicator.Apply(frame, util.SplitList(indicators))
			case core:
				frame, err = indicator.Core(frame)
			default:
				frame, err = indicator.All(frame)
			}
			if err != nil {
				return err
			}

			if output == "" {
				return export.WriteCSV(os.Stdout, frame)
			}
			path, err := export.ResolveOutputPath(cfg.Output.Dir, output)
			if err != nil {
				return err
			}
			if err := export.WriteFrame(path, frame); err != nil {
				return err
			}
			log.Info("frame written", logger.String("path", path), logger.Int("rows", frame.Len()))
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker symbol, e.g. 700.HK")
	cmd.Flags().StringVar(&period, "period", "day", "bar period (1m/5m/1h/day/week/month/quarter/year)")
	cmd.Flags().IntVar(&count, "count", 100, "number of bars to fetch")
	cmd.Flags().BoolVar(&noAdjust, "no-adjust", false, "fetch unadjusted prices instead of forward-adjusted")
	cmd.Flags().StringVar(&indicators, "indicators", "", "comma-separated indicator names (default: all)")
	cmd.Flags().BoolVar(&core, "core", false, "compute only the core indicator set")
	cmd.Flags().StringVar(&output, "output", "", "CSV file name under the output dir (default: print to stdout)")
	cmd.Flags().BoolVar(&store, "store", false, "also store raw bars in ClickHouse")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

// newAPIClient builds a LongPort client with the configured response cache.
func newAPIClient(ctx context.Context) (*longport.Client, error) {
	lpCfg, err := longport.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	opts := []longport.ClientOption{longport.WithLogger(log)}
	if cfg.Cache.Enabled {
		var svc cache.Service
		switch cfg.Cache.Backend {
		case "redis":
			svc, err = cache.NewRedisCache(ctx,
				cache.WithRedisHost(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
				cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
				cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
			)
			if err != nil {
				return nil, err
			}
		default:
			svc = cache.NewMemoryCache()
		}
		opts = append(opts, longport.WithCache(svc, cfg.Cache.TTL))
	}
	return longport.New(lpCfg, opts...), nil
}

func storeCandles(ctx context.Context, symbol string, period longport.Period, candles []longport.Candlestick) error {
	ch, err := clickhouse.NewClient(
		clickhouse.WithAddress(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		clickhouse.WithDatabase(cfg.ClickHouse.Database),
		clickhouse.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		clickhouse.WithDialTimeout(cfg.ClickHouse.DialTimeout),
	)
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.InitSchema(ctx, sink.SchemaStatements); err != nil {
		return err
	}
	if err := sink.NewCandleStore(ch.DB()).Store(ctx, symbol, period, candles); err != nil {
		return err
	}
	log.Info("candlesticks stored",
		logger.String("symbol", symbol),
		logger.Int("bars", len(candles)),
		logger.String("database", cfg.ClickHouse.Database))
	return nil
}
