package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zhuxining/skills-dev/internal/longport"
	"github.com/zhuxining/skills-dev/internal/sink"
	"github.com/zhuxining/skills-dev/pkg/clickhouse"
	"github.com/zhuxining/skills-dev/pkg/kafka"
	"github.com/zhuxining/skills-dev/pkg/logger"
	"github.com/zhuxining/skills-dev/pkg/metrics"
	"github.com/zhuxining/skills-dev/pkg/util"
)

func newStreamCmd() *cobra.Command {
	var (
		symbols     string
		sinkName    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream real-time quotes to stdout, Kafka, or ClickHouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			syms := util.NormalizeSymbols(util.SplitList(symbols))
			if len(syms) == 0 {
				return fmt.Errorf("--symbols is required")
			}
			if sinkName == "" {
				sinkName = cfg.Stream.Sink
			}
			if metricsAddr == "" {
				metricsAddr = cfg.Stream.MetricsAddr
			}

			out, err := buildSink(ctx, sinkName)
			if err != nil {
				return err
			}
			defer out.Close()

			rec := metrics.New()
			go serveMetrics(metricsAddr)

			lpCfg, err := longport.ConfigFromEnv()
			if err != nil {
				return err
			}
			stream := longport.NewQuoteStream(lpCfg, syms, log)
			if err := stream.Connect(ctx); err != nil {
				return err
			}
			defer stream.Close()
			if err := stream.Subscribe(ctx); err != nil {
				return err
			}

			log.Info("streaming quotes",
				logger.Strings("symbols", syms),
				logger.String("sink", out.Name()),
				logger.String("metrics_addr", metricsAddr))

			err = stream.Listen(ctx, func(ctx context.Context, q longport.Quote) error {
				if err := out.Publish(ctx, q); err != nil {
					rec.RecordError("publish")
					return err
				}
				rec.RecordQuotePublished(out.Name(), q.Symbol)
				rec.RecordLastPrice(q.Symbol, q.Price.InexactFloat64())
				return nil
			})
			if errors.Is(err, context.Canceled) {
				log.Info("stream stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated symbols to subscribe")
	cmd.Flags().StringVar(&sinkName, "sink", "", "override sink: stdout, kafka, or clickhouse")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "override Prometheus listen address")
	return cmd
}

func buildSink(ctx context.Context, name string) (sink.Sink, error) {
	switch name {
	case "stdout":
		return sink.NewStdoutSink(os.Stdout), nil
	case "kafka":
		producer, err := kafka.NewProducer(
			kafka.WithBrokers(cfg.Kafka.Brokers),
			kafka.WithCompression(cfg.Kafka.Compression),
			kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			kafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		)
		if err != nil {
			return nil, err
		}
		return sink.NewKafkaSink(producer, cfg.Kafka.Topic), nil
	case "clickhouse":
		ch, err := clickhouse.NewClient(
			clickhouse.WithAddress(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
			clickhouse.WithDatabase(cfg.ClickHouse.Database),
			clickhouse.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			clickhouse.WithDialTimeout(cfg.ClickHouse.DialTimeout),
		)
		if err != nil {
			return nil, err
		}
		if err := ch.InitSchema(ctx, sink.SchemaStatements); err != nil {
			return nil, err
		}
		return sink.NewClickHouseSink(ch.DB(), cfg.ClickHouse.BatchSize), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn("metrics server failed", logger.Error(err))
	}
}
