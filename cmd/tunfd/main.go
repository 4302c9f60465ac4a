package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tunfd/internal/logging"
	"tunfd/internal/netcfg"
	"tunfd/internal/tun"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "tunfd.yaml", "path to config file")
	flag.Parse()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		slog.Error("logger error", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err := run(ctx, cfg, logger, metrics); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tunfd error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger, metrics *Metrics) error {
	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, metrics, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	dev, err := tun.Open(cfg.TunName)
	metrics.ObserveOpen(err)
	if err != nil {
		return fmt.Errorf("tun open: %w", err)
	}
	metrics.SetDeviceUp(true)
	defer func() {
		metrics.SetDeviceUp(false)
		if err := dev.Close(); err != nil {
			log.Warn("tun close failed", "name", dev.Name, "err", err)
		}
	}()

	attrs := []any{"name", dev.Name}
	if cfg.TunName == "" {
		attrs = append(attrs, "assigned", true)
	}
	link, err := netcfg.LinkInfo(dev.Name)
	if err != nil {
		log.Warn("link lookup failed", "name", dev.Name, "err", err)
	} else {
		attrs = append(attrs, "index", link.Index, "mtu", link.MTU, "type", link.Type)
	}
	log.Info("tun device ready", attrs...)

	<-ctx.Done()
	log.Info("releasing tun device", "name", dev.Name)
	return ctx.Err()
}

func startMetricsServer(addr string, metrics *Metrics, log *slog.Logger) *http.Server {
	srv := &http.Server{Addr: addr, Handler: metricsMux(metrics)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "err", err)
		}
	}()
	return srv
}

func metricsMux(metrics *Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", healthHandler(metrics))
	return mux
}

func healthHandler(metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !metrics.DeviceUp() {
			http.Error(w, "tun device not open", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
