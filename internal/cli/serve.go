// Package cli implements broadcastsim's subcommand dispatch, modelled on
// qumo's internal/cli: flag.FlagSet per subcommand, a YAML config file,
// and signal.NotifyContext-driven graceful shutdown for long-running
// servers.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okdaichi/broadcastsim/internal/experiment"
	"github.com/okdaichi/broadcastsim/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

type serveConfig struct {
	ListenAddr  string
	MetricsAddr string
	Metrics     bool
}

const defaultServeAddr = ":8070"

// RunServe starts the experiment control-plane HTTP server.
func RunServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile := fs.String("config", "config.broadcastsim.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := loadServeConfig(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := observability.Setup(ctx, observability.Config{Service: "broadcastsim", Metrics: cfg.Metrics}); err != nil {
		return fmt.Errorf("failed to setup observability: %w", err)
	}
	defer observability.Shutdown(context.Background())

	server := experiment.NewServer()
	mux := http.NewServeMux()
	server.RegisterHandlers(mux)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics && cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(observability.Registry(), promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server error: %v", err)
			}
		}()
	}

	slog.Info("broadcastsim experiment server started", "address", cfg.ListenAddr)
	log.Println("  /topology/generate - POST: generate a random regular topology")
	log.Println("  /topology/load     - POST: load a topology from an edge-list file")
	log.Println("  /topology          - GET: current topology")
	log.Println("  /run               - POST: run a broadcast experiment")
	log.Println("  /status            - GET: liveness/readiness")

	<-ctx.Done()
	cancel()

	slog.Info("shutting down broadcastsim experiment server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down HTTP server: %v", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("error shutting down metrics server: %v", err)
		}
	}

	slog.Info("broadcastsim experiment server stopped")
	return nil
}

func loadServeConfig(filename string) (*serveConfig, error) {
	type yamlConfig struct {
		Server struct {
			ListenAddr  string `yaml:"listen_addr"`
			MetricsAddr string `yaml:"metrics_addr"`
			Metrics     bool   `yaml:"metrics"`
		} `yaml:"server"`
	}

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return &serveConfig{ListenAddr: defaultServeAddr}, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var ymlCfg yamlConfig
	if err := yaml.NewDecoder(file).Decode(&ymlCfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	listenAddr := ymlCfg.Server.ListenAddr
	if listenAddr == "" {
		listenAddr = defaultServeAddr
	}

	return &serveConfig{
		ListenAddr:  listenAddr,
		MetricsAddr: ymlCfg.Server.MetricsAddr,
		Metrics:     ymlCfg.Server.Metrics,
	}, nil
}
