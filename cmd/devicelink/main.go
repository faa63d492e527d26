// Package main implements the devicelink command: discover a remote device
// over NATS, materialize it as a local proxy, and print its topology.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"

	"github.com/c360/devicelink/config"
	"github.com/c360/devicelink/device"
	"github.com/c360/devicelink/metric"
	"github.com/c360/devicelink/natsclient"
	"github.com/c360/devicelink/topology"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "devicelink"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to JSON config file")
		showVersion = flag.Bool("version", false, "print version and exit")
		watch       = flag.Bool("watch", false, "stay connected and log metadata deliveries")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics endpoint
	var registry *metric.MetricsRegistry
	if cfg.Metrics.Enabled {
		registry = metric.NewMetricsRegistry()
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() { _ = server.Stop() }()
		logger.Info("metrics available", "address", server.Address())
	}

	// NATS connection
	clientName := cfg.NATS.Name
	if clientName == "" {
		clientName = appName + "-" + uuid.NewString()[:8]
	}
	opts := []natsclient.ClientOption{
		natsclient.WithClientName(clientName),
		natsclient.WithTimeout(cfg.NATS.Timeout()),
	}
	if cfg.NATS.Username != "" {
		opts = append(opts, natsclient.WithCredentials(cfg.NATS.Username, cfg.NATS.Password))
	}
	if cfg.NATS.Token != "" {
		opts = append(opts, natsclient.WithToken(cfg.NATS.Token))
	}

	client, err := natsclient.NewClient(cfg.NATS.URL, opts...)
	if err != nil {
		return err
	}
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = client.Close(context.Background()) }()

	// Discover the remote device and build the proxy
	discoverCtx, cancel := context.WithTimeout(ctx, cfg.Device.DiscoveryTimeout())
	defer cancel()

	remote, err := topology.Discover(discoverCtx, topology.NATSDeviceDeps{
		Client: client,
		Root:   cfg.Device.TopicRoot,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	proxy, err := device.NewProxy(device.Deps{
		Remote:          remote,
		MetricsRegistry: registry,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	printTopology(proxy)

	if *watch {
		for _, sensor := range proxy.Sensors() {
			s := sensor
			s.OnMetadata(func(streamName string, _ json.RawMessage) {
				logger.Info("metadata", "sensor", s.Name(), "stream", streamName)
			})
		}
		logger.Info("watching for metadata, ctrl-c to exit")
		<-ctx.Done()
	}

	return nil
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

func printTopology(proxy *device.Proxy) {
	name, _ := proxy.Info(device.InfoName)
	serial, _ := proxy.Info(device.InfoSerialNumber)
	fmt.Printf("%s (serial %s)\n", name, serial)

	for _, sensor := range proxy.Sensors() {
		fmt.Printf("  %s [%s]\n", sensor.Name(), sensor.Kind())
		for _, prof := range sensor.Profiles() {
			marker := " "
			if prof.Default {
				marker = "*"
			}
			fmt.Printf("   %s %s\n", marker, prof.String())
		}
	}

	graph := proxy.Graph()
	fmt.Printf("  extrinsics: %d nodes, %d edges\n", graph.NodeCount(), graph.EdgeCount())
}
