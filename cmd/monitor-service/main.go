package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/helium/helium-ops/pkg/monitoring"
	"github.com/helium/helium-ops/pkg/monitoring/config"
	"github.com/helium/helium-ops/pkg/monitoring/metrics"
	"github.com/helium/helium-ops/pkg/solana/client"
	solanaconfig "github.com/helium/helium-ops/pkg/solana/config"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

func main() {
	coreLog, err := logger.NewFromEnv()
	if err != nil {
		panic(err)
	}
	log := coreLog.With("project", "helium")
	defer func() { _ = log.Sync() }()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalw("failed to parse configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chainCfg := solanaconfig.NewConfig(cfg.ChainCfg(), log.With("component", "chain-config"))
	reader := client.NewClient(cfg.Solana.RPCEndpoint, chainCfg, log.With("component", "rpc-client"))
	notifier := client.NewWSNotifier(cfg.Solana.WSEndpoint, chainCfg.Commitment(), chainCfg.ResubscribeDelay(), log.With("component", "ws-notifier"))
	defer notifier.Close()

	if network, err := reader.ChainID(ctx); err != nil {
		log.Warnw("failed to read the genesis hash", "error", err)
	} else {
		log.Infow("connected", "network", network, "rpc", cfg.Solana.RPCEndpoint)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registry := metrics.NewRegistry(reg, log.With("component", "metrics"))

	cache := monitoring.NewAccountCache(
		ctx,
		reader,
		notifier,
		chainCfg.ForceRefreshPeriod(),
		metrics.NewWatchErrors(registry),
		log.With("component", "account-cache"),
	)
	defer cache.Close()

	env := monitoring.NewEnv(reader, cache, registry, log.With("component", "monitors"))
	orchestrator := monitoring.NewOrchestrator(env, cfg, metrics.NewProbes(registry))
	report, err := orchestrator.Run(ctx)
	if err != nil {
		log.Fatalw("failed to resolve monitored addresses", "error", err)
	}
	if err = report.Err(); err != nil {
		log.Errorw("some probes failed to register", "error", err)
	}
	if err = report.Warnings(); err != nil {
		log.Warnw("some optional probes failed to register", "error", err)
	}
	log.Infow("probes registered", "count", len(report.Results))

	server := monitoring.NewHTTPServer(cfg.Http.Address, reg, log.With("component", "http-server"))
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Infow("stopping")
		return nil
	})
	if err = group.Wait(); err != nil {
		log.Fatalw("http server failed", "error", err)
	}
}
