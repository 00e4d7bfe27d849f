package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"FXSentinel/internal/collector"
	"FXSentinel/internal/config"
	"FXSentinel/internal/logger"
	"FXSentinel/internal/metrics"
	"FXSentinel/internal/notifier"
	"FXSentinel/internal/scheduler"
	"FXSentinel/internal/server"
	"FXSentinel/internal/strategy"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLogger().Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLogger().Fatal().Err(err).Msg("config validation")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("FXSentinel starting...")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	} else {
		fetcher = collector.NewYahooFetcher("", cfg.DataSource.Suffix, cfg.Proxy, cfg.DataSource.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Str("window", cfg.DataSource.Window).Msg("data source ready")

	engine := strategy.NewEngine(fetcher, cfg.DataSource.Window, rec, log)

	// Init Telegram
	bot, err := notifier.NewTelegramBot(cfg.Telegram.BotToken, cfg.Proxy, cfg.Telegram.PollTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init telegram")
	}
	deliverer := notifier.NewDeliverer(bot, notifier.DeliveryOptions{
		BuyImage:   cfg.Assets.BuyImage,
		SellImage:  cfg.Assets.SellImage,
		MaxRetries: cfg.Delivery.MaxRetries,
		BackoffMin: cfg.Delivery.BackoffMin,
		BackoffMax: cfg.Delivery.BackoffMax,
	}, rec, log)

	// Init scheduler
	sched := scheduler.NewScheduler(engine, deliverer, cfg.PairConfig(), scheduler.Options{
		ChatID:     cfg.Telegram.ChatID,
		Timeframe:  cfg.Schedule.Timeframe,
		Warning:    cfg.Schedule.Warning,
		Rest:       cfg.RestBetweenPasses(),
		CronSpec:   cfg.Schedule.Cron,
		RunOnStart: cfg.Schedule.RunOnStart,
	}, rec, log)

	bot.HandleCommand("signal", sched.HandleSignalCommand)
	bot.HandleCommand("pairs", sched.HandlePairsCommand)
	bot.HandleCommand("help", sched.HandleHelpCommand)
	bot.HandleCommand("start", sched.HandleHelpCommand)
	if err := bot.SetCommands([]notifier.Command{
		{Name: "signal", Description: "Get a signal: /signal PAIR TIMEFRAME"},
		{Name: "pairs", Description: "List supported pairs"},
		{Name: "help", Description: "Show usage"},
	}); err != nil {
		log.Warn().Err(err).Msg("publish command menu")
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { bot.Start(ctx) })

	if cfg.Schedule.Disabled {
		log.Info().Msg("recurring signals disabled")
	} else {
		run(func() {
			if err := sched.Run(ctx); err != nil {
				log.Error().Err(err).Msg("scheduler exited")
				stop()
			}
		})
	}

	if cfg.Metrics.Addr != "" {
		srv := server.New(cfg.Metrics.Addr, reg, log)
		run(func() {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("ops server exited")
			}
		})
	}

	log.Info().Strs("pairs", cfg.PairConfig().Pairs()).Msg("FXSentinel is running. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
	wg.Wait()
	log.Info().Msg("FXSentinel stopped")
}

func bootLogger() *zerolog.Logger {
	l := logger.New(logger.Config{Level: "info"})
	return &l
}
