package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/logger"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Msg("GoldSentinel starting...")

	col := buildCollector(cfg)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.APIBase, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.ParseMode, cfg.Proxy)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(col, tn, cfg.Instrument.Label)

	if cfg.Schedule.RunOnce {
		err := sched.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("run failed")
		}
		if code := exitCode(err); code != 0 {
			cancel()
			os.Exit(code)
		}
		return
	}

	if err := sched.Register(ctx, cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Telegram.Polling {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("GoldSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
}

// exitCode maps a one-shot run result to the process status. Only a failed
// delivery is fatal; other errors have already been reported to the chat.
func exitCode(err error) int {
	if errors.Is(err, notifier.ErrDeliveryFailed) {
		return 1
	}
	return 0
}

// buildCollector wires the primary series source and every enabled spot source.
func buildCollector(cfg *config.Config) *collector.Collector {
	src := cfg.Sources
	r := collector.PriceRange{Min: src.PlausibleMin, Max: src.PlausibleMax}

	series := collector.NewYahooFetcher(src.YahooBaseURL, cfg.Instrument.YahooSymbol,
		cfg.Instrument.Range, cfg.Instrument.Interval, cfg.Proxy, src.Timeout)

	var spots []collector.SpotFetcher
	if src.GoldAPIKey != "" {
		spots = append(spots, collector.NewGoldAPIFetcher(src.GoldAPIURL, src.GoldAPIKey, r, cfg.Proxy, src.Timeout))
	}
	if !src.KitcoDisabled {
		spots = append(spots, collector.NewKitcoFetcher(src.KitcoURL, r, cfg.Proxy, src.Timeout))
	}
	if !src.MetalsDailyDisabled {
		spots = append(spots, collector.NewMetalsDailyFetcher(src.MetalsDailyURL, r, cfg.Proxy, src.Timeout))
	}
	for _, f := range spots {
		log.Info().Str("source", f.Name()).Msg("spot source enabled")
	}
	log.Info().Str("source", series.Name()).Str("symbol", cfg.Instrument.YahooSymbol).Msg("series source")

	return collector.NewCollector(series, spots, src.Timeout)
}
