package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/borski/ha-lucidmotors/internal/adapters/configflow"
	"github.com/borski/ha-lucidmotors/internal/adapters/homeassistant"
	"github.com/borski/ha-lucidmotors/internal/adapters/web"
	"github.com/borski/ha-lucidmotors/internal/application"
	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/infrastructure/i18n"
	"github.com/borski/ha-lucidmotors/internal/infrastructure/lucidapi"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	var (
		setup       = flag.Bool("setup", false, "run the interactive account setup and exit")
		configPath  = flag.String("config", config.DefaultPath, "path to the config file")
		debug       = flag.Bool("debug", false, "log at debug level")
		showVersion = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("lucidbridge", version)
		return
	}

	// The config file carries the logging preferences, so this logger
	// only covers setup and errors raised before the config loads.
	logger := newLogger("info", "auto", *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *setup {
		if err := runSetup(ctx, *configPath, logger); err != nil {
			logger.Error("setup failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, *configPath, *debug); err != nil {
		logger.Error("lucidbridge exited", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Format auto picks the tint
// handler when stderr is a terminal and JSON otherwise; -debug wins
// over the configured level.
func newLogger(level, format string, debug bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if debug {
		lvl = slog.LevelDebug
	}

	text := format == "text"
	if format == "auto" {
		fi, err := os.Stderr.Stat()
		text = err == nil && fi.Mode()&os.ModeCharDevice != 0
	}

	var handler slog.Handler
	if text {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: lvl, TimeFormat: time.Kitchen})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}

func runSetup(ctx context.Context, path string, logger *slog.Logger) error {
	locale := os.Getenv("LUCID_LOCALE")
	if locale == "" {
		locale = "en"
	}
	translator, err := i18n.NewTranslator(locale, os.Getenv("LUCID_LOCALE_DIR"), logger)
	if err != nil {
		return err
	}

	login := func(ctx context.Context, region domain.Region, username, password string) error {
		client := lucidapi.New(region, "", logger)
		defer client.Close()
		_, err := client.Login(ctx, username, password)
		return err
	}

	flow := configflow.New(translator, login, locale, os.Stdin, os.Stdout, logger)
	return flow.Run(ctx, path)
}

func run(ctx context.Context, path string, debug bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, debug)

	translator, err := i18n.NewTranslator(cfg.Locale, cfg.LocaleDir, logger)
	if err != nil {
		return err
	}

	region, err := cfg.Region()
	if err != nil {
		return err
	}
	client := lucidapi.New(region, "", logger)
	defer client.Close()

	coordinator := application.NewCoordinator(
		client,
		cfg.Lucid.Username,
		cfg.Lucid.Password,
		time.Duration(cfg.PollSeconds)*time.Second,
		logger,
	)
	commands := application.NewCommandService(client, coordinator, logger)
	bridge := homeassistant.NewBridge(cfg, version, coordinator, commands, translator, logger)

	var server *web.Server
	httpAddr := "disabled"
	if !cfg.HTTPDisabled {
		server = web.NewServer(cfg, coordinator, translator, logger)
		httpAddr = cfg.HTTPAddr
	}

	logger.Info("lucidbridge starting",
		"version", version,
		"region", region.Name,
		"broker", cfg.MQTT.BrokerURL,
		"http", httpAddr,
	)

	errCh := make(chan error, 2)
	go func() { errCh <- coordinator.Start(ctx) }()

	if err := bridge.Start(ctx); err != nil {
		return err
	}
	if server != nil {
		go func() { errCh <- server.Start() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		cancel()
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
	}
	bridge.Stop()
	logger.Info("lucidbridge stopped")
	return runErr
}
