package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/screenroom/relay/config"
	"github.com/screenroom/relay/registry"
	httpServer "github.com/screenroom/relay/server/http"
	websocketServer "github.com/screenroom/relay/server/websocket"
	"github.com/screenroom/relay/service"
	store "github.com/screenroom/relay/storage/memory"
	sw "github.com/screenroom/relay/switch"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	var (
		configFile    = fs.StringP("config", "c", "", "path to config file")
		apiListenAddr = fs.StringP("api-listen-addr", "a", "", "api listen address")
		wsListenAddr  = fs.StringP("ws-listen-addr", "w", "", "websocket signaling listen address")
		logLevel      = fs.StringP("log-level", "l", "", "log level")
		staticDir     = fs.StringP("static-dir", "s", "", "static assets directory")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse command line arguments")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if fs.Changed("api-listen-addr") {
		cfg.APIListenAddr = *apiListenAddr
	}
	if fs.Changed("ws-listen-addr") {
		cfg.WSListenAddr = *wsListenAddr
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("static-dir") {
		cfg.StaticDir = *staticDir
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	reg := registry.New(&logger)
	svc := service.NewService(service.Config{
		Registry:  reg,
		RoomStore: store.NewMemStore(),
		Router:    sw.NewSwitch(&logger, reg),
		Logger:    &logger,
	})
	httpSrv := httpServer.NewServer(httpServer.Config{
		Logger:       &logger,
		ListenAddr:   cfg.APIListenAddr,
		StaticDir:    cfg.StaticDir,
		RoomIDLength: cfg.RoomIDLength,
	})
	wsSrv := websocketServer.NewServer(websocketServer.Config{
		Logger:           &logger,
		SignalingService: svc,
		ListenAddr:       cfg.WSListenAddr,
		ReadLimit:        cfg.ReadLimit,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 2)
	)
	wg.Add(2)
	go httpSrv.Run(ctx, wg, errc)
	go wsSrv.Run(ctx, wg, errc)

	select {
	case err = <-errc:
		logger.Error().Err(err).Msg("unexpected server error, shutting down")
	case <-ctx.Done():
		logger.Warn().Msg("interrupted")
	}
	cancel()
	wg.Wait()
}
