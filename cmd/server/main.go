package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vippsbroker/auth"
	"vippsbroker/internal/config"
	"vippsbroker/server"
	"vippsbroker/session"
	"vippsbroker/token"
	"vippsbroker/vipps"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	displayAppname(cfg.GetAppName())

	sessions := session.NewInMemoryRepo(cfg.GetInitialSessionValidity(), cfg.GetExtendedSessionValidity())
	sweeper := session.NewSweeper(sessions, cfg.GetSweepInterval())
	sweeper.Start()
	defer sweeper.Stop()

	flow, err := auth.NewService(sessions, vipps.NewClient(cfg), token.NewCreator(cfg))
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: server.New(cfg, flow)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
