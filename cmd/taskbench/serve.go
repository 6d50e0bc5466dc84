package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskbench/internal/config"
	"taskbench/internal/server"
	"taskbench/internal/store"
	"taskbench/pkg/mq"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "http-addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := log.New(os.Stderr, "taskbench ", log.LstdFlags)
	st := store.New()
	srv := server.New(st, cfg, logger, mq.LogPublisher{Log: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("server: %v", err)
	}
}
