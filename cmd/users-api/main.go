// Package main runs the users API of the application stack.
//
// The API is the stack's own workload: docker-manager starts and stops it
// as one of the compose services, but does not call it.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/docker-manager/internal/userapi"
	"github.com/mmr-tortoise/docker-manager/internal/users"
)

func main() {
	var (
		listenAddr string
		staticDir  string
		memory     bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "users-api",
		Short:         "Serve the users API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetFormatter(&log.JSONFormatter{})
			return serve(cmd.Context(), listenAddr, staticDir, memory)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":8000", "Listen address")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory served under /static/")
	cmd.Flags().BoolVar(&memory, "memory", false, "Use an in-memory store instead of PostgreSQL")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func serve(ctx context.Context, addr, staticDir string, memory bool) error {
	store, err := openStore(ctx, memory)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           userapi.NewServer(store, log.StandardLogger(), staticDir).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("users API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func openStore(ctx context.Context, memory bool) (users.Store, error) {
	if memory {
		return users.NewMemoryStore(), nil
	}
	cfg, err := users.DBConfigFromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	store, err := users.NewPostgresStore(ctx, cfg.ConnString())
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"host": cfg.Host, "db": cfg.Database}).Info("connected to database")
	return store, nil
}
