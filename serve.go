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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/config"
	v1 "github.com/violet-vault/backend/internal/controllers/v1"
	"github.com/violet-vault/backend/internal/models"
	"github.com/violet-vault/backend/internal/router"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Config")
		return err
	}

	// Create data directory
	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.DataDir).Msg("Data directory")
		return err
	}

	err = models.Connect(cfg.DSN())
	if err != nil {
		log.Error().Err(err).Msg("Database")
		return err
	}

	defer func() {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	matcher := bills.Matcher{
		MatchWindow:    cfg.BillMatchWindow,
		LookbackMonths: cfg.BillLookbackMonths,
	}
	v1.UseMatcher(matcher)
	log.Info().Str("version", version).Stringer("matcher", matcher).Bool("pprof", cfg.EnablePprof).Msg("Config")

	r, teardown, err := router.Config(cfg.APIURL)
	if err != nil {
		log.Error().Err(err).Msg("Router")
		return err
	}
	defer teardown()

	router.AttachRoutes(r.Group(cfg.APIURL.Path), router.Options{
		Version:     version,
		EnablePprof: cfg.EnablePprof,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
