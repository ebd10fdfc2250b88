// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/seetsele/vrsystems-sub001/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the veritas gateway",
		Long:  "Load configuration, wire the analysis core, and serve the HTTP API.",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if listen := viper.GetString("server.listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	setupLogging(viper.GetBool("verbose"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := WireCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	srv, err := server.New(server.Config{
		ListenAddr:   cfg.Server.Listen,
		CORSOrigins:  cfg.Server.CORSOrigins,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, core.Service)
	if err != nil {
		return err
	}

	slog.Info("veritas gateway listening", "addr", cfg.Server.Listen,
		"endpoints", cfg.Remote.Endpoints, "queue_backend", cfg.Queue.Backend)

	if err := srv.Start(ctx); err != nil {
		return verr.Wrap(err, verr.CodeServerStartFailure, "gateway server")
	}
	return nil
}
