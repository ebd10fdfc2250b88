// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"fmt"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the offline queue",
		RunE:  runQueueStatus,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "replay",
		Short: "Re-check connectivity and replay queued events",
		RunE:  runQueueReplay,
	})
	return cmd
}

func runQueueStatus(cmd *cobra.Command, _ []string) error {
	core, err := wireFromFlags(cmd)
	if err != nil {
		return err
	}
	defer core.Close()

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "queued actions: %d\n", core.Service.Queue().Depth())
	return err
}

func runQueueReplay(cmd *cobra.Command, _ []string) error {
	core, err := wireFromFlags(cmd)
	if err != nil {
		return err
	}
	defer core.Close()

	before := core.Service.Queue().Depth()
	if err := core.Service.OnOnline(cmd.Context()); err != nil {
		return err
	}
	after := core.Service.Queue().Depth()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "replayed %d of %d queued actions\n", before-after, before)
	return err
}

func wireFromFlags(cmd *cobra.Command) (*Core, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	setupLogging(viper.GetBool("verbose"))
	return WireCore(cmd.Context(), cfg)
}
