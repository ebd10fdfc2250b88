// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"fmt"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <event>",
		Short: "Report a usage event",
		Long:  "Send a usage event to the remote service, or queue it for replay when offline.",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrack,
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	setupLogging(viper.GetBool("verbose"))

	core, err := WireCore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer core.Close()

	queued, err := core.Service.Track(cmd.Context(), types.TrackEvent{Name: args[0]})
	if err != nil {
		return err
	}
	if queued {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "queued %q for replay (depth %d)\n",
			args[0], core.Service.Queue().Depth())
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %q\n", args[0])
	return err
}
