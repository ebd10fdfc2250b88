// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"errors"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

// NewRootCmd creates the root veritas command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "veritas",
		Short:         "Veritas — risk and credibility analysis core",
		Long:          "Veritas analyzes content for risk and credibility signals, preferring a remote verification service and degrading to local heuristics when it is unreachable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newServeCmd(),
		newVerifyCmd(),
		newTrackCmd(),
		newQueueCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return verr.Errorf(verr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// Auto-discover veritas.yaml from standard locations. No config
		// file is fine, defaults and env vars still apply. Parse or
		// permission errors must surface.
		v.SetConfigName("veritas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/veritas")
		v.AddConfigPath("/etc/veritas")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return verr.Errorf(verr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
		}
	}

	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return verr.Errorf(verr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}

	return nil
}
