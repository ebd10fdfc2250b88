// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"encoding/json"
	"strings"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <tool> <content>...",
		Short: "Run a one-shot analysis",
		Long:  "Analyze content with the named tool and print the result as JSON. Tools: " + joinTools() + ".",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runVerify,
	}
}

func joinTools() string {
	tools := types.Tools()
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = string(tool)
	}
	return strings.Join(names, ", ")
}

func runVerify(cmd *cobra.Command, args []string) error {
	tool, err := types.ParseTool(args[0])
	if err != nil {
		return verr.Wrapf(err, verr.CodeCLIInputInvalid, "tools are %s", joinTools())
	}
	content := strings.Join(args[1:], " ")

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

	result := core.Service.Verify(cmd.Context(), tool, content)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
