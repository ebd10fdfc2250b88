// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package types

import (
	"testing"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolConstants_Valid(t *testing.T) {
	for _, id := range Tools() {
		assert.True(t, id.Valid(), "tool constant %q must pass Valid()", id)
	}
	assert.Len(t, Tools(), 6)
}

func TestToolID_Valid_RejectsUnknown(t *testing.T) {
	assert.False(t, ToolID("sentiment").Valid())
	assert.False(t, ToolID("").Valid())
}

func TestParseTool(t *testing.T) {
	id, err := ParseTool("Social-Media")
	require.NoError(t, err)
	assert.Equal(t, ToolSocialMedia, id)

	id, err = ParseTool("  statistics-validator ")
	require.NoError(t, err)
	assert.Equal(t, ToolStatisticsValidator, id)

	_, err = ParseTool("horoscope")
	require.Error(t, err)
	assert.True(t, verr.HasCode(err, verr.CodeDispatchToolNotFound))
}
