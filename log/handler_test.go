// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := &logger{slog.New(NewTerminalHandler(&buf, false))}

	logger.Info("reward distributed", "amount", uint64(400), "deposits", 2)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[INFO] "), line)
	assert.Contains(t, line, "reward distributed")
	assert.Contains(t, line, "amount=400")
	assert.Contains(t, line, "deposits=2")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTerminalHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	logger := &logger{slog.New(NewTerminalHandlerWithLevel(&buf, &lvl, false))}

	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewTerminalHandler(&buf, false))
	defer SetDefault(DiscardHandler())

	logger := WithContext("pkg", "pool")
	logger.Info("sweep", "removed", 3)

	require.Contains(t, buf.String(), "pkg=pool")
	assert.Contains(t, buf.String(), "removed=3")
}

func TestQuotedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := &logger{slog.New(NewTerminalHandler(&buf, false))}

	logger.Error("transfer failed", "reason", "service down")
	assert.Contains(t, buf.String(), `reason="service down"`)
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, VerbosityLevel(0))
	assert.Equal(t, slog.LevelWarn, VerbosityLevel(1))
	assert.Equal(t, slog.LevelInfo, VerbosityLevel(2))
	assert.Equal(t, slog.LevelDebug, VerbosityLevel(3))
	assert.Equal(t, slog.LevelDebug, VerbosityLevel(9))
}
