// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPolicyConfigDefaults(t *testing.T) {
	cfg, err := loadPolicyConfig("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.ExpiryWindow))
	assert.Equal(t, time.Minute, time.Duration(cfg.SweepInterval))
}

func TestLoadPolicyConfigFile(t *testing.T) {
	path := writeConfig(t, "expiryWindow: 30m\nsweepInterval: 10s\n")
	cfg, err := loadPolicyConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, time.Duration(cfg.ExpiryWindow))
	assert.Equal(t, 10*time.Second, time.Duration(cfg.SweepInterval))
}

func TestLoadPolicyConfigPartial(t *testing.T) {
	path := writeConfig(t, "sweepInterval: 5s\n")
	cfg, err := loadPolicyConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.ExpiryWindow))
	assert.Equal(t, 5*time.Second, time.Duration(cfg.SweepInterval))
}

func TestLoadPolicyConfigInvalid(t *testing.T) {
	_, err := loadPolicyConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "expiryWindow: soon\n")
	_, err = loadPolicyConfig(path)
	assert.Error(t, err)

	path = writeConfig(t, "expiryWindow: -1m\n")
	_, err = loadPolicyConfig(path)
	assert.Error(t, err)
}
