// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from yaml strings like "15m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// PolicyConfig tunes the pool's timing policy. Lock periods are fixed by the
// protocol and deliberately not configurable here.
type PolicyConfig struct {
	ExpiryWindow  Duration `yaml:"expiryWindow"`
	SweepInterval Duration `yaml:"sweepInterval"`
}

func defaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		ExpiryWindow:  Duration(15 * time.Minute),
		SweepInterval: Duration(time.Minute),
	}
}

// loadPolicyConfig reads the yaml policy file at path, falling back to the
// defaults for any field left unset. An empty path yields the defaults.
func loadPolicyConfig(path string) (PolicyConfig, error) {
	cfg := defaultPolicyConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithMessage(err, "read policy config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WithMessage(err, "parse policy config")
	}
	if cfg.ExpiryWindow <= 0 || cfg.SweepInterval <= 0 {
		return cfg, errors.New("policy config: durations must be positive")
	}
	return cfg, nil
}
