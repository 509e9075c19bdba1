// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool-labs/stakepool/api"
	"github.com/stakepool-labs/stakepool/co"
	"github.com/stakepool-labs/stakepool/eventdb"
	"github.com/stakepool-labs/stakepool/ledger/solo"
	"github.com/stakepool-labs/stakepool/log"
	"github.com/stakepool-labs/stakepool/metrics"
	"github.com/stakepool-labs/stakepool/pool"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Poold",
		Usage:     "Custodial staking pool daemon",
		Copyright: "2025 Stakepool Labs",
		Flags: []cli.Flag{
			dataDirFlag,
			configFileFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	cfg, err := loadPolicyConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		return err
	}

	metricsURL := "metrics disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := startMetricsServer(ctx)
		if err != nil {
			return err
		}
		metricsURL = url
		defer closeFunc()
	}

	eventDB, eventDBPath, err := openEventDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	// in-process ledger stand-in; the pool talks to it like a remote service
	client := solo.New()

	p := pool.New(client, pool.Options{
		ExpiryWindow: time.Duration(cfg.ExpiryWindow),
		Events:       eventDB,
	})

	apiHandler := api.New(p, eventDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, apiCloser, err := startAPIServer(ctx, apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); apiCloser() }()

	printStartupMessage(apiURL, metricsURL, eventDBPath, cfg)

	exit := handleExitSignal()

	var goes co.Goes
	goes.Go(func() {
		sweepLoop(exit, p, time.Duration(cfg.SweepInterval))
	})

	<-exit
	goes.Wait()
	return nil
}

func openEventDB(ctx *cli.Context) (*eventdb.EventDB, string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.New("data-dir not set")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, "", errors.WithMessagef(err, "create data-dir [%v]", dataDir)
	}
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		return nil, "", errors.WithMessagef(err, "open event database [%v]", path)
	}
	return db, path, nil
}

// sweepLoop expires stale intentions on a fixed cadence until exit closes.
func sweepLoop(exit <-chan struct{}, p *pool.Pool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-exit:
			return
		case <-ticker.C:
			p.Sweep()
		}
	}
}
