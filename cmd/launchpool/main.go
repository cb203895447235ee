// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/launchpool/launchpool/api"
	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/log"
	"github.com/launchpool/launchpool/logdb"
	"github.com/launchpool/launchpool/lvldb"
	"github.com/launchpool/launchpool/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "launchpool"
	app.Usage = "Launch pool node and command line client"
	app.Flags = []cli.Flag{
		nodeFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "run the node and its API",
			Flags: []cli.Flag{
				dataDirFlag,
				persistFlag,
				apiAddrFlag,
				apiCorsFlag,
				apiLogsLimitFlag,
				enableAPILogsFlag,
				enableMintFlag,
				pprofFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				ntpServerFlag,
			},
			Action: serveAction,
		},
		{
			Name:   "create",
			Usage:  "create a launch pool from a YAML definition",
			Flags:  []cli.Flag{configFlag, callerFlag},
			Action: createAction,
		},
		{
			Name:   "drive",
			Usage:  "run share calculation and distribution of a locked pool to completion",
			Flags:  []cli.Flag{poolFlag, callerFlag, noProgressFlag},
			Action: driveAction,
		},
		{
			Name:   "info",
			Usage:  "print the state of a launch pool",
			Flags:  []cli.Flag{poolFlag},
			Action: infoAction,
		},
		tokenCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { log.Info("exited") }()

	initLogger(ctx)

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeDataDir(ctx)
		mainDB = openMainDB(instanceDir)
		logDB = openLogDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	metricsURL := "disabled"
	var metricsSrv *http.Server
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler())
		metricsSrv = &http.Server{Handler: mux, ReadHeaderTimeout: time.Second}
	}

	h, err := host.New(mainDB, logDB, host.SystemClock{})
	if err != nil {
		return err
	}
	defer func() { log.Info("closing host..."); h.Close() }()

	handler, closeAPI := api.New(h, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		EnableMint:      ctx.Bool(enableMintFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
	})
	defer closeAPI()

	apiListener := listen(ctx.String(apiAddrFlag.Name))
	apiSrv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	group, groupCtx := errgroup.WithContext(exitSignal)
	group.Go(func() error {
		return serveHTTP(groupCtx, apiSrv, apiListener)
	})
	if metricsSrv != nil {
		metricsListener := listen(ctx.String(metricsAddrFlag.Name))
		metricsURL = "http://" + metricsListener.Addr().String() + "/metrics"
		group.Go(func() error {
			return serveHTTP(groupCtx, metricsSrv, metricsListener)
		})
	}
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		group.Go(func() error {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				checkClockOffset(server)
				select {
				case <-groupCtx.Done():
					return nil
				case <-ticker.C:
				}
			}
		})
	}

	printStartupMessage(instanceDir, "http://"+apiListener.Addr().String()+"/", metricsURL)

	if err := group.Wait(); err != nil && err != http.ErrServerClosed && err != context.Canceled {
		return err
	}
	return nil
}
