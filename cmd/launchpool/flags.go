// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/launchpool/launchpool/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the pool and event databases",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save state to disk, otherwise everything lives in memory",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMintFlag = cli.BoolFlag{
		Name:  "enable-mint",
		Usage: "allow token registration and minting over the API (development only)",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used to detect clock drift, empty to disable",
	}

	// client side
	nodeFlag = cli.StringFlag{
		Name:  "node",
		Value: "http://localhost:8669",
		Usage: "URL of the node API",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address the call is made as",
	}
	poolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "address of the launch pool",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "address of the token",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient or spender address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in token units, 'ether' and 'mwei' suffixes allowed",
	}
	symbolFlag = cli.StringFlag{
		Name:  "symbol",
		Usage: "token symbol",
	}
	decimalsFlag = cli.UintFlag{
		Name:  "decimals",
		Value: 18,
		Usage: "token decimals",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the YAML pool definition",
	}
	noProgressFlag = cli.BoolFlag{
		Name:  "no-progress",
		Usage: "disable the progress bar",
	}
)
