package main

import "github.com/urfave/cli/v2"

var (
	descriptorFlag = cli.StringFlag{
		Name:    "descriptor",
		Aliases: []string{"d"},
		Usage:   "the wallet output descriptor, ending with /*",
	}
	nodeFlag = cli.StringFlag{
		Name:    "node",
		Aliases: []string{"n"},
		Usage:   "electrum url, bitcoind url with ?auth=user:pass or \"default\"",
	}
	nodesFlag = cli.StringSliceFlag{
		Name:    "node",
		Aliases: []string{"n"},
		Usage:   "one or more node addresses to probe",
	}
	socks5Flag = cli.StringFlag{
		Name:  "socks5",
		Usage: "host:port of a SOCKS5 proxy for electrum connections",
	}
	offlineFlag = cli.BoolFlag{
		Name:  "offline",
		Usage: "resolve the config without connecting to any node",
	}
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "the network of the probed nodes: main or test",
	}
	intervalFlag = cli.DurationFlag{
		Name:  "interval",
		Usage: "time between two consecutive probes",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "address where prometheus metrics are exposed",
	}
)
