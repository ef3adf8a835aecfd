package main

import (
	"errors"
	"fmt"

	"github.com/stackmate/walletcfg/internal/config"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentProbes caps the number of nodes probed at the same time.
const maxConcurrentProbes = 8

var check = cli.Command{
	Name:  "check",
	Usage: "probe one or more nodes by estimating the next block fee",
	Flags: []cli.Flag{
		&networkFlag,
		&nodesFlag,
	},
	Action: checkAction,
}

type probeResult struct {
	Node  string `json:"node"`
	Alive bool   `json:"alive"`
	Kind  string `json:"error_kind,omitempty"`
	Error string `json:"error,omitempty"`
}

func checkAction(ctx *cli.Context) error {
	overrideConfig(ctx, networkFlag.Name, config.NetworkKey)
	network, err := domain.ParseNetwork(config.GetString(config.NetworkKey))
	if err != nil {
		return err
	}

	nodes := ctx.StringSlice(nodesFlag.Name)
	if len(nodes) <= 0 {
		nodes = []string{config.GetString(config.NodeAddressKey)}
	}

	svc := newConfigService()
	results := make([]probeResult, len(nodes))

	eg := &errgroup.Group{}
	eg.SetLimit(maxConcurrentProbes)
	for i := range nodes {
		i, node := i, nodes[i]
		eg.Go(func() error {
			results[i] = probeResult{Node: node, Alive: true}
			if err := svc.CheckClient(ctx.Context, network, node); err != nil {
				results[i].Alive = false
				results[i].Error = err.Error()
				var domainErr *domain.Error
				if errors.As(err, &domainErr) {
					results[i].Kind = domainErr.Kind.String()
					results[i].Error = domainErr.Message
				}
			}
			return nil
		})
	}
	// Probes never fail the group, results carry their errors.
	_ = eg.Wait()

	if err := printJSON(ctx, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Alive {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d nodes unreachable", failed, len(nodes))
	}
	return nil
}
