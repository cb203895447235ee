// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/launchpool/launchpool/client"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
)

func createAction(ctx *cli.Context) error {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return errors.Errorf("-%s is required", configFlag.Name)
	}
	f, err := loadPoolFile(path)
	if err != nil {
		return err
	}
	caller := mustAddress(ctx, callerFlag)

	c := newClient(ctx)
	now, err := c.Now()
	if err != nil {
		return err
	}
	req, err := f.createRequest(caller, now)
	if err != nil {
		return err
	}
	rec, err := c.CreatePool(req)
	if err != nil {
		return err
	}
	fmt.Printf("pool %v created, config hash %v\n", rec.Pool, rec.ConfigHash)
	return nil
}

// chunkFunc runs one calculate or distribute step.
type chunkFunc func(addr, caller launch.Address) (*pool.ChunkResult, error)

// runChunks calls step until it reports done, advancing bar by the processed entries.
func runChunks(step chunkFunc, addr, caller launch.Address, bar *pb.ProgressBar) (steps int, err error) {
	for {
		res, err := step(addr, caller)
		if err != nil {
			return steps, err
		}
		steps++
		if bar != nil {
			bar.Add64(int64(res.Examined))
		}
		if res.Done {
			return steps, nil
		}
	}
}

// drivePool takes a locked or calculated pool to distributed.
func drivePool(c *client.Client, addr, caller launch.Address, out io.Writer, progress bool) error {
	p, err := c.Pool(addr)
	if err != nil {
		return err
	}

	phases := []struct {
		name   string
		stage  pool.Stage
		cursor uint64
		step   chunkFunc
	}{
		{"Calculating shares", pool.Locked, p.CalculateCursor, c.CalculateSharesChunk},
		{"Distributing shares", pool.Calculated, p.DistributeCursor, c.DistributeSharesChunk},
	}
	if p.Stage != pool.Locked && p.Stage != pool.Calculated {
		return errors.Errorf("pool is %v, expected locked or calculated", p.Stage)
	}
	stage := p.Stage
	for _, phase := range phases {
		if stage != phase.stage {
			continue
		}
		fmt.Fprintf(out, ">> %s <<\n", phase.name)

		var bar *pb.ProgressBar
		if progress {
			bar = pb.New64(int64(p.StakeCount)).
				Set64(int64(phase.cursor)).
				SetMaxWidth(90).
				Start()
		}
		steps, err := runChunks(phase.step, addr, caller, bar)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "done in %d calls\n", steps)
		stage++
	}
	return nil
}

func driveAction(ctx *cli.Context) error {
	return drivePool(
		newClient(ctx),
		mustAddress(ctx, poolFlag),
		mustAddress(ctx, callerFlag),
		os.Stdout,
		!ctx.Bool(noProgressFlag.Name),
	)
}

func infoAction(ctx *cli.Context) error {
	p, err := newClient(ctx).Pool(mustAddress(ctx, poolFlag))
	if err != nil {
		return err
	}
	info := func(i int) *big.Int { return (*big.Int)(p.GeneralInfos[i]) }
	fmt.Printf(`Pool %v
    Sponsor      [ %v ]
    Stage        [ %v ]
    Window       [ %v - %v ]
    Staked       [ %v / %v ]
    Stakes       [ %v ]
    Shares       [ %v of %v distributed ]
`,
		p.Address,
		p.Sponsor,
		p.Stage,
		info(pool.InfoStart), info(pool.InfoEnd),
		launch.FormatUnits(info(pool.InfoTotalStaked), launch.Precision),
		launch.FormatUnits(info(pool.InfoMaxCap), launch.Precision),
		p.StakeCount,
		launch.FormatUnits((*big.Int)(p.DistributedShares), p.SharesDecimals),
		launch.FormatUnits((*big.Int)(p.TotalShares), p.SharesDecimals),
	)
	return nil
}
