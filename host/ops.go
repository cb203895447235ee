// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"context"
	"math/big"

	"github.com/launchpool/launchpool/factory"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
)

// CreateArgs are the arguments of a pool creation.
type CreateArgs struct {
	Tokens      []launch.Address
	Params      pool.Params
	Metadata    string
	SharesToken launch.Address
	ReferralBps uint16
	Referral    launch.Address
	Options     []pool.Option
}

// CreateLaunchPool creates a pool sponsored by caller.
func (h *Host) CreateLaunchPool(ctx context.Context, caller launch.Address, args *CreateArgs) (rec *factory.CreationRecord, err error) {
	err = h.Execute(ctx, caller, func(c *Call) error {
		_, r, err := c.Factory.CreateLaunchPool(
			c.Now,
			c.Caller,
			args.Tokens,
			args.Params,
			args.Metadata,
			args.SharesToken,
			args.ReferralBps,
			args.Referral,
			args.Options...,
		)
		if err != nil {
			return err
		}
		c.Emit(r.Pool, r)
		rec = r
		return nil
	})
	return
}

// Stake stakes amount of token in the pool.
func (h *Host) Stake(ctx context.Context, caller, poolAddr, token launch.Address, amount *big.Int) (index uint64, err error) {
	err = h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		index, err = p.Stake(env, token, amount)
		return err
	})
	return
}

// Unstake refunds the stake entry at index.
func (h *Host) Unstake(ctx context.Context, caller, poolAddr launch.Address, index uint64) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		return p.Unstake(env, index)
	})
}

// ExtendEndTimestamp moves the end of staking forward by delta seconds.
func (h *Host) ExtendEndTimestamp(ctx context.Context, caller, poolAddr launch.Address, delta uint64) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		return p.ExtendEndTimestamp(env, delta)
	})
}

// Lock closes staking.
func (h *Host) Lock(ctx context.Context, caller, poolAddr launch.Address) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		return p.Lock(env)
	})
}

// Abort cancels the pool and opens refunds.
func (h *Host) Abort(ctx context.Context, caller, poolAddr launch.Address) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		return p.Abort(env)
	})
}

// CalculateSharesChunk runs one chunk of share calculation.
func (h *Host) CalculateSharesChunk(ctx context.Context, caller, poolAddr launch.Address) (res *pool.ChunkResult, err error) {
	err = h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		res, err = p.CalculateSharesChunk(env)
		return err
	})
	return
}

// DistributeSharesChunk runs one chunk of share distribution.
func (h *Host) DistributeSharesChunk(ctx context.Context, caller, poolAddr launch.Address) (res *pool.ChunkResult, err error) {
	err = h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		res, err = p.DistributeSharesChunk(env)
		return err
	})
	return
}

// WithdrawStakes sends the pool balance of token to the sponsor.
func (h *Host) WithdrawStakes(ctx context.Context, caller, poolAddr, token launch.Address) (w *pool.Withdrawal, err error) {
	err = h.Execute(ctx, caller, func(c *Call) error {
		p, env, err := c.Pool(poolAddr)
		if err != nil {
			return err
		}
		w, err = p.WithdrawStakes(env, token)
		return err
	})
	return
}

// RegisterToken adds a token to the ledger.
func (h *Host) RegisterToken(ctx context.Context, token launch.Address, symbol string, decimals uint8) error {
	return h.Execute(ctx, launch.Address{}, func(c *Call) error {
		return c.Ledger.RegisterToken(token, symbol, decimals)
	})
}

// Mint credits amount of token to the account.
func (h *Host) Mint(ctx context.Context, token, to launch.Address, amount *big.Int) error {
	return h.Execute(ctx, launch.Address{}, func(c *Call) error {
		return c.Ledger.Mint(token, to, amount)
	})
}

// Transfer moves amount of token from caller to the recipient.
func (h *Host) Transfer(ctx context.Context, caller, token, to launch.Address, amount *big.Int) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		return c.Ledger.Transfer(token, c.Caller, to, amount)
	})
}

// Approve sets the allowance of spender over the caller's token.
func (h *Host) Approve(ctx context.Context, caller, token, spender launch.Address, amount *big.Int) error {
	return h.Execute(ctx, caller, func(c *Call) error {
		return c.Ledger.Approve(token, c.Caller, spender, amount)
	})
}
