// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/reverts"
	"github.com/launchpool/launchpool/stakes"
)

// ChunkResult reports the progress of a chunked operation.
type ChunkResult struct {
	Examined  uint64 `json:"examined"`
	Processed uint64 `json:"processed"`
	Remaining uint64 `json:"remaining"`
	Done      bool   `json:"done"`
}

// sharesOf converts a normalized amount into shares token units at the share price.
func (p *Pool) sharesOf(normalized *big.Int) *big.Int {
	shares := new(big.Int).Mul(normalized, launch.Unit)
	shares.Quo(shares, p.cfg.SharePrice)
	return launch.Denormalize(shares, p.cfg.SharesDecimals)
}

// GetStakeShares returns the shares amount (in tokenIndex units) buys at the share price.
func (p *Pool) GetStakeShares(amount *big.Int, tokenIndex int) (*big.Int, error) {
	_, decimals, ok := p.cfg.Tokens.At(tokenIndex)
	if !ok {
		return nil, reverts.ErrUnknownToken
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.ErrInvalidAmount
	}
	return p.sharesOf(launch.Normalize(amount, decimals)), nil
}

// entryShares computes the shares of a live entry given the stake already calculated.
func (p *Pool) entryShares(e *stakes.Entry) *big.Int {
	shares := p.sharesOf(e.Normalized)
	if p.cfg.Pricing == PricingEarlyBird {
		shares.Mul(shares, p.cfg.MaxCap)
		shares.Quo(shares, new(big.Int).Add(p.cfg.MaxCap, p.state.CalculatedStake))
	}
	return shares
}

func chunkEnd(cursor, step, n uint64) uint64 {
	if n-cursor < step {
		return n
	}
	return cursor + step
}

// CalculateSharesChunk computes shares for the next calculateStepSize entries.
func (p *Pool) CalculateSharesChunk(env *Env) (res *ChunkResult, err error) {
	defer func() { observeOp("calculate", err) }()

	if err := p.onlySponsor(env); err != nil {
		return nil, err
	}
	if p.Stage(env.Now) != Locked {
		return nil, reverts.ErrWrongStage
	}

	from := p.state.CalculateCursor
	n := p.stakes.Len()
	to := chunkEnd(from, p.cfg.CalculateStep, n)

	var processed uint64
	for i := from; i < to; i++ {
		e, _ := p.stakes.Get(i)
		if !e.Live() {
			continue
		}
		shares := p.entryShares(e)
		p.stakes.SetShares(i, shares)
		p.state.TotalShares.Add(p.state.TotalShares, shares)
		p.state.CalculatedStake.Add(p.state.CalculatedStake, e.Normalized)
		processed++
	}
	p.state.CalculateCursor = to

	env.emit(&SharesCalculated{From: from, To: to, Processed: processed, Total: new(big.Int).Set(p.state.TotalShares)})
	metricChunkEntries().ObserveWithLabels(int64(to-from), map[string]string{"op": "calculate"})

	res = &ChunkResult{Examined: to - from, Processed: processed, Remaining: n - to, Done: to == n}
	if res.Done {
		if err := p.transition(env, Calculated); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// allocation clamps computed shares pro rata so issuance never exceeds MaxShares.
func (p *Pool) allocation(shares *big.Int) *big.Int {
	maxShares := p.cfg.MaxShares
	if maxShares.Sign() == 0 || p.state.TotalShares.Cmp(maxShares) <= 0 {
		return new(big.Int).Set(shares)
	}
	alloc := new(big.Int).Mul(shares, maxShares)
	return alloc.Quo(alloc, p.state.TotalShares)
}

// DistributeSharesChunk pays the next distributeStepSize entries their shares.
// Shares come from pool custody first and any shortfall is drawn from the sponsor's allowance.
func (p *Pool) DistributeSharesChunk(env *Env) (res *ChunkResult, err error) {
	defer func() { observeOp("distribute", err) }()

	if err := p.onlySponsor(env); err != nil {
		return nil, err
	}
	if p.Stage(env.Now) != Calculated {
		return nil, reverts.ErrWrongStage
	}

	from := p.state.DistributeCursor
	n := p.stakes.Len()
	to := chunkEnd(from, p.cfg.DistributeStep, n)

	type payout struct {
		entry  *stakes.Entry
		amount *big.Int
	}
	var (
		payouts []payout
		need    = new(big.Int)
	)
	for i := from; i < to; i++ {
		e, _ := p.stakes.Get(i)
		if e.Shares.Sign() == 0 {
			continue
		}
		alloc := p.allocation(e.Shares)
		if alloc.Sign() == 0 {
			continue
		}
		payouts = append(payouts, payout{e, alloc})
		need.Add(need, alloc)
	}

	token := p.cfg.SharesToken
	if need.Sign() > 0 {
		custody, err := env.Ledger.BalanceOf(token, p.addr)
		if err != nil {
			return nil, err
		}
		if custody.Cmp(need) < 0 {
			shortfall := new(big.Int).Sub(need, custody)
			if err := env.Ledger.TransferFrom(token, p.addr, p.cfg.Sponsor, p.addr, shortfall); err != nil {
				return nil, err
			}
		}
		for _, po := range payouts {
			if err := env.Ledger.Transfer(token, p.addr, po.entry.Owner, po.amount); err != nil {
				return nil, err
			}
		}
	}

	for _, po := range payouts {
		env.emit(&SharesDistributed{Index: po.entry.Index, Owner: po.entry.Owner, Amount: po.amount})
	}
	p.state.DistributeCursor = to
	p.state.DistributedShares.Add(p.state.DistributedShares, need)
	metricChunkEntries().ObserveWithLabels(int64(to-from), map[string]string{"op": "distribute"})

	res = &ChunkResult{Examined: to - from, Processed: uint64(len(payouts)), Remaining: n - to, Done: to == n}
	if res.Done {
		if err := p.transition(env, Distributed); err != nil {
			return nil, err
		}
	}
	return res, nil
}
