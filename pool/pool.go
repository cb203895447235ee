// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/log"
	"github.com/launchpool/launchpool/reverts"
	"github.com/launchpool/launchpool/stakes"
)

var logger = log.WithContext("pkg", "pool")

// Ledger is the token surface a pool moves funds through.
type Ledger interface {
	BalanceOf(token, owner launch.Address) (*big.Int, error)
	Transfer(token, from, to launch.Address, amount *big.Int) error
	TransferFrom(token, spender, from, to launch.Address, amount *big.Int) error
}

// Env carries the context of a single call.
// Ledger writes made by a failing call are not undone by the pool; the caller
// runs each call against a ledger snapshot.
type Env struct {
	Ledger Ledger
	Now    uint64
	Caller launch.Address
	Emit   func(Event)
}

func (env *Env) emit(ev Event) {
	if env.Emit != nil {
		env.Emit(ev)
	}
}

// State is the mutable progress of a pool.
type State struct {
	Stage             Stage
	TotalShares       *big.Int
	CalculatedStake   *big.Int
	CalculateCursor   uint64
	DistributeCursor  uint64
	DistributedShares *big.Int
}

// Pool is a single Launch Pool.
// Operations validate and move funds before touching pool state, so a
// failing call leaves the pool as it was.
type Pool struct {
	addr   launch.Address
	cfg    *Config
	state  State
	stakes *stakes.Registry
}

// New creates a pool from a validated configuration.
func New(addr launch.Address, cfg *Config, now uint64) *Pool {
	p := &Pool{
		addr: addr,
		cfg:  cfg,
		state: State{
			Stage:             Pending,
			TotalShares:       new(big.Int),
			CalculatedStake:   new(big.Int),
			DistributedShares: new(big.Int),
		},
		stakes: stakes.NewRegistry(),
	}
	if now >= cfg.Start {
		p.state.Stage = Staking
	}
	return p
}

// Address returns the pool handle.
func (p *Pool) Address() launch.Address { return p.addr }

// Config returns a copy of the pool configuration.
func (p *Pool) Config() *Config { return p.cfg.copy() }

// Stage returns the stage as of now. A pending pool is staking once its start has passed.
func (p *Pool) Stage(now uint64) Stage {
	if p.state.Stage == Pending && now >= p.cfg.Start {
		return Staking
	}
	return p.state.Stage
}

// State returns a copy of the pool progress, with the stage evaluated at now.
func (p *Pool) State(now uint64) State {
	s := p.state
	s.Stage = p.Stage(now)
	s.TotalShares = new(big.Int).Set(s.TotalShares)
	s.CalculatedStake = new(big.Int).Set(s.CalculatedStake)
	s.DistributedShares = new(big.Int).Set(s.DistributedShares)
	return s
}

func (p *Pool) onlySponsor(env *Env) error {
	if env.Caller != p.cfg.Sponsor {
		return reverts.ErrNotSponsor
	}
	return nil
}

// transition moves the pool to the stage, refusing moves the stage table does not list.
// A pool still stored as Pending first records its implicit move to Staking.
func (p *Pool) transition(env *Env, to Stage) error {
	from := p.Stage(env.Now)
	if !CanTransition(from, to) {
		return reverts.Newf(reverts.WrongStage, "illegal transition from %v to %v", from, to)
	}
	if p.state.Stage == Pending {
		p.setStage(env, Pending, Staking)
	}
	p.setStage(env, from, to)
	return nil
}

func (p *Pool) setStage(env *Env, from, to Stage) {
	p.state.Stage = to
	env.emit(&StageChanged{From: from, To: to})
	metricStages().AddWithLabel(1, map[string]string{"stage": to.String()})
	logger.Info("stage changed", "pool", p.addr, "from", from, "to", to)
}

var errNotOpen = reverts.New(reverts.WrongStage, "Launch Pool is not open yet")

// Stake moves amount of token from the caller into the pool and records a new entry.
func (p *Pool) Stake(env *Env, token launch.Address, amount *big.Int) (index uint64, err error) {
	defer func() { observeOp("stake", err) }()

	switch p.Stage(env.Now) {
	case Staking:
	case Pending:
		return 0, errNotOpen
	default:
		return 0, reverts.ErrWrongStage
	}
	if env.Now >= p.cfg.End {
		return 0, reverts.ErrPoolClosed
	}
	decimals, ok := p.cfg.Tokens.Decimals(token)
	if !ok {
		return 0, reverts.ErrUnknownToken
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, reverts.ErrInvalidAmount
	}

	normalized := launch.Normalize(amount, decimals)
	staked := p.stakes.Total()
	if p.cfg.CapPolicy == CapPerToken {
		staked = p.stakes.TotalOf(token)
	}
	if staked.Add(staked, normalized).Cmp(p.cfg.MaxCap) > 0 {
		return 0, reverts.ErrCapExceeded
	}
	if normalized.Cmp(p.cfg.MinStake) < 0 {
		return 0, reverts.ErrBelowMinimum
	}

	if err := env.Ledger.TransferFrom(token, p.addr, env.Caller, p.addr, amount); err != nil {
		return 0, err
	}

	index = p.stakes.Append(env.Caller, token, amount, normalized)
	env.emit(&Staked{Staker: env.Caller, Token: token, Amount: new(big.Int).Set(amount), Index: index})
	logger.Debug("staked", "pool", p.addr, "staker", env.Caller, "token", token, "amount", amount, "index", index)
	return index, nil
}

var errNotUnstakable = reverts.New(reverts.WrongStage, "No Staking/Paused/Aborted stage.")

// Unstake refunds the entry at index to its owner and zeroes it.
func (p *Pool) Unstake(env *Env, index uint64) (err error) {
	defer func() { observeOp("unstake", err) }()

	switch p.Stage(env.Now) {
	case Staking:
		if env.Now >= p.cfg.End {
			return reverts.ErrPoolClosed
		}
	case Aborted:
	default:
		return errNotUnstakable
	}

	entry, ok := p.stakes.Get(index)
	if !ok || !entry.Live() {
		return reverts.ErrNoSuchStake
	}
	if entry.Owner != env.Caller {
		return reverts.ErrNotOwner
	}

	if err := env.Ledger.Transfer(entry.Token, p.addr, entry.Owner, entry.Amount); err != nil {
		return err
	}

	p.stakes.Zero(index)
	env.emit(&Unstaked{Staker: entry.Owner, Token: entry.Token, Amount: entry.Amount, Index: index})
	logger.Debug("unstaked", "pool", p.addr, "staker", entry.Owner, "index", index)
	return nil
}

// ExtendEndTimestamp pushes the end of the staking window forward by delta seconds.
// Extension is allowed until the pool is locked, even after the window elapsed.
func (p *Pool) ExtendEndTimestamp(env *Env, delta uint64) (err error) {
	defer func() { observeOp("extend", err) }()

	if err := p.onlySponsor(env); err != nil {
		return err
	}
	if p.Stage(env.Now) != Staking {
		return reverts.ErrWrongStage
	}
	if delta == 0 {
		return reverts.ErrInvalidAmount
	}
	newEnd := p.cfg.End + delta
	if newEnd < p.cfg.End {
		return reverts.ErrOverflow
	}

	old := p.cfg.End
	p.cfg.End = newEnd
	env.emit(&EndExtended{OldEnd: old, NewEnd: newEnd})
	logger.Debug("end extended", "pool", p.addr, "old", old, "new", newEnd)
	return nil
}

// Lock closes staking once the window has elapsed.
func (p *Pool) Lock(env *Env) (err error) {
	defer func() { observeOp("lock", err) }()

	if err := p.onlySponsor(env); err != nil {
		return err
	}
	if p.Stage(env.Now) != Staking {
		return reverts.ErrWrongStage
	}
	if env.Now < p.cfg.End {
		return reverts.ErrTooEarly
	}

	if err := p.transition(env, Locked); err != nil {
		return err
	}
	p.state.CalculateCursor = 0
	p.state.DistributeCursor = 0
	return nil
}

var errNotAbortable = reverts.New(reverts.WrongStage, "Launch Pool is not abortable")

// Abort cancels the pool. Stakers then recover their funds through Unstake.
func (p *Pool) Abort(env *Env) (err error) {
	defer func() { observeOp("abort", err) }()

	if err := p.onlySponsor(env); err != nil {
		return err
	}
	if !p.cfg.Abortable {
		return errNotAbortable
	}
	if p.Stage(env.Now) != Staking {
		return reverts.ErrWrongStage
	}
	return p.transition(env, Aborted)
}
