// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/ledger"
	"github.com/launchpool/launchpool/lvldb"
)

var (
	sponsor  = launch.BytesToAddress([]byte("sponsor"))
	referral = launch.BytesToAddress([]byte("referral"))
	dai      = launch.BytesToAddress([]byte("dai"))
	usdt     = launch.BytesToAddress([]byte("usdt"))
	shar     = launch.BytesToAddress([]byte("shar"))
	poolAddr = launch.CreatePoolAddress(sponsor, 0)

	stakers = []launch.Address{
		launch.BytesToAddress([]byte("staker0")),
		launch.BytesToAddress([]byte("staker1")),
		launch.BytesToAddress([]byte("staker2")),
		launch.BytesToAddress([]byte("staker3")),
		launch.BytesToAddress([]byte("staker4")),
	}
)

func ether(s string) *big.Int {
	v, err := launch.ParseUnits(s, 18)
	if err != nil {
		panic(err)
	}
	return v
}

func mwei(s string) *big.Int {
	v, err := launch.ParseUnits(s, 6)
	if err != nil {
		panic(err)
	}
	return v
}

// testChain drives a pool the way the host does: every call on a ledger snapshot.
type testChain struct {
	t      *testing.T
	ledger *ledger.Ledger
	pool   *Pool
	now    uint64
	events []Event
}

func newLedger(t *testing.T) *ledger.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := ledger.New(db)
	require.NoError(t, l.RegisterToken(dai, "DAI", 18))
	require.NoError(t, l.RegisterToken(usdt, "USDT", 6))
	require.NoError(t, l.RegisterToken(shar, "SHAR", 18))
	require.NoError(t, l.Mint(dai, sponsor, ether("100000000")))
	require.NoError(t, l.Mint(usdt, sponsor, mwei("100000000")))
	require.NoError(t, l.Mint(shar, sponsor, ether("10000000")))
	return l
}

func newConfig(t *testing.T, params Params, now uint64, opts ...Option) *Config {
	tokens := NewTokenSet()
	tokens.Add(dai, 18)
	tokens.Add(usdt, 6)
	cfg := &Config{
		Sponsor:        sponsor,
		Tokens:         tokens,
		Metadata:       "QmZuQMs9n2TJUsV2VyGHox5wwxNAg3FVr5SWRKU814DCra",
		SharesToken:    shar,
		SharesDecimals: 18,
		Abortable:      true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	require.NoError(t, cfg.ApplyParams(params, now))
	require.NoError(t, cfg.Validate())
	return cfg
}

// referenceParams mirrors a pool accepting 2M normalized units, closing at end.
func referenceParams(end uint64) Params {
	return Params{
		ether("100"),
		ether("2000000"),
		big.NewInt(0),
		new(big.Int).SetUint64(end),
		big.NewInt(10),
		big.NewInt(100),
		ether("0.5"),
		ether("2000000"),
	}
}

func newTestChain(t *testing.T, params Params, opts ...Option) *testChain {
	const now = 1000
	return &testChain{
		t:      t,
		ledger: newLedger(t),
		pool:   New(poolAddr, newConfig(t, params, now, opts...), now),
		now:    now,
	}
}

func (c *testChain) env(caller launch.Address) *Env {
	return &Env{
		Ledger: c.ledger,
		Now:    c.now,
		Caller: caller,
		Emit:   func(ev Event) { c.events = append(c.events, ev) },
	}
}

// call runs fn atomically against the ledger.
func (c *testChain) call(fn func() error) error {
	rev := c.ledger.Snapshot()
	mark := len(c.events)
	if err := fn(); err != nil {
		c.ledger.Revert(rev)
		c.events = c.events[:mark]
		return err
	}
	return nil
}

// fund gives the staker tokens and approves the pool for them.
func (c *testChain) fund(staker, token launch.Address, amount *big.Int) {
	require.NoError(c.t, c.ledger.Transfer(token, sponsor, staker, amount))
	require.NoError(c.t, c.ledger.Approve(token, staker, poolAddr, amount))
}

func (c *testChain) stake(staker, token launch.Address, amount *big.Int) (uint64, error) {
	var index uint64
	err := c.call(func() (err error) {
		index, err = c.pool.Stake(c.env(staker), token, amount)
		return
	})
	return index, err
}

func (c *testChain) unstake(staker launch.Address, index uint64) error {
	return c.call(func() error { return c.pool.Unstake(c.env(staker), index) })
}

func (c *testChain) lock() error {
	return c.call(func() error { return c.pool.Lock(c.env(sponsor)) })
}

func (c *testChain) calculate() (*ChunkResult, error) {
	var res *ChunkResult
	err := c.call(func() (err error) {
		res, err = c.pool.CalculateSharesChunk(c.env(sponsor))
		return
	})
	return res, err
}

func (c *testChain) distribute() (*ChunkResult, error) {
	var res *ChunkResult
	err := c.call(func() (err error) {
		res, err = c.pool.DistributeSharesChunk(c.env(sponsor))
		return
	})
	return res, err
}

func (c *testChain) withdraw(token launch.Address) (*Withdrawal, error) {
	var w *Withdrawal
	err := c.call(func() (err error) {
		w, err = c.pool.WithdrawStakes(c.env(sponsor), token)
		return
	})
	return w, err
}

func (c *testChain) balance(token, owner launch.Address) *big.Int {
	bal, err := c.ledger.BalanceOf(token, owner)
	require.NoError(c.t, err)
	return bal
}

func (c *testChain) stage() Stage {
	return c.pool.Stage(c.now)
}
