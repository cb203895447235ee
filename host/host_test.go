// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/kv"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/logdb"
	"github.com/launchpool/launchpool/lvldb"
	"github.com/launchpool/launchpool/pool"
	"github.com/launchpool/launchpool/reverts"
)

var (
	sponsor = launch.BytesToAddress([]byte("sponsor"))
	alice   = launch.BytesToAddress([]byte("alice"))
	dai     = launch.BytesToAddress([]byte("dai"))
	usdt    = launch.BytesToAddress([]byte("usdt"))
	shar    = launch.BytesToAddress([]byte("shar"))
)

func units(s string, decimals uint8) *big.Int {
	v, err := launch.ParseUnits(s, decimals)
	if err != nil {
		panic(err)
	}
	return v
}

type testHost struct {
	*Host
	t      *testing.T
	store  kv.Store
	events *logdb.LogDB
	clock  *ManualClock
}

func newTestHost(t *testing.T) *testHost {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	events, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		events.Close()
		store.Close()
	})

	clock := NewManualClock(1000)
	h, err := New(store, events, clock)
	require.NoError(t, err)
	t.Cleanup(h.Close)

	ctx := context.Background()
	require.NoError(t, h.RegisterToken(ctx, dai, "DAI", 18))
	require.NoError(t, h.RegisterToken(ctx, usdt, "USDT", 6))
	require.NoError(t, h.RegisterToken(ctx, shar, "SHAR", 18))
	require.NoError(t, h.Mint(ctx, shar, sponsor, units("10000000", 18)))
	return &testHost{Host: h, t: t, store: store, events: events, clock: clock}
}

func (h *testHost) balance(token, owner launch.Address) *big.Int {
	var bal *big.Int
	require.NoError(h.t, h.View(func(c *Call) (err error) {
		bal, err = c.Ledger.BalanceOf(token, owner)
		return
	}))
	return bal
}

func (h *testHost) pool(addr launch.Address) *pool.Pool {
	var p *pool.Pool
	require.NoError(h.t, h.View(func(c *Call) (err error) {
		p, err = c.Factory.Pool(addr)
		return
	}))
	return p
}

func (h *testHost) create(end uint64, opts ...pool.Option) launch.Address {
	rec, err := h.CreateLaunchPool(context.Background(), sponsor, &CreateArgs{
		Tokens: []launch.Address{dai, usdt},
		Params: pool.Params{
			units("100", 18),
			units("2000000", 18),
			big.NewInt(0),
			new(big.Int).SetUint64(end),
			big.NewInt(10),
			big.NewInt(100),
			units("0.5", 18),
			units("2000000", 18),
		},
		Metadata:    "QmZuQMs9n2TJUsV2VyGHox5wwxNAg3FVr5SWRKU814DCra",
		SharesToken: shar,
		Options:     opts,
	})
	require.NoError(h.t, err)
	return rec.Pool
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(10)
	assert.Equal(t, uint64(10), c.Now())
	c.Advance(5)
	assert.Equal(t, uint64(15), c.Now())
	c.Set(3)
	assert.Equal(t, uint64(3), c.Now())

	assert.InDelta(t, time.Now().Unix(), int64(SystemClock{}.Now()), 2)
}

func TestExecuteRevertsOnError(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()

	before, err := h.events.FilterEvents(ctx, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = h.Execute(ctx, sponsor, func(c *Call) error {
		require.NoError(t, c.Ledger.Transfer(shar, sponsor, alice, units("1", 18)))
		_, rec, err := c.Factory.CreateLaunchPool(c.Now, sponsor, []launch.Address{dai}, pool.Params{
			big.NewInt(0), units("1", 18), big.NewInt(0), big.NewInt(2000),
			big.NewInt(1), big.NewInt(1), units("1", 18), big.NewInt(0),
		}, "", shar, 0, launch.Address{})
		require.NoError(t, err)
		c.Emit(rec.Pool, rec)
		return boom
	})
	assert.Equal(t, boom, err)

	assert.Equal(t, 0, h.balance(shar, alice).Sign())
	assert.Equal(t, units("10000000", 18), h.balance(shar, sponsor))
	require.NoError(t, h.View(func(c *Call) error {
		assert.Equal(t, uint64(0), c.Factory.Count())
		_, err := c.Factory.Pool(launch.CreatePoolAddress(sponsor, 0))
		assert.True(t, errors.Is(err, reverts.ErrNoSuchPool))
		return nil
	}))
	after, err := h.events.FilterEvents(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))

	// the nonce was not consumed
	addr := h.create(2000)
	assert.Equal(t, launch.CreatePoolAddress(sponsor, 0), addr)
}

func TestRevertedStakeLeavesNoTrace(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()
	addr := h.create(2000)

	require.NoError(t, h.Mint(ctx, dai, alice, units("50", 18)))
	require.NoError(t, h.Approve(ctx, alice, dai, addr, units("50", 18)))

	_, err := h.Stake(ctx, alice, addr, dai, units("50", 18))
	assert.EqualError(t, err, reverts.ErrBelowMinimum.Error())
	assert.Equal(t, units("50", 18), h.balance(dai, alice))
	assert.Equal(t, uint64(0), h.pool(addr).StakeCount())

	_, err = h.Stake(ctx, alice, launch.BytesToAddress([]byte("nowhere")), dai, units("50", 18))
	assert.True(t, errors.Is(err, reverts.ErrNoSuchPool))
}

func TestSubscribeRecords(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()

	ch := make(chan []*Record, 8)
	sub := h.SubscribeRecords(ch)
	defer sub.Unsubscribe()

	addr := h.create(2000)
	require.NoError(t, h.ExtendEndTimestamp(ctx, sponsor, addr, 100))
	assert.Error(t, h.ExtendEndTimestamp(ctx, alice, addr, 100))

	recs := <-ch
	require.Len(t, recs, 1)
	assert.Equal(t, "PoolCreated", recs[0].Event.Name())
	assert.Equal(t, addr, recs[0].Pool)
	assert.Equal(t, sponsor, recs[0].Caller)

	recs = <-ch
	require.Len(t, recs, 1)
	assert.Equal(t, &pool.EndExtended{OldEnd: 2000, NewEnd: 2100}, recs[0].Event)

	select {
	case recs := <-ch:
		t.Fatalf("unexpected records %v", recs)
	default:
	}

	logged, err := h.events.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Pool: &addr}},
	})
	require.NoError(t, err)
	require.Len(t, logged, 2)
	assert.Equal(t, "EndExtended", logged[1].Name)
	assert.JSONEq(t, `{"oldEnd":2000,"newEnd":2100}`, string(logged[1].Data))
	assert.Equal(t, logged[0].Call+1, logged[1].Call)
}

func TestReopen(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()
	addr := h.create(2000)

	require.NoError(t, h.Mint(ctx, dai, alice, units("500", 18)))
	require.NoError(t, h.Approve(ctx, alice, dai, addr, units("500", 18)))
	_, err := h.Stake(ctx, alice, addr, dai, units("500", 18))
	require.NoError(t, err)

	last, err := h.events.LastCall(ctx)
	require.NoError(t, err)

	reopened, err := New(h.store, h.events, h.clock)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, last, reopened.calls)

	require.NoError(t, reopened.View(func(c *Call) error {
		p, err := c.Factory.Pool(addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), p.StakeCount())
		assert.Equal(t, units("500", 18), p.GeneralInfos(c.Now)[pool.InfoTotalStaked])

		bal, err := c.Ledger.BalanceOf(dai, addr)
		require.NoError(t, err)
		assert.Equal(t, units("500", 18), bal)
		return nil
	}))
}
