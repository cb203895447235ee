// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/factory"
	"github.com/launchpool/launchpool/kv"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/ledger"
	"github.com/launchpool/launchpool/log"
	"github.com/launchpool/launchpool/logdb"
	"github.com/launchpool/launchpool/metrics"
	"github.com/launchpool/launchpool/pool"
	"github.com/launchpool/launchpool/reverts"
)

var (
	logger = log.WithContext("pkg", "host")

	metricCalls        = metrics.LazyLoadCounterVec("host_calls_count", []string{"result"})
	metricCallDuration = metrics.LazyLoadHistogram("host_call_duration_ms", metrics.BucketHTTPReqs)
)

// DefaultPoolCacheSize is the number of decoded pools kept in memory.
var DefaultPoolCacheSize = 256

// Record is an event emitted by a committed call.
type Record struct {
	Call   uint64
	Index  uint32
	Time   uint64
	Pool   launch.Address
	Caller launch.Address
	Event  pool.Event
}

// Host executes calls one at a time. A call either commits all of its ledger,
// pool and event changes or none of them.
type Host struct {
	mu      sync.Mutex
	clock   Clock
	ledger  *ledger.Ledger
	factory *factory.Factory
	events  *logdb.LogDB
	calls   uint64

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates a host over the store. events may be nil to skip the audit log.
func New(store kv.Store, events *logdb.LogDB, clock Clock) (*Host, error) {
	l := ledger.New(store)
	f, err := factory.New(store, l, DefaultPoolCacheSize)
	if err != nil {
		return nil, err
	}
	h := &Host{
		clock:   clock,
		ledger:  l,
		factory: f,
		events:  events,
	}
	if events != nil {
		if h.calls, err = events.LastCall(context.Background()); err != nil {
			return nil, errors.Wrap(err, "last call")
		}
	}
	return h, nil
}

// Close stops all subscriptions.
func (h *Host) Close() {
	h.scope.Close()
}

// Now returns the host clock reading.
func (h *Host) Now() uint64 {
	return h.clock.Now()
}

// SubscribeRecords delivers the records of every committed call.
func (h *Host) SubscribeRecords(ch chan<- []*Record) event.Subscription {
	return h.scope.Track(h.feed.Subscribe(ch))
}

// Call is the context handed to an executing function.
type Call struct {
	Now     uint64
	Caller  launch.Address
	Ledger  *ledger.Ledger
	Factory *factory.Factory

	number  uint64
	records []*Record
}

// Emit buffers an event attributed to the pool.
func (c *Call) Emit(poolAddr launch.Address, ev pool.Event) {
	c.records = append(c.records, &Record{
		Call:   c.number,
		Index:  uint32(len(c.records)),
		Time:   c.Now,
		Pool:   poolAddr,
		Caller: c.Caller,
		Event:  ev,
	})
}

// Env returns the pool environment of this call.
func (c *Call) Env(poolAddr launch.Address) *pool.Env {
	return &pool.Env{
		Ledger: c.Ledger,
		Now:    c.Now,
		Caller: c.Caller,
		Emit:   func(ev pool.Event) { c.Emit(poolAddr, ev) },
	}
}

// Pool loads a pool for modification together with its environment.
func (c *Call) Pool(addr launch.Address) (*pool.Pool, *pool.Env, error) {
	p, err := c.Factory.Modify(addr)
	if err != nil {
		return nil, nil, err
	}
	return p, c.Env(addr), nil
}

// Execute runs fn atomically on behalf of caller.
func (h *Host) Execute(ctx context.Context, caller launch.Address, fn func(*Call) error) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	defer func() {
		result := "ok"
		switch {
		case reverts.IsRevertErr(err):
			result = "reverted"
		case err != nil:
			result = "failed"
		}
		metricCalls().AddWithLabel(1, map[string]string{"result": result})
		metricCallDuration().Observe(time.Since(start).Milliseconds())
	}()

	c := &Call{
		Now:     h.clock.Now(),
		Caller:  caller,
		Ledger:  h.ledger,
		Factory: h.factory,
		number:  h.calls + 1,
	}
	rev := h.ledger.Snapshot()
	if err := fn(c); err != nil {
		h.ledger.Revert(rev)
		h.factory.Discard()
		if reverts.IsRevertErr(err) {
			logger.Debug("call reverted", "caller", caller, "reason", err)
		} else {
			logger.Error("call failed", "caller", caller, "err", err)
		}
		return err
	}

	if err := h.ledger.Commit(); err != nil {
		h.factory.Discard()
		logger.Error("commit ledger", "err", err)
		return err
	}
	if err := h.factory.Commit(); err != nil {
		logger.Error("commit pools", "err", err)
		return err
	}
	h.calls = c.number

	if len(c.records) == 0 {
		return nil
	}
	if h.events != nil {
		rows := make([]*logdb.Event, 0, len(c.records))
		for _, r := range c.records {
			data, err := json.Marshal(r.Event)
			if err != nil {
				return errors.Wrap(err, "encode event")
			}
			rows = append(rows, &logdb.Event{
				Call:   r.Call,
				Index:  r.Index,
				Time:   r.Time,
				Pool:   r.Pool,
				Caller: r.Caller,
				Name:   r.Event.Name(),
				Data:   data,
			})
		}
		if err := h.events.Insert(ctx, rows); err != nil {
			logger.Error("write events", "call", c.number, "err", err)
			return errors.Wrap(err, "write events")
		}
	}
	h.feed.Send(c.records)
	return nil
}

// View runs fn with read access under the host lock.
func (h *Host) View(fn func(*Call) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(&Call{
		Now:     h.clock.Now(),
		Ledger:  h.ledger,
		Factory: h.factory,
	})
}
