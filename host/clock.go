// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"sync/atomic"
	"time"
)

// Clock provides the current unix time in seconds.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 { return uint64(time.Now().Unix()) }

// ManualClock only moves when told to.
type ManualClock struct {
	t atomic.Uint64
}

// NewManualClock creates a clock stopped at t.
func NewManualClock(t uint64) *ManualClock {
	c := &ManualClock{}
	c.t.Store(t)
	return c
}

func (c *ManualClock) Now() uint64 { return c.t.Load() }

// Set moves the clock to t.
func (c *ManualClock) Set(t uint64) { c.t.Store(t) }

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) { c.t.Add(d) }
