// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/launchpool/launchpool/launch"
)

// Event is a pool or factory record as stored in db.
type Event struct {
	Seq    uint64 // assigned on insert
	Call   uint64 // host call that emitted it
	Index  uint32 // position within the call
	Time   uint64
	Pool   launch.Address
	Caller launch.Address
	Name   string
	Data   []byte // JSON body
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events; nil fields match anything.
type EventCriteria struct {
	Pool   *launch.Address
	Caller *launch.Address
	Name   string
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
