// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"

	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/launch"
)

// EventMessage is pushed for every matching event of a committed call.
type EventMessage struct {
	Call   uint64          `json:"call"`
	Index  uint32          `json:"index"`
	Time   uint64          `json:"time"`
	Pool   launch.Address  `json:"pool"`
	Caller launch.Address  `json:"caller"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
}

type eventFilter struct {
	pool *launch.Address
	name string
}

func (f *eventFilter) match(r *host.Record) bool {
	if f.pool != nil && *f.pool != r.Pool {
		return false
	}
	return f.name == "" || f.name == r.Event.Name()
}

func convertRecord(r *host.Record) (*EventMessage, error) {
	data, err := json.Marshal(r.Event)
	if err != nil {
		return nil, err
	}
	return &EventMessage{
		Call:   r.Call,
		Index:  r.Index,
		Time:   r.Time,
		Pool:   r.Pool,
		Caller: r.Caller,
		Name:   r.Event.Name(),
		Data:   data,
	}, nil
}
