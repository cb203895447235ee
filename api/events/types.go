// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/logdb"
)

type Range struct {
	Unit logdb.RangeType `json:"unit"`
	From *uint64         `json:"from,omitempty"`
	To   *uint64         `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventCriteria struct {
	Pool   *launch.Address `json:"pool"`
	Caller *launch.Address `json:"caller"`
	Name   string          `json:"name"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

// FilteredEvent is an event as recorded by a committed call.
type FilteredEvent struct {
	Seq    uint64          `json:"seq"`
	Call   uint64          `json:"call"`
	Index  uint32          `json:"index"`
	Time   uint64          `json:"time"`
	Pool   launch.Address  `json:"pool"`
	Caller launch.Address  `json:"caller"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
}

func convertRange(r *Range) (*logdb.Range, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Unit {
	case logdb.Seq, logdb.Time:
	case "":
		r.Unit = logdb.Seq
	default:
		return nil, fmt.Errorf("unit: unsupported %q", r.Unit)
	}
	res := &logdb.Range{Unit: r.Unit, To: math.MaxInt64}
	if r.From != nil {
		res.From = *r.From
	}
	if r.To != nil {
		res.To = *r.To
	}
	if res.To > math.MaxInt64 {
		return nil, fmt.Errorf("to exceeds the maximum allowed value of %d", int64(math.MaxInt64))
	}
	if res.To < res.From {
		return nil, fmt.Errorf("to must be greater than or equal to from")
	}
	return res, nil
}

func convertEventFilter(f *EventFilter) (*logdb.EventFilter, error) {
	rng, err := convertRange(f.Range)
	if err != nil {
		return nil, err
	}
	switch f.Order {
	case logdb.ASC, logdb.DESC:
	case "":
		f.Order = logdb.ASC
	default:
		return nil, fmt.Errorf("order: unsupported %q", f.Order)
	}
	filter := &logdb.EventFilter{
		Range: rng,
		Order: f.Order,
	}
	if f.Options != nil {
		filter.Options = &logdb.Options{Offset: f.Options.Offset, Limit: f.Options.Limit}
	}
	for i, c := range f.CriteriaSet {
		if c == nil {
			return nil, fmt.Errorf("criteriaSet[%d]: null not allowed", i)
		}
		filter.CriteriaSet = append(filter.CriteriaSet, &logdb.EventCriteria{
			Pool:   c.Pool,
			Caller: c.Caller,
			Name:   c.Name,
		})
	}
	return filter, nil
}

func convertEvent(e *logdb.Event) *FilteredEvent {
	data := json.RawMessage(e.Data)
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return &FilteredEvent{
		Seq:    e.Seq,
		Call:   e.Call,
		Index:  e.Index,
		Time:   e.Time,
		Pool:   e.Pool,
		Caller: e.Caller,
		Name:   e.Name,
		Data:   data,
	}
}
