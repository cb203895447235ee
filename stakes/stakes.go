// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/launchpool/launchpool/launch"
)

// Entry is a single stake. Amount is in token units, Normalized in 18-decimal units.
// A withdrawn entry keeps its index with both amounts zeroed.
type Entry struct {
	Index      uint64
	Owner      launch.Address
	Token      launch.Address
	Amount     *big.Int
	Normalized *big.Int
	Shares     *big.Int
}

// Live reports whether the entry still holds funds.
func (e *Entry) Live() bool {
	return e.Amount.Sign() > 0
}

func (e *Entry) copy() *Entry {
	cpy := *e
	cpy.Amount = new(big.Int).Set(e.Amount)
	cpy.Normalized = new(big.Int).Set(e.Normalized)
	cpy.Shares = new(big.Int).Set(e.Shares)
	return &cpy
}

// Registry is an append-only arena of stake entries indexed by position.
type Registry struct {
	entries []*Entry
	total   *big.Int
	totals  map[launch.Address]*big.Int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		total:  new(big.Int),
		totals: make(map[launch.Address]*big.Int),
	}
}

// Len returns the number of entries ever appended.
func (r *Registry) Len() uint64 {
	return uint64(len(r.entries))
}

// Append records a new stake and returns its index.
func (r *Registry) Append(owner, token launch.Address, amount, normalized *big.Int) uint64 {
	index := uint64(len(r.entries))
	r.entries = append(r.entries, &Entry{
		Index:      index,
		Owner:      owner,
		Token:      token,
		Amount:     new(big.Int).Set(amount),
		Normalized: new(big.Int).Set(normalized),
		Shares:     new(big.Int),
	})
	r.addTotal(token, normalized)
	return index
}

// Get returns a copy of the entry at index.
func (r *Registry) Get(index uint64) (*Entry, bool) {
	if index >= uint64(len(r.entries)) {
		return nil, false
	}
	return r.entries[index].copy(), true
}

// Zero empties the entry at index and returns its former amount.
func (r *Registry) Zero(index uint64) *big.Int {
	e := r.entries[index]
	amount := e.Amount
	r.addTotal(e.Token, new(big.Int).Neg(e.Normalized))
	e.Amount = new(big.Int)
	e.Normalized = new(big.Int)
	return amount
}

// SetShares stores the computed shares of the entry.
func (r *Registry) SetShares(index uint64, shares *big.Int) {
	r.entries[index].Shares = new(big.Int).Set(shares)
}

func (r *Registry) addTotal(token launch.Address, delta *big.Int) {
	r.total.Add(r.total, delta)
	t, ok := r.totals[token]
	if !ok {
		t = new(big.Int)
		r.totals[token] = t
	}
	t.Add(t, delta)
}

// Total returns the normalized sum of live entries.
func (r *Registry) Total() *big.Int {
	return new(big.Int).Set(r.total)
}

// TotalOf returns the normalized sum of live entries of the token.
func (r *Registry) TotalOf(token launch.Address) *big.Int {
	if t, ok := r.totals[token]; ok {
		return new(big.Int).Set(t)
	}
	return new(big.Int)
}

// Normalized lists normalized amounts in index order, zero for withdrawn entries.
func (r *Registry) Normalized() []*big.Int {
	list := make([]*big.Int, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, new(big.Int).Set(e.Normalized))
	}
	return list
}

// Of returns copies of all entries owned by owner, live or not.
func (r *Registry) Of(owner launch.Address) []*Entry {
	var list []*Entry
	for _, e := range r.entries {
		if e.Owner == owner {
			list = append(list, e.copy())
		}
	}
	return list
}

// EncodeRLP implements rlp.Encoder.
func (r *Registry) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, r.entries)
}

// DecodeRLP implements rlp.Decoder.
func (r *Registry) DecodeRLP(s *rlp.Stream) error {
	var entries []*Entry
	if err := s.Decode(&entries); err != nil {
		return err
	}
	dec := NewRegistry()
	for i, e := range entries {
		e.Index = uint64(i)
		dec.addTotal(e.Token, e.Normalized)
	}
	dec.entries = entries
	*r = *dec
	return nil
}
