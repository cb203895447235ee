// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/launchpool/launchpool/launch"
)

// TokenSet is the ordered set of accepted tokens with their decimals.
type TokenSet struct {
	m *orderedmap.OrderedMap[launch.Address, uint8]
}

// NewTokenSet creates an empty token set.
func NewTokenSet() *TokenSet {
	return &TokenSet{m: orderedmap.NewOrderedMap[launch.Address, uint8]()}
}

// Add appends a token. It returns false if the token is already present.
func (s *TokenSet) Add(token launch.Address, decimals uint8) bool {
	if _, ok := s.m.Get(token); ok {
		return false
	}
	s.m.Set(token, decimals)
	return true
}

// Decimals returns the decimals of an accepted token.
func (s *TokenSet) Decimals(token launch.Address) (uint8, bool) {
	return s.m.Get(token)
}

// Has reports whether the token is accepted.
func (s *TokenSet) Has(token launch.Address) bool {
	_, ok := s.m.Get(token)
	return ok
}

// Len returns the number of accepted tokens.
func (s *TokenSet) Len() int {
	return s.m.Len()
}

// At returns the i-th token in insertion order.
func (s *TokenSet) At(i int) (launch.Address, uint8, bool) {
	for el, n := s.m.Front(), 0; el != nil; el, n = el.Next(), n+1 {
		if n == i {
			return el.Key, el.Value, true
		}
	}
	return launch.Address{}, 0, false
}

// Addresses lists tokens in insertion order.
func (s *TokenSet) Addresses() []launch.Address {
	list := make([]launch.Address, 0, s.m.Len())
	for el := s.m.Front(); el != nil; el = el.Next() {
		list = append(list, el.Key)
	}
	return list
}

type tokenEntry struct {
	Address  launch.Address
	Decimals uint8
}

// EncodeRLP implements rlp.Encoder.
func (s *TokenSet) EncodeRLP(w io.Writer) error {
	entries := make([]tokenEntry, 0, s.m.Len())
	for el := s.m.Front(); el != nil; el = el.Next() {
		entries = append(entries, tokenEntry{el.Key, el.Value})
	}
	return rlp.Encode(w, entries)
}

// DecodeRLP implements rlp.Decoder.
func (s *TokenSet) DecodeRLP(stream *rlp.Stream) error {
	var entries []tokenEntry
	if err := stream.Decode(&entries); err != nil {
		return err
	}
	set := NewTokenSet()
	for _, e := range entries {
		set.Add(e.Address, e.Decimals)
	}
	*s = *set
	return nil
}
