// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/kv"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/log"
	"github.com/launchpool/launchpool/reverts"
	"github.com/launchpool/launchpool/stackedmap"
)

var logger = log.WithContext("pkg", "ledger")

// Token describes a registered fungible token.
type Token struct {
	Address  launch.Address `rlp:"-"`
	Symbol   string
	Decimals uint8
}

// Ledger is a multi token balance sheet with ERC20 semantics.
// All writes land in a revisioned overlay; Commit flushes them into the store.
type Ledger struct {
	store kv.Store
	sm    *stackedmap.StackedMap[string, []byte]
}

// New creates a ledger backed by the given store.
func New(store kv.Store) *Ledger {
	l := &Ledger{store: store}
	l.sm = stackedmap.New(func(key string) ([]byte, bool, error) {
		val, err := store.Get([]byte(key))
		if err != nil {
			if store.IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, errors.Wrap(err, "ledger get")
		}
		return val, true, nil
	})
	l.sm.Push()
	return l
}

// Snapshot returns a revision which can be passed to Revert.
func (l *Ledger) Snapshot() int {
	return l.sm.Push()
}

// Revert drops every write made after the snapshot was taken.
func (l *Ledger) Revert(rev int) {
	if rev < 1 {
		rev = 1
	}
	l.sm.PopTo(rev)
}

// Commit writes all pending changes into the underlying store.
func (l *Ledger) Commit() error {
	dirty := l.sm.Dirty()
	if len(dirty) == 0 {
		return nil
	}
	batch := l.store.NewBatch()
	for k, v := range dirty {
		if err := batch.Put([]byte(k), v); err != nil {
			return errors.Wrap(err, "ledger commit")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "ledger commit")
	}
	l.sm.PopTo(0)
	l.sm.Push()
	logger.Debug("committed", "keys", len(dirty))
	return nil
}

func (l *Ledger) getAmount(key string) (*uint256.Int, error) {
	raw, _, err := l.sm.Get(key)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (l *Ledger) setAmount(key string, v *uint256.Int) {
	if v.IsZero() {
		l.sm.Put(key, nil)
		return
	}
	l.sm.Put(key, v.Bytes())
}

func (l *Ledger) getAndSetAmount(key string, cb func(*uint256.Int) error) error {
	v, err := l.getAmount(key)
	if err != nil {
		return err
	}
	if err := cb(v); err != nil {
		return err
	}
	l.setAmount(key, v)
	return nil
}

// toAmount converts a big integer into a 256-bit amount, rejecting negatives.
func toAmount(amount *big.Int) (*uint256.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.ErrInvalidAmount
	}
	v, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return v, nil
}

// RegisterToken adds a new token to the ledger.
func (l *Ledger) RegisterToken(token launch.Address, symbol string, decimals uint8) error {
	if token.IsZero() {
		return reverts.Newf(reverts.InvalidConfiguration, "invalid token address %v", token)
	}
	if t, err := l.Token(token); err != nil {
		return err
	} else if t != nil {
		return reverts.Newf(reverts.InvalidConfiguration, "token %v already registered", token)
	}
	data, err := rlp.EncodeToBytes(&Token{Symbol: symbol, Decimals: decimals})
	if err != nil {
		return errors.Wrap(err, "encode token")
	}
	l.sm.Put(tokenKey(token), data)
	return nil
}

// Token returns the token registered at the address, or nil.
func (l *Ledger) Token(token launch.Address) (*Token, error) {
	raw, _, err := l.sm.Get(tokenKey(token))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var t Token
	if err := rlp.DecodeBytes(raw, &t); err != nil {
		return nil, errors.Wrap(err, "decode token")
	}
	t.Address = token
	return &t, nil
}

// Tokens lists every registered token ordered by address.
func (l *Ledger) Tokens() ([]*Token, error) {
	seen := make(map[launch.Address]struct{})

	iter := l.store.Iterate(kv.Range{Start: []byte{tokenPrefix}, Limit: []byte{tokenPrefix + 1}})
	for iter.Next() {
		seen[launch.BytesToAddress(iter.Key()[1:])] = struct{}{}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate tokens")
	}
	for k := range l.sm.Dirty() {
		if len(k) == 1+launch.AddressLength && k[0] == tokenPrefix {
			seen[launch.BytesToAddress([]byte(k[1:]))] = struct{}{}
		}
	}

	tokens := make([]*Token, 0, len(seen))
	for addr := range seen {
		t, err := l.Token(addr)
		if err != nil {
			return nil, err
		}
		if t != nil {
			tokens = append(tokens, t)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Address.String() < tokens[j].Address.String()
	})
	return tokens, nil
}

func (l *Ledger) mustToken(token launch.Address) (*Token, error) {
	t, err := l.Token(token)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, reverts.Newf(reverts.UnknownToken, "unknown token %v", token)
	}
	return t, nil
}

// Decimals returns the precision of the token.
func (l *Ledger) Decimals(token launch.Address) (uint8, error) {
	t, err := l.mustToken(token)
	if err != nil {
		return 0, err
	}
	return t.Decimals, nil
}

// TotalSupply returns the minted amount of the token.
func (l *Ledger) TotalSupply(token launch.Address) (*big.Int, error) {
	v, err := l.getAmount(supplyKey(token))
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// BalanceOf returns the balance of owner.
func (l *Ledger) BalanceOf(token, owner launch.Address) (*big.Int, error) {
	v, err := l.getAmount(balanceKey(token, owner))
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// Allowance returns the remaining amount spender may move out of owner's balance.
func (l *Ledger) Allowance(token, owner, spender launch.Address) (*big.Int, error) {
	v, err := l.getAmount(allowanceKey(token, owner, spender))
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// Mint creates amount new units credited to the recipient.
func (l *Ledger) Mint(token, to launch.Address, amount *big.Int) error {
	if _, err := l.mustToken(token); err != nil {
		return err
	}
	v, err := toAmount(amount)
	if err != nil {
		return err
	}
	if err := l.getAndSetAmount(supplyKey(token), func(supply *uint256.Int) error {
		if _, overflow := supply.AddOverflow(supply, v); overflow {
			return reverts.ErrOverflow
		}
		return nil
	}); err != nil {
		return err
	}
	return l.getAndSetAmount(balanceKey(token, to), func(bal *uint256.Int) error {
		bal.Add(bal, v)
		return nil
	})
}

// Transfer moves amount from one holder to another.
func (l *Ledger) Transfer(token, from, to launch.Address, amount *big.Int) error {
	if _, err := l.mustToken(token); err != nil {
		return err
	}
	v, err := toAmount(amount)
	if err != nil {
		return err
	}
	return l.transfer(token, from, to, v)
}

func (l *Ledger) transfer(token, from, to launch.Address, v *uint256.Int) error {
	if err := l.getAndSetAmount(balanceKey(token, from), func(bal *uint256.Int) error {
		if bal.Lt(v) {
			return reverts.ErrInsufficientBalance
		}
		bal.Sub(bal, v)
		return nil
	}); err != nil {
		return err
	}
	// supply bounds every balance, so the credit cannot overflow
	return l.getAndSetAmount(balanceKey(token, to), func(bal *uint256.Int) error {
		bal.Add(bal, v)
		return nil
	})
}

// Approve sets the allowance of spender over owner's tokens.
// The maximum 256-bit value is an unlimited allowance.
func (l *Ledger) Approve(token, owner, spender launch.Address, amount *big.Int) error {
	if _, err := l.mustToken(token); err != nil {
		return err
	}
	v, err := toAmount(amount)
	if err != nil {
		return err
	}
	l.setAmount(allowanceKey(token, owner, spender), v)
	return nil
}

// TransferFrom moves amount from owner to recipient on behalf of spender.
func (l *Ledger) TransferFrom(token, spender, from, to launch.Address, amount *big.Int) error {
	if _, err := l.mustToken(token); err != nil {
		return err
	}
	v, err := toAmount(amount)
	if err != nil {
		return err
	}
	key := allowanceKey(token, from, spender)
	allowance, err := l.getAmount(key)
	if err != nil {
		return err
	}
	if allowance.Lt(v) {
		return reverts.ErrInsufficientAllowance
	}
	bal, err := l.getAmount(balanceKey(token, from))
	if err != nil {
		return err
	}
	if bal.Lt(v) {
		return reverts.ErrInsufficientBalance
	}
	if !allowance.Eq(MaxAllowance) {
		l.setAmount(key, allowance.Sub(allowance, v))
	}
	return l.transfer(token, from, to, v)
}

// MaxAllowance is the unlimited allowance.
var MaxAllowance = new(uint256.Int).SetAllOne()
