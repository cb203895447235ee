// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/lvldb"
	"github.com/launchpool/launchpool/reverts"
)

var (
	tkn   = launch.BytesToAddress([]byte("tkn"))
	alice = launch.BytesToAddress([]byte("alice"))
	bob   = launch.BytesToAddress([]byte("bob"))
	pool  = launch.BytesToAddress([]byte("pool"))
)

func newLedger(t *testing.T) (*Ledger, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestRegisterToken(t *testing.T) {
	l, _ := newLedger(t)

	require.NoError(t, l.RegisterToken(tkn, "TKN", 6))
	assert.True(t, reverts.KindOf(l.RegisterToken(tkn, "TKN", 6)) == reverts.InvalidConfiguration)
	assert.True(t, reverts.KindOf(l.RegisterToken(launch.Address{}, "ZERO", 18)) == reverts.InvalidConfiguration)

	dec, err := l.Decimals(tkn)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), dec)

	_, err = l.Decimals(bob)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)

	tokens, err := l.Tokens()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "TKN", tokens[0].Symbol)
	assert.Equal(t, tkn, tokens[0].Address)
}

func TestTransfer(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.RegisterToken(tkn, "TKN", 18))
	require.NoError(t, l.Mint(tkn, alice, big.NewInt(100)))

	assert.ErrorIs(t, l.Transfer(tkn, alice, bob, big.NewInt(101)), reverts.ErrInsufficientBalance)
	assert.ErrorIs(t, l.Transfer(tkn, alice, bob, big.NewInt(-1)), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, l.Transfer(tkn, alice, bob, new(big.Int).Lsh(big.NewInt(1), 256)), reverts.ErrOverflow)

	require.NoError(t, l.Transfer(tkn, alice, bob, big.NewInt(40)))
	require.NoError(t, l.Transfer(tkn, bob, bob, big.NewInt(40)))

	bal, _ := l.BalanceOf(tkn, alice)
	assert.Equal(t, big.NewInt(60), bal)
	bal, _ = l.BalanceOf(tkn, bob)
	assert.Equal(t, big.NewInt(40), bal)

	supply, _ := l.TotalSupply(tkn)
	assert.Equal(t, big.NewInt(100), supply)
}

func TestMintOverflow(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.RegisterToken(tkn, "TKN", 18))
	maxAmount := MaxAllowance.ToBig()
	require.NoError(t, l.Mint(tkn, alice, maxAmount))
	assert.ErrorIs(t, l.Mint(tkn, bob, big.NewInt(1)), reverts.ErrOverflow)

	bal, _ := l.BalanceOf(tkn, bob)
	assert.Equal(t, 0, bal.Sign())
}

func TestTransferFrom(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.RegisterToken(tkn, "TKN", 18))
	require.NoError(t, l.Mint(tkn, alice, big.NewInt(100)))

	assert.ErrorIs(t, l.TransferFrom(tkn, pool, alice, pool, big.NewInt(1)), reverts.ErrInsufficientAllowance)

	require.NoError(t, l.Approve(tkn, alice, pool, big.NewInt(500)))
	assert.ErrorIs(t, l.TransferFrom(tkn, pool, alice, pool, big.NewInt(101)), reverts.ErrInsufficientBalance)

	allowance, _ := l.Allowance(tkn, alice, pool)
	assert.Equal(t, big.NewInt(500), allowance, "failed transfer keeps allowance")

	require.NoError(t, l.TransferFrom(tkn, pool, alice, pool, big.NewInt(30)))
	allowance, _ = l.Allowance(tkn, alice, pool)
	assert.Equal(t, big.NewInt(470), allowance)

	require.NoError(t, l.Approve(tkn, alice, pool, MaxAllowance.ToBig()))
	require.NoError(t, l.TransferFrom(tkn, pool, alice, pool, big.NewInt(70)))
	allowance, _ = l.Allowance(tkn, alice, pool)
	assert.Equal(t, MaxAllowance.ToBig(), allowance)

	bal, _ := l.BalanceOf(tkn, pool)
	assert.Equal(t, big.NewInt(100), bal)
}

func TestSnapshotRevertCommit(t *testing.T) {
	l, db := newLedger(t)
	require.NoError(t, l.RegisterToken(tkn, "TKN", 18))
	require.NoError(t, l.Mint(tkn, alice, big.NewInt(100)))

	rev := l.Snapshot()
	require.NoError(t, l.Transfer(tkn, alice, bob, big.NewInt(50)))
	l.Revert(rev)

	bal, _ := l.BalanceOf(tkn, bob)
	assert.Equal(t, 0, bal.Sign())

	require.NoError(t, l.Commit())

	reopened := New(db)
	bal, err := reopened.BalanceOf(tkn, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)

	tokens, err := reopened.Tokens()
	require.NoError(t, err)
	assert.Len(t, tokens, 1)

	// reverting past the base level is a no-op
	require.NoError(t, l.Transfer(tkn, alice, bob, big.NewInt(1)))
	l.Revert(0)
	bal, _ = l.BalanceOf(tkn, bob)
	assert.Equal(t, big.NewInt(1), bal)
}
