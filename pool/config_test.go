// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/reverts"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		reason string
	}{
		{"ok", func(c *Config) {}, ""},
		{"no tokens", func(c *Config) { c.Tokens = NewTokenSet() }, "no accepted tokens"},
		{"no shares token", func(c *Config) { c.SharesToken = launch.Address{} }, "shares token missing"},
		{"shares accepted", func(c *Config) { c.SharesToken = dai }, "shares token cannot be staked"},
		{"zero cap", func(c *Config) { c.MaxCap = new(big.Int) }, "maximum cap must be positive"},
		{"end before start", func(c *Config) { c.End = c.Start }, "end must be after start"},
		{"zero step", func(c *Config) { c.DistributeStep = 0 }, "step size must be positive"},
		{"zero price", func(c *Config) { c.SharePrice = new(big.Int) }, "share price must be positive"},
		{"referral", func(c *Config) { c.ReferralBps = MaxReferralBps + 1 }, "referral cut above 100%"},
		{"cap policy", func(c *Config) { c.CapPolicy = 7 }, "unknown cap policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(t, referenceParams(2000), 1000)
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, reverts.ErrInvalidConfiguration)
			assert.EqualError(t, err, tt.reason)
		})
	}
}

func TestApplyParams(t *testing.T) {
	var cfg Config
	params := referenceParams(2000)
	require.NoError(t, cfg.ApplyParams(params, 1000))
	assert.Equal(t, uint64(1000), cfg.Start, "zero start means now")
	assert.Equal(t, uint64(2000), cfg.End)
	assert.Equal(t, uint64(10), cfg.CalculateStep)
	assert.Equal(t, uint64(100), cfg.DistributeStep)

	back := cfg.Params()
	assert.Equal(t, "1000", back[ParamStart].String())
	assert.Equal(t, params[ParamSharePrice].String(), back[ParamSharePrice].String())

	params[ParamMaxShares] = big.NewInt(-1)
	assert.ErrorIs(t, cfg.ApplyParams(params, 1000), reverts.ErrInvalidConfiguration)

	params = referenceParams(2000)
	params[ParamEnd] = nil
	assert.ErrorIs(t, cfg.ApplyParams(params, 1000), reverts.ErrInvalidConfiguration)

	params = referenceParams(2000)
	params[ParamCalculateStep] = new(big.Int).Lsh(big.NewInt(1), 64)
	assert.ErrorIs(t, cfg.ApplyParams(params, 1000), reverts.ErrInvalidConfiguration)
}

func TestConfigHash(t *testing.T) {
	a := newConfig(t, referenceParams(2000), 1000)
	b := newConfig(t, referenceParams(2000), 1000)
	assert.Equal(t, a.Hash(), b.Hash())

	c := newConfig(t, referenceParams(2000), 1000, WithPricing(PricingEarlyBird))
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestTokenSet(t *testing.T) {
	s := NewTokenSet()
	assert.True(t, s.Add(usdt, 6))
	assert.True(t, s.Add(dai, 18))
	assert.False(t, s.Add(usdt, 6), "duplicate")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []launch.Address{usdt, dai}, s.Addresses())

	addr, dec, ok := s.At(1)
	assert.True(t, ok)
	assert.Equal(t, dai, addr)
	assert.Equal(t, uint8(18), dec)
	_, _, ok = s.At(2)
	assert.False(t, ok)

	data, err := rlp.EncodeToBytes(s)
	require.NoError(t, err)
	var dec2 TokenSet
	require.NoError(t, rlp.DecodeBytes(data, &dec2))
	assert.Equal(t, s.Addresses(), dec2.Addresses())
	d, ok := dec2.Decimals(usdt)
	assert.True(t, ok)
	assert.Equal(t, uint8(6), d)
}

func TestPolicyText(t *testing.T) {
	var p CapPolicy
	require.NoError(t, p.UnmarshalText([]byte("per-token")))
	assert.Equal(t, CapPerToken, p)
	assert.Error(t, p.UnmarshalText([]byte("bogus")))

	var pr Pricing
	require.NoError(t, pr.UnmarshalText([]byte("early-bird")))
	assert.Equal(t, "early-bird", pr.String())

	var s Stage
	require.NoError(t, s.UnmarshalText([]byte("Calculated")))
	assert.Equal(t, Calculated, s)
	assert.Equal(t, "Stage(9)", Stage(9).String())
}

func TestStageTransitions(t *testing.T) {
	assert.True(t, CanTransition(Pending, Staking))
	assert.True(t, CanTransition(Staking, Locked))
	assert.True(t, CanTransition(Staking, Aborted))
	assert.True(t, CanTransition(Locked, Calculated))
	assert.True(t, CanTransition(Calculated, Distributed))
	assert.False(t, CanTransition(Locked, Staking))
	assert.False(t, CanTransition(Aborted, Locked))
	assert.True(t, Distributed.Final())
	assert.True(t, Aborted.Final())
	assert.False(t, Staking.Final())
}
