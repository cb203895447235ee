// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/reverts"
)

// Positions of the numeric creation parameters.
const (
	ParamMinStake = iota
	ParamMaxCap
	ParamStart
	ParamEnd
	ParamCalculateStep
	ParamDistributeStep
	ParamSharePrice
	ParamMaxShares

	ParamCount
)

// Params are the numeric creation parameters in positional order.
type Params [ParamCount]*big.Int

// MaxReferralBps is 100% expressed in basis points.
const MaxReferralBps = 10000

// CapPolicy selects how maxAggregateCap bounds the staked amount.
type CapPolicy uint8

const (
	// CapAggregate bounds the normalized sum across all accepted tokens.
	CapAggregate CapPolicy = iota
	// CapPerToken bounds each token's normalized sum separately.
	CapPerToken
)

func (p CapPolicy) String() string {
	switch p {
	case CapAggregate:
		return "aggregate"
	case CapPerToken:
		return "per-token"
	}
	return fmt.Sprintf("CapPolicy(%d)", uint8(p))
}

func (p CapPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *CapPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "aggregate":
		*p = CapAggregate
	case "per-token":
		*p = CapPerToken
	default:
		return fmt.Errorf("unknown cap policy %q", string(text))
	}
	return nil
}

// Pricing selects how stakes are converted into shares.
type Pricing uint8

const (
	// PricingFlat converts every stake at sharePrice.
	PricingFlat Pricing = iota
	// PricingEarlyBird discounts later stakes by the stake already ahead of them.
	PricingEarlyBird
)

func (p Pricing) String() string {
	switch p {
	case PricingFlat:
		return "flat"
	case PricingEarlyBird:
		return "early-bird"
	}
	return fmt.Sprintf("Pricing(%d)", uint8(p))
}

func (p Pricing) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pricing) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "flat":
		*p = PricingFlat
	case "early-bird":
		*p = PricingEarlyBird
	default:
		return fmt.Errorf("unknown pricing %q", string(text))
	}
	return nil
}

// Config is the immutable configuration of a pool. Only End moves, by extension.
type Config struct {
	Sponsor        launch.Address
	Tokens         *TokenSet
	MinStake       *big.Int
	MaxCap         *big.Int
	Start          uint64
	End            uint64
	CalculateStep  uint64
	DistributeStep uint64
	SharePrice     *big.Int
	MaxShares      *big.Int // zero for unlimited
	Metadata       string
	SharesToken    launch.Address
	SharesDecimals uint8
	Referral       launch.Address
	ReferralBps    uint16
	CapPolicy      CapPolicy
	Pricing        Pricing
	Abortable      bool
}

// Option customizes a pool configuration at creation.
type Option func(*Config)

// WithCapPolicy sets the cap policy.
func WithCapPolicy(p CapPolicy) Option {
	return func(c *Config) { c.CapPolicy = p }
}

// WithPricing sets the pricing.
func WithPricing(p Pricing) Option {
	return func(c *Config) { c.Pricing = p }
}

// WithAbortable enables or disables the sponsor abort path.
func WithAbortable(abortable bool) Option {
	return func(c *Config) { c.Abortable = abortable }
}

// ApplyParams fills the numeric fields from positional params.
// A zero start is replaced by now.
func (c *Config) ApplyParams(params Params, now uint64) error {
	for i, p := range params {
		if p == nil || p.Sign() < 0 {
			return reverts.Newf(reverts.InvalidConfiguration, "invalid param %d", i)
		}
	}
	u64 := func(i int) (uint64, error) {
		if !params[i].IsUint64() {
			return 0, reverts.Newf(reverts.InvalidConfiguration, "param %d out of range", i)
		}
		return params[i].Uint64(), nil
	}

	var err error
	c.MinStake = new(big.Int).Set(params[ParamMinStake])
	c.MaxCap = new(big.Int).Set(params[ParamMaxCap])
	if c.Start, err = u64(ParamStart); err != nil {
		return err
	}
	if c.End, err = u64(ParamEnd); err != nil {
		return err
	}
	if c.CalculateStep, err = u64(ParamCalculateStep); err != nil {
		return err
	}
	if c.DistributeStep, err = u64(ParamDistributeStep); err != nil {
		return err
	}
	c.SharePrice = new(big.Int).Set(params[ParamSharePrice])
	c.MaxShares = new(big.Int).Set(params[ParamMaxShares])

	if c.Start == 0 {
		c.Start = now
	}
	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	invalid := func(msg string) error {
		return reverts.New(reverts.InvalidConfiguration, msg)
	}
	switch {
	case c.Tokens == nil || c.Tokens.Len() == 0:
		return invalid("no accepted tokens")
	case c.SharesToken.IsZero():
		return invalid("shares token missing")
	case c.Tokens.Has(c.SharesToken):
		return invalid("shares token cannot be staked")
	case c.MinStake == nil || c.MinStake.Sign() < 0:
		return invalid("invalid minimum stake")
	case c.MaxCap == nil || c.MaxCap.Sign() <= 0:
		return invalid("maximum cap must be positive")
	case c.End <= c.Start:
		return invalid("end must be after start")
	case c.CalculateStep == 0 || c.DistributeStep == 0:
		return invalid("step size must be positive")
	case c.SharePrice == nil || c.SharePrice.Sign() <= 0:
		return invalid("share price must be positive")
	case c.MaxShares == nil || c.MaxShares.Sign() < 0:
		return invalid("invalid maximum shares")
	case c.ReferralBps > MaxReferralBps:
		return invalid("referral cut above 100%")
	case c.CapPolicy > CapPerToken:
		return invalid("unknown cap policy")
	case c.Pricing > PricingEarlyBird:
		return invalid("unknown pricing")
	}
	return nil
}

// Params returns the positional params view of the configuration.
func (c *Config) Params() Params {
	return Params{
		new(big.Int).Set(c.MinStake),
		new(big.Int).Set(c.MaxCap),
		new(big.Int).SetUint64(c.Start),
		new(big.Int).SetUint64(c.End),
		new(big.Int).SetUint64(c.CalculateStep),
		new(big.Int).SetUint64(c.DistributeStep),
		new(big.Int).Set(c.SharePrice),
		new(big.Int).Set(c.MaxShares),
	}
}

// Hash returns the keccak digest of the RLP encoded configuration.
func (c *Config) Hash() launch.Bytes32 {
	return launch.Keccak256Fn(func(w io.Writer) {
		rlp.Encode(w, c)
	})
}

func (c *Config) copy() *Config {
	cpy := *c
	return &cpy
}
