// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
	"github.com/launchpool/launchpool/stakes"
)

type Token struct {
	Address  launch.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
}

// Pool is the public view of a pool.
type Pool struct {
	Address           launch.Address           `json:"address"`
	Sponsor           launch.Address           `json:"sponsor"`
	Metadata          string                   `json:"metadata"`
	Tokens            []Token                  `json:"tokens"`
	SharesToken       launch.Address           `json:"sharesToken"`
	SharesDecimals    uint8                    `json:"sharesDecimals"`
	Referral          launch.Address           `json:"referral"`
	ReferralBps       uint16                   `json:"referralBps"`
	CapPolicy         pool.CapPolicy           `json:"capPolicy"`
	Pricing           pool.Pricing             `json:"pricing"`
	Abortable         bool                     `json:"abortable"`
	Stage             pool.Stage               `json:"stage"`
	GeneralInfos      [8]*math.HexOrDecimal256 `json:"generalInfos"`
	StakeCount        uint64                   `json:"stakeCount"`
	TotalShares       *math.HexOrDecimal256    `json:"totalShares"`
	CalculatedStake   *math.HexOrDecimal256    `json:"calculatedStake"`
	CalculateCursor   uint64                   `json:"calculateCursor"`
	DistributeCursor  uint64                   `json:"distributeCursor"`
	DistributedShares *math.HexOrDecimal256    `json:"distributedShares"`
}

// Stake is a stake entry.
type Stake struct {
	Index      uint64                `json:"index"`
	Owner      launch.Address        `json:"owner"`
	Token      launch.Address        `json:"token"`
	Amount     *math.HexOrDecimal256 `json:"amount"`
	Normalized *math.HexOrDecimal256 `json:"normalized"`
	Shares     *math.HexOrDecimal256 `json:"shares"`
}

type CreatePool struct {
	Caller      launch.Address           `json:"caller"`
	Tokens      []launch.Address         `json:"tokens"`
	Params      [8]*math.HexOrDecimal256 `json:"params"`
	Metadata    string                   `json:"metadata"`
	SharesToken launch.Address           `json:"sharesToken"`
	ReferralBps uint16                   `json:"referralBps"`
	Referral    launch.Address           `json:"referral"`
	CapPolicy   *pool.CapPolicy          `json:"capPolicy,omitempty"`
	Pricing     *pool.Pricing            `json:"pricing,omitempty"`
	Abortable   *bool                    `json:"abortable,omitempty"`
}

// Call is the body of a sponsor call without arguments.
type Call struct {
	Caller launch.Address `json:"caller"`
}

type StakeCall struct {
	Caller launch.Address        `json:"caller"`
	Token  launch.Address        `json:"token"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type UnstakeCall struct {
	Caller launch.Address `json:"caller"`
	Index  uint64         `json:"index"`
}

type ExtendCall struct {
	Caller launch.Address `json:"caller"`
	Delta  uint64         `json:"delta"`
}

type WithdrawCall struct {
	Caller launch.Address `json:"caller"`
	Token  launch.Address `json:"token"`
}

type StakeResult struct {
	Index uint64 `json:"index"`
}

type SharesResult struct {
	Shares *math.HexOrDecimal256 `json:"shares"`
}

type WithdrawResult struct {
	SponsorAmount  *math.HexOrDecimal256 `json:"sponsorAmount"`
	ReferralAmount *math.HexOrDecimal256 `json:"referralAmount"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

func convertPool(p *pool.Pool, now uint64) *Pool {
	cfg := p.Config()
	state := p.State(now)

	tokens := make([]Token, 0, cfg.Tokens.Len())
	for i := 0; i < cfg.Tokens.Len(); i++ {
		addr, decimals, _ := cfg.Tokens.At(i)
		tokens = append(tokens, Token{addr, decimals})
	}
	var infos [8]*math.HexOrDecimal256
	for i, v := range p.GeneralInfos(now) {
		infos[i] = (*math.HexOrDecimal256)(v)
	}
	return &Pool{
		Address:           p.Address(),
		Sponsor:           cfg.Sponsor,
		Metadata:          cfg.Metadata,
		Tokens:            tokens,
		SharesToken:       cfg.SharesToken,
		SharesDecimals:    cfg.SharesDecimals,
		Referral:          cfg.Referral,
		ReferralBps:       cfg.ReferralBps,
		CapPolicy:         cfg.CapPolicy,
		Pricing:           cfg.Pricing,
		Abortable:         cfg.Abortable,
		Stage:             state.Stage,
		GeneralInfos:      infos,
		StakeCount:        p.StakeCount(),
		TotalShares:       (*math.HexOrDecimal256)(state.TotalShares),
		CalculatedStake:   (*math.HexOrDecimal256)(state.CalculatedStake),
		CalculateCursor:   state.CalculateCursor,
		DistributeCursor:  state.DistributeCursor,
		DistributedShares: (*math.HexOrDecimal256)(state.DistributedShares),
	}
}

func convertStake(e *stakes.Entry) *Stake {
	return &Stake{
		Index:      e.Index,
		Owner:      e.Owner,
		Token:      e.Token,
		Amount:     hexOrDecimal(e.Amount),
		Normalized: hexOrDecimal(e.Normalized),
		Shares:     hexOrDecimal(e.Shares),
	}
}
