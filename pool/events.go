// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/launchpool/launchpool/launch"
)

// Event is a record emitted by a successful pool operation.
type Event interface {
	Name() string
}

// Event names.
const (
	EventStaked            = "Staked"
	EventUnstaked          = "Unstaked"
	EventEndExtended       = "EndExtended"
	EventStageChanged      = "StageChanged"
	EventSharesCalculated  = "SharesCalculated"
	EventSharesDistributed = "SharesDistributed"
	EventWithdrawn         = "Withdrawn"
)

type Staked struct {
	Staker launch.Address `json:"staker"`
	Token  launch.Address `json:"token"`
	Amount *big.Int       `json:"amount"`
	Index  uint64         `json:"index"`
}

type Unstaked struct {
	Staker launch.Address `json:"staker"`
	Token  launch.Address `json:"token"`
	Amount *big.Int       `json:"amount"`
	Index  uint64         `json:"index"`
}

type EndExtended struct {
	OldEnd uint64 `json:"oldEnd"`
	NewEnd uint64 `json:"newEnd"`
}

type StageChanged struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

// SharesCalculated reports one calculation chunk over entries [From, To).
type SharesCalculated struct {
	From      uint64   `json:"from"`
	To        uint64   `json:"to"`
	Processed uint64   `json:"processed"`
	Total     *big.Int `json:"total"`
}

type SharesDistributed struct {
	Index  uint64         `json:"index"`
	Owner  launch.Address `json:"owner"`
	Amount *big.Int       `json:"amount"`
}

type Withdrawn struct {
	Token          launch.Address `json:"token"`
	SponsorAmount  *big.Int       `json:"sponsorAmount"`
	Referral       launch.Address `json:"referral"`
	ReferralAmount *big.Int       `json:"referralAmount"`
}

func (*Staked) Name() string            { return EventStaked }
func (*Unstaked) Name() string          { return EventUnstaked }
func (*EndExtended) Name() string       { return EventEndExtended }
func (*StageChanged) Name() string      { return EventStageChanged }
func (*SharesCalculated) Name() string  { return EventSharesCalculated }
func (*SharesDistributed) Name() string { return EventSharesDistributed }
func (*Withdrawn) Name() string         { return EventWithdrawn }
