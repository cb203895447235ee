// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/stakes"
)

// Positions in the GeneralInfos tuple.
const (
	InfoStart = iota
	InfoEnd
	InfoMinStake
	InfoMaxCap
	InfoTotalStaked
	InfoSharePrice
	InfoMaxShares
	InfoStage
)

// GeneralInfos returns
// [startTimestamp, endTimestamp, minStake, maxAggregateCap, totalStaked, sharePrice, maxShares, stage].
func (p *Pool) GeneralInfos(now uint64) [8]*big.Int {
	return [8]*big.Int{
		InfoStart:       new(big.Int).SetUint64(p.cfg.Start),
		InfoEnd:         new(big.Int).SetUint64(p.cfg.End),
		InfoMinStake:    new(big.Int).Set(p.cfg.MinStake),
		InfoMaxCap:      new(big.Int).Set(p.cfg.MaxCap),
		InfoTotalStaked: p.stakes.Total(),
		InfoSharePrice:  new(big.Int).Set(p.cfg.SharePrice),
		InfoMaxShares:   new(big.Int).Set(p.cfg.MaxShares),
		InfoStage:       big.NewInt(int64(p.Stage(now))),
	}
}

func (p *Pool) Metadata() string { return p.cfg.Metadata }

func (p *Pool) SharesAddress() launch.Address { return p.cfg.SharesToken }

func (p *Pool) Sponsor() launch.Address { return p.cfg.Sponsor }

// TokenList returns the accepted tokens in creation order.
func (p *Pool) TokenList() []launch.Address {
	return p.cfg.Tokens.Addresses()
}

// StakesList returns normalized stake amounts in index order, zero for withdrawn entries.
func (p *Pool) StakesList() []*big.Int {
	return p.stakes.Normalized()
}

// StakeAt returns the entry at index.
func (p *Pool) StakeAt(index uint64) (*stakes.Entry, bool) {
	return p.stakes.Get(index)
}

// StakesOf returns every entry owned by owner.
func (p *Pool) StakesOf(owner launch.Address) []*stakes.Entry {
	return p.stakes.Of(owner)
}

// StakeCount returns the number of entries ever created.
func (p *Pool) StakeCount() uint64 {
	return p.stakes.Len()
}

// TotalStaked returns the normalized live stake, overall and per accepted token.
func (p *Pool) TotalStaked() (*big.Int, map[launch.Address]*big.Int) {
	perToken := make(map[launch.Address]*big.Int, p.cfg.Tokens.Len())
	for _, token := range p.cfg.Tokens.Addresses() {
		perToken[token] = p.stakes.TotalOf(token)
	}
	return p.stakes.Total(), perToken
}
