// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/reverts"
)

// Withdrawal is the split of a sponsor withdrawal.
type Withdrawal struct {
	SponsorAmount  *big.Int `json:"sponsorAmount"`
	ReferralAmount *big.Int `json:"referralAmount"`
}

// WithdrawStakes sends the pool's whole balance of token to the sponsor,
// minus the referral cut. token is an accepted token or the shares token.
func (p *Pool) WithdrawStakes(env *Env, token launch.Address) (w *Withdrawal, err error) {
	defer func() { observeOp("withdraw", err) }()

	if err := p.onlySponsor(env); err != nil {
		return nil, err
	}
	if p.Stage(env.Now) != Distributed {
		return nil, reverts.ErrWrongStage
	}
	if !p.cfg.Tokens.Has(token) && token != p.cfg.SharesToken {
		return nil, reverts.ErrUnknownToken
	}

	balance, err := env.Ledger.BalanceOf(token, p.addr)
	if err != nil {
		return nil, err
	}
	w = &Withdrawal{SponsorAmount: balance, ReferralAmount: new(big.Int)}
	if balance.Sign() == 0 {
		return w, nil
	}

	if !p.cfg.Referral.IsZero() && p.cfg.ReferralBps > 0 {
		w.ReferralAmount.Mul(balance, big.NewInt(int64(p.cfg.ReferralBps)))
		w.ReferralAmount.Quo(w.ReferralAmount, big.NewInt(MaxReferralBps))
		w.SponsorAmount = new(big.Int).Sub(balance, w.ReferralAmount)
	}
	if w.ReferralAmount.Sign() > 0 {
		if err := env.Ledger.Transfer(token, p.addr, p.cfg.Referral, w.ReferralAmount); err != nil {
			return nil, err
		}
	}
	if err := env.Ledger.Transfer(token, p.addr, p.cfg.Sponsor, w.SponsorAmount); err != nil {
		return nil, err
	}

	env.emit(&Withdrawn{
		Token:          token,
		SponsorAmount:  w.SponsorAmount,
		Referral:       p.cfg.Referral,
		ReferralAmount: w.ReferralAmount,
	})
	logger.Debug("withdrawn", "pool", p.addr, "token", token, "amount", balance)
	return w, nil
}
