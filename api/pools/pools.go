// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/api/restutil"
	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
	"github.com/launchpool/launchpool/reverts"
)

// DefaultListLimit bounds a pool listing without an explicit limit.
var DefaultListLimit uint64 = 100

type Pools struct {
	host *host.Host
}

func New(h *host.Host) *Pools {
	return &Pools{h}
}

// view runs fn on the pool, answering 404 for unknown pools.
func (p *Pools) view(addr launch.Address, fn func(*pool.Pool, uint64) error) error {
	return p.host.View(func(c *host.Call) error {
		pl, err := c.Factory.Pool(addr)
		if err != nil {
			if errors.Is(err, reverts.ErrNoSuchPool) {
				return restutil.NotFound(err)
			}
			return err
		}
		return fn(pl, c.Now)
	})
}

func (p *Pools) handleListPools(w http.ResponseWriter, req *http.Request) error {
	offset, err := restutil.Uint64Query(req, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := restutil.Uint64Query(req, "limit", DefaultListLimit)
	if err != nil {
		return err
	}
	if limit > DefaultListLimit {
		return restutil.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", DefaultListLimit))
	}
	var list []launch.Address
	if err := p.host.View(func(c *host.Call) (err error) {
		list, err = c.Factory.Pools(offset, limit)
		return
	}); err != nil {
		return err
	}
	if list == nil {
		list = []launch.Address{}
	}
	return restutil.WriteJSON(w, list)
}

func (p *Pools) handleCreatePool(w http.ResponseWriter, req *http.Request) error {
	var body CreatePool
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	var params pool.Params
	for i, v := range body.Params {
		if v == nil {
			return restutil.ErrFieldRequired(fmt.Sprintf("params[%d]", i))
		}
		params[i] = (*big.Int)(v)
	}
	var opts []pool.Option
	if body.CapPolicy != nil {
		opts = append(opts, pool.WithCapPolicy(*body.CapPolicy))
	}
	if body.Pricing != nil {
		opts = append(opts, pool.WithPricing(*body.Pricing))
	}
	if body.Abortable != nil {
		opts = append(opts, pool.WithAbortable(*body.Abortable))
	}

	rec, err := p.host.CreateLaunchPool(req.Context(), body.Caller, &host.CreateArgs{
		Tokens:      body.Tokens,
		Params:      params,
		Metadata:    body.Metadata,
		SharesToken: body.SharesToken,
		ReferralBps: body.ReferralBps,
		Referral:    body.Referral,
		Options:     opts,
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, rec)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var res *Pool
	if err := p.view(addr, func(pl *pool.Pool, now uint64) error {
		res = convertPool(pl, now)
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, res)
}

func (p *Pools) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var owner *launch.Address
	if s := req.URL.Query().Get("owner"); s != "" {
		if owner, err = launch.ParseAddress(s); err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "owner"))
		}
	}

	res := []*Stake{}
	if err := p.view(addr, func(pl *pool.Pool, _ uint64) error {
		if owner != nil {
			for _, e := range pl.StakesOf(*owner) {
				res = append(res, convertStake(e))
			}
			return nil
		}
		for i := uint64(0); i < pl.StakeCount(); i++ {
			e, _ := pl.StakeAt(i)
			res = append(res, convertStake(e))
		}
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, res)
}

func (p *Pools) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	var res *Stake
	if err := p.view(addr, func(pl *pool.Pool, _ uint64) error {
		e, ok := pl.StakeAt(index)
		if !ok {
			return restutil.NotFound(reverts.ErrNoSuchStake)
		}
		res = convertStake(e)
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, res)
}

func (p *Pools) handleGetShares(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	amount, ok := new(big.Int).SetString(req.URL.Query().Get("amount"), 0)
	if !ok {
		return restutil.BadRequest(errors.New("amount: invalid number"))
	}
	tokenIndex, err := restutil.Uint64Query(req, "tokenIndex", 0)
	if err != nil {
		return err
	}
	var shares *big.Int
	if err := p.view(addr, func(pl *pool.Pool, _ uint64) (err error) {
		shares, err = pl.GetStakeShares(amount, int(tokenIndex))
		return
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &SharesResult{Shares: hexOrDecimal(shares)})
}

func (p *Pools) handleStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body StakeCall
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.ErrFieldRequired("amount")
	}
	index, err := p.host.Stake(req.Context(), body.Caller, addr, body.Token, (*big.Int)(body.Amount))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &StakeResult{Index: index})
}

func (p *Pools) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body UnstakeCall
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.host.Unstake(req.Context(), body.Caller, addr, body.Index); err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{})
}

func (p *Pools) handleExtend(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body ExtendCall
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.host.ExtendEndTimestamp(req.Context(), body.Caller, addr, body.Delta); err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{})
}

// sponsorCall handles the calls that only take the caller.
func (p *Pools) sponsorCall(fn func(h *host.Host, req *http.Request, caller, addr launch.Address) (any, error)) restutil.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		addr, err := restutil.AddressVar(req, "address")
		if err != nil {
			return err
		}
		var body Call
		if err := restutil.ParseJSON(req.Body, &body); err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "body"))
		}
		res, err := fn(p.host, req, body.Caller, addr)
		if err != nil {
			return err
		}
		if res == nil {
			res = restutil.M{}
		}
		return restutil.WriteJSON(w, res)
	}
}

func handleLock(h *host.Host, req *http.Request, caller, addr launch.Address) (any, error) {
	return nil, h.Lock(req.Context(), caller, addr)
}

func handleAbort(h *host.Host, req *http.Request, caller, addr launch.Address) (any, error) {
	return nil, h.Abort(req.Context(), caller, addr)
}

func handleCalculate(h *host.Host, req *http.Request, caller, addr launch.Address) (any, error) {
	return h.CalculateSharesChunk(req.Context(), caller, addr)
}

func handleDistribute(h *host.Host, req *http.Request, caller, addr launch.Address) (any, error) {
	return h.DistributeSharesChunk(req.Context(), caller, addr)
}

func (p *Pools) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body WithdrawCall
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := p.host.WithdrawStakes(req.Context(), body.Caller, addr, body.Token)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &WithdrawResult{
		SponsorAmount:  hexOrDecimal(res.SponsorAmount),
		ReferralAmount: hexOrDecimal(res.ReferralAmount),
	})
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleListPools))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleCreatePool))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /pools/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{address}/stakes").
		Methods(http.MethodGet).
		Name("GET /pools/{address}/stakes").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetStakes))
	sub.Path("/{address}/stakes/{index:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /pools/{address}/stakes/{index}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetStake))
	sub.Path("/{address}/shares").
		Methods(http.MethodGet).
		Name("GET /pools/{address}/shares").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetShares))

	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/stake").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleStake))
	sub.Path("/{address}/unstake").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/unstake").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleUnstake))
	sub.Path("/{address}/extend").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/extend").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleExtend))
	sub.Path("/{address}/lock").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/lock").
		HandlerFunc(restutil.WrapHandlerFunc(p.sponsorCall(handleLock)))
	sub.Path("/{address}/abort").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/abort").
		HandlerFunc(restutil.WrapHandlerFunc(p.sponsorCall(handleAbort)))
	sub.Path("/{address}/calculate").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/calculate").
		HandlerFunc(restutil.WrapHandlerFunc(p.sponsorCall(handleCalculate)))
	sub.Path("/{address}/distribute").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/distribute").
		HandlerFunc(restutil.WrapHandlerFunc(p.sponsorCall(handleDistribute)))
	sub.Path("/{address}/withdraw").
		Methods(http.MethodPost).
		Name("POST /pools/{address}/withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleWithdraw))
}
