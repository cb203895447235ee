// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/api/restutil"
	"github.com/launchpool/launchpool/host"
	"github.com/launchpool/launchpool/ledger"
)

type Tokens struct {
	host *host.Host
	mint bool
}

// New creates the token endpoints. Registration and minting answer 403 unless mint is set.
func New(h *host.Host, mint bool) *Tokens {
	return &Tokens{h, mint}
}

func (t *Tokens) handleListTokens(w http.ResponseWriter, _ *http.Request) error {
	var list []*ledger.Token
	if err := t.host.View(func(c *host.Call) (err error) {
		list, err = c.Ledger.Tokens()
		return
	}); err != nil {
		return err
	}
	res := make([]*Token, 0, len(list))
	for _, tk := range list {
		res = append(res, &Token{Address: tk.Address, Symbol: tk.Symbol, Decimals: tk.Decimals})
	}
	return restutil.WriteJSON(w, res)
}

func (t *Tokens) handleRegisterToken(w http.ResponseWriter, req *http.Request) error {
	var body Register
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := t.host.RegisterToken(req.Context(), body.Address, body.Symbol, body.Decimals); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Token{Address: body.Address, Symbol: body.Symbol, Decimals: body.Decimals})
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var res *Token
	if err := t.host.View(func(c *host.Call) error {
		tk, err := c.Ledger.Token(addr)
		if err != nil {
			return err
		}
		if tk == nil {
			return restutil.NotFound(errors.New("token not found"))
		}
		supply, err := c.Ledger.TotalSupply(addr)
		if err != nil {
			return err
		}
		res = &Token{
			Address:     tk.Address,
			Symbol:      tk.Symbol,
			Decimals:    tk.Decimals,
			TotalSupply: (*math.HexOrDecimal256)(supply),
		}
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, res)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := restutil.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	var bal *big.Int
	if err := t.host.View(func(c *host.Call) (err error) {
		bal, err = c.Ledger.BalanceOf(addr, owner)
		return
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Amount{(*math.HexOrDecimal256)(bal)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := restutil.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := restutil.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	var allowance *big.Int
	if err := t.host.View(func(c *host.Call) (err error) {
		allowance, err = c.Ledger.Allowance(addr, owner, spender)
		return
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Amount{(*math.HexOrDecimal256)(allowance)})
}

func (t *Tokens) handleMint(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body Mint
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.ErrFieldRequired("amount")
	}
	if err := t.host.Mint(req.Context(), addr, body.To, (*big.Int)(body.Amount)); err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body Transfer
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.ErrFieldRequired("amount")
	}
	if err := t.host.Transfer(req.Context(), body.Caller, addr, body.To, (*big.Int)(body.Amount)); err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body Approve
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.ErrFieldRequired("amount")
	}
	if err := t.host.Approve(req.Context(), body.Caller, addr, body.Spender, (*big.Int)(body.Amount)); err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /tokens").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleListTokens))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{address}/balances/{owner}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/balances/{owner}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{address}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/allowances/{owner}/{spender}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{address}/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/transfer").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleTransfer))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/approve").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleApprove))

	register, mint := t.handleRegisterToken, t.handleMint
	if !t.mint {
		register, mint = handleMintDisabled, handleMintDisabled
	}
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /tokens").
		HandlerFunc(restutil.WrapHandlerFunc(register))
	sub.Path("/{address}/mint").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/mint").
		HandlerFunc(restutil.WrapHandlerFunc(mint))
}

var errMintDisabled = errors.New("token minting is disabled")

func handleMintDisabled(_ http.ResponseWriter, _ *http.Request) error {
	return restutil.Forbidden(errMintDisabled)
}
