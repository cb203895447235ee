// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides an HTTP client for the launch pool node API.
// Reverted calls come back as *reverts.ErrRevert, so callers can match them
// with reverts.Is just like in-process calls.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/launchpool/launchpool/api/events"
	"github.com/launchpool/launchpool/api/pools"
	"github.com/launchpool/launchpool/api/tokens"
	"github.com/launchpool/launchpool/factory"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Client talks to a node over HTTP.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

func amount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

// Now returns the node time in unix seconds.
func (c *Client) Now() (uint64, error) {
	body, err := c.httpGET(c.url + "/")
	if err != nil {
		return 0, fmt.Errorf("unable to get node time - %w", err)
	}
	var res struct {
		Now uint64 `json:"now"`
	}
	if err = json.Unmarshal(body, &res); err != nil {
		return 0, fmt.Errorf("unable to unmarshal node time - %w", err)
	}
	return res.Now, nil
}

// Pools lists pool handles in creation order.
func (c *Client) Pools(offset, limit uint64) ([]launch.Address, error) {
	url := c.url + "/pools?offset=" + strconv.FormatUint(offset, 10) + "&limit=" + strconv.FormatUint(limit, 10)
	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to list pools - %w", err)
	}
	var list []launch.Address
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unable to unmarshal pools - %w", err)
	}
	return list, nil
}

// CreatePool creates a pool and returns its creation record.
func (c *Client) CreatePool(req *pools.CreatePool) (*factory.CreationRecord, error) {
	var rec factory.CreationRecord
	if err := c.do(c.url+"/pools", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Pool retrieves the full view of a pool.
func (c *Client) Pool(addr launch.Address) (*pools.Pool, error) {
	body, err := c.httpGET(c.url + "/pools/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve pool - %w", err)
	}
	var p pools.Pool
	if err = json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("unable to unmarshal pool - %w", err)
	}
	return &p, nil
}

// Stakes lists the stakes of a pool, only those of owner when it is not nil.
func (c *Client) Stakes(addr launch.Address, owner *launch.Address) ([]*pools.Stake, error) {
	url := c.url + "/pools/" + addr.String() + "/stakes"
	if owner != nil {
		url += "?owner=" + owner.String()
	}
	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stakes - %w", err)
	}
	var list []*pools.Stake
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unable to unmarshal stakes - %w", err)
	}
	return list, nil
}

// StakeAt retrieves the stake at index.
func (c *Client) StakeAt(addr launch.Address, index uint64) (*pools.Stake, error) {
	body, err := c.httpGET(c.url + "/pools/" + addr.String() + "/stakes/" + strconv.FormatUint(index, 10))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stake - %w", err)
	}
	var s pools.Stake
	if err = json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("unable to unmarshal stake - %w", err)
	}
	return &s, nil
}

// StakeShares quotes the shares amount of token at tokenIndex would buy now.
func (c *Client) StakeShares(addr launch.Address, value *big.Int, tokenIndex int) (*big.Int, error) {
	url := c.url + "/pools/" + addr.String() + "/shares?amount=" + value.String() + "&tokenIndex=" + strconv.Itoa(tokenIndex)
	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to quote shares - %w", err)
	}
	var res pools.SharesResult
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal shares - %w", err)
	}
	return (*big.Int)(res.Shares), nil
}

// Stake stakes value of token from caller, returning the stake index.
func (c *Client) Stake(addr, caller, token launch.Address, value *big.Int) (uint64, error) {
	var res pools.StakeResult
	if err := c.do(c.url+"/pools/"+addr.String()+"/stake", &pools.StakeCall{
		Caller: caller,
		Token:  token,
		Amount: amount(value),
	}, &res); err != nil {
		return 0, err
	}
	return res.Index, nil
}

func (c *Client) Unstake(addr, caller launch.Address, index uint64) error {
	return c.do(c.url+"/pools/"+addr.String()+"/unstake", &pools.UnstakeCall{Caller: caller, Index: index}, nil)
}

func (c *Client) ExtendEndTimestamp(addr, caller launch.Address, delta uint64) error {
	return c.do(c.url+"/pools/"+addr.String()+"/extend", &pools.ExtendCall{Caller: caller, Delta: delta}, nil)
}

func (c *Client) Lock(addr, caller launch.Address) error {
	return c.do(c.url+"/pools/"+addr.String()+"/lock", &pools.Call{Caller: caller}, nil)
}

func (c *Client) Abort(addr, caller launch.Address) error {
	return c.do(c.url+"/pools/"+addr.String()+"/abort", &pools.Call{Caller: caller}, nil)
}

// CalculateSharesChunk runs one shares calculation step.
func (c *Client) CalculateSharesChunk(addr, caller launch.Address) (*pool.ChunkResult, error) {
	var res pool.ChunkResult
	if err := c.do(c.url+"/pools/"+addr.String()+"/calculate", &pools.Call{Caller: caller}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DistributeSharesChunk runs one distribution step.
func (c *Client) DistributeSharesChunk(addr, caller launch.Address) (*pool.ChunkResult, error) {
	var res pool.ChunkResult
	if err := c.do(c.url+"/pools/"+addr.String()+"/distribute", &pools.Call{Caller: caller}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) WithdrawStakes(addr, caller, token launch.Address) (*pools.WithdrawResult, error) {
	var res pools.WithdrawResult
	if err := c.do(c.url+"/pools/"+addr.String()+"/withdraw", &pools.WithdrawCall{Caller: caller, Token: token}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Tokens lists the registered tokens.
func (c *Client) Tokens() ([]*tokens.Token, error) {
	body, err := c.httpGET(c.url + "/tokens")
	if err != nil {
		return nil, fmt.Errorf("unable to list tokens - %w", err)
	}
	var list []*tokens.Token
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unable to unmarshal tokens - %w", err)
	}
	return list, nil
}

// Token retrieves a token with its total supply.
func (c *Client) Token(addr launch.Address) (*tokens.Token, error) {
	body, err := c.httpGET(c.url + "/tokens/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token - %w", err)
	}
	var tk tokens.Token
	if err = json.Unmarshal(body, &tk); err != nil {
		return nil, fmt.Errorf("unable to unmarshal token - %w", err)
	}
	return &tk, nil
}

func (c *Client) getAmount(url string) (*big.Int, error) {
	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve amount - %w", err)
	}
	var res tokens.Amount
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal amount - %w", err)
	}
	return (*big.Int)(res.Amount), nil
}

func (c *Client) BalanceOf(token, owner launch.Address) (*big.Int, error) {
	return c.getAmount(c.url + "/tokens/" + token.String() + "/balances/" + owner.String())
}

func (c *Client) Allowance(token, owner, spender launch.Address) (*big.Int, error) {
	return c.getAmount(c.url + "/tokens/" + token.String() + "/allowances/" + owner.String() + "/" + spender.String())
}

// RegisterToken needs a node with minting enabled.
func (c *Client) RegisterToken(addr launch.Address, symbol string, decimals uint8) error {
	return c.do(c.url+"/tokens", &tokens.Register{Address: addr, Symbol: symbol, Decimals: decimals}, nil)
}

// Mint needs a node with minting enabled.
func (c *Client) Mint(token, to launch.Address, value *big.Int) error {
	return c.do(c.url+"/tokens/"+token.String()+"/mint", &tokens.Mint{To: to, Amount: amount(value)}, nil)
}

func (c *Client) Transfer(token, caller, to launch.Address, value *big.Int) error {
	return c.do(c.url+"/tokens/"+token.String()+"/transfer", &tokens.Transfer{Caller: caller, To: to, Amount: amount(value)}, nil)
}

func (c *Client) Approve(token, caller, spender launch.Address, value *big.Int) error {
	return c.do(c.url+"/tokens/"+token.String()+"/approve", &tokens.Approve{Caller: caller, Spender: spender, Amount: amount(value)}, nil)
}

// FilterEvents queries the event log.
func (c *Client) FilterEvents(filter *events.EventFilter) ([]*events.FilteredEvent, error) {
	var list []*events.FilteredEvent
	if err := c.do(c.url+"/events", filter, &list); err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}
	return list, nil
}
