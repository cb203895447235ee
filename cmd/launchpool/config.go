// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/launchpool/launchpool/api/pools"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/pool"
)

// poolFile is the YAML definition of a pool. Amounts are decimal strings of
// 18-decimal units, or whole units with the ether suffix.
//
//	tokens: [0x..., 0x...]
//	minStake: 100ether
//	maxCap: 2000000ether
//	end: 3600           # relative to start when below 1e9
//	calculateStep: 10
//	distributeStep: 100
//	sharePrice: 0.5ether
//	maxShares: 2000000ether
//	sharesToken: 0x...
type poolFile struct {
	Tokens         []launch.Address `yaml:"tokens"`
	MinStake       string           `yaml:"minStake"`
	MaxCap         string           `yaml:"maxCap"`
	Start          uint64           `yaml:"start"`
	End            uint64           `yaml:"end"`
	CalculateStep  uint64           `yaml:"calculateStep"`
	DistributeStep uint64           `yaml:"distributeStep"`
	SharePrice     string           `yaml:"sharePrice"`
	MaxShares      string           `yaml:"maxShares"`
	Metadata       string           `yaml:"metadata"`
	SharesToken    launch.Address   `yaml:"sharesToken"`
	Referral       launch.Address   `yaml:"referral"`
	ReferralBps    uint16           `yaml:"referralBps"`
	CapPolicy      pool.CapPolicy   `yaml:"capPolicy"`
	Pricing        pool.Pricing     `yaml:"pricing"`
	Abortable      *bool            `yaml:"abortable"`
}

// relativeLimit separates durations from unix timestamps in start and end.
const relativeLimit = 1_000_000_000

func loadPoolFile(path string) (*poolFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePoolFile(data)
}

func parsePoolFile(data []byte) (*poolFile, error) {
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse pool file")
	}
	if len(f.Tokens) == 0 {
		return nil, errors.New("pool file: no tokens")
	}
	return &f, nil
}

// amount parses a configured value, a missing value is zero.
func amount(name, s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, err := launch.ParseUnits(s, 0)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return v, nil
}

// createRequest turns the file into a create call made at now. Start and end
// below relativeLimit are offsets: start from now, end from start.
func (f *poolFile) createRequest(caller launch.Address, now uint64) (*pools.CreatePool, error) {
	start, end := f.Start, f.End
	if start < relativeLimit {
		start += now
	}
	if end < relativeLimit {
		end += start
	}

	var params [pool.ParamCount]*math.HexOrDecimal256
	values := []struct {
		index int
		name  string
		value string
	}{
		{pool.ParamMinStake, "minStake", f.MinStake},
		{pool.ParamMaxCap, "maxCap", f.MaxCap},
		{pool.ParamStart, "start", strconv.FormatUint(start, 10)},
		{pool.ParamEnd, "end", strconv.FormatUint(end, 10)},
		{pool.ParamCalculateStep, "calculateStep", strconv.FormatUint(f.CalculateStep, 10)},
		{pool.ParamDistributeStep, "distributeStep", strconv.FormatUint(f.DistributeStep, 10)},
		{pool.ParamSharePrice, "sharePrice", f.SharePrice},
		{pool.ParamMaxShares, "maxShares", f.MaxShares},
	}
	for _, v := range values {
		n, err := amount(v.name, v.value)
		if err != nil {
			return nil, err
		}
		params[v.index] = (*math.HexOrDecimal256)(n)
	}
	if (*big.Int)(params[pool.ParamSharePrice]).Sign() == 0 {
		return nil, fmt.Errorf("sharePrice: must be set")
	}

	return &pools.CreatePool{
		Caller:      caller,
		Tokens:      f.Tokens,
		Params:      params,
		Metadata:    f.Metadata,
		SharesToken: f.SharesToken,
		ReferralBps: f.ReferralBps,
		Referral:    f.Referral,
		CapPolicy:   &f.CapPolicy,
		Pricing:     &f.Pricing,
		Abortable:   f.Abortable,
	}, nil
}
