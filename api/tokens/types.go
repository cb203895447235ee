// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/launchpool/launchpool/launch"
)

type Token struct {
	Address     launch.Address        `json:"address"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply,omitempty"`
}

type Register struct {
	Address  launch.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

type Mint struct {
	To     launch.Address        `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Transfer struct {
	Caller launch.Address        `json:"caller"`
	To     launch.Address        `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Approve struct {
	Caller  launch.Address        `json:"caller"`
	Spender launch.Address        `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type Amount struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}
