// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/launchpool/launchpool/launch"
)

const (
	tokenPrefix     = 't'
	supplyPrefix    = 's'
	balancePrefix   = 'b'
	allowancePrefix = 'a'
)

func tokenKey(token launch.Address) string {
	return string(append([]byte{tokenPrefix}, token.Bytes()...))
}

func supplyKey(token launch.Address) string {
	return string(append([]byte{supplyPrefix}, token.Bytes()...))
}

func balanceKey(token, owner launch.Address) string {
	k := make([]byte, 0, 1+2*launch.AddressLength)
	k = append(k, balancePrefix)
	k = append(k, token.Bytes()...)
	return string(append(k, owner.Bytes()...))
}

func allowanceKey(token, owner, spender launch.Address) string {
	k := make([]byte, 0, 1+3*launch.AddressLength)
	k = append(k, allowancePrefix)
	k = append(k, token.Bytes()...)
	k = append(k, owner.Bytes()...)
	return string(append(k, spender.Bytes()...))
}
