// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package launch

import (
	"fmt"
	"math/big"
	"strings"
)

// Precision is the number of decimals of the internal fixed point unit.
const Precision = 18

var (
	// Unit is 1.0 in the internal 18-decimal fixed point representation.
	Unit = Pow10(Precision)

	big10 = big.NewInt(10)
)

// Pow10 returns 10^n.
func Pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big10, big.NewInt(int64(n)), nil)
}

// Normalize converts an amount expressed with the given decimals into the
// 18-decimal internal unit. Precision beyond 18 decimals is floored away.
func Normalize(amount *big.Int, decimals uint8) *big.Int {
	switch {
	case decimals == Precision:
		return new(big.Int).Set(amount)
	case decimals < Precision:
		return new(big.Int).Mul(amount, Pow10(Precision-decimals))
	default:
		return new(big.Int).Quo(amount, Pow10(decimals-Precision))
	}
}

// Denormalize converts an 18-decimal internal amount into the given decimals, flooring.
func Denormalize(amount *big.Int, decimals uint8) *big.Int {
	switch {
	case decimals == Precision:
		return new(big.Int).Set(amount)
	case decimals < Precision:
		return new(big.Int).Quo(amount, Pow10(Precision-decimals))
	default:
		return new(big.Int).Mul(amount, Pow10(decimals-Precision))
	}
}

// ParseUnits parses a decimal string such as "0.5", "400000" or "100ether"
// into an integer amount with the given decimals. The "ether" suffix forces 18
// decimals and "mwei" forces 6, matching the usual web3 unit names.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "ether"):
		s, decimals = strings.TrimSpace(strings.TrimSuffix(s, "ether")), 18
	case strings.HasSuffix(s, "mwei"):
		s, decimals = strings.TrimSpace(strings.TrimSuffix(s, "mwei")), 6
	case strings.HasSuffix(s, "wei"):
		s, decimals = strings.TrimSpace(strings.TrimSuffix(s, "wei")), 0
	}
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

// FormatUnits renders an integer amount with the given decimals, trimming trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if decimals == 0 {
		return amount.String()
	}
	q, r := new(big.Int).QuoRem(amount, Pow10(decimals), new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := r.String()
	frac = strings.Repeat("0", int(decimals)-len(frac)) + frac
	return q.String() + "." + strings.TrimRight(frac, "0")
}
