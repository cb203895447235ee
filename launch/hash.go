// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package launch

import (
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the legacy keccak-256 checksum of the concatenated data.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// Keccak256Fn computes keccak-256 checksum for the data written by fn.
func Keccak256Fn(fn func(w io.Writer)) (h Bytes32) {
	w := sha3.NewLegacyKeccak256()
	fn(w)
	w.Sum(h[:0])
	return
}
