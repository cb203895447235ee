// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/stakes"
)

type encodedPool struct {
	Address launch.Address
	Config  *Config
	State   *State
	Stakes  *stakes.Registry
}

// EncodeRLP implements rlp.Encoder.
func (p *Pool) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &encodedPool{
		Address: p.addr,
		Config:  p.cfg,
		State:   &p.state,
		Stakes:  p.stakes,
	})
}

// DecodeRLP implements rlp.Decoder.
func (p *Pool) DecodeRLP(s *rlp.Stream) error {
	var dec encodedPool
	if err := s.Decode(&dec); err != nil {
		return err
	}
	*p = Pool{
		addr:   dec.Address,
		cfg:    dec.Config,
		state:  *dec.State,
		stakes: dec.Stakes,
	}
	return nil
}
