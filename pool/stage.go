// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"
	"strings"
)

// Stage is the lifecycle position of a pool. Numeric codes are stable.
type Stage uint8

const (
	Pending Stage = iota
	Staking
	Aborted
	Locked
	Calculated
	Distributed
)

var stageNames = [...]string{
	Pending:     "pending",
	Staking:     "staking",
	Aborted:     "aborted",
	Locked:      "locked",
	Calculated:  "calculated",
	Distributed: "distributed",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range stageNames {
		if n == name {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", string(text))
}

// transitions lists the legal moves out of each stage.
var transitions = map[Stage][]Stage{
	Pending:    {Staking},
	Staking:    {Locked, Aborted},
	Locked:     {Calculated},
	Calculated: {Distributed},
}

// CanTransition reports whether moving from one stage to the other is legal.
func CanTransition(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Final reports whether no further transition is possible.
func (s Stage) Final() bool {
	return len(transitions[s]) == 0
}
