// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the failures a pool or ledger call reports back to
// its caller. A revert aborts the whole call and leaves state untouched.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind uint8

const (
	Unknown Kind = iota
	WrongStage
	NotSponsor
	NotOwner
	CapExceeded
	PoolClosed
	TooEarly
	NoSuchStake
	InvalidConfiguration
	UnknownToken
	InvalidAmount
	BelowMinimum
	InsufficientBalance
	InsufficientAllowance
	Overflow
	NoSuchPool
)

var kindNames = map[Kind]string{
	Unknown:               "Unknown",
	WrongStage:            "WrongStage",
	NotSponsor:            "NotSponsor",
	NotOwner:              "NotOwner",
	CapExceeded:           "CapExceeded",
	PoolClosed:            "PoolClosed",
	TooEarly:              "TooEarly",
	NoSuchStake:           "NoSuchStake",
	InvalidConfiguration:  "InvalidConfiguration",
	UnknownToken:          "UnknownToken",
	InvalidAmount:         "InvalidAmount",
	BelowMinimum:          "BelowMinimum",
	InsufficientBalance:   "InsufficientBalance",
	InsufficientAllowance: "InsufficientAllowance",
	Overflow:              "Overflow",
	NoSuchPool:            "NoSuchPool",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrRevert is a domain failure with a stable kind and a human readable reason.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Newf formats the reason.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the revert classification.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Is reports whether target is a revert of the same kind, so that
// errors.Is(err, reverts.ErrCapExceeded) matches any cap revert.
func (e *ErrRevert) Is(target error) bool {
	var t *ErrRevert
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or Unknown.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return Unknown
}

// Sentinels usable with errors.Is.
var (
	ErrWrongStage            = New(WrongStage, "Wrong stage")
	ErrNotSponsor            = New(NotSponsor, "Only sponsor")
	ErrNotOwner              = New(NotOwner, "Not the stake owner")
	ErrCapExceeded           = New(CapExceeded, "Maximum staked amount exceeded")
	ErrPoolClosed            = New(PoolClosed, "Launch Pool is closed")
	ErrTooEarly              = New(TooEarly, "Launch Pool is still open")
	ErrNoSuchStake           = New(NoSuchStake, "Stake does not exist")
	ErrInvalidConfiguration  = New(InvalidConfiguration, "Invalid configuration")
	ErrUnknownToken          = New(UnknownToken, "Token not accepted")
	ErrInvalidAmount         = New(InvalidAmount, "Amount must be positive")
	ErrBelowMinimum          = New(BelowMinimum, "Stake below minimum amount")
	ErrInsufficientBalance   = New(InsufficientBalance, "Insufficient balance")
	ErrInsufficientAllowance = New(InsufficientAllowance, "Insufficient allowance")
	ErrOverflow              = New(Overflow, "Amount overflows 256 bits")
	ErrNoSuchPool            = New(NoSuchPool, "Launch Pool does not exist")
)

// Is reports whether err carries a revert of the given kind.
func Is(err error, kind Kind) bool {
	var ve *ErrRevert
	return errors.As(err, &ve) && ve.kind == kind
}

// ParseKind returns the kind with the given name, or Unknown.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return Unknown
}
