// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the closed set of errors staking operations fail with.
// Every operation returns exactly one of these; state is never mutated on error.
package reverts

import (
	"errors"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDepositNotFound      = errors.New("deposit not found")
	ErrLockPeriodNotExpired = errors.New("lock period not expired")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUnauthorized         = errors.New("unauthorized")
)

// ErrTransferFailed carries the external ledger's rejection reason verbatim.
// The pool never retries; the caller must re-issue the operation.
type ErrTransferFailed struct {
	Reason string
}

func TransferFailed(reason string) *ErrTransferFailed {
	return &ErrTransferFailed{Reason: reason}
}

func (e *ErrTransferFailed) Error() string {
	return "transfer failed: " + e.Reason
}

func IsTransferFailed(err error) bool {
	if err == nil {
		return false
	}
	var te *ErrTransferFailed
	return errors.As(err, &te)
}

// IsStakingErr reports whether err belongs to the staking error set.
func IsStakingErr(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrDepositNotFound),
		errors.Is(err, ErrLockPeriodNotExpired),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrUnauthorized),
		IsTransferFailed(err):
		return true
	}
	return false
}
