// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger defines the external ledger collaborator.
// The pool never moves value itself: it reads balances to confirm funding and
// instructs the ledger to pay out withdrawals and slashes.
package ledger

import (
	"context"

	"github.com/stakepool-labs/stakepool/stake"
)

// Client is the value-moving service the pool depends on.
//
// BalanceAt may be slow; it is the only call the pool suspends on while
// holding an in-flight marker on the intention being confirmed.
type Client interface {
	// BalanceAt returns the externally verifiable balance at a derived address.
	BalanceAt(ctx context.Context, addr stake.Address) (uint64, error)

	// Transfer pays amount to the account identified by to. An error means no
	// value moved; the pool surfaces it as TransferFailed and changes nothing.
	Transfer(ctx context.Context, to stake.Identity, amount uint64) error
}
