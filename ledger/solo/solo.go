// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solo is an in-memory ledger for tests and the solo run mode.
// It plays the external collaborator so a pool can run without a real
// value-moving service behind it.
package solo

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/stakepool-labs/stakepool/stake"
)

// Ledger implements ledger.Client against plain maps.
type Ledger struct {
	mu       sync.Mutex
	balances map[stake.Address]uint64
	accounts map[stake.Identity]uint64

	transferErr error
}

func New() *Ledger {
	return &Ledger{
		balances: make(map[stake.Address]uint64),
		accounts: make(map[stake.Identity]uint64),
	}
}

// Fund credits amount to a derived address, standing in for an external
// depositor sending value there.
func (l *Ledger) Fund(addr stake.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[addr] += amount
}

// BalanceAt implements ledger.Client.
func (l *Ledger) BalanceAt(_ context.Context, addr stake.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr], nil
}

// Transfer implements ledger.Client.
func (l *Ledger) Transfer(_ context.Context, to stake.Identity, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.transferErr != nil {
		return l.transferErr
	}
	if to.IsZero() {
		return errors.New("transfer to empty identity")
	}
	l.accounts[to] += amount
	return nil
}

// AccountBalance returns the total paid out to an identity so far.
func (l *Ledger) AccountBalance(id stake.Identity) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[id]
}

// FailTransfers makes every subsequent Transfer return err; nil restores
// normal operation.
func (l *Ledger) FailTransfers(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transferErr = err
}
