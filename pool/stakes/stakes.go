// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakes holds the confirmed-deposit ledger: every funded, unwithdrawn
// deposit, the per-account views, and the pool-wide total-staked invariant.
package stakes

import (
	"time"

	"github.com/pkg/errors"

	"github.com/stakepool-labs/stakepool/pool/reverts"
	"github.com/stakepool-labs/stakepool/stake"
)

// Deposit is a confirmed, unwithdrawn deposit. Index is the pool-wide index
// assigned at intention time and is stable for the deposit's whole life.
type Deposit struct {
	Index        uint64
	Owner        stake.Identity
	Amount       uint64
	Address      stake.Address
	LockPeriod   stake.LockPeriod
	DepositTime  time.Time
	MaturityTime time.Time
}

// Matured reports whether the lock period has elapsed at now.
func (d *Deposit) Matured(now time.Time) bool {
	return !now.Before(d.MaturityTime)
}

// Ledger is the confirmed-deposit store. It is not safe for concurrent use;
// the pool serializes access.
type Ledger struct {
	byIndex   map[uint64]*Deposit
	byAccount map[stake.Identity][]*Deposit
	order     []*Deposit // live deposits in creation order

	totalStaked uint64
}

func New() *Ledger {
	return &Ledger{
		byIndex:   make(map[uint64]*Deposit),
		byAccount: make(map[stake.Identity][]*Deposit),
	}
}

// Add appends a freshly confirmed deposit and grows total staked.
func (l *Ledger) Add(d *Deposit) {
	l.byIndex[d.Index] = d
	l.byAccount[d.Owner] = append(l.byAccount[d.Owner], d)
	l.order = append(l.order, d)
	l.totalStaked += d.Amount
}

// Get returns the live deposit at index, or DepositNotFound.
func (l *Ledger) Get(index uint64) (*Deposit, error) {
	d, ok := l.byIndex[index]
	if !ok {
		return nil, reverts.ErrDepositNotFound
	}
	return d, nil
}

// CheckWithdrawable validates owner, existence and maturity without mutating
// anything. The pool calls it before instructing the external payout.
func (l *Ledger) CheckWithdrawable(owner stake.Identity, index uint64, now time.Time) (*Deposit, error) {
	d, ok := l.byIndex[index]
	if !ok {
		return nil, reverts.ErrDepositNotFound
	}
	if d.Owner != owner {
		return nil, reverts.ErrUnauthorized
	}
	if !d.Matured(now) {
		return nil, reverts.ErrLockPeriodNotExpired
	}
	return d, nil
}

// Remove deletes the deposit at index and shrinks total staked, returning the
// removed amount. Callers must have validated the index first.
func (l *Ledger) Remove(index uint64) uint64 {
	d, ok := l.byIndex[index]
	if !ok {
		return 0
	}
	delete(l.byIndex, index)

	list := l.byAccount[d.Owner]
	for i, e := range list {
		if e.Index == index {
			l.byAccount[d.Owner] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(l.byAccount[d.Owner]) == 0 {
		delete(l.byAccount, d.Owner)
	}

	for i, e := range l.order {
		if e.Index == index {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}

	l.totalStaked -= d.Amount
	return d.Amount
}

// TotalStaked returns the pool-wide staked total.
func (l *Ledger) TotalStaked() uint64 {
	return l.totalStaked
}

// Len returns the number of live deposits.
func (l *Ledger) Len() int {
	return len(l.order)
}

// DepositsOf returns copies of the account's deposits in creation order.
// An account with no deposits yields an empty list, never an error.
func (l *Ledger) DepositsOf(owner stake.Identity) []Deposit {
	list := l.byAccount[owner]
	out := make([]Deposit, 0, len(list))
	for _, d := range list {
		out = append(out, *d)
	}
	return out
}

// Live returns all live deposits in creation order. The returned slice is
// shared; callers must not retain it across mutations.
func (l *Ledger) Live() []*Deposit {
	return l.order
}

// Amounts returns the live deposit amounts in creation order, the shape the
// distribution engine operates on.
func (l *Ledger) Amounts() []uint64 {
	amounts := make([]uint64, len(l.order))
	for i, d := range l.order {
		amounts[i] = d.Amount
	}
	return amounts
}

// Apply adds delta[i] to (or, when sub, subtracts from) each live deposit in
// creation order and adjusts total staked by total. It is the single entry
// point distribution results flow through, so either every deposit updates or
// none do.
func (l *Ledger) Apply(delta []uint64, total uint64, sub bool) error {
	if len(delta) != len(l.order) {
		return errors.Errorf("allocation size mismatch: %d != %d", len(delta), len(l.order))
	}
	for i, d := range l.order {
		if sub {
			if delta[i] > d.Amount {
				return errors.Errorf("slash exceeds deposit %d amount", d.Index)
			}
		}
	}
	for i, d := range l.order {
		if sub {
			d.Amount -= delta[i]
		} else {
			d.Amount += delta[i]
		}
	}
	if sub {
		l.totalStaked -= total
	} else {
		l.totalStaked += total
	}
	return nil
}

// CheckConservation verifies that total staked equals the sum over all live
// deposits. It is validated after every mutating operation in tests.
func (l *Ledger) CheckConservation() error {
	var sum uint64
	for _, d := range l.order {
		sum += d.Amount
	}
	if sum != l.totalStaked {
		return errors.Errorf("total staked %d != deposit sum %d", l.totalStaked, sum)
	}
	return nil
}
