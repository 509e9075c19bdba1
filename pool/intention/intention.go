// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package intention tracks deposit intentions created but not yet confirmed as
// funded. An intention owns its derived address exclusively until it is either
// promoted into the stake ledger or swept after the expiry window.
package intention

import (
	"cmp"
	"slices"
	"time"

	"github.com/stakepool-labs/stakepool/pool/reverts"
	"github.com/stakepool-labs/stakepool/stake"
)

// DefaultExpiryWindow is how long a depositor has to fund and confirm an
// intention before it is swept.
const DefaultExpiryWindow = 15 * time.Minute

// Intention is a registered request to deposit, pending external funding.
type Intention struct {
	Index      uint64
	Owner      stake.Identity
	Amount     uint64 // requested; the confirmed amount is the observed balance
	LockPeriod stake.LockPeriod
	Address    stake.Address
	CreatedAt  time.Time

	// inFlight is set while a confirmation awaits the external balance query.
	// An in-flight intention is invisible to concurrent confirms and sweeps.
	inFlight bool
}

// Stale reports whether the intention has outlived the expiry window at now.
// It is a pure function of elapsed time, independent of funding status.
func (it *Intention) Stale(now time.Time, window time.Duration) bool {
	return now.Sub(it.CreatedAt) > window
}

// ExpiresAt returns the instant the intention becomes stale.
func (it *Intention) ExpiresAt(window time.Duration) time.Time {
	return it.CreatedAt.Add(window)
}

// Registry owns all pending intentions, keyed by the pool-wide deposit index.
// It is not safe for concurrent use; the pool serializes access.
type Registry struct {
	pending map[uint64]*Intention
	window  time.Duration
}

func New(window time.Duration) *Registry {
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	return &Registry{
		pending: make(map[uint64]*Intention),
		window:  window,
	}
}

// Window returns the expiry window.
func (r *Registry) Window() time.Duration {
	return r.window
}

// Add stores a freshly created intention.
func (r *Registry) Add(it *Intention) {
	r.pending[it.Index] = it
}

// Len returns the number of pending intentions, in-flight included.
func (r *Registry) Len() int {
	return len(r.pending)
}

// Pending returns copies of all pending intentions in creation order.
func (r *Registry) Pending() []Intention {
	out := make([]Intention, 0, len(r.pending))
	for _, it := range r.pending {
		out = append(out, *it)
	}
	slices.SortFunc(out, func(a, b Intention) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// BeginConfirm transitions the intention at index into the in-flight state and
// returns a copy for the caller to verify funding against. It fails with
// DepositNotFound for unknown, already in-flight, or stale intentions (stale
// ones are discarded on the spot, their address permanently retired), and with
// Unauthorized when the caller does not own it.
func (r *Registry) BeginConfirm(owner stake.Identity, index uint64, now time.Time) (Intention, error) {
	it, ok := r.pending[index]
	if !ok || it.inFlight {
		return Intention{}, reverts.ErrDepositNotFound
	}
	if it.Stale(now, r.window) {
		delete(r.pending, index)
		return Intention{}, reverts.ErrDepositNotFound
	}
	if it.Owner != owner {
		return Intention{}, reverts.ErrUnauthorized
	}
	it.inFlight = true
	return *it, nil
}

// EndConfirm resolves an in-flight confirmation. A promoted intention is
// removed atomically with the ledger insert; a failed one returns to Pending
// and stays retryable.
func (r *Registry) EndConfirm(index uint64, promoted bool) {
	it, ok := r.pending[index]
	if !ok {
		return
	}
	it.inFlight = false
	if promoted {
		delete(r.pending, index)
	}
}

// Sweep removes every stale pending intention and returns them. In-flight
// intentions are skipped: a confirmation that observed sufficient balance
// before the sweep wins the race. Repeated sweeps with no new intentions
// remove nothing further.
func (r *Registry) Sweep(now time.Time) []Intention {
	var removed []Intention
	for index, it := range r.pending {
		if it.inFlight {
			continue
		}
		if it.Stale(now, r.window) {
			removed = append(removed, *it)
			delete(r.pending, index)
		}
	}
	return removed
}
