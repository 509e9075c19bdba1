// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package intention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool-labs/stakepool/pool/reverts"
	"github.com/stakepool-labs/stakepool/stake"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newIntention(index uint64, owner stake.Identity) *Intention {
	return &Intention{
		Index:      index,
		Owner:      owner,
		Amount:     1000,
		LockPeriod: stake.Days90,
		Address:    stake.BytesToAddress([]byte{byte(index)}),
		CreatedAt:  t0,
	}
}

func TestBeginConfirm(t *testing.T) {
	r := New(0)
	assert.Equal(t, DefaultExpiryWindow, r.Window())
	r.Add(newIntention(0, "alice"))

	_, err := r.BeginConfirm("alice", 42, t0)
	assert.ErrorIs(t, err, reverts.ErrDepositNotFound)

	_, err = r.BeginConfirm("bob", 0, t0)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	it, err := r.BeginConfirm("alice", 0, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), it.Amount)

	// a second confirm on an in-flight index must not double-promote
	_, err = r.BeginConfirm("alice", 0, t0.Add(time.Minute))
	assert.ErrorIs(t, err, reverts.ErrDepositNotFound)

	// a failed confirmation returns the intention to Pending, retryable
	r.EndConfirm(0, false)
	_, err = r.BeginConfirm("alice", 0, t0.Add(2*time.Minute))
	require.NoError(t, err)

	// a promoted one is gone for good
	r.EndConfirm(0, true)
	_, err = r.BeginConfirm("alice", 0, t0.Add(3*time.Minute))
	assert.ErrorIs(t, err, reverts.ErrDepositNotFound)
	assert.Zero(t, r.Len())
}

func TestBeginConfirmStale(t *testing.T) {
	r := New(15 * time.Minute)
	r.Add(newIntention(0, "alice"))

	// exactly at the window edge the intention is still confirmable
	_, err := r.BeginConfirm("alice", 0, t0.Add(15*time.Minute))
	require.NoError(t, err)
	r.EndConfirm(0, false)

	// past the window it is discarded, even for the rightful owner
	_, err = r.BeginConfirm("alice", 0, t0.Add(15*time.Minute+time.Second))
	assert.ErrorIs(t, err, reverts.ErrDepositNotFound)
	assert.Zero(t, r.Len())
}

func TestSweep(t *testing.T) {
	r := New(15 * time.Minute)
	r.Add(newIntention(0, "alice"))
	r.Add(newIntention(1, "bob"))

	late := &Intention{Index: 2, Owner: "carol", Amount: 1, Address: stake.BytesToAddress([]byte{2}), CreatedAt: t0.Add(10 * time.Minute)}
	r.Add(late)

	removed := r.Sweep(t0.Add(16 * time.Minute))
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, r.Len())

	// idempotent: nothing further to remove
	assert.Empty(t, r.Sweep(t0.Add(16*time.Minute)))

	removed = r.Sweep(t0.Add(26 * time.Minute))
	require.Len(t, removed, 1)
	assert.Equal(t, uint64(2), removed[0].Index)
	assert.Zero(t, r.Len())
}

func TestSweepSkipsInFlight(t *testing.T) {
	r := New(15 * time.Minute)
	r.Add(newIntention(0, "alice"))

	_, err := r.BeginConfirm("alice", 0, t0.Add(14*time.Minute))
	require.NoError(t, err)

	// the intention would be stale, but the confirmation in flight wins
	assert.Empty(t, r.Sweep(t0.Add(20*time.Minute)))

	r.EndConfirm(0, false)
	assert.Len(t, r.Sweep(t0.Add(20*time.Minute)), 1)
}

func TestPendingCopies(t *testing.T) {
	r := New(0)
	r.Add(newIntention(0, "alice"))

	pending := r.Pending()
	require.Len(t, pending, 1)
	pending[0].Amount = 9

	it, err := r.BeginConfirm("alice", 0, t0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), it.Amount)
}

func TestPendingOrder(t *testing.T) {
	r := New(0)
	for _, index := range []uint64{3, 0, 2, 1} {
		r.Add(newIntention(index, "alice"))
	}

	pending := r.Pending()
	require.Len(t, pending, 4)
	for i, it := range pending {
		assert.Equal(t, uint64(i), it.Index)
	}
}
