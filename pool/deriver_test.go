// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakepool-labs/stakepool/stake"
)

func TestDeriveAddressDeterministic(t *testing.T) {
	a := DeriveAddress("alice", 0)
	b := DeriveAddress("alice", 0)
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestDeriveAddressUnique(t *testing.T) {
	seen := make(map[stake.Address]struct{})

	// same identity, many nonces
	for nonce := uint64(0); nonce < 10000; nonce++ {
		addr := DeriveAddress("alice", nonce)
		_, dup := seen[addr]
		assert.False(t, dup, "collision at nonce %d", nonce)
		seen[addr] = struct{}{}
	}

	// same nonce, different identities
	for _, id := range []stake.Identity{"bob", "carol", "dave", rewardTag} {
		addr := DeriveAddress(id, 0)
		_, dup := seen[addr]
		assert.False(t, dup, "collision for identity %s", id)
		seen[addr] = struct{}{}
	}
}

func TestDeriveAddressNoBoundaryConfusion(t *testing.T) {
	// identity/nonce concatenation must not be ambiguous
	assert.NotEqual(t, DeriveAddress("ab", 0), DeriveAddress("a", 0))
	assert.NotEqual(t, DeriveAddress("alice", 1), DeriveAddress("alice", 256))
}
