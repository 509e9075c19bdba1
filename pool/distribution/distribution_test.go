// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sum(v []uint64) uint64 {
	var s uint64
	for _, x := range v {
		s += x
	}
	return s
}

func TestSharesExact(t *testing.T) {
	// 1000:3000 with reward 400 divides exactly: 100 and 300, zero remainder
	shares := Shares([]uint64{1000, 3000}, 400, 4000)
	assert.Equal(t, []uint64{100, 300}, shares)
}

func TestSharesRemainderToLargest(t *testing.T) {
	// 100 over three equal stakes: floor shares 33 each, remainder 1 folds
	// into the first (lowest position wins ties)
	shares := Shares([]uint64{500, 500, 500}, 100, 1500)
	assert.Equal(t, []uint64{34, 33, 33}, shares)

	// remainder goes to the strictly largest deposit wherever it sits
	shares = Shares([]uint64{100, 700, 200}, 11, 1000)
	assert.Equal(t, uint64(11), sum(shares))
	assert.Equal(t, []uint64{1, 8, 2}, shares)
}

func TestSharesConservation(t *testing.T) {
	amounts := []uint64{1, 7, 13, 999983, 42, 123456789}
	totalStaked := sum(amounts)

	for _, total := range []uint64{1, 2, 99, 1000, 999999, math.MaxUint32} {
		shares := Shares(amounts, total, totalStaked)
		assert.Equal(t, total, sum(shares), "total %d", total)
	}
}

func TestSharesDeterministic(t *testing.T) {
	amounts := []uint64{10, 20, 30, 20, 10}
	first := Shares(amounts, 1234, 90)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Shares(amounts, 1234, 90))
	}
}

func TestSharesLargeValues(t *testing.T) {
	// the widened multiply must not overflow on near-max stakes
	amounts := []uint64{math.MaxUint64 / 2, math.MaxUint64 / 2}
	totalStaked := sum(amounts)
	shares := Shares(amounts, math.MaxUint32, totalStaked)
	assert.Equal(t, uint64(math.MaxUint32), sum(shares))
}

func TestSlashProRata(t *testing.T) {
	alloc, slashed := Slash([]uint64{1000, 3000}, 400)
	assert.Equal(t, uint64(400), slashed)
	assert.Equal(t, []uint64{100, 300}, alloc)
}

func TestSlashClampAndRedistribute(t *testing.T) {
	// a naive pro-rata share of the small deposit exceeds its amount; the
	// shortfall must land on the big one
	alloc, slashed := Slash([]uint64{10, 10000}, 5000)
	assert.Equal(t, uint64(5000), slashed)
	assert.Equal(t, uint64(5000), sum(alloc))
	assert.LessOrEqual(t, alloc[0], uint64(10))
	assert.Equal(t, uint64(5000)-alloc[0], alloc[1])
}

func TestSlashExhaustsPool(t *testing.T) {
	// asking for more than the pool holds drains everything and reports the
	// amount actually slashed
	alloc, slashed := Slash([]uint64{100, 200}, 1000)
	assert.Equal(t, uint64(300), slashed)
	assert.Equal(t, []uint64{100, 200}, alloc)
}

func TestSlashTinyAmounts(t *testing.T) {
	// floor shares of 1 unit across many deposits are all zero; the engine
	// must still allocate the full unit deterministically
	alloc, slashed := Slash([]uint64{5, 5, 5, 5}, 1)
	assert.Equal(t, uint64(1), slashed)
	assert.Equal(t, uint64(1), sum(alloc))

	again, _ := Slash([]uint64{5, 5, 5, 5}, 1)
	assert.Equal(t, alloc, again)
}

func TestRewardSlashRoundTrip(t *testing.T) {
	amounts := []uint64{1000, 3000, 777}
	totalStaked := sum(amounts)
	const r = 4999

	shares := Shares(amounts, r, totalStaked)
	rewarded := make([]uint64, len(amounts))
	for i := range amounts {
		rewarded[i] = amounts[i] + shares[i]
	}

	alloc, slashed := Slash(rewarded, r)
	assert.Equal(t, uint64(r), slashed)

	var after uint64
	for i := range rewarded {
		after += rewarded[i] - alloc[i]
	}
	// pool total returns exactly to its pre-reward value; only the placement
	// of the rounding remainder may differ per deposit
	assert.Equal(t, totalStaked, after)
}

func TestSlashNoDeposits(t *testing.T) {
	alloc, slashed := Slash(nil, 100)
	assert.Zero(t, slashed)
	assert.Empty(t, alloc)
}
