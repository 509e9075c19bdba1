// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package distribution computes pro-rata reward and slash allocations over the
// live deposit set. All functions are pure and iterate deposits in the order
// given (the ledger's creation order), so remainder placement is deterministic
// and reproducible bit-for-bit.
package distribution

import (
	"math/bits"
)

// mulDiv returns floor(a * b / div) using a 128-bit intermediate product.
// Callers guarantee b <= div, so the quotient always fits in 64 bits.
func mulDiv(a, b, div uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, div)
	return q
}

// Shares splits total across amounts pro rata: share i is
// floor(total * amounts[i] / totalStaked), with the floor-division remainder
// folded into the single largest deposit (ties broken by lowest position) so
// the distributed sum exactly equals total. totalStaked must be the sum of
// amounts and must be nonzero.
func Shares(amounts []uint64, total, totalStaked uint64) []uint64 {
	shares := make([]uint64, len(amounts))
	var distributed uint64
	for i, amount := range amounts {
		shares[i] = mulDiv(total, amount, totalStaked)
		distributed += shares[i]
	}

	if remainder := total - distributed; remainder > 0 {
		largest := 0
		for i, amount := range amounts {
			if amount > amounts[largest] {
				largest = i
			}
		}
		shares[largest] += remainder
	}
	return shares
}

// Slash allocates up to total across amounts pro rata, clamping each share at
// the deposit's current amount. Shortfall from clamping is redistributed over
// the remaining capacity by the same rule, iterated until the request is fully
// allocated or every deposit is exhausted. It returns the per-deposit
// allocation and the amount actually slashed.
func Slash(amounts []uint64, total uint64) (alloc []uint64, slashed uint64) {
	alloc = make([]uint64, len(amounts))
	want := total

	for want > 0 {
		var remaining uint64
		for i, amount := range amounts {
			remaining += amount - alloc[i]
		}
		if remaining == 0 {
			break
		}

		round := want
		if round > remaining {
			round = remaining
		}

		var progress uint64
		for i, amount := range amounts {
			capacity := amount - alloc[i]
			if capacity == 0 {
				continue
			}
			share := mulDiv(round, capacity, remaining)
			if share > capacity {
				share = capacity
			}
			alloc[i] += share
			progress += share
		}
		want -= progress

		if progress == 0 {
			// Every floor came out zero; drain the largest remaining capacity
			// so the loop always terminates.
			largest := -1
			for i, amount := range amounts {
				if amount-alloc[i] == 0 {
					continue
				}
				if largest < 0 || amount-alloc[i] > amounts[largest]-alloc[largest] {
					largest = i
				}
			}
			capacity := amounts[largest] - alloc[largest]
			if capacity > want {
				capacity = want
			}
			alloc[largest] += capacity
			want -= capacity
		}
	}

	return alloc, total - want
}
