// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

// Sweep purges every pending intention whose expiry window has elapsed and
// returns how many were removed. Expiry is a pure function of elapsed time,
// independent of funding status: a partially funded but never-confirmed
// intention expires too, and its address is permanently retired. Intentions
// with a confirmation in flight are skipped; repeated sweeps with no new
// intentions remove nothing further.
func (p *Pool) Sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	removed := p.intentions.Sweep(now)
	for _, it := range removed {
		p.record(&Event{Time: now, Kind: EventIntentionExpired, Account: it.Owner, Index: it.Index, Amount: it.Amount, TotalStaked: p.stakes.TotalStaked()})
	}

	if len(removed) > 0 {
		metricPending().Set(int64(p.intentions.Len()))
		logger.Info("swept expired intentions", "removed", len(removed), "pending", p.intentions.Len())
	}
	return len(removed)
}
