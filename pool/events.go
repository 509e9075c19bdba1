// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"time"

	"github.com/stakepool-labs/stakepool/stake"
)

// EventKind names a pool mutation for the audit trail.
type EventKind string

const (
	EventIntentionCreated EventKind = "intention_created"
	EventIntentionExpired EventKind = "intention_expired"
	EventDepositConfirmed EventKind = "deposit_confirmed"
	EventWithdrawal       EventKind = "withdrawal"
	EventReward           EventKind = "reward"
	EventSlash            EventKind = "slash"
)

// Event is one audit record. Account and Index are zero-valued for pool-wide
// events (reward); Account is the receiver for slash events.
type Event struct {
	Time        time.Time      `json:"time"`
	Kind        EventKind      `json:"kind"`
	Account     stake.Identity `json:"account,omitempty"`
	Index       uint64         `json:"index"`
	Amount      uint64         `json:"amount"`
	TotalStaked uint64         `json:"totalStaked"`
}

// EventSink receives audit events. Recording is best-effort: a sink failure
// is logged and never rolls back the operation that produced the event.
type EventSink interface {
	Record(ev *Event) error
}

func (p *Pool) record(ev *Event) {
	if p.events == nil {
		return
	}
	if err := p.events.Record(ev); err != nil {
		logger.Warn("failed to record event", "kind", ev.Kind, "error", err)
	}
}
