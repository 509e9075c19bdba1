// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"time"

	"github.com/stakepool-labs/stakepool/pool/intention"
	"github.com/stakepool-labs/stakepool/pool/stakes"
	"github.com/stakepool-labs/stakepool/stake"
)

// CreateDepositRequest is the body of POST /deposits.
type CreateDepositRequest struct {
	Amount     uint64           `json:"amount"`
	LockPeriod stake.LockPeriod `json:"lockPeriod"`
}

// CreatedIntention is the response to a successful deposit registration.
type CreatedIntention struct {
	Index      uint64           `json:"index"`
	Amount     uint64           `json:"amount"`
	LockPeriod stake.LockPeriod `json:"lockPeriod"`
	Address    string           `json:"address"`
	ExpiresAt  time.Time        `json:"expiresAt"`
}

// Deposit is the wire form of a confirmed deposit.
type Deposit struct {
	Index        uint64           `json:"index"`
	Amount       uint64           `json:"amount"`
	Address      string           `json:"address"`
	LockPeriod   stake.LockPeriod `json:"lockPeriod"`
	DepositTime  time.Time        `json:"depositTime"`
	MaturityTime time.Time        `json:"maturityTime"`
}

// WithdrawResult is the response to a successful withdrawal.
type WithdrawResult struct {
	Amount uint64 `json:"amount"`
}

// RewardRequest is the body of POST /pool/reward.
type RewardRequest struct {
	Amount uint64 `json:"amount"`
}

// RewardResult reports a completed distribution.
type RewardResult struct {
	Distributed uint64 `json:"distributed"`
	TotalStaked uint64 `json:"totalStaked"`
}

// SlashRequest is the body of POST /pool/slash.
type SlashRequest struct {
	Amount   uint64 `json:"amount"`
	Receiver string `json:"receiver"`
}

// SlashResult reports a completed slash.
type SlashResult struct {
	Slashed     uint64 `json:"slashed"`
	TotalStaked uint64 `json:"totalStaked"`
}

// PoolStatus is the response to GET /pool.
type PoolStatus struct {
	TotalStaked       uint64 `json:"totalStaked"`
	PendingIntentions int    `json:"pendingIntentions"`
}

// AddressInfo resolves a derived address to what it currently backs.
type AddressInfo struct {
	Address string  `json:"address"`
	Display string  `json:"display"`
	Kind    string  `json:"kind"` // "intention", "deposit" or "reward"
	Index   *uint64 `json:"index,omitempty"`
}

// RewardAddress is the response to GET /pool/reward-address.
type RewardAddress struct {
	Address string `json:"address"`
	Display string `json:"display"`
}

func (s *Staking) convertIntention(it *intention.Intention, window time.Duration) *CreatedIntention {
	return &CreatedIntention{
		Index:      it.Index,
		Amount:     it.Amount,
		LockPeriod: it.LockPeriod,
		Address:    s.display(it.Address),
		ExpiresAt:  it.ExpiresAt(window),
	}
}

func (s *Staking) convertDeposit(d *stakes.Deposit) *Deposit {
	return &Deposit{
		Index:        d.Index,
		Amount:       d.Amount,
		Address:      s.display(d.Address),
		LockPeriod:   d.LockPeriod,
		DepositTime:  d.DepositTime,
		MaturityTime: d.MaturityTime,
	}
}
