// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the custodial staking pool: the deposit lifecycle
// state machine, per-deposit address derivation, and pro-rata reward and slash
// distribution over the confirmed deposit set.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/stakepool-labs/stakepool/ledger"
	"github.com/stakepool-labs/stakepool/log"
	"github.com/stakepool-labs/stakepool/metrics"
	"github.com/stakepool-labs/stakepool/pool/distribution"
	"github.com/stakepool-labs/stakepool/pool/intention"
	"github.com/stakepool-labs/stakepool/pool/reverts"
	"github.com/stakepool-labs/stakepool/pool/stakes"
	"github.com/stakepool-labs/stakepool/stake"
)

var logger = log.WithContext("pkg", "pool")

var (
	metricOps         = metrics.LazyLoadCounterVec("pool_operation_count", []string{"op"})
	metricOpErrors    = metrics.LazyLoadCounterVec("pool_operation_error_count", []string{"op"})
	metricTotalStaked = metrics.LazyLoadGauge("pool_total_staked")
	metricPending     = metrics.LazyLoadGauge("pool_pending_intention_count")
)

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Options tune a pool instance. The zero value selects the defaults.
type Options struct {
	// ExpiryWindow bounds how long an intention may stay pending.
	ExpiryWindow time.Duration
	// Now supplies the host's clock; defaults to time.Now.
	Now func() time.Time
	// Events receives the audit trail; nil disables recording.
	Events EventSink
}

// Pool is the single owned aggregate: all depositor state, the monotonic
// derivation nonce and the total-staked figure live behind one mutex.
// Every operation is a serialized critical section except ConfirmDeposit,
// which releases the mutex across the external balance query while the
// target intention is marked in-flight.
type Pool struct {
	mu     sync.Mutex
	client ledger.Client
	now    func() time.Time
	events EventSink

	nonce         uint64
	intentions    *intention.Registry
	stakes        *stakes.Ledger
	rewardAddress *stake.Address
}

// New creates a pool backed by the given external ledger client.
func New(client ledger.Client, opts Options) *Pool {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pool{
		client:     client,
		now:        now,
		events:     opts.Events,
		intentions: intention.New(opts.ExpiryWindow),
		stakes:     stakes.New(),
	}
}

//
// Getters - no state change
//

// TotalStaked returns the pool-wide staked total.
func (p *Pool) TotalStaked() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stakes.TotalStaked()
}

// DepositsOf returns the account's confirmed deposits in creation order.
// An unknown account yields an empty list, never an error.
func (p *Pool) DepositsOf(owner stake.Identity) []stakes.Deposit {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stakes.DepositsOf(owner)
}

// Deposits returns copies of all confirmed deposits in creation order.
func (p *Pool) Deposits() []stakes.Deposit {
	p.mu.Lock()
	defer p.mu.Unlock()

	live := p.stakes.Live()
	out := make([]stakes.Deposit, 0, len(live))
	for _, d := range live {
		out = append(out, *d)
	}
	return out
}

// PendingIntentions returns all unconfirmed intentions.
func (p *Pool) PendingIntentions() []intention.Intention {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intentions.Pending()
}

// PendingCount returns the number of unconfirmed intentions.
func (p *Pool) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intentions.Len()
}

// ExpiryWindow returns how long intentions stay confirmable.
func (p *Pool) ExpiryWindow() time.Duration {
	return p.intentions.Window()
}

// RewardAddress returns the address external reward funds should be sent to,
// deriving it on first use from the same nonce sequence as deposit addresses.
func (p *Pool) RewardAddress() stake.Address {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rewardAddress == nil {
		addr := DeriveAddress(rewardTag, p.nextNonce())
		p.rewardAddress = &addr
	}
	return *p.rewardAddress
}

// CheckConservation verifies total staked equals the sum over live deposits.
func (p *Pool) CheckConservation() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stakes.CheckConservation()
}

//
// Setters - state change
//

// CreateIntention registers a deposit intention and returns it, address
// included, for the depositor to fund.
func (p *Pool) CreateIntention(caller stake.Identity, amount uint64, period stake.LockPeriod) (intention.Intention, error) {
	logger.Debug("creating intention", "caller", caller, "amount", amount, "period", period)

	if caller.IsZero() {
		return intention.Intention{}, p.fail("create", reverts.ErrUnauthorized)
	}
	if amount == 0 || !period.Valid() {
		return intention.Intention{}, p.fail("create", reverts.ErrInvalidAmount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	index := p.nextNonce()
	it := &intention.Intention{
		Index:      index,
		Owner:      caller,
		Amount:     amount,
		LockPeriod: period,
		Address:    DeriveAddress(caller, index),
		CreatedAt:  p.now(),
	}
	p.intentions.Add(it)

	metricOps().AddWithLabel(1, map[string]string{"op": "create"})
	metricPending().Set(int64(p.intentions.Len()))
	p.record(&Event{Time: it.CreatedAt, Kind: EventIntentionCreated, Account: caller, Index: index, Amount: amount, TotalStaked: p.stakes.TotalStaked()})

	logger.Info("created intention", "index", index, "address", it.Address.AbbrevString())
	return *it, nil
}

// ConfirmDeposit verifies funding of the intention at index against the
// external ledger and promotes it into the confirmed set. The intention is
// exclusive against concurrent confirms and sweeps while the balance query is
// in flight. On InsufficientFunds the intention stays pending and the call is
// retryable.
func (p *Pool) ConfirmDeposit(ctx context.Context, caller stake.Identity, index uint64) (stakes.Deposit, error) {
	logger.Debug("confirming deposit", "caller", caller, "index", index)

	p.mu.Lock()
	it, err := p.intentions.BeginConfirm(caller, index, p.now())
	p.mu.Unlock()
	if err != nil {
		return stakes.Deposit{}, p.fail("confirm", err)
	}

	// The one suspension point: the intention is in-flight and the pool
	// unlocked while the external ledger answers.
	balance, queryErr := p.client.BalanceAt(ctx, it.Address)

	p.mu.Lock()
	defer p.mu.Unlock()

	if queryErr != nil {
		p.intentions.EndConfirm(index, false)
		return stakes.Deposit{}, p.fail("confirm", reverts.TransferFailed(queryErr.Error()))
	}
	if balance < it.Amount {
		p.intentions.EndConfirm(index, false)
		return stakes.Deposit{}, p.fail("confirm", reverts.ErrInsufficientFunds)
	}

	now := p.now()
	deposit := &stakes.Deposit{
		Index:        it.Index,
		Owner:        it.Owner,
		Amount:       balance, // the observed balance, >= requested
		Address:      it.Address,
		LockPeriod:   it.LockPeriod,
		DepositTime:  now,
		MaturityTime: now.Add(it.LockPeriod.Duration()),
	}
	p.stakes.Add(deposit)
	p.intentions.EndConfirm(index, true)

	metricOps().AddWithLabel(1, map[string]string{"op": "confirm"})
	metricPending().Set(int64(p.intentions.Len()))
	metricTotalStaked().Set(int64(p.stakes.TotalStaked()))
	p.record(&Event{Time: now, Kind: EventDepositConfirmed, Account: caller, Index: index, Amount: balance, TotalStaked: p.stakes.TotalStaked()})

	logger.Info("confirmed deposit", "index", index, "amount", balance, "maturity", deposit.MaturityTime)
	return *deposit, nil
}

// Withdraw pays out a matured deposit via the external ledger and removes it.
// A failed payout leaves the deposit, and the pool, untouched.
func (p *Pool) Withdraw(ctx context.Context, caller stake.Identity, index uint64) (uint64, error) {
	logger.Debug("withdrawing deposit", "caller", caller, "index", index)

	p.mu.Lock()
	defer p.mu.Unlock()

	deposit, err := p.stakes.CheckWithdrawable(caller, index, p.now())
	if err != nil {
		return 0, p.fail("withdraw", err)
	}

	if err := p.client.Transfer(ctx, caller, deposit.Amount); err != nil {
		return 0, p.fail("withdraw", reverts.TransferFailed(err.Error()))
	}

	amount := p.stakes.Remove(index)

	metricOps().AddWithLabel(1, map[string]string{"op": "withdraw"})
	metricTotalStaked().Set(int64(p.stakes.TotalStaked()))
	p.record(&Event{Time: p.now(), Kind: EventWithdrawal, Account: caller, Index: index, Amount: amount, TotalStaked: p.stakes.TotalStaked()})

	logger.Info("withdrew deposit", "index", index, "amount", amount)
	return amount, nil
}

// Reward distributes amount across all confirmed deposits pro rata,
// compounding each share into the deposit's principal. On an empty pool it is
// a no-op success returning zero distributed; the external collaborator is
// responsible for not sending funds that cannot be distributed.
func (p *Pool) Reward(amount uint64) (uint64, error) {
	logger.Debug("distributing reward", "amount", amount)

	if amount == 0 {
		return 0, p.fail("reward", reverts.ErrInvalidAmount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	totalStaked := p.stakes.TotalStaked()
	if totalStaked == 0 {
		logger.Info("reward skipped, nothing staked")
		return 0, nil
	}

	shares := distribution.Shares(p.stakes.Amounts(), amount, totalStaked)
	if err := p.stakes.Apply(shares, amount, false); err != nil {
		return 0, p.fail("reward", err)
	}

	metricOps().AddWithLabel(1, map[string]string{"op": "reward"})
	metricTotalStaked().Set(int64(p.stakes.TotalStaked()))
	p.record(&Event{Time: p.now(), Kind: EventReward, Amount: amount, TotalStaked: p.stakes.TotalStaked()})

	logger.Info("distributed reward", "amount", amount, "totalStaked", p.stakes.TotalStaked())
	return amount, nil
}

// Slash reduces staked principal pro rata by up to amount, pays the slashed
// sum to receiver via the external ledger, and returns the slashed sum along
// with the remaining total staked so the caller can verify conservation.
// Deposits are clamped at zero; on an empty pool it is a no-op returning zero.
func (p *Pool) Slash(ctx context.Context, amount uint64, receiver stake.Identity) (uint64, uint64, error) {
	logger.Debug("slashing pool", "amount", amount, "receiver", receiver)

	if amount == 0 {
		return 0, 0, p.fail("slash", reverts.ErrInvalidAmount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	totalStaked := p.stakes.TotalStaked()
	if totalStaked == 0 {
		logger.Info("slash skipped, nothing staked")
		return 0, 0, nil
	}

	alloc, slashed := distribution.Slash(p.stakes.Amounts(), amount)

	if err := p.client.Transfer(ctx, receiver, slashed); err != nil {
		return 0, totalStaked, p.fail("slash", reverts.TransferFailed(err.Error()))
	}
	if err := p.stakes.Apply(alloc, slashed, true); err != nil {
		return 0, totalStaked, p.fail("slash", err)
	}

	metricOps().AddWithLabel(1, map[string]string{"op": "slash"})
	metricTotalStaked().Set(int64(p.stakes.TotalStaked()))
	p.record(&Event{Time: p.now(), Kind: EventSlash, Account: receiver, Amount: slashed, TotalStaked: p.stakes.TotalStaked()})

	logger.Info("slashed pool", "requested", amount, "slashed", slashed, "totalStaked", p.stakes.TotalStaked())
	return slashed, p.stakes.TotalStaked(), nil
}

// nextNonce returns the current nonce and advances it. Callers hold p.mu.
func (p *Pool) nextNonce() uint64 {
	nonce := p.nonce
	p.nonce++
	return nonce
}

func (p *Pool) fail(op string, err error) error {
	metricOpErrors().AddWithLabel(1, map[string]string{"op": op})
	logger.Info("operation failed", "op", op, "error", err)
	return err
}
