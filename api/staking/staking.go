// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes the pool over REST. The caller identity comes from
// the X-Pool-Identity header, which the host gateway is trusted to have
// authenticated; this layer only maps it onto pool operations and translates
// the pool's error taxonomy into status codes.
package staking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/stakepool-labs/stakepool/api/restutil"
	"github.com/stakepool-labs/stakepool/pool"
	"github.com/stakepool-labs/stakepool/pool/reverts"
	"github.com/stakepool-labs/stakepool/stake"
)

// IdentityHeader carries the host-authenticated caller identity.
const IdentityHeader = "X-Pool-Identity"

type Staking struct {
	pool *pool.Pool

	// display strings of derived addresses, keyed by stake.Address
	displayCache *lru.Cache
}

func New(p *pool.Pool) *Staking {
	cache, _ := lru.New(1024)
	return &Staking{
		pool:         p,
		displayCache: cache,
	}
}

func (s *Staking) display(addr stake.Address) string {
	if v, ok := s.displayCache.Get(addr); ok {
		return v.(string)
	}
	d := addr.String()
	s.displayCache.Add(addr, d)
	return d
}

func caller(req *http.Request) (stake.Identity, error) {
	id := req.Header.Get(IdentityHeader)
	if id == "" {
		return "", restutil.Forbidden(errors.New("missing " + IdentityHeader + " header"))
	}
	return stake.Identity(id), nil
}

func depositIndex(req *http.Request) (uint64, error) {
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return 0, restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	return index, nil
}

// convertError maps the pool's error taxonomy onto http statuses.
func convertError(err error) error {
	switch {
	case errors.Is(err, reverts.ErrInvalidAmount):
		return restutil.BadRequest(err)
	case errors.Is(err, reverts.ErrUnauthorized):
		return restutil.Forbidden(err)
	case errors.Is(err, reverts.ErrDepositNotFound):
		return restutil.NotFound(err)
	case errors.Is(err, reverts.ErrInsufficientFunds), errors.Is(err, reverts.ErrLockPeriodNotExpired):
		return restutil.Conflict(err)
	case reverts.IsTransferFailed(err):
		return restutil.BadGateway(err)
	default:
		return err
	}
}

func (s *Staking) handleCreateDeposit(w http.ResponseWriter, req *http.Request) error {
	id, err := caller(req)
	if err != nil {
		return err
	}
	var body CreateDepositRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}

	it, err := s.pool.CreateIntention(id, body.Amount, body.LockPeriod)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, s.convertIntention(&it, s.pool.ExpiryWindow()))
}

func (s *Staking) handleConfirmDeposit(w http.ResponseWriter, req *http.Request) error {
	id, err := caller(req)
	if err != nil {
		return err
	}
	index, err := depositIndex(req)
	if err != nil {
		return err
	}

	deposit, err := s.pool.ConfirmDeposit(req.Context(), id, index)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, s.convertDeposit(&deposit))
}

func (s *Staking) handleWithdrawDeposit(w http.ResponseWriter, req *http.Request) error {
	id, err := caller(req)
	if err != nil {
		return err
	}
	index, err := depositIndex(req)
	if err != nil {
		return err
	}

	amount, err := s.pool.Withdraw(req.Context(), id, index)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &WithdrawResult{Amount: amount})
}

func (s *Staking) handleReward(w http.ResponseWriter, req *http.Request) error {
	var body RewardRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}

	distributed, err := s.pool.Reward(body.Amount)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &RewardResult{
		Distributed: distributed,
		TotalStaked: s.pool.TotalStaked(),
	})
}

func (s *Staking) handleSlash(w http.ResponseWriter, req *http.Request) error {
	var body SlashRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Receiver == "" {
		return restutil.BadRequest(errors.New("receiver: empty"))
	}

	slashed, remaining, err := s.pool.Slash(req.Context(), body.Amount, stake.Identity(body.Receiver))
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &SlashResult{
		Slashed:     slashed,
		TotalStaked: remaining,
	})
}

func (s *Staking) handleGetDeposits(w http.ResponseWriter, req *http.Request) error {
	id, err := caller(req)
	if err != nil {
		return err
	}

	deposits := s.pool.DepositsOf(id)
	out := make([]*Deposit, 0, len(deposits))
	for i := range deposits {
		out = append(out, s.convertDeposit(&deposits[i]))
	}
	return restutil.WriteJSON(w, out)
}

func (s *Staking) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, &PoolStatus{
		TotalStaked:       s.pool.TotalStaked(),
		PendingIntentions: s.pool.PendingCount(),
	})
}

func (s *Staking) handleGetPendingIntentions(w http.ResponseWriter, _ *http.Request) error {
	window := s.pool.ExpiryWindow()
	pending := s.pool.PendingIntentions()
	out := make([]*CreatedIntention, 0, len(pending))
	for i := range pending {
		out = append(out, s.convertIntention(&pending[i], window))
	}
	return restutil.WriteJSON(w, out)
}

func (s *Staking) handleGetAddress(w http.ResponseWriter, req *http.Request) error {
	addr, err := stake.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}

	info := AddressInfo{Address: addr.String(), Display: s.display(addr)}
	switch {
	case addr == s.pool.RewardAddress():
		info.Kind = "reward"
	default:
		for _, d := range s.pool.Deposits() {
			if d.Address == addr {
				info.Kind = "deposit"
				index := d.Index
				info.Index = &index
				break
			}
		}
		if info.Kind == "" {
			for _, it := range s.pool.PendingIntentions() {
				if it.Address == addr {
					info.Kind = "intention"
					index := it.Index
					info.Index = &index
					break
				}
			}
		}
		if info.Kind == "" {
			return restutil.NotFound(errors.New("address not in use"))
		}
	}
	return restutil.WriteJSON(w, &info)
}

func (s *Staking) handleGetRewardAddress(w http.ResponseWriter, _ *http.Request) error {
	addr := s.pool.RewardAddress()
	return restutil.WriteJSON(w, &RewardAddress{
		Address: addr.String(),
		Display: s.display(addr),
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/deposits").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handleCreateDeposit))
	sub.Path("/deposits").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetDeposits))
	sub.Path("/deposits/{index}/confirm").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handleConfirmDeposit))
	sub.Path("/deposits/{index}/withdraw").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handleWithdrawDeposit))
	sub.Path("/pool").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/pool/pending").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPendingIntentions))
	sub.Path("/pool/reward").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handleReward))
	sub.Path("/pool/slash").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(s.handleSlash))
	sub.Path("/pool/reward-address").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetRewardAddress))
	sub.Path("/addresses/{address}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(s.handleGetAddress))
}
