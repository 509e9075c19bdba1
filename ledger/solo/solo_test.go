// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool-labs/stakepool/stake"
)

func TestFundAndBalance(t *testing.T) {
	l := New()
	addr := stake.BytesToAddress([]byte("addr"))

	balance, err := l.BalanceAt(context.Background(), addr)
	require.NoError(t, err)
	assert.Zero(t, balance)

	l.Fund(addr, 500)
	l.Fund(addr, 250)

	balance, err = l.BalanceAt(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), balance)
}

func TestTransfer(t *testing.T) {
	l := New()

	require.NoError(t, l.Transfer(context.Background(), "alice", 100))
	assert.Equal(t, uint64(100), l.AccountBalance("alice"))

	assert.Error(t, l.Transfer(context.Background(), "", 100))

	l.FailTransfers(errors.New("service down"))
	assert.EqualError(t, l.Transfer(context.Background(), "alice", 1), "service down")
	assert.Equal(t, uint64(100), l.AccountBalance("alice"))

	l.FailTransfers(nil)
	require.NoError(t, l.Transfer(context.Background(), "alice", 1))
	assert.Equal(t, uint64(101), l.AccountBalance("alice"))
}
