// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var g Goes
	var n atomic.Int32

	for i := 0; i < 10; i++ {
		g.Go(func() { n.Add(1) })
	}
	g.Wait()
	assert.Equal(t, int32(10), n.Load())

	select {
	case <-g.Done():
	case <-time.After(time.Second):
		t.Fatal("Done never closed")
	}
}

func TestSignalWakesWaiter(t *testing.T) {
	var sig Signal
	w := sig.NewWaiter()

	sig.Signal()
	select {
	case <-w.C():
	case <-time.After(time.Second):
		t.Fatal("waiter never woken")
	}
}

func TestBroadcastWakesAllWaiters(t *testing.T) {
	var sig Signal
	var g Goes
	var woken atomic.Int32

	waiters := make([]Waiter, 5)
	for i := range waiters {
		waiters[i] = sig.NewWaiter()
	}
	for _, w := range waiters {
		w := w
		g.Go(func() {
			<-w.C()
			woken.Add(1)
		})
	}

	sig.Broadcast()
	g.Wait()
	assert.Equal(t, int32(5), woken.Load())
}
