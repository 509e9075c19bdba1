// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/stakepool-labs/stakepool/stake"
)

// rewardTag replaces the depositor identity when deriving the pool's own
// reward address, so it can never collide with a depositor's namespace.
const rewardTag = stake.Identity("stakepool-reward")

// DeriveAddress deterministically derives the sub-address for an intention
// from the depositor's identity and the pool-wide nonce. The nonce is
// incremented on every derivation regardless of outcome, so no two
// intentions, live or historical, ever share an address.
func DeriveAddress(id stake.Identity, nonce uint64) stake.Address {
	var be [8]byte
	binary.BigEndian.PutUint64(be[:], nonce)

	data := make([]byte, 0, len(id)+8)
	data = append(data, id.Bytes()...)
	data = append(data, be[:]...)

	return stake.Address(blake2b.Sum256(data))
}
