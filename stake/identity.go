// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

// Identity is an opaque, externally issued account identity.
// The pool treats it purely as an aggregation and authorization key.
type Identity string

// Bytes returns byte slice form of the identity.
func (id Identity) Bytes() []byte {
	return []byte(id)
}

// String implements stringer
func (id Identity) String() string {
	return string(id)
}

// IsZero returns true for the empty identity, which no caller may hold.
func (id Identity) IsZero() bool {
	return id == ""
}
