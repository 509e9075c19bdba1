// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// LockPeriod is the symbolic term a deposit is locked for.
type LockPeriod uint8

const (
	Days90 LockPeriod = iota
	Days180
	Days360
)

var (
	_ json.Marshaler   = (*LockPeriod)(nil)
	_ json.Unmarshaler = (*LockPeriod)(nil)
)

// Duration resolves the symbolic period to its lock duration.
func (p LockPeriod) Duration() time.Duration {
	switch p {
	case Days90:
		return 90 * 24 * time.Hour
	case Days180:
		return 180 * 24 * time.Hour
	case Days360:
		return 360 * 24 * time.Hour
	}
	return 0
}

// Valid reports whether p is one of the enumerated periods.
func (p LockPeriod) Valid() bool {
	return p <= Days360
}

// String implements stringer
func (p LockPeriod) String() string {
	switch p {
	case Days90:
		return "days90"
	case Days180:
		return "days180"
	case Days360:
		return "days360"
	}
	return "unknown"
}

// ParseLockPeriod converts the string form back into a LockPeriod.
func ParseLockPeriod(s string) (LockPeriod, error) {
	switch s {
	case "days90":
		return Days90, nil
	case "days180":
		return Days180, nil
	case "days360":
		return Days360, nil
	}
	return 0, errors.Errorf("unknown lock period %q", s)
}

// MarshalJSON implements json.Marshaler.
func (p *LockPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *LockPeriod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLockPeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
