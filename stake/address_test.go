// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := BytesToAddress([]byte("deposit-1"))

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	// without the 0x prefix
	parsed, err = ParseAddress(addr.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("zz" + addr.String()[2:])
	assert.EqualError(t, err, "invalid prefix")
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte{0x7f})

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytesToAddress(t *testing.T) {
	// short input is left-extended
	addr := BytesToAddress([]byte{1, 2})
	assert.Equal(t, byte(1), addr[30])
	assert.Equal(t, byte(2), addr[31])

	// long input is cropped from the left
	long := make([]byte, 40)
	long[39] = 0xee
	assert.Equal(t, byte(0xee), BytesToAddress(long)[31])
}

func TestLockPeriod(t *testing.T) {
	tests := []struct {
		period LockPeriod
		name   string
		days   int
	}{
		{Days90, "days90", 90},
		{Days180, "days180", 180},
		{Days360, "days360", 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.period.String())
			assert.Equal(t, float64(tt.days), tt.period.Duration().Hours()/24)
			assert.True(t, tt.period.Valid())

			parsed, err := ParseLockPeriod(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.period, parsed)
		})
	}

	_, err := ParseLockPeriod("days42")
	assert.Error(t, err)
	assert.False(t, LockPeriod(7).Valid())
}
