package idm

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid": {
			addr: Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		},
		"nil": {
			addr:    nil,
			wantErr: errors.ErrInvalidAddress,
		},
		"too short": {
			addr:    Address{1, 2, 3},
			wantErr: errors.ErrInvalidAddress,
		},
		"zero address": {
			addr:    make(Address, AddressLength),
			wantErr: errors.ErrInvalidAddress,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	want := Address{0x5a, 0xae, 0xb6, 0x05, 0x3f, 0x3e, 0x94, 0xc9, 0xb9, 0xa0,
		0x9f, 0x33, 0x66, 0x94, 0x35, 0xe7, 0xef, 0x1b, 0xea, 0xed}

	bech, err := want.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		raw     string
		want    Address
		wantErr *errors.Error
	}{
		"checksummed hex": {
			raw:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			want: want,
		},
		"lowercase hex without prefix": {
			raw:  "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			want: want,
		},
		"bech32": {
			raw:  bech,
			want: want,
		},
		"zero address": {
			raw:     "0x0000000000000000000000000000000000000000",
			wantErr: errors.ErrInvalidAddress,
		},
		"too short": {
			raw:     "0x5aAeb6053F3E94C9b9A09f",
			wantErr: errors.ErrInvalidAddress,
		},
		"not hex": {
			raw:     "0xZZAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			wantErr: errors.ErrInvalidAddress,
		},
		"broken bech32": {
			raw:     "idm1qqqqqq",
			wantErr: errors.ErrInvalidAddress,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestAddressString(t *testing.T) {
	addr := MustParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addr.String())
	assert.Equal(t, "(nil)", Address(nil).String())
}

func TestAddressJSON(t *testing.T) {
	addr := MustParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	var list []Address
	err = json.Unmarshal([]byte(`["0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "nope"]`), &list)
	assert.True(t, errors.ErrInvalidAddress.Is(err))
}
