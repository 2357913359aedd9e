package idm

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/idm/crypto/bech32"
	"github.com/iov-one/idm/errors"
)

const (
	// AddressLength is the length of all addresses. Addresses are
	// compatible with the Ethereum account format.
	AddressLength = common.AddressLength

	// AddressHRP is the human readable part of the bech32 address
	// representation.
	AddressHRP = "idm"
)

// Address identifies an actor or an object in the registry. It is the
// 20 byte account id of the signer.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// IsZero returns true for an empty or an all zero address. A zero address is
// never a valid actor.
func (a Address) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

// Validate returns an error if the address is not the valid size or if it is
// the zero address.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInvalidAddress, "invalid length %d", len(a))
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrInvalidAddress, "zero address")
	}
	return nil
}

// String returns the checksummed (EIP-55) hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	if len(a) != AddressLength {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return common.BytesToAddress(a).Hex()
}

// Bech32 returns the bech32 representation of this address, using the idm
// human readable part.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(AddressHRP, a)
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any representation supported by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a string")
	}
	if s == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress accepts the hex representation, with or without the 0x
// prefix, and the bech32 representation using the idm human readable
// part.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, AddressHRP+"1") {
		hrp, data, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidAddress, "bech32: %s", err)
		}
		if hrp != AddressHRP {
			return nil, errors.Wrapf(errors.ErrInvalidAddress, "unknown prefix %q", hrp)
		}
		addr := Address(data)
		return addr, addr.Validate()
	}

	if !common.IsHexAddress(s) {
		return nil, errors.Wrapf(errors.ErrInvalidAddress, "not a hex address: %q", s)
	}
	addr := Address(common.HexToAddress(s).Bytes())
	return addr, addr.Validate()
}

// MustParseAddress is like ParseAddress, but panics instead of returning an
// error. Only use with values you control.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}
