package idmtest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/idm"
)

// SequenceAddress returns a valid address that is deterministically created
// from the given number. Different numbers always produce different
// addresses. Zero is not allowed, as it would produce the zero address.
func SequenceAddress(n uint64) idm.Address {
	if n == 0 {
		panic("zero address is not valid")
	}
	addr := make(idm.Address, idm.AddressLength)
	copy(addr, "idmtest:")
	binary.BigEndian.PutUint64(addr[idm.AddressLength-8:], n)
	return addr
}

// SequenceAddresses returns count unique addresses, starting with the one
// created from the given number.
func SequenceAddresses(first uint64, count int) []idm.Address {
	res := make([]idm.Address, count)
	for i := range res {
		res[i] = SequenceAddress(first + uint64(i))
	}
	return res
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// idm.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) idm.Address {
	t.Helper()

	addr, err := idm.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
