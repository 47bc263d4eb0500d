package common

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

type Address = common.Address

// ZeroAddr is the null address, used as the mint source and burn target of ledger events
var ZeroAddr = Address{}

// AddressOne holds the permanently locked pool shares
var AddressOne = common.BigToAddress(big.NewInt(1))

// Lengths of hashes and addresses in bytes.
const (
	// AddressLength is the expected length of the address
	AddressLength = common.AddressLength
)

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	return common.BytesToAddress(b)
}

// BigToAddress returns Address with byte values of b.
// If b is larger than len(h), b will be cropped from the left.
func BigToAddress(b *big.Int) Address {
	return common.BigToAddress(b)
}

// HexToAddress returns Address with byte values of s.
// If s is larger than len(h), s will be cropped from the left.
func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded address or not.
func IsHexAddress(s string) bool {
	return common.IsHexAddress(s)
}

// ParseAddress parses a hex address with or without the 0x prefix
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	h, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddr, errors.WithStack(err)
	}
	if len(h) != AddressLength {
		return ZeroAddr, errors.WithStack(ErrInvalidAddressFormat)
	}
	return BytesToAddress(h), nil
}

// CompareAddress orders addresses by their numeric value
func CompareAddress(a, b Address) int {
	return bytes.Compare(a[:], b[:])
}
