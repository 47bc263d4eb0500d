package token

import (
	"github.com/meverselabs/amm/common"
)

var (
	tagTokenName        = byte(0x01)
	tagTokenSymbol      = byte(0x02)
	tagTokenMinter      = byte(0x03)
	tagTokenTotalSupply = byte(0x04)
	tagTokenDecimals    = byte(0x05)
	tagTokenAmount      = byte(0x10)
	tagTokenApprove     = byte(0x12)
)

func makeTokenKey(addr common.Address, tag byte) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tag
	copy(bs[1:], addr[:])
	return bs
}

func makeAllowanceKey(spender common.Address) []byte {
	return makeTokenKey(spender, tagTokenApprove)
}
