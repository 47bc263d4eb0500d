package factory

import (
	"github.com/meverselabs/amm/common"
)

var (
	tagFeeTo       = byte(0x00)
	tagFeeToSetter = byte(0x01)
	tagAllPairs    = byte(0x02)
	tagPair        = byte(0x03)
)

//makePairKey two Token Address -> bytes key
func makePairKey(token0, token1 common.Address) []byte {
	base := make([]byte, 1+common.AddressLength*2)
	base[0] = tagPair
	copy(base[1:], token0[:])
	copy(base[1+common.AddressLength:], token1[:])
	return base
}
