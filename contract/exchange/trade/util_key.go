package trade

import (
	"bytes"
	"math/big"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/hash"
)

const (
	// MINIMUM_LIQUIDITY is locked on the first deposit of every pair
	MINIMUM_LIQUIDITY = 1000

	// swap fee is FEE_NUMERATOR / FEE_DENOMINATOR of the input
	FEE_NUMERATOR   = 3
	FEE_DENOMINATOR = 1000

	// protocol fee takes 1 / PROTOCOL_FEE_DIVISOR of the k growth
	PROTOCOL_FEE_DIVISOR = 6

	// LP token metadata
	LP_NAME     = "AMM-LP"
	LP_SYMBOL   = "AMM-LP"
	LP_DECIMALS = 18
)

// InitCodeHash is the versioned fingerprint of the pair template used for address derivation
var InitCodeHash = hash.Hash([]byte("meverselabs/amm/UniSwap/v1"))

var (
	//token
	tagTokenName        = byte(0x01)
	tagTokenSymbol      = byte(0x02)
	tagTokenTotalSupply = byte(0x03)
	tagTokenAmount      = byte(0x04)
	tagTokenApprove     = byte(0x05)

	//pair
	tagFactory            = byte(0x22)
	tagBlockTimestampLast = byte(0x43)
	tagLocked             = byte(0x44)

	//UniSwap
	tagUniToken0               = byte(0x61)
	tagUniToken1               = byte(0x62)
	tagUniReserve0             = byte(0x63)
	tagUniReserve1             = byte(0x64)
	tagUniPrice0CumulativeLast = byte(0x65)
	tagUniPrice1CumulativeLast = byte(0x66)
	tagUniKLast                = byte(0x67)
)

func makeTokenKey(addr common.Address, tag byte) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tag
	copy(bs[1:], addr[:])
	return bs
}

// SortTokens returns sorted token addresses, used to handle return values from pairs sorted in this order
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address, error) {
	if tokenA == tokenB {
		return common.ZeroAddr, common.ZeroAddr, errors.WithStack(ErrIdenticalAddresses)
	}
	token0, token1 := tokenA, tokenB
	if bytes.Compare(tokenA[:], tokenB[:]) > 0 {
		token0, token1 = tokenB, tokenA
	}
	if token0 == common.ZeroAddr {
		return common.ZeroAddr, common.ZeroAddr, errors.WithStack(ErrZeroAddress)
	}
	return token0, token1, nil
}

var pairCache = gcache.New(4096).LRU().Build()

// PairFor calculates the address of the pair of the factory without any state access
func PairFor(factory, tokenA, tokenB common.Address) (common.Address, error) {
	token0, token1, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return common.ZeroAddr, err
	}
	key := string(factory[:]) + string(token0[:]) + string(token1[:])
	if v, err := pairCache.Get(key); err == nil {
		return v.(common.Address), nil
	}
	salt := hash.Hash(token0[:], token1[:])
	pair := crypto.CreateAddress2(factory, salt, InitCodeHash[:])
	pairCache.Set(key, pair)
	return pair, nil
}

// encodeUQ112x112 returns y * 2**112
func encodeUQ112x112(y *big.Int) *big.Int {
	return new(big.Int).Lsh(y, 112)
}
