package util

import (
	"math/big"

	"github.com/meverselabs/amm/common"
)

var (
	Zero       = big.NewInt(0)
	MaxUint256 = Sub(Exp(big.NewInt(2), big.NewInt(256)), big.NewInt(1))
	MaxUint112 = Sub(Exp(big.NewInt(2), big.NewInt(112)), big.NewInt(1))

	ZeroAddress = common.ZeroAddr
)
