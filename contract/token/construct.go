package token

import (
	"math/big"

	"github.com/meverselabs/amm/common"
)

// TokenContractConstruction is the deploy argument of the TokenContract
type TokenContractConstruction struct {
	Name             string
	Symbol           string
	Decimals         uint8
	InitialSupplyMap map[common.Address]*big.Int
}
