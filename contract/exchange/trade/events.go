package trade

import (
	"math/big"

	"github.com/meverselabs/amm/common"
)

// event signatures of the pair
const (
	SyncSignature = "Sync(uint112,uint112)"
	MintSignature = "Mint(address,uint256,uint256)"
	BurnSignature = "Burn(address,uint256,uint256,address)"
	SwapSignature = "Swap(address,uint256,uint256,uint256,uint256,address)"
)

type SyncEvent struct {
	Reserve0 *big.Int
	Reserve1 *big.Int
}

type MintEvent struct {
	Sender  common.Address
	Amount0 *big.Int
	Amount1 *big.Int
}

type BurnEvent struct {
	Sender  common.Address
	Amount0 *big.Int
	Amount1 *big.Int
	To      common.Address
}

type SwapEvent struct {
	Sender     common.Address
	Amount0In  *big.Int
	Amount1In  *big.Int
	Amount0Out *big.Int
	Amount1Out *big.Int
	To         common.Address
}
