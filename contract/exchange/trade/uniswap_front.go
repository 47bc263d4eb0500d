package trade

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
)

//////////////////////////////////////////////////
// UniSwap : public reader functions
//////////////////////////////////////////////////
func (self *UniSwap) Factory(cc types.ContractLoader) common.Address {
	return self.factory(cc)
}
func (self *UniSwap) Token0(cc types.ContractLoader) common.Address {
	return self.token0(cc)
}
func (self *UniSwap) Token1(cc types.ContractLoader) common.Address {
	return self.token1(cc)
}

// GetReserves returns the cached balances and the unix second of the last update
func (self *UniSwap) GetReserves(cc types.ContractLoader) (*big.Int, *big.Int, uint64) {
	return self.reserves(cc)
}
func (self *UniSwap) Price0CumulativeLast(cc types.ContractLoader) *big.Int {
	return self.price0CumulativeLast(cc).ToBig()
}
func (self *UniSwap) Price1CumulativeLast(cc types.ContractLoader) *big.Int {
	return self.price1CumulativeLast(cc).ToBig()
}
func (self *UniSwap) KLast(cc types.ContractLoader) *big.Int {
	return self.kLast(cc)
}

//////////////////////////////////////////////////
// UniSwap : public writer functions
//////////////////////////////////////////////////

// Initialize binds the tokens, callable once by the factory
func (self *UniSwap) Initialize(cc *types.ContractContext, token0, token1 common.Address) error {
	return self.initialize(cc, token0, token1)
}

// Mint issues shares for the tokens sent to the pair since the last update
func (self *UniSwap) Mint(cc *types.ContractContext, to common.Address) (*big.Int, error) {
	return self.mint(cc, to)
}

// Burn redeems the shares held by the pair itself
func (self *UniSwap) Burn(cc *types.ContractContext, to common.Address) (*big.Int, *big.Int, error) {
	return self.burn(cc, to)
}

// Swap sends the outputs first and checks the fee adjusted invariant afterwards
func (self *UniSwap) Swap(cc *types.ContractContext, amount0Out, amount1Out *big.Int, to common.Address, data []byte) error {
	return self.swap(cc, amount0Out, amount1Out, to, data)
}
func (self *UniSwap) Skim(cc *types.ContractContext, to common.Address) error {
	return self.skim(cc, to)
}
func (self *UniSwap) Sync(cc *types.ContractContext) error {
	return self.sync(cc)
}
