package factory

import (
	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
)

//////////////////////////////////////////////////
// Factory Reader Functions
//////////////////////////////////////////////////

// FeeTo is the protocol fee recipient, the zero address turns the fee off
func (cont *FactoryContract) FeeTo(cc types.ContractLoader) common.Address {
	return cont.feeTo(cc)
}
func (cont *FactoryContract) FeeToSetter(cc types.ContractLoader) common.Address {
	return cont.feeToSetter(cc)
}

// GetPair returns the zero address when no pair exists
func (cont *FactoryContract) GetPair(cc types.ContractLoader, tokenA, tokenB common.Address) common.Address {
	return cont.getPair(cc, tokenA, tokenB)
}
func (cont *FactoryContract) AllPairs(cc types.ContractLoader, i uint64) (common.Address, error) {
	return cont.allPairs(cc, i)
}
func (cont *FactoryContract) AllPairsLength(cc types.ContractLoader) uint64 {
	return cont.allPairsLength(cc)
}
func (cont *FactoryContract) AllPairList(cc types.ContractLoader) []common.Address {
	return cont.allPairList(cc)
}

//////////////////////////////////////////////////
// Factory Writer Functions
//////////////////////////////////////////////////
func (cont *FactoryContract) CreatePair(cc *types.ContractContext, tokenA, tokenB common.Address) (common.Address, error) {
	return cont.createPair(cc, tokenA, tokenB)
}
func (cont *FactoryContract) SetFeeTo(cc *types.ContractContext, feeTo common.Address) error {
	return cont.setFeeTo(cc, feeTo)
}
func (cont *FactoryContract) SetFeeToSetter(cc *types.ContractContext, feeToSetter common.Address) error {
	return cont.setFeeToSetter(cc, feeToSetter)
}
