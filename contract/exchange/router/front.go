package router

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
)

//////////////////////////////////////////////////
// Router Reader Functions
//////////////////////////////////////////////////
func (cont *RouterContract) Factory(cc types.ContractLoader) common.Address {
	return cont.factory(cc)
}
func (cont *RouterContract) WETH(cc types.ContractLoader) common.Address {
	return cont.weth(cc)
}
func (cont *RouterContract) Quote(cc types.ContractLoader, amountA, reserveA, reserveB *big.Int) (*big.Int, error) {
	return Quote(amountA, reserveA, reserveB)
}
func (cont *RouterContract) GetAmountOut(cc types.ContractLoader, amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return GetAmountOut(amountIn, reserveIn, reserveOut)
}
func (cont *RouterContract) GetAmountIn(cc types.ContractLoader, amountOut, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return GetAmountIn(amountOut, reserveIn, reserveOut)
}
func (cont *RouterContract) GetAmountsOut(cc types.ContractLoader, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	return GetAmountsOut(cc, cont.factory(cc), amountIn, path)
}
func (cont *RouterContract) GetAmountsIn(cc types.ContractLoader, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	return GetAmountsIn(cc, cont.factory(cc), amountOut, path)
}

//////////////////////////////////////////////////
// Router Writer Functions : deadline is in unix seconds
//////////////////////////////////////////////////
func (cont *RouterContract) AddLiquidity(
	cc *types.ContractContext,
	tokenA, tokenB common.Address,
	amountADesired, amountBDesired, amountAMin, amountBMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, *big.Int, error) {

	return cont.addLiquidity(cc, tokenA, tokenB, amountADesired, amountBDesired, amountAMin, amountBMin, to, deadline)
}
func (cont *RouterContract) AddLiquidityETH(
	cc *types.ContractContext,
	token common.Address,
	amountTokenDesired, amountTokenMin, amountETHMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, *big.Int, error) {

	return cont.addLiquidityETH(cc, token, amountTokenDesired, amountTokenMin, amountETHMin, to, deadline)
}
func (cont *RouterContract) RemoveLiquidity(
	cc *types.ContractContext,
	tokenA, tokenB common.Address,
	liquidity, amountAMin, amountBMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, error) {

	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, err
	}
	return cont.removeLiquidity(cc, tokenA, tokenB, liquidity, amountAMin, amountBMin, to)
}
func (cont *RouterContract) RemoveLiquidityETH(
	cc *types.ContractContext,
	token common.Address,
	liquidity, amountTokenMin, amountETHMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, error) {

	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, err
	}
	return cont.removeLiquidityETH(cc, token, liquidity, amountTokenMin, amountETHMin, to)
}
func (cont *RouterContract) SwapExactTokensForTokens(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapExactTokensForTokens(cc, amountIn, amountOutMin, path, to, deadline)
}
func (cont *RouterContract) SwapTokensForExactTokens(cc *types.ContractContext, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapTokensForExactTokens(cc, amountOut, amountInMax, path, to, deadline)
}
func (cont *RouterContract) SwapExactETHForTokens(cc *types.ContractContext, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapExactETHForTokens(cc, amountOutMin, path, to, deadline)
}
func (cont *RouterContract) SwapTokensForExactETH(cc *types.ContractContext, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapTokensForExactETH(cc, amountOut, amountInMax, path, to, deadline)
}
func (cont *RouterContract) SwapExactTokensForETH(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapExactTokensForETH(cc, amountIn, amountOutMin, path, to, deadline)
}
func (cont *RouterContract) SwapETHForExactTokens(cc *types.ContractContext, amountOut *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	return cont.swapETHForExactTokens(cc, amountOut, path, to, deadline)
}
