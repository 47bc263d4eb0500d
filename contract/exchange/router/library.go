package router

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/exchange/trade"
	"github.com/meverselabs/amm/core/types"

	. "github.com/meverselabs/amm/contract/exchange/util"
)

// given some amount of an asset and pair reserves, returns an equivalent amount of the other asset
func Quote(amountA, reserveA, reserveB *big.Int) (*big.Int, error) {
	if amountA.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientAmount)
	}
	if reserveA.Sign() <= 0 || reserveB.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientLiquidity)
	}
	return MulDiv(amountA, reserveB, reserveA), nil
}

// given an input amount of an asset and pair reserves, returns the maximum output amount of the other asset
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientInputAmount)
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientLiquidity)
	}
	amountInWithFee := MulC(amountIn, trade.FEE_DENOMINATOR-trade.FEE_NUMERATOR)
	numerator := Mul(amountInWithFee, reserveOut)
	denominator := Add(MulC(reserveIn, trade.FEE_DENOMINATOR), amountInWithFee)
	return Div(numerator, denominator), nil
}

// given an output amount of an asset and pair reserves, returns a required input amount of the other asset
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountOut.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientOutputAmount)
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientLiquidity)
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, errors.WithStack(ErrInsufficientOutputAmount)
	}
	numerator := MulC(Mul(reserveIn, amountOut), trade.FEE_DENOMINATOR)
	denominator := MulC(Sub(reserveOut, amountOut), trade.FEE_DENOMINATOR-trade.FEE_NUMERATOR)
	return AddC(Div(numerator, denominator), 1), nil
}

// fetches and sorts the reserves for a pair
func GetReserves(cc types.ContractLoader, factory, tokenA, tokenB common.Address) (*big.Int, *big.Int, error) {
	token0, _, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	pair, err := trade.PairFor(factory, tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	p, err := uniSwap(cc, pair)
	if err != nil {
		return nil, nil, err
	}
	reserve0, reserve1, _ := p.GetReserves(cc.ContractLoader(pair))
	if tokenA == token0 {
		return reserve0, reserve1, nil
	}
	return reserve1, reserve0, nil
}

// performs chained getAmountOut calculations on any number of pairs
func GetAmountsOut(cc types.ContractLoader, factory common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts := make([]*big.Int, len(path))
	amounts[0] = Clone(amountIn)
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := GetReserves(cc, factory, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		if amounts[i+1], err = GetAmountOut(amounts[i], reserveIn, reserveOut); err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// performs chained getAmountIn calculations on any number of pairs
func GetAmountsIn(cc types.ContractLoader, factory common.Address, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts := make([]*big.Int, len(path))
	amounts[len(amounts)-1] = Clone(amountOut)
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := GetReserves(cc, factory, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		if amounts[i-1], err = GetAmountIn(amounts[i], reserveIn, reserveOut); err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

func uniSwap(cc types.ContractLoader, pair common.Address) (*trade.UniSwap, error) {
	cont, err := cc.Contract(pair)
	if err != nil {
		return nil, err
	}
	p, ok := cont.(*trade.UniSwap)
	if !ok {
		return nil, errors.Wrap(types.ErrNotExistContract, pair.String())
	}
	return p, nil
}
