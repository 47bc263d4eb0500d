package router

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/exchange/factory"
	"github.com/meverselabs/amm/contract/exchange/trade"
	"github.com/meverselabs/amm/core/types"

	. "github.com/meverselabs/amm/contract/exchange/util"
)

// NativeWrapper is the ledger the router wraps native currency with
type NativeWrapper interface {
	Deposit(cc *types.ContractContext) error
	Withdraw(cc *types.ContractContext, amount *big.Int) error
}

type RouterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RouterContract) Address() common.Address {
	return cont.addr
}
func (cont *RouterContract) Master() common.Address {
	return cont.master
}
func (cont *RouterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *RouterContract) OnCreate(cc *types.ContractContext, Args interface{}) error {
	data, ok := Args.(*RouterContractConstruction)
	if !ok {
		return errors.Wrapf(ErrInvalidRouter, "%T", Args)
	}
	cc.SetContractData([]byte{tagFactory}, data.Factory[:])
	cc.SetContractData([]byte{tagWETH}, data.WETH[:])
	return nil
}

// OnReceive only accepts native currency unwrapped by the WETH contract
func (cont *RouterContract) OnReceive(cc *types.ContractContext, value *big.Int) error {
	if cc.From() != cont.weth(cc) {
		return errors.WithStack(ErrNotWETH)
	}
	return nil
}

func (cont *RouterContract) factory(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFactory}))
}
func (cont *RouterContract) weth(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagWETH}))
}

func (cont *RouterContract) ensure(cc *types.ContractContext, deadline uint64) error {
	if now := cc.LastTimestamp() / uint64(time.Second); now > deadline {
		return errors.Wrapf(ErrExpired, "%v > %v", now, deadline)
	}
	return nil
}

//////////////////////////////////////////////////
// Router : calls into other contracts
//////////////////////////////////////////////////
func (cont *RouterContract) execPair(cc *types.ContractContext, pair common.Address, fn func(p *trade.UniSwap, pcc *types.ContractContext) error) error {
	return cc.Exec(pair, func(c types.Contract, pcc *types.ContractContext) error {
		p, ok := c.(*trade.UniSwap)
		if !ok {
			return errors.Wrap(types.ErrNotExistContract, pair.String())
		}
		return fn(p, pcc)
	})
}
func (cont *RouterContract) depositWETH(cc *types.ContractContext, am *big.Int) error {
	return cc.ExecPayable(cont.weth(cc), am, func(c types.Contract, wcc *types.ContractContext) error {
		w, ok := c.(NativeWrapper)
		if !ok {
			return errors.WithStack(ErrNotWrapper)
		}
		return w.Deposit(wcc)
	})
}
func (cont *RouterContract) withdrawWETH(cc *types.ContractContext, am *big.Int) error {
	return cc.Exec(cont.weth(cc), func(c types.Contract, wcc *types.ContractContext) error {
		w, ok := c.(NativeWrapper)
		if !ok {
			return errors.WithStack(ErrNotWrapper)
		}
		return w.Withdraw(wcc, am)
	})
}

//////////////////////////////////////////////////
// Router : add liquidity
//////////////////////////////////////////////////
func (cont *RouterContract) _addLiquidity(
	cc *types.ContractContext,
	tokenA, tokenB common.Address,
	amountADesired, amountBDesired, amountAMin, amountBMin *big.Int) (*big.Int, *big.Int, error) {

	// create the pair if it doesn't exist yet
	fac := cont.factory(cc)
	if err := cc.Exec(fac, func(c types.Contract, fcc *types.ContractContext) error {
		f, ok := c.(*factory.FactoryContract)
		if !ok {
			return errors.Wrap(types.ErrNotExistContract, fac.String())
		}
		if f.GetPair(fcc, tokenA, tokenB) != ZeroAddress {
			return nil
		}
		_, err := f.CreatePair(fcc, tokenA, tokenB)
		return err
	}); err != nil {
		return nil, nil, err
	}

	reserveA, reserveB, err := GetReserves(cc, fac, tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	if reserveA.Sign() == 0 && reserveB.Sign() == 0 {
		return Clone(amountADesired), Clone(amountBDesired), nil
	}
	amountBOptimal, err := Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return nil, nil, err
	}
	if amountBOptimal.Cmp(amountBDesired) <= 0 {
		if amountBOptimal.Cmp(amountBMin) < 0 {
			return nil, nil, errors.WithStack(ErrInsufficientBAmount)
		}
		return Clone(amountADesired), amountBOptimal, nil
	}
	amountAOptimal, err := Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return nil, nil, err
	}
	if amountAOptimal.Cmp(amountADesired) > 0 {
		return nil, nil, errors.WithStack(ErrInsufficientAAmount)
	}
	if amountAOptimal.Cmp(amountAMin) < 0 {
		return nil, nil, errors.WithStack(ErrInsufficientAAmount)
	}
	return amountAOptimal, Clone(amountBDesired), nil
}

func (cont *RouterContract) mint(cc *types.ContractContext, pair, to common.Address) (*big.Int, error) {
	var liquidity *big.Int
	if err := cont.execPair(cc, pair, func(p *trade.UniSwap, pcc *types.ContractContext) error {
		var err error
		liquidity, err = p.Mint(pcc, to)
		return err
	}); err != nil {
		return nil, err
	}
	return liquidity, nil
}

func (cont *RouterContract) addLiquidity(
	cc *types.ContractContext,
	tokenA, tokenB common.Address,
	amountADesired, amountBDesired, amountAMin, amountBMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, *big.Int, error) {

	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, nil, err
	}
	amountA, amountB, err := cont._addLiquidity(cc, tokenA, tokenB, amountADesired, amountBDesired, amountAMin, amountBMin)
	if err != nil {
		return nil, nil, nil, err
	}
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransferFrom(cc, tokenA, cc.From(), pair, amountA); err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransferFrom(cc, tokenB, cc.From(), pair, amountB); err != nil {
		return nil, nil, nil, err
	}
	liquidity, err := cont.mint(cc, pair, to)
	if err != nil {
		return nil, nil, nil, err
	}
	return amountA, amountB, liquidity, nil
}

// the native value of the call is wrapped, the unused rest is refunded
func (cont *RouterContract) addLiquidityETH(
	cc *types.ContractContext,
	token common.Address,
	amountTokenDesired, amountTokenMin, amountETHMin *big.Int,
	to common.Address, deadline uint64) (*big.Int, *big.Int, *big.Int, error) {

	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, nil, err
	}
	weth := cont.weth(cc)
	value := cc.Value()
	amountToken, amountETH, err := cont._addLiquidity(cc, token, weth, amountTokenDesired, value, amountTokenMin, amountETHMin)
	if err != nil {
		return nil, nil, nil, err
	}
	pair, err := trade.PairFor(cont.factory(cc), token, weth)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransferFrom(cc, token, cc.From(), pair, amountToken); err != nil {
		return nil, nil, nil, err
	}
	if err := cont.depositWETH(cc, amountETH); err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransfer(cc, weth, pair, amountETH); err != nil {
		return nil, nil, nil, err
	}
	liquidity, err := cont.mint(cc, pair, to)
	if err != nil {
		return nil, nil, nil, err
	}
	if value.Cmp(amountETH) > 0 {
		if err := cc.TransferNative(cc.From(), Sub(value, amountETH)); err != nil {
			return nil, nil, nil, err
		}
	}
	return amountToken, amountETH, liquidity, nil
}

//////////////////////////////////////////////////
// Router : remove liquidity
//////////////////////////////////////////////////
func (cont *RouterContract) removeLiquidity(
	cc *types.ContractContext,
	tokenA, tokenB common.Address,
	liquidity, amountAMin, amountBMin *big.Int,
	to common.Address) (*big.Int, *big.Int, error) {

	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	// send liquidity to pair
	if err := SafeTransferFrom(cc, pair, cc.From(), pair, liquidity); err != nil {
		return nil, nil, err
	}
	var amount0, amount1 *big.Int
	if err := cont.execPair(cc, pair, func(p *trade.UniSwap, pcc *types.ContractContext) error {
		var err error
		amount0, amount1, err = p.Burn(pcc, to)
		return err
	}); err != nil {
		return nil, nil, err
	}
	token0, _, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	amountA, amountB := amount0, amount1
	if tokenA != token0 {
		amountA, amountB = amount1, amount0
	}
	if amountA.Cmp(amountAMin) < 0 {
		return nil, nil, errors.WithStack(ErrInsufficientAAmount)
	}
	if amountB.Cmp(amountBMin) < 0 {
		return nil, nil, errors.WithStack(ErrInsufficientBAmount)
	}
	return amountA, amountB, nil
}

func (cont *RouterContract) removeLiquidityETH(
	cc *types.ContractContext,
	token common.Address,
	liquidity, amountTokenMin, amountETHMin *big.Int,
	to common.Address) (*big.Int, *big.Int, error) {

	weth := cont.weth(cc)
	amountToken, amountETH, err := cont.removeLiquidity(cc, token, weth, liquidity, amountTokenMin, amountETHMin, cont.addr)
	if err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, token, to, amountToken); err != nil {
		return nil, nil, err
	}
	if err := cont.withdrawWETH(cc, amountETH); err != nil {
		return nil, nil, err
	}
	if err := cc.TransferNative(to, amountETH); err != nil {
		return nil, nil, err
	}
	return amountToken, amountETH, nil
}

//////////////////////////////////////////////////
// Router : swap
//////////////////////////////////////////////////

// requires the initial amount to have already been sent to the first pair
func (cont *RouterContract) _swap(cc *types.ContractContext, amounts []*big.Int, path []common.Address, _to common.Address) error {
	fac := cont.factory(cc)
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		token0, _, err := trade.SortTokens(input, output)
		if err != nil {
			return err
		}
		amountOut := amounts[i+1]
		amount0Out, amount1Out := amountOut, Zero
		if input == token0 {
			amount0Out, amount1Out = Zero, amountOut
		}
		to := _to
		if i < len(path)-2 {
			if to, err = trade.PairFor(fac, output, path[i+2]); err != nil {
				return err
			}
		}
		pair, err := trade.PairFor(fac, input, output)
		if err != nil {
			return err
		}
		if err := cont.execPair(cc, pair, func(p *trade.UniSwap, pcc *types.ContractContext) error {
			return p.Swap(pcc, amount0Out, amount1Out, to, nil)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (cont *RouterContract) firstPair(cc types.ContractLoader, path []common.Address) (common.Address, error) {
	if len(path) < 2 {
		return ZeroAddress, errors.WithStack(ErrInvalidPath)
	}
	return trade.PairFor(cont.factory(cc), path[0], path[1])
}

func (cont *RouterContract) swapExactTokensForTokens(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	amounts, err := GetAmountsOut(cc, cont.factory(cc), amountIn, path)
	if err != nil {
		return nil, err
	}
	if amounts[len(amounts)-1].Cmp(amountOutMin) < 0 {
		return nil, errors.WithStack(ErrInsufficientOutputAmount)
	}
	pair, err := cont.firstPair(cc, path)
	if err != nil {
		return nil, err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (cont *RouterContract) swapTokensForExactTokens(cc *types.ContractContext, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	amounts, err := GetAmountsIn(cc, cont.factory(cc), amountOut, path)
	if err != nil {
		return nil, err
	}
	if amounts[0].Cmp(amountInMax) > 0 {
		return nil, errors.WithStack(ErrExcessiveInputAmount)
	}
	pair, err := cont.firstPair(cc, path)
	if err != nil {
		return nil, err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (cont *RouterContract) swapExactETHForTokens(cc *types.ContractContext, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	weth := cont.weth(cc)
	if len(path) < 2 || path[0] != weth {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts, err := GetAmountsOut(cc, cont.factory(cc), cc.Value(), path)
	if err != nil {
		return nil, err
	}
	if amounts[len(amounts)-1].Cmp(amountOutMin) < 0 {
		return nil, errors.WithStack(ErrInsufficientOutputAmount)
	}
	if err := cont.depositWETH(cc, amounts[0]); err != nil {
		return nil, err
	}
	pair, err := cont.firstPair(cc, path)
	if err != nil {
		return nil, err
	}
	if err := SafeTransfer(cc, weth, pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (cont *RouterContract) swapTokensForExactETH(cc *types.ContractContext, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	weth := cont.weth(cc)
	if len(path) < 2 || path[len(path)-1] != weth {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts, err := GetAmountsIn(cc, cont.factory(cc), amountOut, path)
	if err != nil {
		return nil, err
	}
	if amounts[0].Cmp(amountInMax) > 0 {
		return nil, errors.WithStack(ErrExcessiveInputAmount)
	}
	return amounts, cont.swapToETH(cc, amounts, path, to)
}

func (cont *RouterContract) swapExactTokensForETH(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	weth := cont.weth(cc)
	if len(path) < 2 || path[len(path)-1] != weth {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts, err := GetAmountsOut(cc, cont.factory(cc), amountIn, path)
	if err != nil {
		return nil, err
	}
	if amounts[len(amounts)-1].Cmp(amountOutMin) < 0 {
		return nil, errors.WithStack(ErrInsufficientOutputAmount)
	}
	return amounts, cont.swapToETH(cc, amounts, path, to)
}

// pulls the input from the caller, unwraps the final WETH output and sends it to to
func (cont *RouterContract) swapToETH(cc *types.ContractContext, amounts []*big.Int, path []common.Address, to common.Address) error {
	pair, err := cont.firstPair(cc, path)
	if err != nil {
		return err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), pair, amounts[0]); err != nil {
		return err
	}
	if err := cont._swap(cc, amounts, path, cont.addr); err != nil {
		return err
	}
	out := amounts[len(amounts)-1]
	if err := cont.withdrawWETH(cc, out); err != nil {
		return err
	}
	return cc.TransferNative(to, out)
}

func (cont *RouterContract) swapETHForExactTokens(cc *types.ContractContext, amountOut *big.Int, path []common.Address, to common.Address, deadline uint64) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	weth := cont.weth(cc)
	if len(path) < 2 || path[0] != weth {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	amounts, err := GetAmountsIn(cc, cont.factory(cc), amountOut, path)
	if err != nil {
		return nil, err
	}
	value := cc.Value()
	if amounts[0].Cmp(value) > 0 {
		return nil, errors.WithStack(ErrExcessiveInputAmount)
	}
	if err := cont.depositWETH(cc, amounts[0]); err != nil {
		return nil, err
	}
	pair, err := cont.firstPair(cc, path)
	if err != nil {
		return nil, err
	}
	if err := SafeTransfer(cc, weth, pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	// refund dust eth, if any
	if value.Cmp(amounts[0]) > 0 {
		if err := cc.TransferNative(cc.From(), Sub(value, amounts[0])); err != nil {
			return nil, err
		}
	}
	return amounts, nil
}
