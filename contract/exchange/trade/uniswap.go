package trade

import (
	"math/big"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"

	. "github.com/meverselabs/amm/contract/exchange/util"
)

// FeeSource is the factory side of the protocol fee
type FeeSource interface {
	FeeTo(cc types.ContractLoader) common.Address
}

// FlashSwapCallee receives the optimistic outputs of a swap called with data
type FlashSwapCallee interface {
	UniswapV2Call(cc *types.ContractContext, sender common.Address, amount0, amount1 *big.Int, data []byte) error
}

// UniSwap is the constant product pair, its master is the factory
type UniSwap struct {
	LPToken
	addr   common.Address
	master common.Address
}

func (self *UniSwap) Address() common.Address {
	return self.addr
}

func (self *UniSwap) Master() common.Address {
	return self.master
}

func (self *UniSwap) Init(addr common.Address, master common.Address) {
	self.addr = addr
	self.master = master
}

func (self *UniSwap) OnCreate(cc *types.ContractContext, Args interface{}) error {
	self._setName(cc, LP_NAME)
	self._setSymbol(cc, LP_SYMBOL)
	cc.SetContractData([]byte{tagFactory}, self.master[:])
	return nil
}

//////////////////////////////////////////////////
// UniSwap Contract : getter function
//////////////////////////////////////////////////
func (self *UniSwap) factory(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFactory}))
}
func (self *UniSwap) token0(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagUniToken0}))
}
func (self *UniSwap) token1(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagUniToken1}))
}
func (self *UniSwap) reserve0(cc types.ContractLoader) *big.Int {
	return FromBytes(cc.ContractData([]byte{tagUniReserve0}))
}
func (self *UniSwap) reserve1(cc types.ContractLoader) *big.Int {
	return FromBytes(cc.ContractData([]byte{tagUniReserve1}))
}
func (self *UniSwap) blockTimestampLast(cc types.ContractLoader) uint64 {
	return FromBytes(cc.ContractData([]byte{tagBlockTimestampLast})).Uint64()
}
func (self *UniSwap) reserves(cc types.ContractLoader) (*big.Int, *big.Int, uint64) {
	return self.reserve0(cc), self.reserve1(cc), self.blockTimestampLast(cc)
}
func (self *UniSwap) price0CumulativeLast(cc types.ContractLoader) *uint256.Int {
	return new(uint256.Int).SetBytes(cc.ContractData([]byte{tagUniPrice0CumulativeLast}))
}
func (self *UniSwap) price1CumulativeLast(cc types.ContractLoader) *uint256.Int {
	return new(uint256.Int).SetBytes(cc.ContractData([]byte{tagUniPrice1CumulativeLast}))
}
func (self *UniSwap) kLast(cc types.ContractLoader) *big.Int {
	return FromBytes(cc.ContractData([]byte{tagUniKLast}))
}

// zero address when the factory does not expose a fee recipient
func (self *UniSwap) feeTo(cc types.ContractLoader) common.Address {
	f := self.factory(cc)
	cont, err := cc.Contract(f)
	if err != nil {
		return ZeroAddress
	}
	src, ok := cont.(FeeSource)
	if !ok {
		return ZeroAddress
	}
	return src.FeeTo(cc.ContractLoader(f))
}

//////////////////////////////////////////////////
// UniSwap Contract : setter function
//////////////////////////////////////////////////
func (self *UniSwap) setReserves(cc *types.ContractContext, reserve0, reserve1 *big.Int) {
	cc.SetContractData([]byte{tagUniReserve0}, reserve0.Bytes())
	cc.SetContractData([]byte{tagUniReserve1}, reserve1.Bytes())
}
func (self *UniSwap) setBlockTimestampLast(cc *types.ContractContext, ts uint64) {
	cc.SetContractData([]byte{tagBlockTimestampLast}, new(big.Int).SetUint64(ts).Bytes())
}
func (self *UniSwap) setKLast(cc *types.ContractContext, kLast *big.Int) {
	cc.SetContractData([]byte{tagUniKLast}, kLast.Bytes())
}

// the guard lives in the pair storage so nested calls of the same atomic call observe it
func (self *UniSwap) lock(cc *types.ContractContext) error {
	if len(cc.ContractData([]byte{tagLocked})) > 0 {
		return errors.WithStack(ErrLocked)
	}
	cc.SetContractData([]byte{tagLocked}, []byte{1})
	return nil
}
func (self *UniSwap) unlock(cc *types.ContractContext) {
	cc.SetContractData([]byte{tagLocked}, nil)
}

//////////////////////////////////////////////////
// UniSwap Contract : private function
//////////////////////////////////////////////////
func (self *UniSwap) initialize(cc *types.ContractContext, _token0, _token1 common.Address) error {
	if cc.From() != self.factory(cc) {
		return NewForbiddenError(cc.From(), self.factory(cc))
	}
	if self.token0(cc) != ZeroAddress {
		return errors.WithStack(ErrAlreadyInitialized)
	}
	cc.SetContractData([]byte{tagUniToken0}, _token0[:])
	cc.SetContractData([]byte{tagUniToken1}, _token1[:])
	return nil
}

// update reserves and, on the first call per second, price accumulators
func (self *UniSwap) _update(cc *types.ContractContext, balance0, balance1, _reserve0, _reserve1 *big.Int) error {
	if balance0.Cmp(MaxUint112) > 0 || balance1.Cmp(MaxUint112) > 0 {
		return errors.WithStack(ErrOverflow)
	}
	blockTimestamp := cc.LastTimestamp() / uint64(time.Second)
	last := self.blockTimestampLast(cc)
	if blockTimestamp > last && _reserve0.Sign() != 0 && _reserve1.Sign() != 0 {
		timeElapsed := new(uint256.Int).SetUint64(blockTimestamp - last)

		price0, _ := uint256.FromBig(Div(encodeUQ112x112(_reserve1), _reserve0))
		acc0 := self.price0CumulativeLast(cc)
		acc0.Add(acc0, price0.Mul(price0, timeElapsed))
		cc.SetContractData([]byte{tagUniPrice0CumulativeLast}, acc0.Bytes())

		price1, _ := uint256.FromBig(Div(encodeUQ112x112(_reserve0), _reserve1))
		acc1 := self.price1CumulativeLast(cc)
		acc1.Add(acc1, price1.Mul(price1, timeElapsed))
		cc.SetContractData([]byte{tagUniPrice1CumulativeLast}, acc1.Bytes())
	}
	self.setReserves(cc, balance0, balance1)
	if blockTimestamp != last {
		self.setBlockTimestampLast(cc, blockTimestamp)
	}
	cc.EmitEvent(SyncSignature, &SyncEvent{Reserve0: Clone(balance0), Reserve1: Clone(balance1)})
	return nil
}

// if fee is on, mint liquidity equivalent to 1/6th of the growth in sqrt(k)
func (self *UniSwap) _mintFee(cc *types.ContractContext, _reserve0, _reserve1 *big.Int) (bool, error) {
	feeTo := self.feeTo(cc)
	feeOn := feeTo != ZeroAddress
	_kLast := self.kLast(cc)
	if feeOn {
		if _kLast.Sign() != 0 {
			rootK := Sqrt(Mul(_reserve0, _reserve1))
			rootKLast := Sqrt(_kLast)
			if rootK.Cmp(rootKLast) > 0 {
				numerator := Mul(self.totalSupply(cc), Sub(rootK, rootKLast))
				denominator := Add(MulC(rootK, PROTOCOL_FEE_DIVISOR-1), rootKLast)
				liquidity := Div(numerator, denominator)
				if liquidity.Sign() > 0 {
					if err := self._mint(cc, feeTo, liquidity); err != nil {
						return false, err
					}
				}
			}
		}
	} else if _kLast.Sign() != 0 {
		self.setKLast(cc, Zero)
	}
	return feeOn, nil
}

func (self *UniSwap) balances(cc *types.ContractContext, _token0, _token1 common.Address) (*big.Int, *big.Int, error) {
	balance0, err := TokenBalanceOf(cc, _token0, self.addr)
	if err != nil {
		return nil, nil, err
	}
	balance1, err := TokenBalanceOf(cc, _token1, self.addr)
	if err != nil {
		return nil, nil, err
	}
	return balance0, balance1, nil
}

func (self *UniSwap) mint(cc *types.ContractContext, to common.Address) (*big.Int, error) {
	if err := self.lock(cc); err != nil {
		return nil, err
	}
	defer self.unlock(cc)

	_reserve0, _reserve1, _ := self.reserves(cc)
	balance0, balance1, err := self.balances(cc, self.token0(cc), self.token1(cc))
	if err != nil {
		return nil, err
	}
	amount0 := Sub(balance0, _reserve0)
	amount1 := Sub(balance1, _reserve1)
	if amount0.Sign() < 0 || amount1.Sign() < 0 {
		return nil, errors.WithStack(ErrInsufficientLiquidityMinted)
	}

	feeOn, err := self._mintFee(cc, _reserve0, _reserve1)
	if err != nil {
		return nil, err
	}
	// must be read after _mintFee since it can mint
	_totalSupply := self.totalSupply(cc)
	var liquidity *big.Int
	if _totalSupply.Sign() == 0 {
		liquidity = SubC(Sqrt(Mul(amount0, amount1)), MINIMUM_LIQUIDITY)
		if liquidity.Sign() <= 0 {
			return nil, errors.WithStack(ErrInsufficientLiquidityMinted)
		}
		if err := self._mint(cc, common.AddressOne, big.NewInt(MINIMUM_LIQUIDITY)); err != nil {
			return nil, err
		}
	} else {
		liquidity = Min(MulDiv(amount0, _totalSupply, _reserve0), MulDiv(amount1, _totalSupply, _reserve1))
	}
	if liquidity.Sign() <= 0 {
		return nil, errors.WithStack(ErrInsufficientLiquidityMinted)
	}
	if err := self._mint(cc, to, liquidity); err != nil {
		return nil, err
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return nil, err
	}
	if feeOn {
		self.setKLast(cc, Mul(balance0, balance1))
	}
	cc.EmitEvent(MintSignature, &MintEvent{Sender: cc.From(), Amount0: amount0, Amount1: amount1})
	return liquidity, nil
}

func (self *UniSwap) burn(cc *types.ContractContext, to common.Address) (*big.Int, *big.Int, error) {
	if err := self.lock(cc); err != nil {
		return nil, nil, err
	}
	defer self.unlock(cc)

	_reserve0, _reserve1, _ := self.reserves(cc)
	_token0, _token1 := self.token0(cc), self.token1(cc)
	liquidity := self.balanceOf(cc, self.addr)

	feeOn, err := self._mintFee(cc, _reserve0, _reserve1)
	if err != nil {
		return nil, nil, err
	}
	_totalSupply := self.totalSupply(cc)
	if _totalSupply.Sign() == 0 {
		return nil, nil, errors.WithStack(ErrInsufficientLiquidityBurned)
	}
	// paid out of the reserves, unsynced donations stay for skim or sync
	amount0 := MulDiv(liquidity, _reserve0, _totalSupply)
	amount1 := MulDiv(liquidity, _reserve1, _totalSupply)
	if amount0.Sign() <= 0 || amount1.Sign() <= 0 {
		return nil, nil, errors.WithStack(ErrInsufficientLiquidityBurned)
	}
	if err := self._burn(cc, self.addr, liquidity); err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, _token0, to, amount0); err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, _token1, to, amount1); err != nil {
		return nil, nil, err
	}
	balance0, balance1, err := self.balances(cc, _token0, _token1)
	if err != nil {
		return nil, nil, err
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return nil, nil, err
	}
	if feeOn {
		self.setKLast(cc, Mul(balance0, balance1))
	}
	cc.EmitEvent(BurnSignature, &BurnEvent{Sender: cc.From(), Amount0: amount0, Amount1: amount1, To: to})
	return amount0, amount1, nil
}

func (self *UniSwap) swap(cc *types.ContractContext, amount0Out, amount1Out *big.Int, to common.Address, data []byte) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	if amount0Out.Sign() < 0 || amount1Out.Sign() < 0 {
		return errors.WithStack(ErrInsufficientOutputAmount)
	}
	if amount0Out.Sign() == 0 && amount1Out.Sign() == 0 {
		return errors.WithStack(ErrInsufficientOutputAmount)
	}
	_reserve0, _reserve1, _ := self.reserves(cc)
	if amount0Out.Cmp(_reserve0) >= 0 || amount1Out.Cmp(_reserve1) >= 0 {
		return errors.WithStack(ErrInsufficientLiquidity)
	}

	_token0, _token1 := self.token0(cc), self.token1(cc)
	if to == _token0 || to == _token1 {
		return errors.WithStack(ErrInvalidTo)
	}
	// optimistically transfer tokens
	if amount0Out.Sign() > 0 {
		if err := SafeTransfer(cc, _token0, to, amount0Out); err != nil {
			return err
		}
	}
	if amount1Out.Sign() > 0 {
		if err := SafeTransfer(cc, _token1, to, amount1Out); err != nil {
			return err
		}
	}
	if len(data) > 0 {
		sender := cc.From()
		if err := cc.Exec(to, func(cont types.Contract, tcc *types.ContractContext) error {
			callee, ok := cont.(FlashSwapCallee)
			if !ok {
				return errors.WithStack(ErrNotFlashSwapCallee)
			}
			return callee.UniswapV2Call(tcc, sender, Clone(amount0Out), Clone(amount1Out), data)
		}); err != nil {
			return err
		}
	}
	balance0, balance1, err := self.balances(cc, _token0, _token1)
	if err != nil {
		return err
	}

	amount0In := big.NewInt(0)
	if rest := Sub(_reserve0, amount0Out); balance0.Cmp(rest) > 0 {
		amount0In = Sub(balance0, rest)
	}
	amount1In := big.NewInt(0)
	if rest := Sub(_reserve1, amount1Out); balance1.Cmp(rest) > 0 {
		amount1In = Sub(balance1, rest)
	}
	if amount0In.Sign() == 0 && amount1In.Sign() == 0 {
		return errors.WithStack(ErrInsufficientInputAmount)
	}

	balance0Adjusted := Sub(MulC(balance0, FEE_DENOMINATOR), MulC(amount0In, FEE_NUMERATOR))
	balance1Adjusted := Sub(MulC(balance1, FEE_DENOMINATOR), MulC(amount1In, FEE_NUMERATOR))
	if Mul(balance0Adjusted, balance1Adjusted).Cmp(MulC(Mul(_reserve0, _reserve1), FEE_DENOMINATOR*FEE_DENOMINATOR)) < 0 {
		return errors.WithStack(ErrInvalidK)
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return err
	}
	cc.EmitEvent(SwapSignature, &SwapEvent{
		Sender:     cc.From(),
		Amount0In:  amount0In,
		Amount1In:  amount1In,
		Amount0Out: Clone(amount0Out),
		Amount1Out: Clone(amount1Out),
		To:         to,
	})
	return nil
}

// force balances to match reserves
func (self *UniSwap) skim(cc *types.ContractContext, to common.Address) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	_token0, _token1 := self.token0(cc), self.token1(cc)
	balance0, balance1, err := self.balances(cc, _token0, _token1)
	if err != nil {
		return err
	}
	if excess := Sub(balance0, self.reserve0(cc)); excess.Sign() > 0 {
		if err := SafeTransfer(cc, _token0, to, excess); err != nil {
			return err
		}
	}
	if excess := Sub(balance1, self.reserve1(cc)); excess.Sign() > 0 {
		if err := SafeTransfer(cc, _token1, to, excess); err != nil {
			return err
		}
	}
	return nil
}

// force reserves to match balances
func (self *UniSwap) sync(cc *types.ContractContext) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	balance0, balance1, err := self.balances(cc, self.token0(cc), self.token1(cc))
	if err != nil {
		return err
	}
	_reserve0, _reserve1, _ := self.reserves(cc)
	return self._update(cc, balance0, balance1, _reserve0, _reserve1)
}
