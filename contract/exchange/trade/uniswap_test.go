package trade

import (
	"math/big"
	"time"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/token"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"

	. "github.com/meverselabs/amm/contract/exchange/util"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// borrower repays flash swaps of token0, or re-enters the pair when reenter is set
type borrower struct {
	addr    common.Address
	master  common.Address
	pair    common.Address
	token0  common.Address
	repay   *big.Int
	reenter bool
}

func (b *borrower) Address() common.Address { return b.addr }
func (b *borrower) Master() common.Address  { return b.master }
func (b *borrower) Init(addr common.Address, master common.Address) {
	b.addr = addr
	b.master = master
}
func (b *borrower) OnCreate(cc *types.ContractContext, Args interface{}) error { return nil }
func (b *borrower) UniswapV2Call(cc *types.ContractContext, sender common.Address, amount0, amount1 *big.Int, data []byte) error {
	if b.reenter {
		return cc.Exec(b.pair, func(cont types.Contract, pcc *types.ContractContext) error {
			return cont.(*UniSwap).Swap(pcc, big.NewInt(1), Zero, b.addr, nil)
		})
	}
	return SafeTransfer(cc, b.token0, b.pair, b.repay)
}

var _ = Describe("UniSwap", func() {
	var fx *pairFixture

	BeforeEach(func() {
		fx = newPairFixture()
	})

	Describe("Initialize", func() {
		It("binds sorted tokens once", func() {
			Expect(fx.pair.Token0(fx.loader())).To(Equal(fx.token0.Address()))
			Expect(fx.pair.Token1(fx.loader())).To(Equal(fx.token1.Address()))
			Expect(fx.pair.Factory(fx.loader())).To(Equal(fx.source.Address()))
			Expect(fx.pair.Name(fx.loader())).To(Equal(LP_NAME))

			_, err := fx.call(fx.source.Address(), func(cc *types.ContractContext) error {
				return fx.pair.Initialize(cc, fx.token0.Address(), fx.token1.Address())
			})
			Expect(errors.Cause(err)).To(Equal(ErrAlreadyInitialized))
		})

		It("is restricted to the factory", func() {
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Initialize(cc, fx.token0.Address(), fx.token1.Address())
			})
			fe, ok := IsForbidden(err)
			Expect(ok).To(BeTrue())
			Expect(fe.Caller).To(Equal(alice))
			Expect(fe.Authority).To(Equal(fx.source.Address()))
		})
	})

	Describe("Mint", func() {
		It("locks the minimum liquidity on the first deposit", func() {
			token0Amount := expandTo18Decimals(1)
			token1Amount := expandTo18Decimals(4)
			fx.transfer(fx.token0, alice, fx.pair.Address(), token0Amount)
			fx.transfer(fx.token1, alice, fx.pair.Address(), token1Amount)

			expectedLiquidity := expandTo18Decimals(2)
			var liquidity *big.Int
			evs, err := fx.call(alice, func(cc *types.ContractContext) error {
				var err error
				liquidity, err = fx.pair.Mint(cc, alice)
				return err
			})
			Expect(err).To(Succeed())
			Expect(liquidity).To(equalBig(SubC(expectedLiquidity, MINIMUM_LIQUIDITY)))
			Expect(eventNames(evs)).To(Equal([]string{"Transfer", "Transfer", "Sync", "Mint"}))
			Expect(evs[0].Data).To(Equal(&token.TransferEvent{From: ZeroAddress, To: common.AddressOne, Value: big.NewInt(MINIMUM_LIQUIDITY)}))
			Expect(evs[1].Data).To(Equal(&token.TransferEvent{From: ZeroAddress, To: alice, Value: SubC(expectedLiquidity, MINIMUM_LIQUIDITY)}))
			Expect(evs[3].Data).To(Equal(&MintEvent{Sender: alice, Amount0: token0Amount, Amount1: token1Amount}))

			Expect(fx.pair.TotalSupply(fx.loader())).To(equalBig(expectedLiquidity))
			Expect(fx.pair.BalanceOf(fx.loader(), common.AddressOne)).To(equalBig(big.NewInt(MINIMUM_LIQUIDITY)))
			Expect(fx.pair.BalanceOf(fx.loader(), alice)).To(equalBig(SubC(expectedLiquidity, MINIMUM_LIQUIDITY)))

			reserve0, reserve1, ts := fx.pair.GetReserves(fx.loader())
			Expect(reserve0).To(equalBig(token0Amount))
			Expect(reserve1).To(equalBig(token1Amount))
			Expect(ts).To(Equal(genesisTime / uint64(time.Second)))
		})

		It("rejects a deposit below the minimum liquidity", func() {
			fx.transfer(fx.token0, alice, fx.pair.Address(), big.NewInt(1000))
			fx.transfer(fx.token1, alice, fx.pair.Address(), big.NewInt(1000))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				_, err := fx.pair.Mint(cc, alice)
				return err
			})
			Expect(errors.Cause(err)).To(Equal(ErrInsufficientLiquidityMinted))
			Expect(fx.pair.TotalSupply(fx.loader()).Sign()).To(Equal(0))
		})

		It("mints pro rata on later deposits", func() {
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(4))
			fx.transfer(fx.token0, alice, fx.pair.Address(), expandTo18Decimals(1))
			fx.transfer(fx.token1, alice, fx.pair.Address(), expandTo18Decimals(8))
			var liquidity *big.Int
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				var err error
				liquidity, err = fx.pair.Mint(cc, bob)
				return err
			})
			Expect(err).To(Succeed())
			Expect(liquidity).To(equalBig(expandTo18Decimals(2)))
			Expect(fx.pair.BalanceOf(fx.loader(), bob)).To(equalBig(expandTo18Decimals(2)))
		})

		It("fails when the reserves would overflow", func() {
			fx.transfer(fx.token0, alice, fx.pair.Address(), AddC(MaxUint112, 1))
			fx.transfer(fx.token1, alice, fx.pair.Address(), big.NewInt(1000000))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				_, err := fx.pair.Mint(cc, alice)
				return err
			})
			Expect(errors.Cause(err)).To(Equal(ErrOverflow))
		})
	})

	Describe("Swap", func() {
		swapCases := [][]string{
			{"1", "5", "10", "1662497915624478906"},
			{"1", "10", "5", "453305446940074565"},
			{"2", "5", "10", "2851015155847869602"},
			{"2", "10", "5", "831248957812239453"},
			{"1", "10", "10", "906610893880149131"},
			{"1", "100", "100", "987158034397061298"},
			{"1", "1000", "1000", "996006981039903216"},
		}
		for _, c := range swapCases {
			c := c
			It("enforces the fee adjusted invariant "+c[0]+"/"+c[1]+"/"+c[2], func() {
				swapAmount := expandTo18Decimals(parseUint(c[0]))
				fx.addLiquidity(expandTo18Decimals(parseUint(c[1])), expandTo18Decimals(parseUint(c[2])))
				expectedOutputAmount, _ := new(big.Int).SetString(c[3], 10)
				fx.transfer(fx.token0, alice, fx.pair.Address(), swapAmount)

				_, err := fx.call(alice, func(cc *types.ContractContext) error {
					return fx.pair.Swap(cc, Zero, AddC(expectedOutputAmount, 1), alice, nil)
				})
				Expect(errors.Cause(err)).To(Equal(ErrInvalidK))

				_, err = fx.call(alice, func(cc *types.ContractContext) error {
					return fx.pair.Swap(cc, Zero, expectedOutputAmount, alice, nil)
				})
				Expect(err).To(Succeed())
			})
		}

		It("swaps token0 for token1", func() {
			token0Amount := expandTo18Decimals(5)
			token1Amount := expandTo18Decimals(10)
			fx.addLiquidity(token0Amount, token1Amount)

			swapAmount := expandTo18Decimals(1)
			expectedOutputAmount, _ := new(big.Int).SetString("1662497915624478906", 10)
			fx.transfer(fx.token0, alice, fx.pair.Address(), swapAmount)
			before1 := fx.balanceOf(fx.token1, alice)

			evs, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, Zero, expectedOutputAmount, alice, nil)
			})
			Expect(err).To(Succeed())
			Expect(eventNames(evs)).To(Equal([]string{"Transfer", "Sync", "Swap"}))
			Expect(evs[0].Contract).To(Equal(fx.token1.Address()))
			Expect(evs[1].Data).To(Equal(&SyncEvent{Reserve0: Add(token0Amount, swapAmount), Reserve1: Sub(token1Amount, expectedOutputAmount)}))
			swapEvent := evs[2].Data.(*SwapEvent)
			Expect(swapEvent.Sender).To(Equal(alice))
			Expect(swapEvent.To).To(Equal(alice))
			Expect(swapEvent.Amount0In).To(equalBig(swapAmount))
			Expect(swapEvent.Amount1In.Sign()).To(Equal(0))
			Expect(swapEvent.Amount0Out.Sign()).To(Equal(0))
			Expect(swapEvent.Amount1Out).To(equalBig(expectedOutputAmount))

			reserve0, reserve1, _ := fx.pair.GetReserves(fx.loader())
			Expect(reserve0).To(equalBig(Add(token0Amount, swapAmount)))
			Expect(reserve1).To(equalBig(Sub(token1Amount, expectedOutputAmount)))
			Expect(fx.balanceOf(fx.token1, alice)).To(equalBig(Add(before1, expectedOutputAmount)))
		})

		It("validates outputs and the recipient", func() {
			fx.addLiquidity(expandTo18Decimals(5), expandTo18Decimals(10))
			fx.transfer(fx.token0, alice, fx.pair.Address(), expandTo18Decimals(1))

			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, Zero, Zero, alice, nil)
			})
			Expect(errors.Cause(err)).To(Equal(ErrInsufficientOutputAmount))

			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, Zero, expandTo18Decimals(10), alice, nil)
			})
			Expect(errors.Cause(err)).To(Equal(ErrInsufficientLiquidity))

			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, Zero, big.NewInt(1), fx.token0.Address(), nil)
			})
			Expect(errors.Cause(err)).To(Equal(ErrInvalidTo))

			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, expandTo18Decimals(2), Zero, alice, nil)
			})
			Expect(errors.Cause(err)).To(Equal(ErrInvalidK))
		})

		It("fails without input", func() {
			fx.addLiquidity(expandTo18Decimals(5), expandTo18Decimals(10))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, Zero, big.NewInt(1), alice, nil)
			})
			Expect(errors.Cause(err)).To(Equal(ErrInsufficientInputAmount))
		})
	})

	Describe("Flash swap", func() {
		var b *borrower

		BeforeEach(func() {
			fx.addLiquidity(expandTo18Decimals(5), expandTo18Decimals(10))
			v, err := fx.ctx.DeployContract(admin, &borrower{}, nil)
			Expect(err).To(Succeed())
			b = v.(*borrower)
			b.pair = fx.pair.Address()
			b.token0 = fx.token0.Address()
			fx.transfer(fx.token0, alice, b.Address(), expandTo18Decimals(1))
		})

		It("accepts a repayment covering the fee", func() {
			borrowed := expandTo18Decimals(1)
			b.repay = AddC(DivC(MulC(borrowed, 1000), 997), 1)
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, borrowed, Zero, b.Address(), []byte{0x01})
			})
			Expect(err).To(Succeed())
			reserve0, _, _ := fx.pair.GetReserves(fx.loader())
			Expect(reserve0).To(equalBig(Add(Sub(expandTo18Decimals(5), borrowed), b.repay)))
		})

		It("reverts a repayment without the fee", func() {
			borrowed := expandTo18Decimals(1)
			b.repay = borrowed
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, borrowed, Zero, b.Address(), []byte{0x01})
			})
			Expect(errors.Cause(err)).To(Equal(ErrInvalidK))
			Expect(fx.balanceOf(fx.token0, b.Address())).To(equalBig(expandTo18Decimals(1)))
		})

		It("blocks reentrant calls", func() {
			b.reenter = true
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, expandTo18Decimals(1), Zero, b.Address(), []byte{0x01})
			})
			Expect(errors.Cause(err)).To(Equal(ErrLocked))

			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Sync(cc)
			})
			Expect(err).To(Succeed())
		})

		It("requires a callee contract", func() {
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, big.NewInt(1), Zero, fx.source.Address(), []byte{0x01})
			})
			Expect(errors.Cause(err)).To(Equal(ErrNotFlashSwapCallee))
		})
	})

	Describe("Burn", func() {
		It("returns the pro rata share of both tokens", func() {
			token0Amount := expandTo18Decimals(3)
			token1Amount := expandTo18Decimals(3)
			fx.addLiquidity(token0Amount, token1Amount)

			expectedLiquidity := expandTo18Decimals(3)
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Transfer(cc, fx.pair.Address(), SubC(expectedLiquidity, MINIMUM_LIQUIDITY))
			})
			Expect(err).To(Succeed())

			var amount0, amount1 *big.Int
			evs, err := fx.call(alice, func(cc *types.ContractContext) error {
				var err error
				amount0, amount1, err = fx.pair.Burn(cc, alice)
				return err
			})
			Expect(err).To(Succeed())
			Expect(amount0).To(equalBig(SubC(token0Amount, 1000)))
			Expect(amount1).To(equalBig(SubC(token1Amount, 1000)))
			Expect(eventNames(evs)).To(Equal([]string{"Transfer", "Transfer", "Transfer", "Sync", "Burn"}))
			Expect(evs[4].Data).To(Equal(&BurnEvent{Sender: alice, Amount0: amount0, Amount1: amount1, To: alice}))

			Expect(fx.pair.BalanceOf(fx.loader(), alice).Sign()).To(Equal(0))
			Expect(fx.pair.TotalSupply(fx.loader())).To(equalBig(big.NewInt(MINIMUM_LIQUIDITY)))
			Expect(fx.balanceOf(fx.token0, fx.pair.Address())).To(equalBig(big.NewInt(1000)))
			Expect(fx.balanceOf(fx.token1, fx.pair.Address())).To(equalBig(big.NewInt(1000)))
		})

		It("leaves the locked share after burning everything", func() {
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(4))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Transfer(cc, fx.pair.Address(), fx.pair.BalanceOf(cc, alice))
			})
			Expect(err).To(Succeed())
			var amount0, amount1 *big.Int
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				var err error
				amount0, amount1, err = fx.pair.Burn(cc, alice)
				return err
			})
			Expect(err).To(Succeed())
			Expect(amount0).To(equalBig(SubC(expandTo18Decimals(1), 500)))
			Expect(amount1).To(equalBig(SubC(expandTo18Decimals(4), 2000)))
			reserve0, reserve1, _ := fx.pair.GetReserves(fx.loader())
			Expect(reserve0).To(equalBig(big.NewInt(500)))
			Expect(reserve1).To(equalBig(big.NewInt(2000)))
		})

		It("pays out of the reserves and not the donations", func() {
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(4))
			fx.transfer(fx.token0, alice, fx.pair.Address(), expandTo18Decimals(1))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Transfer(cc, fx.pair.Address(), fx.pair.BalanceOf(cc, alice))
			})
			Expect(err).To(Succeed())

			var amount0, amount1 *big.Int
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				var err error
				amount0, amount1, err = fx.pair.Burn(cc, bob)
				return err
			})
			Expect(err).To(Succeed())
			Expect(amount0).To(equalBig(SubC(expandTo18Decimals(1), 500)))
			Expect(amount1).To(equalBig(SubC(expandTo18Decimals(4), 2000)))
			Expect(fx.balanceOf(fx.token0, bob)).To(equalBig(amount0))

			// the donation is still held by the pair and synced into the reserves
			reserve0, reserve1, _ := fx.pair.GetReserves(fx.loader())
			Expect(reserve0).To(equalBig(AddC(expandTo18Decimals(1), 500)))
			Expect(reserve1).To(equalBig(big.NewInt(2000)))
		})

		It("fails without shares", func() {
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(4))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				_, _, err := fx.pair.Burn(cc, alice)
				return err
			})
			Expect(errors.Cause(err)).To(Equal(ErrInsufficientLiquidityBurned))
		})
	})

	Describe("Skim and Sync", func() {
		It("moves donations out or into the reserves", func() {
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(1))
			fx.transfer(fx.token0, alice, fx.pair.Address(), big.NewInt(100))

			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Skim(cc, bob)
			})
			Expect(err).To(Succeed())
			Expect(fx.balanceOf(fx.token0, bob)).To(equalBig(big.NewInt(100)))

			fx.transfer(fx.token1, alice, fx.pair.Address(), big.NewInt(100))
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Sync(cc)
			})
			Expect(err).To(Succeed())
			_, reserve1, _ := fx.pair.GetReserves(fx.loader())
			Expect(reserve1).To(equalBig(AddC(expandTo18Decimals(1), 100)))
		})
	})

	Describe("Price accumulators", func() {
		It("accumulates the price once per second", func() {
			token0Amount := expandTo18Decimals(3)
			token1Amount := expandTo18Decimals(3)
			fx.addLiquidity(token0Amount, token1Amount)
			Expect(fx.pair.Price0CumulativeLast(fx.loader()).Sign()).To(Equal(0))

			fx.next(time.Second)
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Sync(cc)
			})
			Expect(err).To(Succeed())

			initialPrice := encodeUQ112x112(big.NewInt(1))
			Expect(fx.pair.Price0CumulativeLast(fx.loader())).To(equalBig(initialPrice))
			Expect(fx.pair.Price1CumulativeLast(fx.loader())).To(equalBig(initialPrice))
			_, _, ts := fx.pair.GetReserves(fx.loader())
			Expect(ts).To(Equal(genesisTime/uint64(time.Second) + 1))

			// same second, no accumulation
			fx.transfer(fx.token0, alice, fx.pair.Address(), expandTo18Decimals(3))
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Sync(cc)
			})
			Expect(err).To(Succeed())
			Expect(fx.pair.Price0CumulativeLast(fx.loader())).To(equalBig(initialPrice))

			fx.next(10 * time.Second)
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Sync(cc)
			})
			Expect(err).To(Succeed())
			// reserves are 6:3 for the last ten seconds
			Expect(fx.pair.Price0CumulativeLast(fx.loader())).To(equalBig(Add(initialPrice, MulC(DivC(initialPrice, 2), 10))))
			Expect(fx.pair.Price1CumulativeLast(fx.loader())).To(equalBig(Add(initialPrice, MulC(MulC(initialPrice, 2), 10))))
		})
	})

	Describe("Protocol fee", func() {
		It("is off without a recipient", func() {
			fx.addLiquidity(expandTo18Decimals(1000), expandTo18Decimals(1000))
			Expect(fx.pair.KLast(fx.loader()).Sign()).To(Equal(0))
		})

		It("mints a sixth of the growth to the recipient", func() {
			fx.source.feeTo = bob
			fx.addLiquidity(expandTo18Decimals(1000), expandTo18Decimals(1000))
			Expect(fx.pair.KLast(fx.loader())).To(equalBig(Mul(expandTo18Decimals(1000), expandTo18Decimals(1000))))

			swapAmount := expandTo18Decimals(1)
			expectedOutputAmount, _ := new(big.Int).SetString("996006981039903216", 10)
			fx.transfer(fx.token1, alice, fx.pair.Address(), swapAmount)
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Swap(cc, expectedOutputAmount, Zero, alice, nil)
			})
			Expect(err).To(Succeed())

			expectedLiquidity := expandTo18Decimals(1000)
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				return fx.pair.Transfer(cc, fx.pair.Address(), SubC(expectedLiquidity, MINIMUM_LIQUIDITY))
			})
			Expect(err).To(Succeed())
			_, err = fx.call(alice, func(cc *types.ContractContext) error {
				_, _, err := fx.pair.Burn(cc, alice)
				return err
			})
			Expect(err).To(Succeed())

			fee := big.NewInt(249750499251388)
			Expect(fx.pair.TotalSupply(fx.loader())).To(equalBig(AddC(fee, MINIMUM_LIQUIDITY)))
			Expect(fx.pair.BalanceOf(fx.loader(), bob)).To(equalBig(fee))
			Expect(fx.balanceOf(fx.token0, fx.pair.Address())).To(equalBig(AddC(big.NewInt(249501683697445), 1000)))
			Expect(fx.balanceOf(fx.token1, fx.pair.Address())).To(equalBig(AddC(big.NewInt(250000187312969), 1000)))
		})

		It("clears kLast when switched off", func() {
			fx.source.feeTo = bob
			fx.addLiquidity(expandTo18Decimals(1), expandTo18Decimals(1))
			fx.source.feeTo = ZeroAddress
			fx.transfer(fx.token0, alice, fx.pair.Address(), expandTo18Decimals(1))
			fx.transfer(fx.token1, alice, fx.pair.Address(), expandTo18Decimals(1))
			_, err := fx.call(alice, func(cc *types.ContractContext) error {
				_, err := fx.pair.Mint(cc, alice)
				return err
			})
			Expect(err).To(Succeed())
			Expect(fx.pair.KLast(fx.loader()).Sign()).To(Equal(0))
		})
	})
})

func parseUint(s string) uint64 {
	v, _ := new(big.Int).SetString(s, 10)
	return v.Uint64()
}
