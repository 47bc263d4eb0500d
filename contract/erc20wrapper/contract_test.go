package erc20wrapper

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/token"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WrapperContract", func() {
	var (
		ctx   *types.Context
		weth  *WrapperContract
		admin = common.HexToAddress("0xad")
		alice = common.HexToAddress("0xa1")
	)

	BeforeEach(func() {
		ctx = types.NewEmptyContext()
		v, err := ctx.DeployContract(admin, &WrapperContract{}, &WrapperContractConstruction{Name: "Wrapped Native", Symbol: "WNAT"})
		Expect(err).To(Succeed())
		weth = v.(*WrapperContract)
		ctx.SetBalance(alice, big.NewInt(1000))
	})

	It("wraps and unwraps 1:1", func() {
		evs, err := ctx.Exec(alice, weth.Address(), big.NewInt(400), func(cont types.Contract, cc *types.ContractContext) error {
			return weth.Deposit(cc)
		})
		Expect(err).To(Succeed())
		Expect(evs[len(evs)-1].Data).To(Equal(&DepositEvent{Dst: alice, Wad: big.NewInt(400)}))
		Expect(weth.BalanceOf(ctx.ContractLoader(weth.Address()), alice)).To(Equal(big.NewInt(400)))
		Expect(ctx.Balance(weth.Address())).To(Equal(big.NewInt(400)))
		Expect(ctx.Balance(alice)).To(Equal(big.NewInt(600)))

		_, err = ctx.Exec(alice, weth.Address(), nil, func(cont types.Contract, cc *types.ContractContext) error {
			return weth.Withdraw(cc, big.NewInt(150))
		})
		Expect(err).To(Succeed())
		Expect(weth.BalanceOf(ctx.ContractLoader(weth.Address()), alice)).To(Equal(big.NewInt(250)))
		Expect(ctx.Balance(alice)).To(Equal(big.NewInt(750)))
	})

	It("rejects withdrawals above the wrapped balance", func() {
		_, err := ctx.Exec(alice, weth.Address(), nil, func(cont types.Contract, cc *types.ContractContext) error {
			return weth.Withdraw(cc, big.NewInt(1))
		})
		Expect(errors.Cause(err)).To(Equal(token.ErrInsufficientBalance))
		Expect(ctx.Balance(alice)).To(Equal(big.NewInt(1000)))
	})
})
