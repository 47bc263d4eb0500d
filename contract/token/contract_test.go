package token

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TokenContract", func() {
	var (
		ctx   *types.Context
		tk    *TokenContract
		admin = common.HexToAddress("0xad")
		alice = common.HexToAddress("0xa1")
		bob   = common.HexToAddress("0xb0")
	)

	exec := func(from common.Address, fn func(cc *types.ContractContext) error) ([]*types.Event, error) {
		return ctx.Exec(from, tk.Address(), nil, func(cont types.Contract, cc *types.ContractContext) error {
			return fn(cc)
		})
	}
	balanceOf := func(addr common.Address) *big.Int {
		return tk.BalanceOf(ctx.ContractLoader(tk.Address()), addr)
	}

	BeforeEach(func() {
		ctx = types.NewEmptyContext()
		v, err := ctx.DeployContract(admin, &TokenContract{}, &TokenContractConstruction{
			Name:   "Token A",
			Symbol: "TKA",
			InitialSupplyMap: map[common.Address]*big.Int{
				alice: big.NewInt(1000),
			},
		})
		Expect(err).To(Succeed())
		tk = v.(*TokenContract)
	})

	It("mints the initial supply", func() {
		loader := ctx.ContractLoader(tk.Address())
		Expect(tk.Name(loader)).To(Equal("Token A"))
		Expect(tk.Symbol(loader)).To(Equal("TKA"))
		Expect(tk.Decimals(loader)).To(Equal(uint8(18)))
		Expect(tk.TotalSupply(loader)).To(Equal(big.NewInt(1000)))
		Expect(balanceOf(alice)).To(Equal(big.NewInt(1000)))
		Expect(ctx.Events()).To(HaveLen(1))
		Expect(ctx.Events()[0].Data).To(Equal(&TransferEvent{From: common.ZeroAddr, To: alice, Value: big.NewInt(1000)}))
	})

	It("transfers and rejects overdrafts", func() {
		evs, err := exec(alice, func(cc *types.ContractContext) error {
			return tk.Transfer(cc, bob, big.NewInt(300))
		})
		Expect(err).To(Succeed())
		Expect(evs[0].Name).To(Equal("Transfer"))
		Expect(balanceOf(alice)).To(Equal(big.NewInt(700)))
		Expect(balanceOf(bob)).To(Equal(big.NewInt(300)))

		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.Transfer(cc, alice, big.NewInt(301))
		})
		Expect(errors.Cause(err)).To(Equal(ErrInsufficientBalance))

		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.Transfer(cc, common.ZeroAddr, big.NewInt(1))
		})
		Expect(errors.Cause(err)).To(Equal(ErrTransferToZeroAddress))
	})

	It("spends allowances except the infinite one", func() {
		_, err := exec(alice, func(cc *types.ContractContext) error {
			return tk.Approve(cc, bob, big.NewInt(100))
		})
		Expect(err).To(Succeed())
		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.TransferFrom(cc, alice, bob, big.NewInt(60))
		})
		Expect(err).To(Succeed())
		Expect(tk.Allowance(ctx.ContractLoader(tk.Address()), alice, bob)).To(Equal(big.NewInt(40)))
		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.TransferFrom(cc, alice, bob, big.NewInt(41))
		})
		Expect(errors.Cause(err)).To(Equal(ErrInsufficientAllowance))

		_, err = exec(alice, func(cc *types.ContractContext) error {
			return tk.Approve(cc, bob, maxUint256)
		})
		Expect(err).To(Succeed())
		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.TransferFrom(cc, alice, bob, big.NewInt(500))
		})
		Expect(err).To(Succeed())
		Expect(tk.Allowance(ctx.ContractLoader(tk.Address()), alice, bob)).To(Equal(maxUint256))
		Expect(balanceOf(bob)).To(Equal(big.NewInt(560)))
	})

	It("lets only minters mint", func() {
		_, err := exec(alice, func(cc *types.ContractContext) error {
			return tk.Mint(cc, alice, big.NewInt(1))
		})
		Expect(errors.Cause(err)).To(Equal(ErrNotMinter))

		_, err = exec(admin, func(cc *types.ContractContext) error {
			return tk.SetMinter(cc, alice, true)
		})
		Expect(err).To(Succeed())
		_, err = exec(alice, func(cc *types.ContractContext) error {
			return tk.Mint(cc, bob, big.NewInt(5))
		})
		Expect(err).To(Succeed())
		Expect(tk.TotalSupply(ctx.ContractLoader(tk.Address()))).To(Equal(big.NewInt(1005)))

		_, err = exec(bob, func(cc *types.ContractContext) error {
			return tk.Burn(cc, big.NewInt(5))
		})
		Expect(err).To(Succeed())
		Expect(tk.TotalSupply(ctx.ContractLoader(tk.Address()))).To(Equal(big.NewInt(1000)))
	})
})
