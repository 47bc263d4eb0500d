package app

import (
	"time"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/amount"
	"github.com/meverselabs/amm/contract/exchange/factory"
	"github.com/meverselabs/amm/contract/exchange/trade"
	"github.com/meverselabs/amm/contract/exchange/util"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExchangeApp", func() {
	var (
		app   *ExchangeApp
		admin common.Address
		g     *Genesis
	)

	BeforeEach(func() {
		admin, _ = util.Accounts()
		app = NewExchangeApp(admin, uint64(1600000000)*uint64(time.Second))
		g = &Genesis{
			NativeSupply: "100",
			Tokens: []GenesisToken{
				{Name: "Token A", Symbol: "TKA", Supply: "10000"},
				{Name: "Token B", Symbol: "TKB", Supply: "10000"},
			},
			Pools: []GenesisPool{
				{TokenA: "TKA", TokenB: "TKB", AmountA: "100", AmountB: "400"},
				{TokenA: "WETH", TokenB: "TKA", AmountA: "10", AmountB: "50"},
			},
		}
	})

	It("deploys and seeds the genesis pools", func() {
		Expect(app.InitGenesis(g)).To(Succeed())
		ctx := app.Context()

		tka, err := app.Token("tka")
		Expect(err).To(Succeed())
		tkb, err := app.Token("TKB")
		Expect(err).To(Succeed())

		var pairs []common.Address
		var feeToSetter common.Address
		Expect(ctx.View(app.Factory(), func(cont types.Contract, loader types.ContractLoader) error {
			f := cont.(*factory.FactoryContract)
			pairs = f.AllPairList(loader)
			feeToSetter = f.FeeToSetter(loader)
			return nil
		})).To(Succeed())
		Expect(pairs).To(HaveLen(2))
		Expect(feeToSetter).To(Equal(admin))

		pair, err := trade.PairFor(app.Factory(), tka, tkb)
		Expect(err).To(Succeed())
		Expect(pairs[0]).To(Equal(pair))

		Expect(ctx.View(pair, func(cont types.Contract, loader types.ContractLoader) error {
			p := cont.(*trade.UniSwap)
			r0, r1, _ := p.GetReserves(loader)
			if p.Token0(loader) == tka {
				Expect(r0.String()).To(Equal(amount.NewAmount(100, 0).Int.String()))
				Expect(r1.String()).To(Equal(amount.NewAmount(400, 0).Int.String()))
			} else {
				Expect(r0.String()).To(Equal(amount.NewAmount(400, 0).Int.String()))
				Expect(r1.String()).To(Equal(amount.NewAmount(100, 0).Int.String()))
			}
			return nil
		})).To(Succeed())

		Expect(ctx.Balance(admin).String()).To(Equal(amount.NewAmount(90, 0).Int.String()))
	})

	It("fails on a second genesis", func() {
		Expect(app.InitGenesis(g)).To(Succeed())
		err := app.InitGenesis(g)
		Expect(errors.Cause(err)).To(Equal(ErrAlreadyInitiated))
	})

	It("rejects unknown and duplicated symbols", func() {
		g.Pools = append(g.Pools, GenesisPool{TokenA: "TKA", TokenB: "NOPE", AmountA: "1", AmountB: "1"})
		Expect(errors.Cause(app.InitGenesis(g))).To(Equal(ErrUnknownToken))

		other := NewExchangeApp(admin, 0)
		g.Pools = nil
		g.Tokens = append(g.Tokens, GenesisToken{Name: "Again", Symbol: "tka", Supply: "1"})
		Expect(errors.Cause(other.InitGenesis(g))).To(Equal(ErrDuplicatedToken))
	})

	It("advances the context", func() {
		Expect(app.InitGenesis(g)).To(Succeed())
		before := app.Context()
		app.Advance(before.LastTimestamp() + uint64(time.Second))
		Expect(app.Context()).NotTo(BeIdenticalTo(before))
		Expect(app.Context().LastTimestamp()).To(Equal(before.LastTimestamp() + uint64(time.Second)))
		Expect(app.Context().IsContract(app.Router())).To(BeTrue())
	})
})
