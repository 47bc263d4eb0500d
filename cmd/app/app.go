package app

import (
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/amount"
	"github.com/meverselabs/amm/common/rlog"
	"github.com/meverselabs/amm/contract/erc20wrapper"
	"github.com/meverselabs/amm/contract/exchange/factory"
	"github.com/meverselabs/amm/contract/exchange/router"
	"github.com/meverselabs/amm/contract/exchange/util"
	"github.com/meverselabs/amm/contract/token"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"
)

// WETHSymbol names the native currency wrapper inside pool definitions
const WETHSymbol = "WETH"

// errors
var (
	ErrUnknownToken     = errors.New("unknown token symbol")
	ErrDuplicatedToken  = errors.New("duplicated token symbol")
	ErrAlreadyInitiated = errors.New("already initiated")
)

// GenesisToken is a token issued to the admin at genesis
type GenesisToken struct {
	Name   string
	Symbol string
	Supply string
}

// GenesisPool is a pool seeded by the admin at genesis, WETH pools are funded with native currency
type GenesisPool struct {
	TokenA  string
	TokenB  string
	AmountA string
	AmountB string
}

// Genesis describes the initial deployment of the exchange
type Genesis struct {
	FeeToSetter  common.Address
	NativeSupply string
	Tokens       []GenesisToken
	Pools        []GenesisPool
}

// ExchangeApp owns the context of a single node exchange
type ExchangeApp struct {
	sync.Mutex
	ctx     *types.Context
	admin   common.Address
	factory common.Address
	router  common.Address
	weth    common.Address
	tokens  map[string]common.Address
}

// NewExchangeApp returns a ExchangeApp starting at the timestamp (unix nano)
func NewExchangeApp(admin common.Address, timestamp uint64) *ExchangeApp {
	return &ExchangeApp{
		ctx:    types.NewContext(timestamp),
		admin:  admin,
		tokens: map[string]common.Address{},
	}
}

// Name returns the name of the application
func (app *ExchangeApp) Name() string {
	return "amm.exchange"
}

// AdminAddress returns the admin address of the application
func (app *ExchangeApp) AdminAddress() common.Address {
	return app.admin
}

// Context returns the current context
func (app *ExchangeApp) Context() *types.Context {
	app.Lock()
	defer app.Unlock()

	return app.ctx
}

// Advance moves the exchange to a new context at the timestamp (unix nano)
func (app *ExchangeApp) Advance(timestamp uint64) {
	app.Lock()
	defer app.Unlock()

	app.ctx = app.ctx.NextContext(timestamp)
}

func (app *ExchangeApp) Factory() common.Address { return app.factory }
func (app *ExchangeApp) Router() common.Address  { return app.router }
func (app *ExchangeApp) WETH() common.Address    { return app.weth }

// Token returns the address of the genesis token of the symbol
func (app *ExchangeApp) Token(symbol string) (common.Address, error) {
	if strings.EqualFold(symbol, WETHSymbol) {
		return app.weth, nil
	}
	addr, has := app.tokens[strings.ToUpper(symbol)]
	if !has {
		return common.Address{}, errors.Wrap(ErrUnknownToken, symbol)
	}
	return addr, nil
}

// InitGenesis deploys the factory, the wrapper, the router and the genesis tokens and pools
func (app *ExchangeApp) InitGenesis(g *Genesis) error {
	app.Lock()
	defer app.Unlock()

	if app.router != (common.Address{}) {
		return errors.WithStack(ErrAlreadyInitiated)
	}
	ctx := app.ctx

	if len(g.NativeSupply) > 0 {
		am, err := amount.ParseAmount(g.NativeSupply)
		if err != nil {
			return err
		}
		ctx.SetBalance(app.admin, am.Int)
	}

	feeToSetter := g.FeeToSetter
	if feeToSetter == (common.Address{}) {
		feeToSetter = app.admin
	}
	v, err := ctx.DeployContract(app.admin, &factory.FactoryContract{}, &factory.FactoryContractConstruction{FeeToSetter: feeToSetter})
	if err != nil {
		return err
	}
	app.factory = v.Address()

	v, err = ctx.DeployContract(app.admin, &erc20wrapper.WrapperContract{}, &erc20wrapper.WrapperContractConstruction{Name: "Wrapped Native", Symbol: WETHSymbol})
	if err != nil {
		return err
	}
	app.weth = v.Address()

	v, err = ctx.DeployContract(app.admin, &router.RouterContract{}, &router.RouterContractConstruction{Factory: app.factory, WETH: app.weth})
	if err != nil {
		return err
	}
	app.router = v.Address()

	for _, gt := range g.Tokens {
		if err := app.deployToken(gt); err != nil {
			return err
		}
	}
	for _, gp := range g.Pools {
		if err := app.seedPool(gp); err != nil {
			return err
		}
	}
	rlog.Infow("genesis initialized",
		"factory", app.factory.String(),
		"router", app.router.String(),
		"weth", app.weth.String(),
		"tokens", len(app.tokens),
		"pools", len(g.Pools),
	)
	return nil
}

func (app *ExchangeApp) deployToken(gt GenesisToken) error {
	symbol := strings.ToUpper(gt.Symbol)
	if _, has := app.tokens[symbol]; has || symbol == WETHSymbol {
		return errors.Wrap(ErrDuplicatedToken, gt.Symbol)
	}
	supply, err := amount.ParseAmount(gt.Supply)
	if err != nil {
		return err
	}
	v, err := app.ctx.DeployContract(app.admin, &token.TokenContract{}, &token.TokenContractConstruction{
		Name:             gt.Name,
		Symbol:           gt.Symbol,
		InitialSupplyMap: map[common.Address]*big.Int{app.admin: supply.Int},
	})
	if err != nil {
		return err
	}
	addr := v.Address()
	if _, err := app.ctx.Exec(app.admin, addr, nil, func(cont types.Contract, cc *types.ContractContext) error {
		return cont.(*token.TokenContract).Approve(cc, app.router, util.MaxUint256)
	}); err != nil {
		return err
	}
	app.tokens[symbol] = addr
	return nil
}

func (app *ExchangeApp) seedPool(gp GenesisPool) error {
	amountA, err := amount.ParseAmount(gp.AmountA)
	if err != nil {
		return err
	}
	amountB, err := amount.ParseAmount(gp.AmountB)
	if err != nil {
		return err
	}
	isWETHA := strings.EqualFold(gp.TokenA, WETHSymbol)
	isWETHB := strings.EqualFold(gp.TokenB, WETHSymbol)
	switch {
	case isWETHA && isWETHB:
		return errors.Wrap(ErrDuplicatedToken, gp.TokenA)
	case isWETHA:
		return app.seedNativePool(gp.TokenB, amountB.Int, amountA.Int)
	case isWETHB:
		return app.seedNativePool(gp.TokenA, amountA.Int, amountB.Int)
	}

	tokenA, err := app.Token(gp.TokenA)
	if err != nil {
		return err
	}
	tokenB, err := app.Token(gp.TokenB)
	if err != nil {
		return err
	}
	_, err = app.ctx.Exec(app.admin, app.router, nil, func(cont types.Contract, cc *types.ContractContext) error {
		_, _, _, err := cont.(*router.RouterContract).AddLiquidity(cc, tokenA, tokenB, amountA.Int, amountB.Int, amountA.Int, amountB.Int, app.admin, math.MaxUint64)
		return err
	})
	return err
}

func (app *ExchangeApp) seedNativePool(symbol string, amountToken, amountETH *big.Int) error {
	tk, err := app.Token(symbol)
	if err != nil {
		return err
	}
	_, err = app.ctx.Exec(app.admin, app.router, amountETH, func(cont types.Contract, cc *types.ContractContext) error {
		_, _, _, err := cont.(*router.RouterContract).AddLiquidityETH(cc, tk, amountToken, amountToken, amountETH, app.admin, math.MaxUint64)
		return err
	})
	return err
}
