package apiserver

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/exchange/factory"
	"github.com/meverselabs/amm/contract/exchange/router"
	"github.com/meverselabs/amm/contract/exchange/trade"
	"github.com/meverselabs/amm/contract/exchange/util"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"
)

// ContextProvider returns the context the views are served from
type ContextProvider func() *types.Context

// PairInfo is the reserves view of a pair
type PairInfo struct {
	Pair               common.Address `json:"pair"`
	Token0             common.Address `json:"token0"`
	Token1             common.Address `json:"token1"`
	Reserve0           string         `json:"reserve0"`
	Reserve1           string         `json:"reserve1"`
	BlockTimestampLast uint64         `json:"blockTimestampLast"`
	TotalSupply        string         `json:"totalSupply"`
	KLast              string         `json:"kLast"`
}

type exchangeView struct {
	ctx     ContextProvider
	factory common.Address
	router  common.Address
}

// RegisterExchange serves the read only exchange methods under the "exchange" sub name
func RegisterExchange(s *APIServer, provider ContextProvider, factoryAddr, routerAddr common.Address) error {
	js, err := s.JRPC("exchange")
	if err != nil {
		return err
	}
	v := &exchangeView{ctx: provider, factory: factoryAddr, router: routerAddr}

	js.Set("factory", func(ID interface{}, arg *Argument) (interface{}, error) {
		return v.factory, nil
	})
	js.Set("router", func(ID interface{}, arg *Argument) (interface{}, error) {
		return v.router, nil
	})
	js.Set("feeTo", v.feeTo)
	js.Set("pairLength", v.pairLength)
	js.Set("pairAt", v.pairAt)
	js.Set("pairs", v.pairs)
	js.Set("getPair", v.getPair)
	js.Set("pairFor", v.pairFor)
	js.Set("reserves", v.reserves)
	js.Set("quote", v.quote)
	js.Set("amountsOut", v.amountsOut)
	js.Set("amountsIn", v.amountsIn)
	js.Set("balanceOf", v.balanceOf)
	return nil
}

func (v *exchangeView) withFactory(fn func(f *factory.FactoryContract, loader types.ContractLoader) error) error {
	return v.ctx().View(v.factory, func(cont types.Contract, loader types.ContractLoader) error {
		f, is := cont.(*factory.FactoryContract)
		if !is {
			return errors.Wrap(types.ErrNotExistContract, v.factory.String())
		}
		return fn(f, loader)
	})
}

func (v *exchangeView) withRouter(fn func(r *router.RouterContract, loader types.ContractLoader) error) error {
	return v.ctx().View(v.router, func(cont types.Contract, loader types.ContractLoader) error {
		r, is := cont.(*router.RouterContract)
		if !is {
			return errors.Wrap(types.ErrNotExistContract, v.router.String())
		}
		return fn(r, loader)
	})
}

func (v *exchangeView) feeTo(ID interface{}, arg *Argument) (interface{}, error) {
	var ret common.Address
	err := v.withFactory(func(f *factory.FactoryContract, loader types.ContractLoader) error {
		ret = f.FeeTo(loader)
		return nil
	})
	return ret, err
}

func (v *exchangeView) pairLength(ID interface{}, arg *Argument) (interface{}, error) {
	var ret uint64
	err := v.withFactory(func(f *factory.FactoryContract, loader types.ContractLoader) error {
		ret = f.AllPairsLength(loader)
		return nil
	})
	return ret, err
}

func (v *exchangeView) pairAt(ID interface{}, arg *Argument) (interface{}, error) {
	i, err := arg.Uint64(0)
	if err != nil {
		return nil, err
	}
	var ret common.Address
	err = v.withFactory(func(f *factory.FactoryContract, loader types.ContractLoader) error {
		ret, err = f.AllPairs(loader, i)
		return err
	})
	return ret, err
}

func (v *exchangeView) pairs(ID interface{}, arg *Argument) (interface{}, error) {
	var ret []common.Address
	err := v.withFactory(func(f *factory.FactoryContract, loader types.ContractLoader) error {
		ret = f.AllPairList(loader)
		return nil
	})
	return ret, err
}

func (v *exchangeView) tokenPair(arg *Argument) (common.Address, common.Address, error) {
	tokenA, err := arg.Address(0)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	tokenB, err := arg.Address(1)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return tokenA, tokenB, nil
}

func (v *exchangeView) getPair(ID interface{}, arg *Argument) (interface{}, error) {
	tokenA, tokenB, err := v.tokenPair(arg)
	if err != nil {
		return nil, err
	}
	var ret common.Address
	err = v.withFactory(func(f *factory.FactoryContract, loader types.ContractLoader) error {
		ret = f.GetPair(loader, tokenA, tokenB)
		return nil
	})
	return ret, err
}

// pairFor derives the address without touching the state
func (v *exchangeView) pairFor(ID interface{}, arg *Argument) (interface{}, error) {
	tokenA, tokenB, err := v.tokenPair(arg)
	if err != nil {
		return nil, err
	}
	return trade.PairFor(v.factory, tokenA, tokenB)
}

func (v *exchangeView) reserves(ID interface{}, arg *Argument) (interface{}, error) {
	addr, err := arg.Address(0)
	if err != nil {
		return nil, err
	}
	var info *PairInfo
	err = v.ctx().View(addr, func(cont types.Contract, loader types.ContractLoader) error {
		p, is := cont.(*trade.UniSwap)
		if !is {
			return errors.Wrap(types.ErrNotExistContract, addr.String())
		}
		r0, r1, ts := p.GetReserves(loader)
		info = &PairInfo{
			Pair:               addr,
			Token0:             p.Token0(loader),
			Token1:             p.Token1(loader),
			Reserve0:           r0.String(),
			Reserve1:           r1.String(),
			BlockTimestampLast: ts,
			TotalSupply:        p.TotalSupply(loader).String(),
			KLast:              p.KLast(loader).String(),
		}
		return nil
	})
	return info, err
}

func (v *exchangeView) quote(ID interface{}, arg *Argument) (interface{}, error) {
	nums := make([]*big.Int, 3)
	for i := range nums {
		n, err := arg.BigInt(i)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	ret, err := router.Quote(nums[0], nums[1], nums[2])
	if err != nil {
		return nil, err
	}
	return ret.String(), nil
}

func (v *exchangeView) amounts(arg *Argument, fn func(r *router.RouterContract, loader types.ContractLoader, am *big.Int, path []common.Address) ([]*big.Int, error)) (interface{}, error) {
	am, err := arg.BigInt(0)
	if err != nil {
		return nil, err
	}
	path, err := arg.Addresses(1)
	if err != nil {
		return nil, err
	}
	var ret []string
	err = v.withRouter(func(r *router.RouterContract, loader types.ContractLoader) error {
		amounts, err := fn(r, loader, am, path)
		if err != nil {
			return err
		}
		for _, a := range amounts {
			ret = append(ret, a.String())
		}
		return nil
	})
	return ret, err
}

func (v *exchangeView) amountsOut(ID interface{}, arg *Argument) (interface{}, error) {
	return v.amounts(arg, func(r *router.RouterContract, loader types.ContractLoader, am *big.Int, path []common.Address) ([]*big.Int, error) {
		return r.GetAmountsOut(loader, am, path)
	})
}

func (v *exchangeView) amountsIn(ID interface{}, arg *Argument) (interface{}, error) {
	return v.amounts(arg, func(r *router.RouterContract, loader types.ContractLoader, am *big.Int, path []common.Address) ([]*big.Int, error) {
		return r.GetAmountsIn(loader, am, path)
	})
}

func (v *exchangeView) balanceOf(ID interface{}, arg *Argument) (interface{}, error) {
	tk, err := arg.Address(0)
	if err != nil {
		return nil, err
	}
	owner, err := arg.Address(1)
	if err != nil {
		return nil, err
	}
	var ret *big.Int
	err = v.ctx().View(tk, func(cont types.Contract, loader types.ContractLoader) error {
		ret, err = util.TokenBalanceOf(loader, tk, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret.String(), nil
}
