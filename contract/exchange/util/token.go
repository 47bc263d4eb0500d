package util

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"
)

// Ledger is the fungible token interface called by the exchange contracts
type Ledger interface {
	TotalSupply(cc types.ContractLoader) *big.Int
	BalanceOf(cc types.ContractLoader, owner common.Address) *big.Int
	Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int
	Transfer(cc *types.ContractContext, to common.Address, amount *big.Int) error
	TransferFrom(cc *types.ContractContext, from, to common.Address, amount *big.Int) error
	Approve(cc *types.ContractContext, spender common.Address, amount *big.Int) error
}

func ledger(cont types.Contract) (Ledger, error) {
	l, ok := cont.(Ledger)
	if !ok {
		return nil, errors.WithStack(ErrNotLedger)
	}
	return l, nil
}

// token.TotalSupply()
func TokenTotalSupply(cc types.ContractLoader, token common.Address) (*big.Int, error) {
	cont, err := cc.Contract(token)
	if err != nil {
		return nil, err
	}
	l, err := ledger(cont)
	if err != nil {
		return nil, err
	}
	return l.TotalSupply(cc.ContractLoader(token)), nil
}

// token.BalanceOf(owner)
func TokenBalanceOf(cc types.ContractLoader, token, owner common.Address) (*big.Int, error) {
	cont, err := cc.Contract(token)
	if err != nil {
		return nil, err
	}
	l, err := ledger(cont)
	if err != nil {
		return nil, err
	}
	return l.BalanceOf(cc.ContractLoader(token), owner), nil
}

// token.Allowance(owner, spender)
func TokenAllowance(cc types.ContractLoader, token, owner, spender common.Address) (*big.Int, error) {
	cont, err := cc.Contract(token)
	if err != nil {
		return nil, err
	}
	l, err := ledger(cont)
	if err != nil {
		return nil, err
	}
	return l.Allowance(cc.ContractLoader(token), owner, spender), nil
}

// token.Transfer(to, amount)
func SafeTransfer(cc *types.ContractContext, token, to common.Address, am *big.Int) error {
	return cc.Exec(token, func(cont types.Contract, tcc *types.ContractContext) error {
		l, err := ledger(cont)
		if err != nil {
			return err
		}
		return l.Transfer(tcc, to, am)
	})
}

// token.TransferFrom(from, to, amount)
func SafeTransferFrom(cc *types.ContractContext, token, from, to common.Address, am *big.Int) error {
	return cc.Exec(token, func(cont types.Contract, tcc *types.ContractContext) error {
		l, err := ledger(cont)
		if err != nil {
			return err
		}
		return l.TransferFrom(tcc, from, to, am)
	})
}

// token.Approve(spender, amount)
func TokenApprove(cc *types.ContractContext, token, spender common.Address, am *big.Int) error {
	return cc.Exec(token, func(cont types.Contract, tcc *types.ContractContext) error {
		l, err := ledger(cont)
		if err != nil {
			return err
		}
		return l.Approve(tcc, spender, am)
	})
}
