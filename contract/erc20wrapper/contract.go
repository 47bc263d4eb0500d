package erc20wrapper

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/token"
	"github.com/meverselabs/amm/core/types"
)

// event signatures of the wrapper
const (
	DepositSignature    = "Deposit(address,uint256)"
	WithdrawalSignature = "Withdrawal(address,uint256)"
)

// DepositEvent is emitted when native currency is wrapped
type DepositEvent struct {
	Dst common.Address
	Wad *big.Int
}

// WithdrawalEvent is emitted when wrapped tokens are returned as native currency
type WithdrawalEvent struct {
	Src common.Address
	Wad *big.Int
}

// WrapperContract is a ledger backed 1:1 by the native currency it holds
type WrapperContract struct {
	token.TokenContract
}

func (cont *WrapperContract) OnCreate(cc *types.ContractContext, Args interface{}) error {
	data, ok := Args.(*WrapperContractConstruction)
	if !ok {
		return errors.Errorf("invalid wrapper construction %T", Args)
	}
	return cont.Construct(cc, &token.TokenContractConstruction{
		Name:     data.Name,
		Symbol:   data.Symbol,
		Decimals: 18,
	})
}

// OnReceive wraps plain native transfers
func (cont *WrapperContract) OnReceive(cc *types.ContractContext, value *big.Int) error {
	return cont.deposit(cc, value)
}

func (cont *WrapperContract) deposit(cc *types.ContractContext, value *big.Int) error {
	if err := cont.Issue(cc, cc.From(), value); err != nil {
		return err
	}
	cc.EmitEvent(DepositSignature, &DepositEvent{Dst: cc.From(), Wad: new(big.Int).Set(value)})
	return nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Deposit wraps the native value sent with the call
func (cont *WrapperContract) Deposit(cc *types.ContractContext) error {
	return cont.deposit(cc, cc.Value())
}

// Withdraw burns the wrapped tokens of the caller and sends back native currency
func (cont *WrapperContract) Withdraw(cc *types.ContractContext, Amount *big.Int) error {
	if err := cont.Redeem(cc, cc.From(), Amount); err != nil {
		return err
	}
	cc.EmitEvent(WithdrawalSignature, &WithdrawalEvent{Src: cc.From(), Wad: new(big.Int).Set(Amount)})
	return cc.TransferNative(cc.From(), Amount)
}
