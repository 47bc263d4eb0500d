package trade

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/token"
	"github.com/meverselabs/amm/core/types"
	"github.com/pkg/errors"

	. "github.com/meverselabs/amm/contract/exchange/util"
)

// LPToken is the share ledger of a pair
type LPToken struct {
}

//////////////////////////////////////////////////
// LPToken : private reader function
//////////////////////////////////////////////////
func (self *LPToken) name(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}
func (self *LPToken) symbol(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}
func (self *LPToken) totalSupply(cc types.ContractLoader) *big.Int {
	return FromBytes(cc.ContractData([]byte{tagTokenTotalSupply}))
}

// Returns the amount of tokens owned by `account`.
func (self *LPToken) balanceOf(cc types.ContractLoader, _owner common.Address) *big.Int {
	return FromBytes(cc.AccountData(_owner, []byte{tagTokenAmount}))
}

// Returns the remaining number of tokens that `spender` will be
// allowed to spend on behalf of `owner` through {transferFrom}.
func (self *LPToken) allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	return FromBytes(cc.AccountData(owner, makeTokenKey(spender, tagTokenApprove)))
}

//////////////////////////////////////////////////
// LPToken Contract : private writer function
//////////////////////////////////////////////////
func (self *LPToken) _setName(cc *types.ContractContext, name string) {
	cc.SetContractData([]byte{tagTokenName}, []byte(name))
}
func (self *LPToken) _setSymbol(cc *types.ContractContext, symbol string) {
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(symbol))
}
func (self *LPToken) _mint(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.WithStack(ErrLPInvalidAmount)
	}
	cc.SetAccountData(to, []byte{tagTokenAmount}, Add(self.balanceOf(cc, to), amount).Bytes())
	cc.SetContractData([]byte{tagTokenTotalSupply}, Add(self.totalSupply(cc), amount).Bytes())
	cc.EmitEvent(token.TransferSignature, &token.TransferEvent{From: ZeroAddress, To: to, Value: Clone(amount)})
	return nil
}
func (self *LPToken) _burn(cc *types.ContractContext, from common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.WithStack(ErrLPInvalidAmount)
	}
	balance := self.balanceOf(cc, from)
	if balance.Cmp(amount) < 0 {
		return errors.WithStack(ErrLPExceedBalance)
	}
	cc.SetAccountData(from, []byte{tagTokenAmount}, Sub(balance, amount).Bytes())
	cc.SetContractData([]byte{tagTokenTotalSupply}, Sub(self.totalSupply(cc), amount).Bytes())
	cc.EmitEvent(token.TransferSignature, &token.TransferEvent{From: from, To: ZeroAddress, Value: Clone(amount)})
	return nil
}
func (self *LPToken) _approve(cc *types.ContractContext, owner, spender common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.WithStack(ErrLPInvalidAmount)
	}
	cc.SetAccountData(owner, makeTokenKey(spender, tagTokenApprove), amount.Bytes())
	cc.EmitEvent(token.ApprovalSignature, &token.ApprovalEvent{Owner: owner, Spender: spender, Value: Clone(amount)})
	return nil
}
func (self *LPToken) _transfer(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	if to == ZeroAddress {
		return errors.WithStack(ErrLPTransferToZeroAddress)
	}
	if amount.Sign() < 0 {
		return errors.WithStack(ErrLPInvalidAmount)
	}
	fromBalance := self.balanceOf(cc, from)
	if fromBalance.Cmp(amount) < 0 {
		return errors.WithStack(ErrLPExceedBalance)
	}
	cc.SetAccountData(from, []byte{tagTokenAmount}, Sub(fromBalance, amount).Bytes())
	cc.SetAccountData(to, []byte{tagTokenAmount}, Add(self.balanceOf(cc, to), amount).Bytes())
	cc.EmitEvent(token.TransferSignature, &token.TransferEvent{From: from, To: to, Value: Clone(amount)})
	return nil
}

// allowance of MaxUint256 is never spent
func (self *LPToken) transferFrom(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	allowance := self.allowance(cc, from, cc.From())
	if allowance.Cmp(MaxUint256) != 0 {
		if allowance.Cmp(amount) < 0 {
			return errors.WithStack(ErrLPExceedAllowance)
		}
		cc.SetAccountData(from, makeTokenKey(cc.From(), tagTokenApprove), Sub(allowance, amount).Bytes())
	}
	return self._transfer(cc, from, to, amount)
}

//////////////////////////////////////////////////
// LPToken : Ledger
//////////////////////////////////////////////////
func (self *LPToken) Name(cc types.ContractLoader) string {
	return self.name(cc)
}
func (self *LPToken) Symbol(cc types.ContractLoader) string {
	return self.symbol(cc)
}
func (self *LPToken) Decimals(cc types.ContractLoader) uint8 {
	return LP_DECIMALS
}
func (self *LPToken) TotalSupply(cc types.ContractLoader) *big.Int {
	return self.totalSupply(cc)
}
func (self *LPToken) BalanceOf(cc types.ContractLoader, owner common.Address) *big.Int {
	return self.balanceOf(cc, owner)
}
func (self *LPToken) Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	return self.allowance(cc, owner, spender)
}
func (self *LPToken) Transfer(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	return self._transfer(cc, cc.From(), to, amount)
}
func (self *LPToken) TransferFrom(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	return self.transferFrom(cc, from, to, amount)
}
func (self *LPToken) Approve(cc *types.ContractContext, spender common.Address, amount *big.Int) error {
	return self._approve(cc, cc.From(), spender, amount)
}
