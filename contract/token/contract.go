package token

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/core/types"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args interface{}) error {
	data, ok := Args.(*TokenContractConstruction)
	if !ok {
		return errors.Errorf("invalid token construction %T", Args)
	}
	return cont.construct(cc, data)
}

func (cont *TokenContract) construct(cc *types.ContractContext, data *TokenContractConstruction) error {
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	decimals := data.Decimals
	if decimals == 0 {
		decimals = 18
	}
	cc.SetContractData([]byte{tagTokenDecimals}, []byte{decimals})
	holders := make([]common.Address, 0, len(data.InitialSupplyMap))
	for k := range data.InitialSupplyMap {
		holders = append(holders, k)
	}
	sort.Slice(holders, func(i, j int) bool {
		return common.CompareAddress(holders[i], holders[j]) < 0
	})
	for _, k := range holders {
		if err := cont.mint(cc, k, data.InitialSupplyMap[k]); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am *big.Int) {
	bal := cont.BalanceOf(cc, addr)
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Add(bal, am).Bytes())
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am *big.Int) error {
	bal := cont.BalanceOf(cc, addr)
	if bal.Cmp(am) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "%v less then %v", bal.String(), am.String())
	}
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Sub(bal, am).Bytes())
	return nil
}

func (cont *TokenContract) mint(cc *types.ContractContext, to common.Address, am *big.Int) error {
	if am.Sign() < 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	if to == common.ZeroAddr {
		return errors.WithStack(ErrTransferToZeroAddress)
	}
	cont.addBalance(cc, to, am)
	total := cont.TotalSupply(cc)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Add(total, am).Bytes())
	cc.EmitEvent(TransferSignature, &TransferEvent{From: common.ZeroAddr, To: to, Value: new(big.Int).Set(am)})
	return nil
}

func (cont *TokenContract) burn(cc *types.ContractContext, from common.Address, am *big.Int) error {
	if am.Sign() < 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	if err := cont.subBalance(cc, from, am); err != nil {
		return err
	}
	total := cont.TotalSupply(cc)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Sub(total, am).Bytes())
	cc.EmitEvent(TransferSignature, &TransferEvent{From: from, To: common.ZeroAddr, Value: new(big.Int).Set(am)})
	return nil
}

func (cont *TokenContract) transfer(cc *types.ContractContext, from, to common.Address, am *big.Int) error {
	if am.Sign() < 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	if to == common.ZeroAddr {
		return errors.WithStack(ErrTransferToZeroAddress)
	}
	if err := cont.subBalance(cc, from, am); err != nil {
		return err
	}
	cont.addBalance(cc, to, am)
	cc.EmitEvent(TransferSignature, &TransferEvent{From: from, To: to, Value: new(big.Int).Set(am)})
	return nil
}

func (cont *TokenContract) approve(cc *types.ContractContext, owner, spender common.Address, am *big.Int) error {
	if am.Sign() < 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	cc.SetAccountData(owner, makeAllowanceKey(spender), am.Bytes())
	cc.EmitEvent(ApprovalSignature, &ApprovalEvent{Owner: owner, Spender: spender, Value: new(big.Int).Set(am)})
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Name(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) Decimals(cc types.ContractLoader) uint8 {
	bs := cc.ContractData([]byte{tagTokenDecimals})
	if len(bs) == 0 {
		return 18
	}
	return bs[0]
}

func (cont *TokenContract) TotalSupply(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagTokenTotalSupply}))
}

func (cont *TokenContract) BalanceOf(cc types.ContractLoader, from common.Address) *big.Int {
	return big.NewInt(0).SetBytes(cc.AccountData(from, []byte{tagTokenAmount}))
}

func (cont *TokenContract) Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	return big.NewInt(0).SetBytes(cc.AccountData(owner, makeAllowanceKey(spender)))
}

func (cont *TokenContract) IsMinter(cc types.ContractLoader, addr common.Address) bool {
	if addr == cont.master {
		return true
	}
	bs := cc.AccountData(addr, []byte{tagTokenMinter})
	return len(bs) == 1 && bs[0] == 1
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return cont.transfer(cc, cc.From(), To, Amount)
}

func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *big.Int) error {
	allowance := cont.Allowance(cc, From, cc.From())
	if allowance.Cmp(maxUint256) != 0 {
		if allowance.Cmp(Amount) < 0 {
			return errors.Wrapf(ErrInsufficientAllowance, "%v less then %v", allowance.String(), Amount.String())
		}
		cc.SetAccountData(From, makeAllowanceKey(cc.From()), new(big.Int).Sub(allowance, Amount).Bytes())
	}
	return cont.transfer(cc, From, To, Amount)
}

func (cont *TokenContract) Approve(cc *types.ContractContext, Spender common.Address, Amount *big.Int) error {
	return cont.approve(cc, cc.From(), Spender, Amount)
}

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	if !cont.IsMinter(cc, cc.From()) {
		return errors.Wrap(ErrNotMinter, cc.From().String())
	}
	return cont.mint(cc, To, Amount)
}

func (cont *TokenContract) Burn(cc *types.ContractContext, Amount *big.Int) error {
	return cont.burn(cc, cc.From(), Amount)
}

func (cont *TokenContract) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	if cc.From() != cont.master {
		return errors.Wrap(ErrNotMinter, cc.From().String())
	}
	if Is {
		cc.SetAccountData(To, []byte{tagTokenMinter}, []byte{1})
	} else {
		cc.SetAccountData(To, []byte{tagTokenMinter}, nil)
	}
	return nil
}

//////////////////////////////////////////////////
// Embedding Functions : unchecked, for contracts built on the ledger
//////////////////////////////////////////////////

func (cont *TokenContract) Construct(cc *types.ContractContext, data *TokenContractConstruction) error {
	return cont.construct(cc, data)
}

func (cont *TokenContract) Issue(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return cont.mint(cc, To, Amount)
}

func (cont *TokenContract) Redeem(cc *types.ContractContext, From common.Address, Amount *big.Int) error {
	return cont.burn(cc, From, Amount)
}
