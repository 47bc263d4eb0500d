package types

import (
	"math/big"

	"github.com/meverselabs/amm/common"
	"github.com/pkg/errors"
)

// ContractContext is an context for the contract
type ContractContext struct {
	cont  common.Address
	from  common.Address
	value *big.Int
	ctx   *Context
}

// Address returns the address of the running contract
func (cc *ContractContext) Address() common.Address {
	return cc.cont
}

// LastTimestamp returns the recorded prev timestamp when ContractContext generation
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// From returns current caller address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// Value returns the native currency sent with the call
func (cc *ContractContext) Value() *big.Int {
	if cc.value == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(cc.value)
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, common.Address{}, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.isLatestHash = false
	cc.ctx.Top().SetData(cc.cont, common.Address{}, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.isLatestHash = false
	cc.ctx.Top().SetData(cc.cont, addr, name, value)
}

// IsContract returns is the contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.Top().IsContract(addr)
}

// Contract returns the contract of the address
func (cc *ContractContext) Contract(addr common.Address) (Contract, error) {
	cont, err := cc.ctx.Top().Contract(addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return cont, nil
}

// ContractLoader returns a read only view of another contract storage
func (cc *ContractContext) ContractLoader(addr common.Address) ContractLoader {
	return cc.ctx.ContractLoader(addr)
}

// Balance returns the native balance of the address
func (cc *ContractContext) Balance(addr common.Address) *big.Int {
	return cc.ctx.Top().Balance(addr)
}

// DeployContractWithAddress deploy contract to the chain with address
func (cc *ContractContext) DeployContractWithAddress(owner common.Address, addr common.Address, cont Contract, Args interface{}) (Contract, error) {
	return cc.ctx.deployContractWithAddress(owner, addr, cont, Args)
}

// EmitEvent appends the event of the signature such as "Sync(uint112,uint112)"
func (cc *ContractContext) EmitEvent(signature string, data interface{}) {
	cc.ctx.emitEvent(NewEvent(cc.cont, signature, data))
}

// Exec calls the contract of the address as the current contract
func (cc *ContractContext) Exec(to common.Address, fn ExecFunc) error {
	return cc.ExecPayable(to, nil, fn)
}

// ExecPayable calls the contract of the address with the native value as the current contract
func (cc *ContractContext) ExecPayable(to common.Address, value *big.Int, fn ExecFunc) error {
	sn := cc.ctx.Snapshot()
	if err := cc.ctx.exec(cc.cont, to, value, fn); err != nil {
		cc.ctx.Revert(sn)
		return err
	}
	cc.ctx.Commit(sn)
	return nil
}

// TransferNative sends the native currency of the current contract
// a contract receiver must implement NativeReceiver
func (cc *ContractContext) TransferNative(to common.Address, value *big.Int) error {
	if !cc.IsContract(to) {
		sn := cc.ctx.Snapshot()
		if err := cc.ctx.transferNative(cc.cont, to, value); err != nil {
			cc.ctx.Revert(sn)
			return err
		}
		cc.ctx.Commit(sn)
		return nil
	}
	return cc.ExecPayable(to, value, func(cont Contract, ncc *ContractContext) error {
		recv, ok := cont.(NativeReceiver)
		if !ok {
			return errors.WithStack(ErrNotPayable)
		}
		return recv.OnReceive(ncc, ncc.Value())
	})
}

type contractLoader struct {
	cont common.Address
	ctx  *Context
}

func (cl *contractLoader) Address() common.Address {
	return cl.cont
}

func (cl *contractLoader) LastTimestamp() uint64 {
	return cl.ctx.LastTimestamp()
}

func (cl *contractLoader) ContractData(name []byte) []byte {
	return cl.ctx.Top().Data(cl.cont, common.Address{}, name)
}

func (cl *contractLoader) AccountData(addr common.Address, name []byte) []byte {
	return cl.ctx.Top().Data(cl.cont, addr, name)
}

func (cl *contractLoader) IsContract(addr common.Address) bool {
	return cl.ctx.Top().IsContract(addr)
}

func (cl *contractLoader) Contract(addr common.Address) (Contract, error) {
	cont, err := cl.ctx.Top().Contract(addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return cont, nil
}

func (cl *contractLoader) ContractLoader(addr common.Address) ContractLoader {
	return cl.ctx.ContractLoader(addr)
}

func (cl *contractLoader) Balance(addr common.Address) *big.Int {
	return cl.ctx.Top().Balance(addr)
}
