package types

import (
	"math/big"

	"github.com/meverselabs/amm/common"
)

// Contract defines chain Contract functions
type Contract interface {
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args interface{}) error
}

// NativeReceiver is implemented by contracts that accept plain native currency transfers
type NativeReceiver interface {
	OnReceive(cc *ContractContext, value *big.Int) error
}

// ExecFunc runs inside the context of the called contract
type ExecFunc func(cont Contract, cc *ContractContext) error

// ContractLoader is a read only view on the storage of a contract
type ContractLoader interface {
	Address() common.Address
	LastTimestamp() uint64
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
	IsContract(addr common.Address) bool
	Contract(addr common.Address) (Contract, error)
	ContractLoader(addr common.Address) ContractLoader
	Balance(addr common.Address) *big.Int
}
