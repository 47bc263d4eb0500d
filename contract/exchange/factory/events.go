package factory

import (
	"github.com/meverselabs/amm/common"
)

// event signatures of the factory
const (
	PairCreatedSignature        = "PairCreated(address,address,address,uint256)"
	FeeToChangedSignature       = "FeeToChanged(address,address)"
	FeeToSetterChangedSignature = "FeeToSetterChanged(address,address)"
)

// PairCreatedEvent reports the tokens in the order given by the caller
type PairCreatedEvent struct {
	Token0 common.Address
	Token1 common.Address
	Pair   common.Address
	Count  uint64
}

type FeeToChangedEvent struct {
	Previous common.Address
	Current  common.Address
}

type FeeToSetterChangedEvent struct {
	Previous common.Address
	Current  common.Address
}
