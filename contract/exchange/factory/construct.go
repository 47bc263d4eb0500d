package factory

import (
	"github.com/meverselabs/amm/common"
)

// FactoryContractConstruction is the deploy argument of the factory
type FactoryContractConstruction struct {
	FeeToSetter common.Address
}
