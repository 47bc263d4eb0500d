package router

import (
	"github.com/meverselabs/amm/common"
)

// RouterContractConstruction binds the router to a factory and the native currency wrapper
type RouterContractConstruction struct {
	Factory common.Address
	WETH    common.Address
}
