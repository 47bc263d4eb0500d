package erc20wrapper

// WrapperContractConstruction is the deploy argument of the WrapperContract
type WrapperContractConstruction struct {
	Name   string
	Symbol string
}
