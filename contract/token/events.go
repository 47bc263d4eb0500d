package token

import (
	"math/big"

	"github.com/meverselabs/amm/common"
)

// event signatures of a fungible ledger
const (
	TransferSignature = "Transfer(address,address,uint256)"
	ApprovalSignature = "Approval(address,address,uint256)"
)

// TransferEvent is emitted on every balance move, From is zero on mint and To is zero on burn
type TransferEvent struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// ApprovalEvent is emitted when an allowance is set
type ApprovalEvent struct {
	Owner   common.Address
	Spender common.Address
	Value   *big.Int
}
