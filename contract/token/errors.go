package token

import "github.com/pkg/errors"

// token errors
var (
	ErrInvalidAmount         = errors.New("Token: INVALID_AMOUNT")
	ErrInsufficientBalance   = errors.New("Token: TRANSFER_EXCEED_BALANCE")
	ErrInsufficientAllowance = errors.New("Token: TRANSFER_EXCEED_ALLOWANCE")
	ErrTransferToZeroAddress = errors.New("Token: TRANSFER_TO_ZEROADDRESS")
	ErrNotMinter             = errors.New("Token: NOT_MINTER")
)
