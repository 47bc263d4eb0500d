package types

import "errors"

// context errors
var (
	ErrExistAddress       = errors.New("exist address")
	ErrNotExistContract   = errors.New("not exist contract")
	ErrInsufficientNative = errors.New("insufficient native balance")
	ErrNotPayable         = errors.New("not payable")
	ErrInvalidValue       = errors.New("invalid value")
)
