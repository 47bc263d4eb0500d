package util

import (
	"fmt"

	"github.com/meverselabs/amm/common"
	"github.com/pkg/errors"
)

// util errors
var (
	ErrNotLedger = errors.New("TransferHelper: NOT_LEDGER")
)

// ForbiddenError reports a caller that is not the authority of a restricted call
type ForbiddenError struct {
	Caller    common.Address
	Authority common.Address
}

// NewForbiddenError returns the forbidden error with the stack
func NewForbiddenError(caller, authority common.Address) error {
	return errors.WithStack(&ForbiddenError{Caller: caller, Authority: authority})
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Exchange: FORBIDDEN caller %s, authority %s", e.Caller.Hex(), e.Authority.Hex())
}

// IsForbidden returns the forbidden error in the chain of err
func IsForbidden(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
