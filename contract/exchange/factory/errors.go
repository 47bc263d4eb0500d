package factory

import "github.com/pkg/errors"

// factory errors
var (
	ErrPairExists      = errors.New("Exchange: PAIR_EXISTS")
	ErrIndexOutOfRange = errors.New("Exchange: INDEX_OUT_OF_RANGE")
	ErrInvalidFactory  = errors.New("Exchange: INVALID_FACTORY_CONSTRUCTION")
)
