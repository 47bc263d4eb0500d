package apiserver

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/amount"
	"github.com/pkg/errors"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	arg := &Argument{
		args: args,
	}
	return arg
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

func (arg *Argument) get(index int) (interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	return a, nil
}

// Int returns a int value of the index
func (arg *Argument) Int(index int) (int, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(fmt.Sprintf("%v", a), 10, 32)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return int(n), nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return n, nil
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	a, err := arg.get(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", a), nil
}

// Address returns a hex address of the index
func (arg *Argument) Address(index int) (common.Address, error) {
	str, err := arg.String(index)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := common.ParseAddress(str)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return addr, nil
}

// Addresses returns the address list of the index
func (arg *Argument) Addresses(index int) ([]common.Address, error) {
	list, err := arg.Array(index)
	if err != nil {
		return nil, err
	}
	sub := NewArgument(list)
	addrs := make([]common.Address, 0, len(list))
	for i := range list {
		addr, err := sub.Address(i)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// BigInt returns a base 10 integer of the index in the smallest unit
func (arg *Argument) BigInt(index int) (*big.Int, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	bi, ok := new(big.Int).SetString(str, 10)
	if !ok || bi.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, str)
	}
	return bi, nil
}

// Amount returns a decimal amount with 18 fraction digits like "1.5"
func (arg *Argument) Amount(index int) (*amount.Amount, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	am, err := amount.ParseAmount(str)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return am, nil
}

// Bytes returns the 0x prefixed hex data of the index
func (arg *Argument) Bytes(index int) ([]byte, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	bs, err := hexutil.Decode(str)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return bs, nil
}

// Array returns a list value of the index
func (arg *Argument) Array(index int) ([]interface{}, error) {
	a, err := arg.get(index)
	if err != nil {
		return nil, err
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Slice:
		s := reflect.ValueOf(a)

		r := []interface{}{}
		for i := 0; i < s.Len(); i++ {
			r = append(r, s.Index(i).Interface())
		}
		return r, nil
	}
	return nil, errors.WithStack(ErrInvalidArgumentType)
}
