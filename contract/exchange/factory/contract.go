package factory

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/contract/exchange/trade"
	"github.com/meverselabs/amm/core/types"

	. "github.com/meverselabs/amm/contract/exchange/util"
)

type FactoryContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FactoryContract) Address() common.Address {
	return cont.addr
}
func (cont *FactoryContract) Master() common.Address {
	return cont.master
}
func (cont *FactoryContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *FactoryContract) OnCreate(cc *types.ContractContext, Args interface{}) error {
	data, ok := Args.(*FactoryContractConstruction)
	if !ok {
		return errors.Wrapf(ErrInvalidFactory, "%T", Args)
	}
	setter := data.FeeToSetter
	if setter == ZeroAddress {
		setter = cont.master
	}
	cc.SetContractData([]byte{tagFeeToSetter}, setter[:])
	return nil
}

//////////////////////////////////////////////////
// Factory : private reader functions
//////////////////////////////////////////////////
func (cont *FactoryContract) feeTo(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeTo}))
}
func (cont *FactoryContract) feeToSetter(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeToSetter}))
}
func (cont *FactoryContract) getPair(cc types.ContractLoader, tokenA, tokenB common.Address) common.Address {
	pair := cc.ContractData(makePairKey(tokenA, tokenB))
	if pair == nil {
		return ZeroAddress
	}
	return common.BytesToAddress(pair)
}
func (cont *FactoryContract) allPairsLength(cc types.ContractLoader) uint64 {
	return FromBytes(cc.ContractData([]byte{tagAllPairs})).Uint64()
}
func (cont *FactoryContract) allPairs(cc types.ContractLoader, i uint64) (common.Address, error) {
	if i >= cont.allPairsLength(cc) {
		return ZeroAddress, errors.Wrapf(ErrIndexOutOfRange, "%v", i)
	}
	return common.BytesToAddress(cc.ContractData(makeIndexKey(i))), nil
}
func (cont *FactoryContract) allPairList(cc types.ContractLoader) []common.Address {
	n := cont.allPairsLength(cc)
	list := make([]common.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		list = append(list, common.BytesToAddress(cc.ContractData(makeIndexKey(i))))
	}
	return list
}

func makeIndexKey(i uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagAllPairs
	binary.BigEndian.PutUint64(bs[1:], i)
	return bs
}

//////////////////////////////////////////////////
// Factory : private writer functions
//////////////////////////////////////////////////
func (cont *FactoryContract) createPair(cc *types.ContractContext, tokenA, tokenB common.Address) (common.Address, error) {
	if tokenA == ZeroAddress || tokenB == ZeroAddress {
		return ZeroAddress, errors.WithStack(trade.ErrZeroAddress)
	}
	token0, token1, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return ZeroAddress, err
	}
	if cont.getPair(cc, token0, token1) != ZeroAddress {
		return ZeroAddress, errors.WithStack(ErrPairExists)
	}
	pair, err := trade.PairFor(cont.addr, token0, token1)
	if err != nil {
		return ZeroAddress, err
	}
	if _, err := cc.DeployContractWithAddress(cont.addr, pair, &trade.UniSwap{}, nil); err != nil {
		return ZeroAddress, err
	}
	if err := cc.Exec(pair, func(c types.Contract, pcc *types.ContractContext) error {
		return c.(*trade.UniSwap).Initialize(pcc, token0, token1)
	}); err != nil {
		return ZeroAddress, err
	}

	cc.SetContractData(makePairKey(token0, token1), pair[:])
	cc.SetContractData(makePairKey(token1, token0), pair[:])

	n := cont.allPairsLength(cc)
	cc.SetContractData(makeIndexKey(n), pair[:])
	cc.SetContractData([]byte{tagAllPairs}, new(big.Int).SetUint64(n+1).Bytes())

	cc.EmitEvent(PairCreatedSignature, &PairCreatedEvent{Token0: tokenA, Token1: tokenB, Pair: pair, Count: n + 1})
	return pair, nil
}

func (cont *FactoryContract) onlyFeeToSetter(cc *types.ContractContext) error {
	setter := cont.feeToSetter(cc)
	if cc.From() != setter {
		return NewForbiddenError(cc.From(), setter)
	}
	return nil
}
func (cont *FactoryContract) setFeeTo(cc *types.ContractContext, _feeTo common.Address) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	prev := cont.feeTo(cc)
	if _feeTo == ZeroAddress {
		cc.SetContractData([]byte{tagFeeTo}, nil)
	} else {
		cc.SetContractData([]byte{tagFeeTo}, _feeTo[:])
	}
	cc.EmitEvent(FeeToChangedSignature, &FeeToChangedEvent{Previous: prev, Current: _feeTo})
	return nil
}

// handing the role to its current holder is rejected
func (cont *FactoryContract) setFeeToSetter(cc *types.ContractContext, _feeToSetter common.Address) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	prev := cont.feeToSetter(cc)
	if _feeToSetter == prev {
		return NewForbiddenError(cc.From(), prev)
	}
	cc.SetContractData([]byte{tagFeeToSetter}, _feeToSetter[:])
	cc.EmitEvent(FeeToSetterChangedSignature, &FeeToSetterChangedEvent{Previous: prev, Current: _feeToSetter})
	return nil
}
