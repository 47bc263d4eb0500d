package types

import (
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/hash"
	"github.com/pkg/errors"
)

// Context is an intermediate in-memory state using the context data stack between blocks
type Context struct {
	sync.Mutex
	genLastHash  hash.Hash256
	genTimestamp uint64
	stack        []*ContextData
	isLatestHash bool
	dataHash     hash.Hash256
}

// NewContext returns a Context starting at the timestamp (unix nano)
func NewContext(Timestamp uint64) *Context {
	ctx := &Context{
		genTimestamp: Timestamp,
	}
	ctx.stack = []*ContextData{NewContextData(nil)}
	return ctx
}

// NewEmptyContext returns a EmptyContext
func NewEmptyContext() *Context {
	return NewContext(0)
}

// NextContext returns the next Context of the Context, the current context must not be used after
func (ctx *Context) NextContext(Timestamp uint64) *Context {
	ctx.Lock()
	defer ctx.Unlock()

	nctx := &Context{
		genLastHash:  ctx.hash(),
		genTimestamp: Timestamp,
	}
	nctx.stack = []*ContextData{NewContextData(ctx.Top())}
	return nctx
}

// Hash returns the hash value of it
func (ctx *Context) Hash() hash.Hash256 {
	ctx.Lock()
	defer ctx.Unlock()

	return ctx.hash()
}

func (ctx *Context) hash() hash.Hash256 {
	if !ctx.isLatestHash {
		hs := []hash.Hash256{ctx.genLastHash}
		for _, ctd := range ctx.stack {
			hs = append(hs, ctd.Hash())
		}
		ctx.dataHash = hash.Hashes(hs...)
		ctx.isLatestHash = true
	}
	return ctx.dataHash
}

// LastHash returns the recorded prev hash when context generation
func (ctx *Context) LastHash() hash.Hash256 {
	return ctx.genLastHash
}

// LastTimestamp returns the last timestamp of the chain
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.genTimestamp
}

// Top returns the top snapshot
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// IsContract returns is the contract
func (ctx *Context) IsContract(addr common.Address) bool {
	return ctx.Top().IsContract(addr)
}

// Contract returns the contract
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	return ctx.Top().Contract(addr)
}

// Balance returns the native balance of the address
func (ctx *Context) Balance(addr common.Address) *big.Int {
	return ctx.Top().Balance(addr)
}

// SetBalance sets the native balance of the address, used at genesis
func (ctx *Context) SetBalance(addr common.Address, am *big.Int) {
	ctx.Lock()
	defer ctx.Unlock()

	ctx.isLatestHash = false
	ctx.Top().SetBalance(addr, am)
}

// Events returns the committed events of the context
func (ctx *Context) Events() []*Event {
	evs := []*Event{}
	for _, ctd := range ctx.stack {
		evs = append(evs, ctd.Events...)
	}
	return evs
}

func (ctx *Context) eventCount() int {
	n := 0
	for _, ctd := range ctx.stack {
		n += len(ctd.Events)
	}
	return n
}

func (ctx *Context) emitEvent(e *Event) {
	ctx.isLatestHash = false
	e.Index = uint16(ctx.eventCount())
	ctx.Top().Events = append(ctx.Top().Events, e)
}

// ContractContext returns a ContractContext of the contract called by from
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	cc := &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
	return cc
}

// ContractLoader returns a read only view of the contract storage
func (ctx *Context) ContractLoader(addr common.Address) ContractLoader {
	return &contractLoader{cont: addr, ctx: ctx}
}

// View runs fn with a read only view of the contract while no call is executing
func (ctx *Context) View(addr common.Address, fn func(cont Contract, loader ContractLoader) error) error {
	ctx.Lock()
	defer ctx.Unlock()

	cont, err := ctx.Top().Contract(addr)
	if err != nil {
		return errors.WithStack(err)
	}
	return fn(cont, ctx.ContractLoader(addr))
}

// DeployContract deploy contract to the chain
func (ctx *Context) DeployContract(owner common.Address, cont Contract, Args interface{}) (Contract, error) {
	ctx.Lock()
	defer ctx.Unlock()

	seq := ctx.Top().NextSeq()
	base := make([]byte, 1+common.AddressLength+8)
	base[0] = 0xff
	copy(base[1:], owner[:])
	binary.BigEndian.PutUint64(base[1+common.AddressLength:], seq)
	h := hash.Hash(base)
	return ctx.deployContractWithAddress(owner, common.BytesToAddress(h[12:]), cont, Args)
}

// DeployContractWithAddress deploy contract to the chain with address
func (ctx *Context) DeployContractWithAddress(owner common.Address, addr common.Address, cont Contract, Args interface{}) (Contract, error) {
	ctx.Lock()
	defer ctx.Unlock()

	return ctx.deployContractWithAddress(owner, addr, cont, Args)
}

func (ctx *Context) deployContractWithAddress(owner common.Address, addr common.Address, cont Contract, Args interface{}) (Contract, error) {
	if ctx.Top().IsContract(addr) {
		return nil, errors.WithStack(ErrExistAddress)
	}
	ctx.isLatestHash = false
	sn := ctx.Snapshot()
	cont.Init(addr, owner)
	ctx.Top().ContractMap[addr] = cont
	if err := cont.OnCreate(ctx.ContractContext(cont, owner), Args); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// Exec runs fn as the contract of the address called by from
// value is moved from the sender to the contract before fn is called
// the whole call is reverted when an error is returned, otherwise the emitted events are returned
func (ctx *Context) Exec(from common.Address, to common.Address, value *big.Int, fn ExecFunc) ([]*Event, error) {
	ctx.Lock()
	defer ctx.Unlock()

	n := ctx.eventCount()
	sn := ctx.Snapshot()
	if err := ctx.exec(from, to, value, fn); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return ctx.Events()[n:], nil
}

func (ctx *Context) exec(from common.Address, to common.Address, value *big.Int, fn ExecFunc) error {
	cont, err := ctx.Top().Contract(to)
	if err != nil {
		return errors.WithStack(err)
	}
	if value != nil && value.Sign() != 0 {
		if err := ctx.transferNative(from, to, value); err != nil {
			return err
		}
	}
	cc := ctx.ContractContext(cont, from)
	cc.value = value
	return fn(cont, cc)
}

func (ctx *Context) transferNative(from common.Address, to common.Address, value *big.Int) error {
	if value.Sign() < 0 {
		return errors.WithStack(ErrInvalidValue)
	}
	ctx.isLatestHash = false
	top := ctx.Top()
	fb := top.Balance(from)
	if fb.Cmp(value) < 0 {
		return errors.WithStack(ErrInsufficientNative)
	}
	top.SetBalance(from, fb.Sub(fb, value))
	tb := top.Balance(to)
	top.SetBalance(to, tb.Add(tb, value))
	return nil
}

// Dump prints the top context data of the context
func (ctx *Context) Dump() string {
	return ctx.Top().Dump()
}

// Snapshot push a snapshot and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctx.isLatestHash = false
	ctd := NewContextData(ctx.Top())
	ctx.stack = append(ctx.stack, ctd)
	return len(ctx.stack)
}

// Revert removes snapshots after the snapshot number
func (ctx *Context) Revert(sn int) {
	ctx.isLatestHash = false
	if len(ctx.stack) >= sn {
		ctx.stack = ctx.stack[:sn-1]
	}
}

// Commit apply snapshots to the top after the snapshot number
func (ctx *Context) Commit(sn int) {
	ctx.isLatestHash = false
	for len(ctx.stack) >= sn {
		ctd := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top := ctx.Top()
		for addr, cont := range ctd.ContractMap {
			top.ContractMap[addr] = cont
		}
		for key, value := range ctd.DataMap {
			delete(top.DeletedDataMap, key)
			top.DataMap[key] = value
		}
		for key := range ctd.DeletedDataMap {
			delete(top.DataMap, key)
			top.DeletedDataMap[key] = true
		}
		top.Events = append(top.Events, ctd.Events...)
	}
}

// StackSize returns the size of the context data stack
func (ctx *Context) StackSize() int {
	return len(ctx.stack)
}
