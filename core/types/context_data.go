package types

import (
	"bytes"
	"math/big"

	"github.com/davecgh/go-spew/spew"
	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/hash"
	"github.com/tidwall/btree"
)

const btreeDegrees = 32

var (
	tagNativeBalance = byte(0x01)
	tagDeploySeq     = byte(0x02)
)

// ContextData is a state data of the context
type ContextData struct {
	Parent         *ContextData
	ContractMap    map[common.Address]Contract
	DataMap        map[string][]byte
	DeletedDataMap map[string]bool
	Events         []*Event
}

// NewContextData returns a ContextData
func NewContextData(Parent *ContextData) *ContextData {
	ctd := &ContextData{
		Parent:         Parent,
		ContractMap:    map[common.Address]Contract{},
		DataMap:        map[string][]byte{},
		DeletedDataMap: map[string]bool{},
		Events:         []*Event{},
	}
	return ctd
}

// IsContract returns is the contract
func (ctd *ContextData) IsContract(addr common.Address) bool {
	if _, has := ctd.ContractMap[addr]; has {
		return true
	} else if ctd.Parent != nil {
		return ctd.Parent.IsContract(addr)
	}
	return false
}

// Contract returns the contract
func (ctd *ContextData) Contract(addr common.Address) (Contract, error) {
	if cont, has := ctd.ContractMap[addr]; has {
		return cont, nil
	} else if ctd.Parent != nil {
		return ctd.Parent.Contract(addr)
	}
	return nil, ErrNotExistContract
}

func dataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

// Data returns the data
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctd.data(dataKey(cont, addr, name))
}

func (ctd *ContextData) data(key string) []byte {
	if _, has := ctd.DeletedDataMap[key]; has {
		return nil
	}
	if value, has := ctd.DataMap[key]; has {
		nvalue := make([]byte, len(value))
		copy(nvalue, value)
		return nvalue
	} else if ctd.Parent != nil {
		return ctd.Parent.data(key)
	}
	return nil
}

// SetData inserts the data, an empty value deletes it
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := dataKey(cont, addr, name)
	if len(value) == 0 {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
	} else {
		delete(ctd.DeletedDataMap, key)
		nvalue := make([]byte, len(value))
		copy(nvalue, value)
		ctd.DataMap[key] = nvalue
	}
}

// Balance returns the native balance of the address
func (ctd *ContextData) Balance(addr common.Address) *big.Int {
	bs := ctd.Data(common.ZeroAddr, addr, []byte{tagNativeBalance})
	return big.NewInt(0).SetBytes(bs)
}

// SetBalance updates the native balance of the address
func (ctd *ContextData) SetBalance(addr common.Address, am *big.Int) {
	ctd.SetData(common.ZeroAddr, addr, []byte{tagNativeBalance}, am.Bytes())
}

// NextSeq returns the next deploy sequence
func (ctd *ContextData) NextSeq() uint64 {
	seq := big.NewInt(0).SetBytes(ctd.Data(common.ZeroAddr, common.ZeroAddr, []byte{tagDeploySeq})).Uint64() + 1
	ctd.SetData(common.ZeroAddr, common.ZeroAddr, []byte{tagDeploySeq}, big.NewInt(0).SetUint64(seq).Bytes())
	return seq
}

type dataItem struct {
	key     string
	value   []byte
	deleted bool
}

func (item *dataItem) Less(than btree.Item, ctx interface{}) bool {
	return item.key < than.(*dataItem).key
}

// Hash returns the hash value of it
func (ctd *ContextData) Hash() hash.Hash256 {
	tr := btree.New(btreeDegrees, nil)
	for k, v := range ctd.DataMap {
		tr.ReplaceOrInsert(&dataItem{key: k, value: v})
	}
	for k := range ctd.DeletedDataMap {
		tr.ReplaceOrInsert(&dataItem{key: k, deleted: true})
	}
	conts := btree.New(btreeDegrees, nil)
	for addr := range ctd.ContractMap {
		conts.ReplaceOrInsert(&dataItem{key: string(addr[:])})
	}

	var buffer bytes.Buffer
	buffer.WriteString("ContractMap")
	conts.Ascend(func(i btree.Item) bool {
		buffer.WriteString(i.(*dataItem).key)
		return true
	})
	buffer.WriteString("DataMap")
	tr.Ascend(func(i btree.Item) bool {
		item := i.(*dataItem)
		buffer.WriteString(item.key)
		if item.deleted {
			buffer.WriteByte(0)
		} else {
			buffer.WriteByte(1)
			buffer.Write(item.value)
		}
		return true
	})
	return hash.Hash(buffer.Bytes())
}

// Dump prints the data of the snapshot
func (ctd *ContextData) Dump() string {
	cfg := spew.ConfigState{Indent: "\t", SortKeys: true, DisablePointerAddresses: true}
	return cfg.Sdump(ctd.DataMap, ctd.DeletedDataMap, ctd.Events)
}
