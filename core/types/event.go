package types

import (
	"strings"

	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/hash"
)

// Event is emitted by a contract and kept only when the emitting call is committed
type Event struct {
	Index    uint16
	Contract common.Address
	Name     string
	Topic    hash.Hash256
	Data     interface{}
}

// NewEvent returns a Event of the signature such as "Sync(uint112,uint112)"
func NewEvent(cont common.Address, signature string, data interface{}) *Event {
	name := signature
	if idx := strings.IndexByte(signature, '('); idx >= 0 {
		name = signature[:idx]
	}
	return &Event{
		Contract: cont,
		Name:     name,
		Topic:    hash.EventTopic(signature),
		Data:     data,
	}
}
