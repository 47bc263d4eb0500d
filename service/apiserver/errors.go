package apiserver

import (
	"github.com/pkg/errors"
)

// errors
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrInvalidArgumentIndex = errors.New("invalid argument index")
	ErrInvalidArgumentType  = errors.New("invalid argument type")
	ErrInvalidMethod        = errors.New("invalid method")
	ErrExistSubName         = errors.New("exist sub name")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrServerClosed         = errors.New("apiserver closed")
)

// json rpc error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// JRPCError is the error object of a jrpc response
type JRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *JRPCError) Error() string {
	return e.Message
}

func toJRPCError(err error) *JRPCError {
	if je, is := errors.Cause(err).(*JRPCError); is {
		return je
	}
	switch errors.Cause(err) {
	case ErrInvalidMethod:
		return &JRPCError{Code: CodeMethodNotFound, Message: err.Error()}
	case ErrInvalidArgument, ErrInvalidArgumentIndex, ErrInvalidArgumentType:
		return &JRPCError{Code: CodeInvalidParams, Message: err.Error()}
	}
	return &JRPCError{Code: CodeServerError, Message: err.Error()}
}
