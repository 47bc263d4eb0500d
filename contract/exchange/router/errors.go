package router

import "github.com/pkg/errors"

// library errors
var (
	ErrInsufficientAmount       = errors.New("Library: INSUFFICIENT_AMOUNT")
	ErrInsufficientLiquidity    = errors.New("Library: INSUFFICIENT_LIQUIDITY")
	ErrInsufficientInputAmount  = errors.New("Library: INSUFFICIENT_INPUT_AMOUNT")
	ErrInsufficientOutputAmount = errors.New("Library: INSUFFICIENT_OUTPUT_AMOUNT")
	ErrInvalidPath              = errors.New("Library: INVALID_PATH")
)

// router errors
var (
	ErrExpired              = errors.New("Router: EXPIRED")
	ErrInsufficientAAmount  = errors.New("Router: INSUFFICIENT_A_AMOUNT")
	ErrInsufficientBAmount  = errors.New("Router: INSUFFICIENT_B_AMOUNT")
	ErrExcessiveInputAmount = errors.New("Router: EXCESSIVE_INPUT_AMOUNT")
	ErrNotWETH              = errors.New("Router: NOT_WETH")
	ErrNotWrapper           = errors.New("Router: NOT_WRAPPER")
	ErrInvalidRouter        = errors.New("Router: INVALID_ROUTER_CONSTRUCTION")
)
