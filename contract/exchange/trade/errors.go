package trade

import "github.com/pkg/errors"

// pair errors
var (
	ErrIdenticalAddresses          = errors.New("Exchange: IDENTICAL_ADDRESSES")
	ErrZeroAddress                 = errors.New("Exchange: ZERO_ADDRESS")
	ErrLocked                      = errors.New("Exchange: LOCKED")
	ErrAlreadyInitialized          = errors.New("Exchange: ALREADY_INITIALIZED")
	ErrOverflow                    = errors.New("Exchange: OVERFLOW")
	ErrInsufficientLiquidityMinted = errors.New("Exchange: INSUFFICIENT_LIQUIDITY_MINTED")
	ErrInsufficientLiquidityBurned = errors.New("Exchange: INSUFFICIENT_LIQUIDITY_BURNED")
	ErrInsufficientOutputAmount    = errors.New("Exchange: INSUFFICIENT_OUTPUT_AMOUNT")
	ErrInsufficientInputAmount     = errors.New("Exchange: INSUFFICIENT_INPUT_AMOUNT")
	ErrInsufficientLiquidity       = errors.New("Exchange: INSUFFICIENT_LIQUIDITY")
	ErrInvalidTo                   = errors.New("Exchange: INVALID_TO")
	ErrInvalidK                    = errors.New("Exchange: K")
	ErrNotFlashSwapCallee          = errors.New("Exchange: NOT_FLASH_SWAP_CALLEE")

	ErrLPInvalidAmount         = errors.New("LPToken: INVALID_AMOUNT")
	ErrLPTransferToZeroAddress = errors.New("LPToken: TRANSFER_TO_ZEROADDRESS")
	ErrLPExceedBalance         = errors.New("LPToken: TRANSFER_EXCEED_BALANCE")
	ErrLPExceedAllowance       = errors.New("LPToken: TRANSFER_EXCEED_ALLOWANCE")
)
