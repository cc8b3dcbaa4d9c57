package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrAssetNotFound no asset
	ErrAssetNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100102
	// ErrInvalidParams missing or malformed action params
	ErrInvalidParams ErrorCode = 100103
	// ErrInvalidInterestRate interest rate out of [0, 100]
	ErrInvalidInterestRate ErrorCode = 100104
	// ErrTooManyDecimals amount has more fraction digits than the token
	ErrTooManyDecimals ErrorCode = 100105
	// ErrUnknownAction no call builder for action
	ErrUnknownAction ErrorCode = 100106
	// ErrPriceUnavailable every price source failed
	ErrPriceUnavailable ErrorCode = 100107
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100108
	// ErrSenderNotConfigured no signing key for submit
	ErrSenderNotConfigured ErrorCode = 100109
	// ErrTransactionReverted transaction mined with failed status
	ErrTransactionReverted ErrorCode = 100110
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
