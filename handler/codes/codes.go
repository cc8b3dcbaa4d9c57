package codes

import (
	"errors"
	"strconv"

	"vcop/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// From map a service error to a twirp error carrying the custom code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twerr := twirp.NewError(twirpCode(code), err.Error())
	return twerr.WithMeta(CustomCodeKey, code.String())
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrAssetNotFound, core.ErrPositionNotFound:
		return twirp.NotFound
	case core.ErrInvalidAmount,
		core.ErrInvalidParams,
		core.ErrInvalidInterestRate,
		core.ErrTooManyDecimals,
		core.ErrUnknownAction,
		core.ErrInvalidPrice:
		return twirp.InvalidArgument
	case core.ErrPriceUnavailable:
		return twirp.Unavailable
	case core.ErrSenderNotConfigured:
		return twirp.FailedPrecondition
	case core.ErrTransactionReverted:
		return twirp.Aborted
	case core.ErrOperationForbidden:
		return twirp.PermissionDenied
	default:
		return twirp.Internal
	}
}

// Code custom code of a twirp error, falls back to Get
func Code(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	return Get(twerr.Code())
}
