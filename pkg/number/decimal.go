package number

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotNumber not a decimal string
	ErrNotNumber = errors.New("not a number")
	// ErrTooManyDecimals more fraction digits than the token supports
	ErrTooManyDecimals = errors.New("too many decimal places")
)

// MaxLength longest accepted decimal string, enough for any uint256 amount
// with 18 fraction digits
const MaxLength = 100

// Parse strict plain decimal string, surrounding spaces are ignored.
// Exponent forms and strings longer than MaxLength are rejected.
func Parse(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, ErrNotNumber
	}

	if len(v) > MaxLength || strings.ContainsAny(v, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %.32q", ErrNotNumber, v)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumber, v)
	}

	return d, nil
}

// ToBaseUnits amount * 10^decimals, no rounding
func ToBaseUnits(amount decimal.Decimal, decimals int32) (*big.Int, error) {
	shifted := amount.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("%w: %s has more than %d", ErrTooManyDecimals, amount, decimals)
	}

	return shifted.BigInt(), nil
}

// FromBaseUnits v / 10^decimals
func FromBaseUnits(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, -decimals)
}
