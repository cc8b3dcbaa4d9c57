package risk

import (
	"fmt"
	"strings"

	"vcop/core"
	"vcop/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
	// HoursPerYear hours per year
	HoursPerYear = decimal.NewFromInt(8760)
	// MaxHours time to liquidation cap, 100 years
	MaxHours = HoursPerYear.Mul(hundred)
)

// Input parsed estimator input
type Input struct {
	Collateral       *core.Asset
	Loan             *core.Asset
	CollateralAmount decimal.Decimal
	LoanAmount       decimal.Decimal
	// percent per year
	InterestRate decimal.Decimal
}

// Prices usd prices of the input assets
type Prices struct {
	Collateral decimal.Decimal
	Loan       decimal.Decimal
}

// DefaultParameters 150% minimum ratio, liquidation at 120%
func DefaultParameters() core.RiskParameters {
	return core.RiskParameters{
		MinRatio:             decimal.NewFromInt(150),
		LiquidationThreshold: decimal.NewFromInt(120),
		Thresholds: core.RiskThresholds{
			Healthy:  decimal.RequireFromString("1.5"),
			Warning:  decimal.RequireFromString("1.25"),
			Danger:   decimal.RequireFromString("1.1"),
			Critical: one,
		},
	}
}

// ParseInput validate the raw form values.
//
// Empty or non numeric amounts return a nil input and no error: there is
// nothing to estimate yet. Negative amounts and interest rates outside
// [0, 100] are rejected.
func ParseInput(raw *core.RiskInput, collateral, loan *core.Asset) (*Input, error) {
	if collateral == nil || loan == nil {
		return nil, fmt.Errorf("%w: collateral and loan assets required", core.ErrAssetNotFound)
	}

	collateralAmount, ok := parseNumeric(raw.CollateralAmount)
	if !ok {
		return nil, nil
	}

	loanAmount, ok := parseNumeric(raw.LoanAmount)
	if !ok {
		return nil, nil
	}

	rate := decimal.Zero
	if strings.TrimSpace(raw.InterestRate) != "" {
		if rate, ok = parseNumeric(raw.InterestRate); !ok {
			return nil, nil
		}
	}

	if collateralAmount.IsNegative() || loanAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", core.ErrInvalidAmount)
	}

	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: interest rate %s not in [0, 100]", core.ErrInvalidInterestRate, rate)
	}

	return &Input{
		Collateral:       collateral,
		Loan:             loan,
		CollateralAmount: collateralAmount,
		LoanAmount:       loanAmount,
		InterestRate:     rate,
	}, nil
}

func parseNumeric(v string) (decimal.Decimal, bool) {
	v = strings.TrimSpace(v)
	if !govalidator.IsFloat(v) {
		return decimal.Zero, false
	}

	d, err := number.Parse(v)
	return d, err == nil
}

// Calculate evaluate the risk snapshot of a position
func Calculate(in *Input, prices Prices, params core.RiskParameters) (*core.RiskMetrics, error) {
	if !prices.Collateral.IsPositive() || !prices.Loan.IsPositive() {
		return nil, fmt.Errorf("%w: collateral %s loan %s", core.ErrInvalidPrice, prices.Collateral, prices.Loan)
	}

	minRatio := params.MinRatio.Div(hundred)
	collateralValue := in.CollateralAmount.Mul(prices.Collateral)
	loanValue := in.LoanAmount.Mul(prices.Loan)

	metrics := &core.RiskMetrics{
		VolatilityRisk: in.Collateral.Volatility.Mul(hundred),
		MaxBorrowable:  positive(collateralValue.Div(minRatio).Sub(loanValue)).Div(prices.Loan),
	}

	if loanValue.IsZero() {
		metrics.Infinite = true
		metrics.MaxWithdrawable = in.CollateralAmount
		metrics.PriceDropToLiquidation = hundred
		metrics.TimeToLiquidation = MaxHours
		metrics.RiskLevel = core.RiskLevelHealthy
		return metrics, nil
	}

	metrics.CollateralizationRatio = collateralValue.Mul(hundred).Div(loanValue)
	metrics.HealthFactor = metrics.CollateralizationRatio.Div(params.LiquidationThreshold)
	metrics.MaxWithdrawable = positive(in.CollateralAmount.Sub(loanValue.Mul(minRatio).Div(prices.Collateral)))

	if in.CollateralAmount.IsPositive() {
		metrics.LiquidationPrice = LiquidationPrice(in.CollateralAmount, loanValue, params.LiquidationThreshold)
		metrics.PriceDropToLiquidation = prices.Collateral.Sub(metrics.LiquidationPrice).Div(prices.Collateral).Mul(hundred)
	}

	metrics.RiskLevel = Level(metrics.HealthFactor, params.Thresholds)
	metrics.TimeToLiquidation = TimeToLiquidation(metrics.HealthFactor, metrics.PriceDropToLiquidation, in.Collateral.Volatility, in.InterestRate)

	return metrics, nil
}

// Ratio collateralization ratio in percent, ok false when the loan value is zero
func Ratio(collateralAmount, collateralPrice, loanAmount, loanPrice decimal.Decimal) (decimal.Decimal, bool) {
	loanValue := loanAmount.Mul(loanPrice)
	if loanValue.IsZero() {
		return decimal.Zero, false
	}

	return collateralAmount.Mul(collateralPrice).Mul(hundred).Div(loanValue), true
}

// LiquidationPrice collateral price at which the ratio equals the liquidation threshold
func LiquidationPrice(collateralAmount, loanValue, threshold decimal.Decimal) decimal.Decimal {
	return loanValue.Mul(threshold).Div(collateralAmount.Mul(hundred))
}

// Level step function over the health factor
func Level(healthFactor decimal.Decimal, t core.RiskThresholds) core.RiskLevel {
	switch {
	case healthFactor.GreaterThanOrEqual(t.Healthy):
		return core.RiskLevelHealthy
	case healthFactor.GreaterThanOrEqual(t.Warning):
		return core.RiskLevelWarning
	case healthFactor.GreaterThanOrEqual(t.Danger):
		return core.RiskLevelDanger
	case healthFactor.GreaterThanOrEqual(t.Critical):
		return core.RiskLevelCritical
	default:
		return core.RiskLevelLiquidatable
	}
}

// TimeToLiquidation rough horizon in hours, capped at MaxHours.
//
// Price horizon: the number of hours a random walk with the asset's hourly
// volatility needs to cover the drop, (drop / (vol / sqrt(8760)))^2.
// Interest horizon: the time accrued interest takes to push the health
// factor to 1 at the given yearly rate.
func TimeToLiquidation(healthFactor, priceDrop, volatility, interestRate decimal.Decimal) decimal.Decimal {
	if healthFactor.LessThan(one) || !priceDrop.IsPositive() {
		return decimal.Zero
	}

	hours := MaxHours
	if volatility.IsPositive() {
		drop := priceDrop.Div(hundred)
		h := drop.Mul(drop).Mul(HoursPerYear).Div(volatility.Mul(volatility))
		hours = decimal.Min(hours, h)
	}

	if interestRate.IsPositive() {
		h := healthFactor.Sub(one).Div(interestRate.Div(hundred)).Mul(HoursPerYear)
		hours = decimal.Min(hours, h)
	}

	return hours.Round(2)
}

func positive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}
