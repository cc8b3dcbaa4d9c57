package risk

import (
	"errors"
	"strings"
	"testing"

	"vcop/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc = &core.Asset{Symbol: "USDC", Decimals: 6, Type: core.AssetTypeVaultBased, Volatility: decimal.RequireFromString("0.05")}
	weth = &core.Asset{Symbol: "WETH", Decimals: 18, Type: core.AssetTypeVaultBased, Volatility: decimal.RequireFromString("0.8")}
	vcop = &core.Asset{Symbol: "VCOP", Decimals: 6, Type: core.AssetTypeMintableBurnable, Volatility: decimal.RequireFromString("0.15")}
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func input(t *testing.T, collateral, loan string) *Input {
	in, err := ParseInput(&core.RiskInput{CollateralAmount: collateral, LoanAmount: loan}, usdc, usdc)
	require.Nil(t, err)
	require.NotNil(t, in)
	return in
}

func TestParseInput(t *testing.T) {
	for _, raw := range []*core.RiskInput{
		{CollateralAmount: "", LoanAmount: "1"},
		{CollateralAmount: "1", LoanAmount: "abc"},
		{CollateralAmount: "1", LoanAmount: "1", InterestRate: "x"},
		{CollateralAmount: ".", LoanAmount: "1"},
		{CollateralAmount: "1e20000000", LoanAmount: "1"},
		{CollateralAmount: "1", LoanAmount: "5E3"},
		{CollateralAmount: strings.Repeat("1", 4096), LoanAmount: "1"},
	} {
		in, err := ParseInput(raw, usdc, vcop)
		assert.Nil(t, err)
		assert.Nil(t, in, "no metrics for %+v", raw)
	}

	_, err := ParseInput(&core.RiskInput{CollateralAmount: "-1", LoanAmount: "1"}, usdc, vcop)
	assert.True(t, errors.Is(err, core.ErrInvalidAmount))

	_, err = ParseInput(&core.RiskInput{CollateralAmount: "1", LoanAmount: "1", InterestRate: "101"}, usdc, vcop)
	assert.True(t, errors.Is(err, core.ErrInvalidInterestRate))

	_, err = ParseInput(&core.RiskInput{CollateralAmount: "1", LoanAmount: "1"}, nil, vcop)
	assert.True(t, errors.Is(err, core.ErrAssetNotFound))

	in, err := ParseInput(&core.RiskInput{CollateralAmount: " 100 ", LoanAmount: "50", InterestRate: "5"}, usdc, vcop)
	require.Nil(t, err)
	assert.Equal(t, "100", in.CollateralAmount.String())
	assert.Equal(t, "5", in.InterestRate.String())
}

func TestCalculateNoDebt(t *testing.T) {
	for _, collateral := range []string{"0", "1", "1000000"} {
		m, err := Calculate(input(t, collateral, "0"), Prices{Collateral: one, Loan: one}, DefaultParameters())
		require.Nil(t, err)
		assert.True(t, m.Infinite)
		assert.Equal(t, core.RiskLevelHealthy, m.RiskLevel)
		assert.True(t, m.MaxWithdrawable.Equal(d(collateral)))
		assert.True(t, m.TimeToLiquidation.Equal(MaxHours))
	}
}

func TestCalculateExample(t *testing.T) {
	m, err := Calculate(input(t, "100", "50"), Prices{Collateral: one, Loan: one}, DefaultParameters())
	require.Nil(t, err)

	assert.False(t, m.Infinite)
	assert.Equal(t, "200", m.CollateralizationRatio.String())
	assert.Equal(t, "1.6667", m.HealthFactor.Round(4).String())
	assert.Equal(t, core.RiskLevelHealthy, m.RiskLevel)
	assert.Equal(t, "0.6", m.LiquidationPrice.String())
	assert.Equal(t, "40", m.PriceDropToLiquidation.String())
	// 100 - 50 * 1.5
	assert.Equal(t, "25", m.MaxWithdrawable.String())
	// 100 / 1.5 - 50
	assert.Equal(t, "16.67", m.MaxBorrowable.Round(2).String())
	assert.Equal(t, "5", m.VolatilityRisk.String())
}

func TestCalculateMaxWithdrawableFloor(t *testing.T) {
	m, err := Calculate(input(t, "100", "70"), Prices{Collateral: one, Loan: one}, DefaultParameters())
	require.Nil(t, err)
	assert.Equal(t, core.RiskLevelDanger, m.RiskLevel)
	assert.True(t, m.MaxWithdrawable.IsZero())
	assert.True(t, m.MaxBorrowable.IsZero())
	assert.True(t, m.PriceDropToLiquidation.IsPositive())
}

func TestHealthFactorMonotonic(t *testing.T) {
	prices := Prices{Collateral: d("1.02"), Loan: d("0.00024")}
	params := DefaultParameters()

	hf := func(collateral, loan string) decimal.Decimal {
		in, err := ParseInput(&core.RiskInput{CollateralAmount: collateral, LoanAmount: loan}, usdc, vcop)
		require.Nil(t, err)
		m, err := Calculate(in, prices, params)
		require.Nil(t, err)
		return m.HealthFactor
	}

	collaterals := []string{"1", "10", "99.5", "100", "2500", "100000"}
	for i := 1; i < len(collaterals); i++ {
		assert.True(t, hf(collaterals[i], "250000").GreaterThan(hf(collaterals[i-1], "250000")))
	}

	loans := []string{"1", "1000", "250000", "250001", "9000000"}
	for i := 1; i < len(loans); i++ {
		assert.True(t, hf("1000", loans[i]).LessThan(hf("1000", loans[i-1])))
	}
}

func TestLevel(t *testing.T) {
	thresholds := DefaultParameters().Thresholds

	data := map[string]core.RiskLevel{
		"3":    core.RiskLevelHealthy,
		"1.5":  core.RiskLevelHealthy,
		"1.49": core.RiskLevelWarning,
		"1.25": core.RiskLevelWarning,
		"1.2":  core.RiskLevelDanger,
		"1.1":  core.RiskLevelDanger,
		"1.05": core.RiskLevelCritical,
		"1":    core.RiskLevelCritical,
		"0.99": core.RiskLevelLiquidatable,
		"0":    core.RiskLevelLiquidatable,
	}

	for hf, level := range data {
		t.Run(hf, func(t *testing.T) {
			assert.Equal(t, level, Level(d(hf), thresholds))
		})
	}

	assert.NotEqual(t, core.RiskLevelHealthy, Level(d("0.99"), thresholds))
}

func TestLiquidationPriceRoundTrip(t *testing.T) {
	params := DefaultParameters()

	data := []struct {
		collateral, loan, collateralPrice, loanPrice string
	}{
		{"100", "50", "1", "1"},
		{"2.5", "4000000", "3150.25", "0.000238"},
		{"0.75", "12000", "61000", "0.00025"},
		{"1000", "999", "1.0001", "1"},
		{"7", "1", "1", "1"},
	}

	for _, c := range data {
		t.Run(c.collateral+"/"+c.loan, func(t *testing.T) {
			in, err := ParseInput(&core.RiskInput{CollateralAmount: c.collateral, LoanAmount: c.loan}, weth, vcop)
			require.Nil(t, err)

			m, err := Calculate(in, Prices{Collateral: d(c.collateralPrice), Loan: d(c.loanPrice)}, params)
			require.Nil(t, err)

			ratio, ok := Ratio(in.CollateralAmount, m.LiquidationPrice, in.LoanAmount, d(c.loanPrice))
			require.True(t, ok)
			assert.Equal(t, params.LiquidationThreshold.String(), ratio.Round(8).String())
		})
	}
}

func TestRatioZeroLoan(t *testing.T) {
	_, ok := Ratio(d("10"), one, decimal.Zero, one)
	assert.False(t, ok)
}

func TestTimeToLiquidation(t *testing.T) {
	// liquidatable or nothing to drop
	assert.True(t, TimeToLiquidation(d("0.9"), d("10"), d("0.8"), decimal.Zero).IsZero())
	assert.True(t, TimeToLiquidation(d("1.2"), decimal.Zero, d("0.8"), decimal.Zero).IsZero())

	// 0.5^2 * 8760 / 0.8^2
	assert.Equal(t, "3421.88", TimeToLiquidation(d("2"), d("50"), d("0.8"), decimal.Zero).String())

	// interest only: (1.5 - 1) / 0.1 years
	assert.Equal(t, "43800", TimeToLiquidation(d("1.5"), d("30"), decimal.Zero, d("10")).String())

	// neither horizon applies
	assert.True(t, TimeToLiquidation(d("1.5"), d("30"), decimal.Zero, decimal.Zero).Equal(MaxHours))

	// the shorter horizon wins
	assert.Equal(t, "3421.88", TimeToLiquidation(d("2"), d("50"), d("0.8"), d("1")).String())
}

func TestCalculateInvalidPrice(t *testing.T) {
	_, err := Calculate(input(t, "1", "1"), Prices{Collateral: decimal.Zero, Loan: one}, DefaultParameters())
	assert.True(t, errors.Is(err, core.ErrInvalidPrice))
}

func TestCalculateLiquidatable(t *testing.T) {
	m, err := Calculate(input(t, "100", "90"), Prices{Collateral: d("1"), Loan: d("1.2")}, DefaultParameters())
	require.Nil(t, err)
	assert.Equal(t, core.RiskLevelLiquidatable, m.RiskLevel)
	assert.True(t, m.PriceDropToLiquidation.IsNegative())
	assert.True(t, m.TimeToLiquidation.IsZero())
}
