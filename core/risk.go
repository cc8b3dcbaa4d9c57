package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskLevel position risk, ordered by severity
type RiskLevel int

const (
	// RiskLevelHealthy healthy
	RiskLevelHealthy RiskLevel = iota
	// RiskLevelWarning warning
	RiskLevelWarning
	// RiskLevelDanger danger
	RiskLevelDanger
	// RiskLevelCritical critical, still above liquidation
	RiskLevelCritical
	// RiskLevelLiquidatable health factor below 1
	RiskLevelLiquidatable
)

var riskLevelNames = map[RiskLevel]string{
	RiskLevelHealthy:      "HEALTHY",
	RiskLevelWarning:      "WARNING",
	RiskLevelDanger:       "DANGER",
	RiskLevelCritical:     "CRITICAL",
	RiskLevelLiquidatable: "LIQUIDATABLE",
}

func (l RiskLevel) String() string {
	if name, ok := riskLevelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("RiskLevel(%d)", int(l))
}

// MarshalJSON render as name
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// RiskInput raw form input, amounts are decimal strings
type RiskInput struct {
	Collateral       string `json:"collateral" schema:"collateral"`
	Loan             string `json:"loan" schema:"loan"`
	CollateralAmount string `json:"collateral_amount" schema:"collateral_amount"`
	LoanAmount       string `json:"loan_amount" schema:"loan_amount"`
	// percent per year, 0-100
	InterestRate string `json:"interest_rate" schema:"interest_rate"`
}

// RiskThresholds lower health factor bound of each level above LIQUIDATABLE
type RiskThresholds struct {
	Healthy decimal.Decimal `json:"healthy"`
	Warning decimal.Decimal `json:"warning"`
	Danger  decimal.Decimal `json:"danger"`
	// below critical the position is liquidatable
	Critical decimal.Decimal `json:"critical"`
}

// RiskParameters protocol ratios (percent) and level thresholds
type RiskParameters struct {
	MinRatio             decimal.Decimal `json:"min_ratio"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	Thresholds           RiskThresholds  `json:"thresholds"`
}

// RiskMetrics derived snapshot, recomputed on every input change
type RiskMetrics struct {
	// no debt: ratio, health factor and time to liquidation are unbounded
	Infinite               bool            `json:"infinite"`
	CollateralizationRatio decimal.Decimal `json:"collateralization_ratio"`
	HealthFactor           decimal.Decimal `json:"health_factor"`
	LiquidationPrice       decimal.Decimal `json:"liquidation_price"`
	MaxWithdrawable        decimal.Decimal `json:"max_withdrawable"`
	MaxBorrowable          decimal.Decimal `json:"max_borrowable"`
	PriceDropToLiquidation decimal.Decimal `json:"price_drop_to_liquidation"`
	VolatilityRisk         decimal.Decimal `json:"volatility_risk"`
	// hours
	TimeToLiquidation decimal.Decimal `json:"time_to_liquidation"`
	RiskLevel         RiskLevel       `json:"risk_level"`
}

// IRiskService resolve prices and evaluate the estimator
type IRiskService interface {
	// Estimate returns nil metrics when the input is empty or not numeric
	Estimate(ctx context.Context, input *RiskInput) (*RiskMetrics, error)
}
