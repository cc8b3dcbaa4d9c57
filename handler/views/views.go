package views

import (
	"vcop/core"

	"github.com/shopspring/decimal"
)

// Default default view
type Default struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DefaultSuccess default success view
var DefaultSuccess = Default{
	Code:    0,
	Message: "success",
}

// Price asset price view
type Price struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Error  string          `json:"error,omitempty"`
}

// Risk estimator result, metrics nil when the input is incomplete
type Risk struct {
	Input   core.RiskInput    `json:"input"`
	Metrics *core.RiskMetrics `json:"metrics"`
}

// CallBundle ordered calls of one action
type CallBundle struct {
	ID     string       `json:"id"`
	Action core.Action  `json:"action"`
	Calls  []*core.Call `json:"calls"`
}

// Preference single preference value
type Preference struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
