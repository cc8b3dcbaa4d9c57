package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PSMStats peg stability module reserves
type PSMStats struct {
	ID                int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	VcopReserve       decimal.Decimal `sql:"type:decimal(40,18)" json:"vcop_reserve"`
	CollateralReserve decimal.Decimal `sql:"type:decimal(40,18)" json:"collateral_reserve"`
	LastOperationAt   time.Time       `json:"last_operation_at"`
	TotalSwaps        int64           `json:"total_swaps"`
	// fee in percent
	Fee       decimal.Decimal `sql:"type:decimal(20,8)" json:"fee"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PSMQuote expected output of a swap
type PSMQuote struct {
	Action    Action          `json:"action"`
	AmountIn  decimal.Decimal `json:"amount_in"`
	AmountOut decimal.Decimal `json:"amount_out"`
}

// IPSMStore psm snapshot store
type IPSMStore interface {
	Create(ctx context.Context, stats *PSMStats) error
	Latest(ctx context.Context) (*PSMStats, error)
	DeleteBefore(ctx context.Context, t time.Time) error
}

// IPSMService psm reads
type IPSMService interface {
	Stats(ctx context.Context) (*PSMStats, error)
	Quote(ctx context.Context, action Action, amount decimal.Decimal) (*PSMQuote, error)
}
