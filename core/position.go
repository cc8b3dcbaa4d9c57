package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Position collateral manager position of an owner
type Position struct {
	Owner            common.Address  `json:"owner"`
	ID               uint64          `json:"id"`
	Collateral       string          `json:"collateral"`
	CollateralToken  common.Address  `json:"collateral_token"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	// VCOP minted against the position
	Debt decimal.Decimal `json:"debt"`
	// ratio reported by the contract, percent
	OnChainRatio decimal.Decimal `json:"on_chain_ratio"`
	Metrics      *RiskMetrics    `json:"metrics,omitempty"`
}

// IsOpen position still holds collateral or debt
func (p *Position) IsOpen() bool {
	return p.CollateralAmount.IsPositive() || p.Debt.IsPositive()
}

// RawPosition position as returned by positions(owner, id)
type RawPosition struct {
	CollateralToken  common.Address
	CollateralAmount *big.Int
	VcopMinted       *big.Int
}

// IPositionService positions with risk metrics
type IPositionService interface {
	List(ctx context.Context, owner common.Address) ([]*Position, error)
	Find(ctx context.Context, owner common.Address, id uint64) (*Position, error)
}
