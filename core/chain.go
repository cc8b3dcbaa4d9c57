package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RawPSMStats result of getPSMStats()
type RawPSMStats struct {
	VcopReserve       *big.Int
	CollateralReserve *big.Int
	LastOperation     time.Time
	TotalSwaps        *big.Int
}

// IChainService contract reads, results in base units
type IChainService interface {
	BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)

	PositionCount(ctx context.Context, owner common.Address) (uint64, error)
	Position(ctx context.Context, owner common.Address, id uint64) (*RawPosition, error)
	CollateralRatio(ctx context.Context, owner common.Address, id uint64) (*big.Int, error)

	PSMStats(ctx context.Context) (*RawPSMStats, error)
	PSMFee(ctx context.Context) (*big.Int, error)
	QuoteCollateralForVcop(ctx context.Context, vcopAmount *big.Int) (*big.Int, error)
	QuoteVcopForCollateral(ctx context.Context, collateralAmount *big.Int) (*big.Int, error)

	// UsdToCopRate COP per USD, 6 decimals
	UsdToCopRate(ctx context.Context) (*big.Int, error)
}
