package psm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"vcop/core"
	"vcop/internal/calls"
	"vcop/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// feeDecimals psmFee is parts per million, 1e4 = 1%
const feeDecimals = 4

type psmService struct {
	chain      core.IChainService
	psmStore   core.IPSMStore
	vcop       *core.Asset
	collateral *core.Asset
}

// New new psm service, psmStore serves the last snapshot when the chain read fails
func New(chain core.IChainService, psmStore core.IPSMStore, vcop, collateral *core.Asset) core.IPSMService {
	return &psmService{
		chain:      chain,
		psmStore:   psmStore,
		vcop:       vcop,
		collateral: collateral,
	}
}

func (s *psmService) Stats(ctx context.Context) (*core.PSMStats, error) {
	stats, err := s.read(ctx)
	if err == nil {
		return stats, nil
	}

	log := logger.FromContext(ctx)
	log.WithError(err).Errorln("read psm stats")

	if s.psmStore == nil {
		return nil, err
	}

	last, e := s.psmStore.Latest(ctx)
	if e != nil {
		if !gorm.IsRecordNotFoundError(e) {
			log.WithError(e).Errorln("psmStore.Latest")
		}

		return nil, err
	}

	return last, nil
}

func (s *psmService) read(ctx context.Context) (*core.PSMStats, error) {
	raw, err := s.chain.PSMStats(ctx)
	if err != nil {
		return nil, err
	}

	fee, err := s.chain.PSMFee(ctx)
	if err != nil {
		return nil, err
	}

	stats := &core.PSMStats{
		VcopReserve:       number.FromBaseUnits(raw.VcopReserve, s.vcop.Decimals),
		CollateralReserve: number.FromBaseUnits(raw.CollateralReserve, s.collateral.Decimals),
		LastOperationAt:   raw.LastOperation,
		Fee:               number.FromBaseUnits(fee, feeDecimals),
		CreatedAt:         time.Now(),
	}

	if raw.TotalSwaps != nil {
		stats.TotalSwaps = raw.TotalSwaps.Int64()
	}

	return stats, nil
}

func (s *psmService) Quote(ctx context.Context, action core.Action, amount decimal.Decimal) (*core.PSMQuote, error) {
	var (
		in, out *core.Asset
		quote   func(context.Context, *big.Int) (*big.Int, error)
	)

	switch action {
	case core.ActionSwapVcopForCollateral:
		in, out, quote = s.vcop, s.collateral, s.chain.QuoteCollateralForVcop
	case core.ActionSwapCollateralForVcop:
		in, out, quote = s.collateral, s.vcop, s.chain.QuoteVcopForCollateral
	default:
		return nil, fmt.Errorf("%w: %s is not a psm swap", core.ErrUnknownAction, action)
	}

	units, err := calls.Amount(amount.String(), in)
	if err != nil {
		return nil, err
	}

	result, err := quote(ctx, units)
	if err != nil {
		return nil, err
	}

	return &core.PSMQuote{
		Action:    action,
		AmountIn:  amount,
		AmountOut: number.FromBaseUnits(result, out.Decimals),
	}, nil
}
