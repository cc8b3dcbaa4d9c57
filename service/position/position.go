package position

import (
	"context"
	"errors"
	"fmt"

	"vcop/core"
	"vcop/internal/risk"
	"vcop/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// ratioDecimals getCurrentCollateralRatio returns 1e6 for 100%
const ratioDecimals = 4

type positionService struct {
	chain  core.IChainService
	assets core.IAssetService
	prices core.IPriceService
	params core.RiskParameters
	vcop   *core.Asset
}

// New new position service
func New(
	chain core.IChainService,
	assets core.IAssetService,
	prices core.IPriceService,
	params core.RiskParameters,
	vcop *core.Asset,
) core.IPositionService {
	return &positionService{
		chain:  chain,
		assets: assets,
		prices: prices,
		params: params,
		vcop:   vcop,
	}
}

func (s *positionService) List(ctx context.Context, owner common.Address) ([]*core.Position, error) {
	count, err := s.chain.PositionCount(ctx, owner)
	if err != nil {
		return nil, err
	}

	positions := make([]*core.Position, 0, minCap(count))
	for id := uint64(0); id < count; id++ {
		position, err := s.Find(ctx, owner, id)
		if err != nil {
			if errors.Is(err, core.ErrPositionNotFound) {
				continue
			}

			return nil, err
		}

		positions = append(positions, position)
	}

	return positions, nil
}

func (s *positionService) Find(ctx context.Context, owner common.Address, id uint64) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("owner", owner.Hex()).WithField("position", id)

	raw, err := s.chain.Position(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if raw.CollateralToken == (common.Address{}) {
		return nil, fmt.Errorf("%w: %s #%d", core.ErrPositionNotFound, owner.Hex(), id)
	}

	collateral, err := s.assets.FindByAddress(ctx, raw.CollateralToken)
	if err != nil {
		return nil, err
	}

	position := &core.Position{
		Owner:            owner,
		ID:               id,
		Collateral:       collateral.Symbol,
		CollateralToken:  raw.CollateralToken,
		CollateralAmount: number.FromBaseUnits(raw.CollateralAmount, collateral.Decimals),
		Debt:             number.FromBaseUnits(raw.VcopMinted, s.vcop.Decimals),
	}

	if !position.IsOpen() {
		return position, nil
	}

	if ratio, err := s.chain.CollateralRatio(ctx, owner, id); err == nil {
		position.OnChainRatio = number.FromBaseUnits(ratio, ratioDecimals)
	} else {
		log.WithError(err).Debugln("read collateral ratio")
	}

	metrics, err := s.metrics(ctx, position, collateral)
	if err != nil {
		log.WithError(err).Errorln("estimate risk")
		return nil, err
	}

	position.Metrics = metrics
	return position, nil
}

func (s *positionService) metrics(ctx context.Context, position *core.Position, collateral *core.Asset) (*core.RiskMetrics, error) {
	var (
		prices risk.Prices
		err    error
	)

	if prices.Collateral, err = s.prices.GetPriceUSD(ctx, collateral); err != nil {
		return nil, err
	}

	if prices.Loan, err = s.prices.GetPriceUSD(ctx, s.vcop); err != nil {
		return nil, err
	}

	in := &risk.Input{
		Collateral:       collateral,
		Loan:             s.vcop,
		CollateralAmount: position.CollateralAmount,
		LoanAmount:       position.Debt,
		InterestRate:     decimal.Zero,
	}

	return risk.Calculate(in, prices, s.params)
}

// maxPrealloc bounds the slice capacity taken from an on-chain count
const maxPrealloc = 64

func minCap(count uint64) int {
	if count > maxPrealloc {
		return maxPrealloc
	}

	return int(count)
}
