package risk

import (
	"context"
	"strings"

	"vcop/core"
	"vcop/internal/risk"
)

type riskService struct {
	assets core.IAssetService
	prices core.IPriceService
	params core.RiskParameters
	// loan asset when the input names none
	defaultLoan string
}

// New new risk service
func New(assets core.IAssetService, prices core.IPriceService, params core.RiskParameters, defaultLoan string) core.IRiskService {
	return &riskService{
		assets:      assets,
		prices:      prices,
		params:      params,
		defaultLoan: defaultLoan,
	}
}

func (s *riskService) Estimate(ctx context.Context, input *core.RiskInput) (*core.RiskMetrics, error) {
	collateral, err := s.assets.FindBySymbol(ctx, input.Collateral)
	if err != nil {
		return nil, err
	}

	loanSymbol := input.Loan
	if strings.TrimSpace(loanSymbol) == "" {
		loanSymbol = s.defaultLoan
	}

	loan, err := s.assets.FindBySymbol(ctx, loanSymbol)
	if err != nil {
		return nil, err
	}

	in, err := risk.ParseInput(input, collateral, loan)
	if err != nil || in == nil {
		return nil, err
	}

	var prices risk.Prices
	if prices.Collateral, err = s.prices.GetPriceUSD(ctx, collateral); err != nil {
		return nil, err
	}

	if prices.Loan, err = s.prices.GetPriceUSD(ctx, loan); err != nil {
		return nil, err
	}

	return risk.Calculate(in, prices, s.params)
}
