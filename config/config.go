package config

import (
	"fmt"
	"strings"

	"vcop/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	defaultStableSymbol     = "VCOP"
	defaultCollateralSymbol = "USDC"
)

func defaults(cfg *core.Config) {
	if cfg.App.StableSymbol == "" {
		cfg.App.StableSymbol = defaultStableSymbol
	}

	if cfg.App.CollateralSymbol == "" {
		cfg.App.CollateralSymbol = defaultCollateralSymbol
	}

	if cfg.Chain.ReceiptInterval <= 0 {
		cfg.Chain.ReceiptInterval = 2
	}

	r := &cfg.Risk
	setDefault(&r.MinRatio, "150")
	setDefault(&r.LiquidationThreshold, "120")
	setDefault(&r.Healthy, "1.5")
	setDefault(&r.Warning, "1.25")
	setDefault(&r.Danger, "1.1")
	setDefault(&r.Critical, "1")

	if len(cfg.PriceOracle.Sources) == 0 {
		cfg.PriceOracle.Sources = []string{core.PriceSourceChain, core.PriceSourceStatic}
	}

	if cfg.PriceOracle.CacheTTL <= 0 {
		cfg.PriceOracle.CacheTTL = 30
	}

	w := &cfg.Worker
	if w.PriceInterval <= 0 {
		w.PriceInterval = 30
	}
	if w.PSMInterval <= 0 {
		w.PSMInterval = 60
	}
	if w.MonitorInterval <= 0 {
		w.MonitorInterval = 60
	}
}

func setDefault(v *string, d string) {
	if strings.TrimSpace(*v) == "" {
		*v = d
	}
}

// Assets convert configured assets
func Assets(cfg *core.Config) ([]*core.Asset, error) {
	assets := make([]*core.Asset, 0, len(cfg.Assets))
	seen := make(map[string]bool, len(cfg.Assets))

	for _, item := range cfg.Assets {
		if !common.IsHexAddress(item.Address) {
			return nil, fmt.Errorf("asset %s: invalid address %q", item.Symbol, item.Address)
		}

		symbol := strings.ToUpper(item.Symbol)
		if seen[symbol] {
			return nil, fmt.Errorf("asset %s: duplicated symbol", symbol)
		}
		seen[symbol] = true

		typ := core.AssetType(strings.ToUpper(item.Type))
		if item.Type == "" {
			typ = core.AssetTypeVaultBased
		}
		if !typ.Valid() {
			return nil, fmt.Errorf("asset %s: unknown type %q", symbol, item.Type)
		}

		if item.Decimals < 0 || item.Decimals > 36 {
			return nil, fmt.Errorf("asset %s: invalid decimals %d", symbol, item.Decimals)
		}

		volatility, err := parseOptional(item.Volatility)
		if err != nil {
			return nil, fmt.Errorf("asset %s: volatility: %w", symbol, err)
		}

		price, err := parseOptional(item.Price)
		if err != nil {
			return nil, fmt.Errorf("asset %s: price: %w", symbol, err)
		}

		assets = append(assets, &core.Asset{
			Address:    common.HexToAddress(item.Address),
			Symbol:     symbol,
			Decimals:   item.Decimals,
			Type:       typ,
			Volatility: volatility,
			Price:      price,
		})
	}

	return assets, nil
}

// RiskParameters convert configured risk parameters
func RiskParameters(cfg *core.Config) (core.RiskParameters, error) {
	var (
		params core.RiskParameters
		err    error
	)

	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"min_ratio", cfg.Risk.MinRatio, &params.MinRatio},
		{"liquidation_threshold", cfg.Risk.LiquidationThreshold, &params.LiquidationThreshold},
		{"healthy", cfg.Risk.Healthy, &params.Thresholds.Healthy},
		{"warning", cfg.Risk.Warning, &params.Thresholds.Warning},
		{"danger", cfg.Risk.Danger, &params.Thresholds.Danger},
		{"critical", cfg.Risk.Critical, &params.Thresholds.Critical},
	}

	for _, f := range fields {
		if *f.dst, err = decimal.NewFromString(f.value); err != nil {
			return params, fmt.Errorf("risk.%s: %w", f.name, err)
		}
	}

	if !params.LiquidationThreshold.IsPositive() || params.MinRatio.LessThan(params.LiquidationThreshold) {
		return params, fmt.Errorf("risk: min_ratio %s must be >= liquidation_threshold %s > 0", params.MinRatio, params.LiquidationThreshold)
	}

	t := params.Thresholds
	if !(t.Healthy.GreaterThan(t.Warning) && t.Warning.GreaterThan(t.Danger) && t.Danger.GreaterThan(t.Critical) && t.Critical.IsPositive()) {
		return params, fmt.Errorf("risk: thresholds must be strictly decreasing and positive")
	}

	return params, nil
}

func parseOptional(v string) (decimal.Decimal, error) {
	if strings.TrimSpace(v) == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(v)
}
