package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"vcop/core"
	"vcop/pkg/number"
	"vcop/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrUnsupported the source cannot price the asset
var ErrUnsupported = errors.New("asset not supported by source")

// rate decimals of the price calculator
const rateDecimals = 6

type chainSource struct {
	chain        core.IChainService
	stableSymbol string
}

// NewChainSource prices the stablecoin from the on-chain COP/USD rate
func NewChainSource(chain core.IChainService, stableSymbol string) core.IPriceSource {
	return &chainSource{chain: chain, stableSymbol: stableSymbol}
}

func (s *chainSource) Name() string {
	return core.PriceSourceChain
}

func (s *chainSource) PullPriceTicker(ctx context.Context, asset *core.Asset) (*core.PriceTicker, error) {
	if !asset.IsSymbol(s.stableSymbol) {
		return nil, ErrUnsupported
	}

	rate, err := s.chain.UsdToCopRate(ctx)
	if err != nil {
		return nil, err
	}

	return &core.PriceTicker{
		Provider:  s.Name(),
		Symbol:    asset.Symbol,
		Price:     StablePrice(rate),
		Timestamp: time.Now(),
	}, nil
}

// StablePrice usd price of 1 VCOP from the COP per USD rate
func StablePrice(rate *big.Int) decimal.Decimal {
	copPerUSD := number.FromBaseUnits(rate, rateDecimals)
	if !copPerUSD.IsPositive() {
		return decimal.Zero
	}

	return decimal.NewFromInt(1).Div(copPerUSD)
}

type restSource struct {
	endpoint string
	apiKey   string
}

// NewRestSource ticker endpoint source
func NewRestSource(endpoint, apiKey string) core.IPriceSource {
	return &restSource{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
	}
}

func (s *restSource) Name() string {
	return core.PriceSourceRest
}

func (s *restSource) PullPriceTicker(ctx context.Context, asset *core.Asset) (*core.PriceTicker, error) {
	if s.endpoint == "" {
		return nil, errors.New("rest price endpoint not configured")
	}

	uri := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.endpoint, url.PathEscape(asset.Symbol), time.Now().UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", uri)

	resp, err := resthttp.WithAPIKey(ctx, s.apiKey).Get(uri)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	ticker.Provider = s.Name()
	if ticker.Symbol == "" {
		ticker.Symbol = asset.Symbol
	}

	return &ticker, nil
}

type staticSource struct{}

// NewStaticSource configured asset prices
func NewStaticSource() core.IPriceSource {
	return staticSource{}
}

func (staticSource) Name() string {
	return core.PriceSourceStatic
}

func (s staticSource) PullPriceTicker(ctx context.Context, asset *core.Asset) (*core.PriceTicker, error) {
	if !asset.Price.IsPositive() {
		return nil, ErrUnsupported
	}

	return &core.PriceTicker{
		Provider:  s.Name(),
		Symbol:    asset.Symbol,
		Price:     asset.Price,
		Timestamp: time.Now(),
	}, nil
}
