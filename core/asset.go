package core

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// AssetType how the protocol holds an asset
type AssetType string

const (
	// AssetTypeMintableBurnable minted on borrow and burned on repay (VCOP)
	AssetTypeMintableBurnable AssetType = "MINTABLE_BURNABLE"
	// AssetTypeVaultBased lent out of a funded vault (USDC, WETH, WBTC)
	AssetTypeVaultBased AssetType = "VAULT_BASED"
)

// Valid check asset type
func (t AssetType) Valid() bool {
	return t == AssetTypeMintableBurnable || t == AssetTypeVaultBased
}

// Asset token definition, static per deployment
type Asset struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals int32          `json:"decimals"`
	Type     AssetType      `json:"asset_type"`
	// annualised volatility as a fraction, 0.8 = 80%
	Volatility decimal.Decimal `json:"volatility"`
	// price in USD used by the static price source
	Price decimal.Decimal `json:"price,omitempty"`
}

// IsSymbol case-insensitive symbol compare
func (a *Asset) IsSymbol(symbol string) bool {
	return strings.EqualFold(a.Symbol, symbol)
}

// IAssetService asset service interface
type IAssetService interface {
	All(ctx context.Context) ([]*Asset, error)
	FindBySymbol(ctx context.Context, symbol string) (*Asset, error)
	FindByAddress(ctx context.Context, address common.Address) (*Asset, error)
}
