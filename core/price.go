package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// PriceSourceChain price calculator contract
	PriceSourceChain = "chain"
	// PriceSourceRest ticker endpoint
	PriceSourceRest = "rest"
	// PriceSourceStatic configured price
	PriceSourceStatic = "static"
	// PriceSourceStore last persisted price
	PriceSourceStore = "store"
)

// Price last good price of an asset
type Price struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Symbol    string          `sql:"size:20;unique_index:idx_prices_symbol" json:"symbol,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(32,16)" json:"price,omitempty"`
	Source    string          `sql:"size:12" json:"source,omitempty"`
	Content   types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	Version   int64           `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, price *Price) error
	Find(ctx context.Context, symbol string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
}

// IPriceSource a single price provider
type IPriceSource interface {
	Name() string
	PullPriceTicker(ctx context.Context, asset *Asset) (*PriceTicker, error)
}

// IPriceService price of an asset in USD
type IPriceService interface {
	GetPriceUSD(ctx context.Context, asset *Asset) (decimal.Decimal, error)
	PullPriceTicker(ctx context.Context, asset *Asset) (*PriceTicker, error)
}
