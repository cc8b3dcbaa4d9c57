package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config vcop config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Chain       Chain       `json:"chain"`
	Contracts   Contracts   `json:"contracts"`
	Assets      []AssetItem `json:"assets"`
	Risk        Risk        `json:"risk"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Worker      Worker      `json:"worker"`
}

// App app config
type App struct {
	// VCOP symbol and PSM collateral symbol
	StableSymbol     string `json:"stable_symbol"`
	CollateralSymbol string `json:"collateral_symbol"`
}

// Chain rpc config
type Chain struct {
	RPC     string `json:"rpc" valid:"required"`
	ChainID int64  `json:"chain_id" valid:"required"`
	// hex private key, only needed by the submit command
	PrivateKey string `json:"private_key"`
	// seconds between receipt polls
	ReceiptInterval int64 `json:"receipt_interval"`
}

// Contracts deployed contract addresses
type Contracts struct {
	CollateralManager string `json:"collateral_manager" valid:"required"`
	PSMHook           string `json:"psm_hook" valid:"required"`
	PriceCalculator   string `json:"price_calculator"`
}

// AssetItem asset as written in the config file
type AssetItem struct {
	Address  string `json:"address" valid:"required"`
	Symbol   string `json:"symbol" valid:"required"`
	Decimals int32  `json:"decimals"`
	Type     string `json:"type"`
	// annualised, "0.8"
	Volatility string `json:"volatility"`
	Price      string `json:"price"`
}

// Risk estimator parameters, ratios in percent
type Risk struct {
	MinRatio             string `json:"min_ratio"`
	LiquidationThreshold string `json:"liquidation_threshold"`
	Healthy              string `json:"healthy"`
	Warning              string `json:"warning"`
	Danger               string `json:"danger"`
	Critical             string `json:"critical"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	// ordered: chain, rest, static
	Sources  []string `json:"sources"`
	EndPoint string   `json:"end_point"`
	APIKey   string   `json:"api_key"`
	// seconds
	CacheTTL int64 `json:"cache_ttl"`
	// serve the last persisted price when every source fails
	Fallback bool `json:"fallback"`
}

// Worker poll intervals in seconds
type Worker struct {
	PriceInterval   int64 `json:"price_interval"`
	PSMInterval     int64 `json:"psm_interval"`
	MonitorInterval int64 `json:"monitor_interval"`
	// owners whose positions are watched by the monitor
	Watch []string `json:"watch"`
}
