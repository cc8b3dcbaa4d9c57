package cmd

import (
	"context"
	"math/big"
	"time"

	"vcop/config"
	"vcop/core"
	"vcop/internal/calls"
	"vcop/service/asset"
	"vcop/service/chain"
	"vcop/service/oracle"
	"vcop/service/position"
	"vcop/service/preference"
	"vcop/service/psm"
	"vcop/service/risk"
	"vcop/service/txbuilder"
	"vcop/service/wallet"
	pricestore "vcop/store/price"
	psmstore "vcop/store/psm"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideEthClient(ctx context.Context) *ethclient.Client {
	client, err := ethclient.DialContext(ctx, cfg.Chain.RPC)
	if err != nil {
		panic(err)
	}

	return client
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return pricestore.New(db)
}

func providePSMStore(db *db.DB) core.IPSMStore {
	return psmstore.New(db)
}

// ------------------service------------------------------------

func provideAssetService() core.IAssetService {
	assets, err := config.Assets(provideConfig())
	if err != nil {
		panic(err)
	}

	return asset.New(assets)
}

func mustFindAsset(assets core.IAssetService, symbol string) *core.Asset {
	a, err := assets.FindBySymbol(context.Background(), symbol)
	if err != nil {
		panic(err)
	}

	return a
}

func provideRiskParameters() core.RiskParameters {
	params, err := config.RiskParameters(provideConfig())
	if err != nil {
		panic(err)
	}

	return params
}

func provideChainService(client *ethclient.Client) core.IChainService {
	c := provideConfig().Contracts
	return chain.New(client, chain.Config{
		CollateralManager: common.HexToAddress(c.CollateralManager),
		PSMHook:           common.HexToAddress(c.PSMHook),
		PriceCalculator:   common.HexToAddress(c.PriceCalculator),
	})
}

// providePriceService priceStore may be nil, prices are then neither persisted nor served as fallback
func providePriceService(chainService core.IChainService, priceStore core.IPriceStore) core.IPriceService {
	c := provideConfig().PriceOracle

	sources := make([]core.IPriceSource, 0, len(c.Sources))
	for _, name := range c.Sources {
		switch name {
		case core.PriceSourceChain:
			sources = append(sources, oracle.NewChainSource(chainService, cfg.App.StableSymbol))
		case core.PriceSourceRest:
			sources = append(sources, oracle.NewRestSource(c.EndPoint, c.APIKey))
		case core.PriceSourceStatic:
			sources = append(sources, oracle.NewStaticSource())
		default:
			panic("unknown price source " + name)
		}
	}

	return oracle.New(oracle.Config{
		CacheTTL: time.Duration(c.CacheTTL) * time.Second,
		Fallback: c.Fallback,
	}, priceStore, sources...)
}

func provideRiskService(assets core.IAssetService, prices core.IPriceService) core.IRiskService {
	return risk.New(assets, prices, provideRiskParameters(), cfg.App.StableSymbol)
}

func providePositionService(chainService core.IChainService, assets core.IAssetService, prices core.IPriceService) core.IPositionService {
	return position.New(chainService, assets, prices, provideRiskParameters(), mustFindAsset(assets, cfg.App.StableSymbol))
}

func providePSMService(chainService core.IChainService, psmStore core.IPSMStore, assets core.IAssetService) core.IPSMService {
	return psm.New(
		chainService,
		psmStore,
		mustFindAsset(assets, cfg.App.StableSymbol),
		mustFindAsset(assets, cfg.App.CollateralSymbol),
	)
}

func provideCallBuilder(assets core.IAssetService) *calls.Builder {
	c := provideConfig().Contracts
	b, err := calls.New(calls.Contracts{
		CollateralManager: common.HexToAddress(c.CollateralManager),
		PSMHook:           common.HexToAddress(c.PSMHook),
		Vcop:              mustFindAsset(assets, cfg.App.StableSymbol),
		PSMCollateral:     mustFindAsset(assets, cfg.App.CollateralSymbol),
	})
	if err != nil {
		panic(err)
	}

	return b
}

func provideCallService(builder *calls.Builder, chainService core.IChainService, assets core.IAssetService) core.ICallService {
	return txbuilder.New(builder, chainService, assets)
}

// provideSender nil without a configured private key
func provideSender(client *ethclient.Client) core.ICallSender {
	if cfg.Chain.PrivateKey == "" {
		return nil
	}

	key, err := wallet.ParseKey(cfg.Chain.PrivateKey)
	if err != nil {
		panic(err)
	}

	interval := time.Duration(cfg.Chain.ReceiptInterval) * time.Second
	return wallet.NewSender(client, big.NewInt(cfg.Chain.ChainID), key, interval)
}

func provideTransactionService(callService core.ICallService, sender core.ICallSender) core.ITransactionService {
	return wallet.New(callService, sender)
}

func providePreferenceService(properties property.Store) core.IPreferenceService {
	return preference.New(preference.FromPropertyStore(properties))
}
