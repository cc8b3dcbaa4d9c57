package asset

import (
	"context"
	"fmt"

	"vcop/core"

	"github.com/ethereum/go-ethereum/common"
)

type assetService struct {
	assets []*core.Asset
}

// New static asset registry
func New(assets []*core.Asset) core.IAssetService {
	return &assetService{assets: assets}
}

func (s *assetService) All(ctx context.Context) ([]*core.Asset, error) {
	return s.assets, nil
}

func (s *assetService) FindBySymbol(ctx context.Context, symbol string) (*core.Asset, error) {
	for _, a := range s.assets {
		if a.IsSymbol(symbol) {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: symbol %q", core.ErrAssetNotFound, symbol)
}

func (s *assetService) FindByAddress(ctx context.Context, address common.Address) (*core.Asset, error) {
	for _, a := range s.assets {
		if a.Address == address {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: address %s", core.ErrAssetNotFound, address.Hex())
}
