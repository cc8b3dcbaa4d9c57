package txbuilder

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"vcop/core"
	"vcop/internal/calls"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type callService struct {
	builder *calls.Builder
	chain   core.IChainService
	assets  core.IAssetService
}

// New new call service. chain may be nil, every token moving action then approves.
func New(builder *calls.Builder, chain core.IChainService, assets core.IAssetService) core.ICallService {
	return &callService{
		builder: builder,
		chain:   chain,
		assets:  assets,
	}
}

func (s *callService) Build(ctx context.Context, req *core.CallRequest) ([]*core.Call, error) {
	owner, err := parseOwner(req.Owner)
	if err != nil {
		return nil, err
	}

	contracts := s.builder.Contracts()

	switch req.Action {
	case core.ActionCreatePosition:
		collateral, err := s.collateral(ctx, req.Collateral)
		if err != nil {
			return nil, err
		}

		return s.builder.CreatePosition(calls.CreatePositionParams{
			Collateral: collateral,
			Amount:     req.Amount,
			MintAmount: req.MintAmount,
			Allowance:  s.allowance(ctx, collateral, owner, contracts.CollateralManager),
		})
	case core.ActionAddCollateral:
		collateral, err := s.collateral(ctx, req.Collateral)
		if err != nil {
			return nil, err
		}

		return s.builder.AddCollateral(calls.PositionParams{
			PositionID: req.PositionID,
			Collateral: collateral,
			Amount:     req.Amount,
			Allowance:  s.allowance(ctx, collateral, owner, contracts.CollateralManager),
		})
	case core.ActionWithdrawCollateral:
		collateral, err := s.collateral(ctx, req.Collateral)
		if err != nil {
			return nil, err
		}

		return s.builder.WithdrawCollateral(calls.PositionParams{
			PositionID: req.PositionID,
			Collateral: collateral,
			Amount:     req.Amount,
		})
	case core.ActionRepayDebt:
		return s.builder.RepayDebt(calls.PositionParams{
			PositionID: req.PositionID,
			Amount:     req.Amount,
			Allowance:  s.allowance(ctx, contracts.Vcop, owner, contracts.CollateralManager),
		})
	case core.ActionSwapVcopForCollateral:
		return s.builder.SwapVcopForCollateral(calls.SwapParams{
			Amount:    req.Amount,
			Allowance: s.allowance(ctx, contracts.Vcop, owner, contracts.PSMHook),
		})
	case core.ActionSwapCollateralForVcop:
		return s.builder.SwapCollateralForVcop(calls.SwapParams{
			Amount:    req.Amount,
			Allowance: s.allowance(ctx, contracts.PSMCollateral, owner, contracts.PSMHook),
		})
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownAction, req.Action)
	}
}

func (s *callService) collateral(ctx context.Context, symbol string) (*core.Asset, error) {
	if strings.TrimSpace(symbol) == "" {
		return s.builder.Contracts().PSMCollateral, nil
	}

	return s.assets.FindBySymbol(ctx, symbol)
}

// allowance nil when unknown, the builder then always approves
func (s *callService) allowance(ctx context.Context, token *core.Asset, owner *common.Address, spender common.Address) *big.Int {
	if s.chain == nil || owner == nil {
		return nil
	}

	allowance, err := s.chain.Allowance(ctx, token.Address, *owner, spender)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnln("read allowance, approval kept")
		return nil
	}

	return allowance
}

func parseOwner(v string) (*common.Address, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	if !common.IsHexAddress(v) {
		return nil, fmt.Errorf("%w: invalid owner %q", core.ErrInvalidParams, v)
	}

	owner := common.HexToAddress(v)
	return &owner, nil
}
