package txbuilder

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"vcop/core"
	"vcop/internal/calls"
	"vcop/pkg/contracts"
	"vcop/service/asset"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manager = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	hook    = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	owner   = "0x00000000000000000000000000000000000000aa"
	vcop    = &core.Asset{Address: common.HexToAddress("0x0000000000000000000000000000000000000002"), Symbol: "VCOP", Decimals: 6}
	usdc    = &core.Asset{Address: common.HexToAddress("0x0000000000000000000000000000000000000001"), Symbol: "USDC", Decimals: 6}
	weth    = &core.Asset{Address: common.HexToAddress("0x0000000000000000000000000000000000000003"), Symbol: "WETH", Decimals: 18}
)

type fakeChain struct {
	core.IChainService
	allowance *big.Int
	err       error
	spenders  []common.Address
}

func (f *fakeChain) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	f.spenders = append(f.spenders, spender)
	return f.allowance, f.err
}

func newService(t *testing.T, chain core.IChainService) core.ICallService {
	b, err := calls.New(calls.Contracts{
		CollateralManager: manager,
		PSMHook:           hook,
		Vcop:              vcop,
		PSMCollateral:     usdc,
	})
	require.Nil(t, err)

	return New(b, chain, asset.New([]*core.Asset{vcop, usdc, weth}))
}

func TestBuildWithoutOwner(t *testing.T) {
	s := newService(t, &fakeChain{allowance: big.NewInt(0)})

	list, err := s.Build(context.Background(), &core.CallRequest{
		Action:     core.ActionCreatePosition,
		Collateral: "WETH",
		Amount:     "1.5",
		MintAmount: "1000",
	})
	require.Nil(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, weth.Address, list[0].To)
	assert.Equal(t, contracts.MethodApprove, list[0].Method)
	assert.Equal(t, manager, list[1].To)
}

func TestBuildAllowanceCovers(t *testing.T) {
	chain := &fakeChain{allowance: big.NewInt(10_000_000)}
	s := newService(t, chain)

	list, err := s.Build(context.Background(), &core.CallRequest{
		Action: core.ActionSwapCollateralForVcop,
		Owner:  owner,
		Amount: "10",
	})
	require.Nil(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hook, list[0].To)
	assert.Equal(t, []common.Address{hook}, chain.spenders)
}

func TestBuildAllowanceError(t *testing.T) {
	s := newService(t, &fakeChain{err: errors.New("rpc down")})

	list, err := s.Build(context.Background(), &core.CallRequest{
		Action:     core.ActionRepayDebt,
		Owner:      owner,
		PositionID: "0",
		Amount:     "5",
	})
	require.Nil(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, vcop.Address, list[0].To)
}

func TestBuildDefaultsToPSMCollateral(t *testing.T) {
	s := newService(t, nil)

	list, err := s.Build(context.Background(), &core.CallRequest{
		Action:     core.ActionWithdrawCollateral,
		PositionID: "3",
		Amount:     "1",
	})
	require.Nil(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, contracts.MethodWithdrawCollateral, list[0].Method)
}

func TestBuildErrors(t *testing.T) {
	s := newService(t, nil)
	ctx := context.Background()

	_, err := s.Build(ctx, &core.CallRequest{Action: "borrow", Amount: "1"})
	assert.True(t, errors.Is(err, core.ErrUnknownAction))

	_, err = s.Build(ctx, &core.CallRequest{Action: core.ActionSwapVcopForCollateral, Owner: "bob", Amount: "1"})
	assert.True(t, errors.Is(err, core.ErrInvalidParams))

	_, err = s.Build(ctx, &core.CallRequest{Action: core.ActionAddCollateral, Collateral: "WBTC", PositionID: "1", Amount: "1"})
	assert.True(t, errors.Is(err, core.ErrAssetNotFound))

	_, err = s.Build(ctx, &core.CallRequest{Action: core.ActionAddCollateral, Amount: "1"})
	assert.True(t, errors.Is(err, core.ErrInvalidParams))
}
