package calls

import (
	"fmt"
	"math/big"
	"strings"

	"vcop/core"
	"vcop/pkg/contracts"
	"vcop/pkg/number"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contracts addresses and tokens the builders target
type Contracts struct {
	CollateralManager common.Address
	PSMHook           common.Address
	Vcop              *core.Asset
	// collateral swapped by the PSM
	PSMCollateral *core.Asset
}

// Builder turn user actions into ordered contract calls
type Builder struct {
	contracts Contracts
}

// New new call builder
func New(c Contracts) (*Builder, error) {
	if c.CollateralManager == (common.Address{}) || c.PSMHook == (common.Address{}) {
		return nil, fmt.Errorf("%w: contract addresses required", core.ErrInvalidParams)
	}

	if c.Vcop == nil || c.PSMCollateral == nil {
		return nil, fmt.Errorf("%w: vcop and psm collateral assets required", core.ErrInvalidParams)
	}

	return &Builder{contracts: c}, nil
}

// Contracts configured targets
func (b *Builder) Contracts() Contracts {
	return b.contracts
}

// CreatePositionParams createPosition params
type CreatePositionParams struct {
	Collateral *core.Asset
	Amount     string
	MintAmount string
	// known allowance of the manager on the collateral, nil if unknown
	Allowance *big.Int
}

// PositionParams add/withdraw collateral and repay params
type PositionParams struct {
	PositionID string
	// collateral token of the position, unused by repay
	Collateral *core.Asset
	Amount     string
	Allowance  *big.Int
}

// SwapParams psm swap params
type SwapParams struct {
	Amount    string
	Allowance *big.Int
}

// CreatePosition approve collateral, then createPosition
func (b *Builder) CreatePosition(p CreatePositionParams) ([]*core.Call, error) {
	if p.Collateral == nil {
		return nil, fmt.Errorf("%w: collateral asset required", core.ErrInvalidParams)
	}

	amount, err := Amount(p.Amount, p.Collateral)
	if err != nil {
		return nil, err
	}

	mint, err := Amount(p.MintAmount, b.contracts.Vcop)
	if err != nil {
		return nil, fmt.Errorf("mint amount: %w", err)
	}

	manager := b.contracts.CollateralManager
	call, err := pack(manager, contracts.CollateralManager, contracts.MethodCreatePosition, p.Collateral.Address, amount, mint)
	if err != nil {
		return nil, err
	}

	return withApproval(p.Collateral, manager, amount, p.Allowance, call)
}

// AddCollateral approve collateral, then addCollateral
func (b *Builder) AddCollateral(p PositionParams) ([]*core.Call, error) {
	if p.Collateral == nil {
		return nil, fmt.Errorf("%w: collateral asset required", core.ErrInvalidParams)
	}

	id, amount, err := positionArgs(p.PositionID, p.Amount, p.Collateral)
	if err != nil {
		return nil, err
	}

	manager := b.contracts.CollateralManager
	call, err := pack(manager, contracts.CollateralManager, contracts.MethodAddCollateral, id, amount)
	if err != nil {
		return nil, err
	}

	return withApproval(p.Collateral, manager, amount, p.Allowance, call)
}

// WithdrawCollateral single withdrawCollateral call, nothing moves into the manager
func (b *Builder) WithdrawCollateral(p PositionParams) ([]*core.Call, error) {
	if p.Collateral == nil {
		return nil, fmt.Errorf("%w: collateral asset required", core.ErrInvalidParams)
	}

	id, amount, err := positionArgs(p.PositionID, p.Amount, p.Collateral)
	if err != nil {
		return nil, err
	}

	call, err := pack(b.contracts.CollateralManager, contracts.CollateralManager, contracts.MethodWithdrawCollateral, id, amount)
	if err != nil {
		return nil, err
	}

	return []*core.Call{call}, nil
}

// RepayDebt approve VCOP, then repayDebt
func (b *Builder) RepayDebt(p PositionParams) ([]*core.Call, error) {
	vcop := b.contracts.Vcop

	id, amount, err := positionArgs(p.PositionID, p.Amount, vcop)
	if err != nil {
		return nil, err
	}

	manager := b.contracts.CollateralManager
	call, err := pack(manager, contracts.CollateralManager, contracts.MethodRepayDebt, id, amount)
	if err != nil {
		return nil, err
	}

	return withApproval(vcop, manager, amount, p.Allowance, call)
}

// SwapVcopForCollateral approve VCOP to the hook, then swap
func (b *Builder) SwapVcopForCollateral(p SwapParams) ([]*core.Call, error) {
	return b.swap(b.contracts.Vcop, contracts.MethodSwapVcopForCollateral, p)
}

// SwapCollateralForVcop approve collateral to the hook, then swap
func (b *Builder) SwapCollateralForVcop(p SwapParams) ([]*core.Call, error) {
	return b.swap(b.contracts.PSMCollateral, contracts.MethodSwapCollateralForVcop, p)
}

func (b *Builder) swap(in *core.Asset, method string, p SwapParams) ([]*core.Call, error) {
	amount, err := Amount(p.Amount, in)
	if err != nil {
		return nil, err
	}

	hook := b.contracts.PSMHook
	call, err := pack(hook, contracts.PSMHook, method, amount)
	if err != nil {
		return nil, err
	}

	return withApproval(in, hook, amount, p.Allowance, call)
}

// Amount positive decimal string in base units of the asset
func Amount(v string, asset *core.Asset) (*big.Int, error) {
	d, err := number.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", core.ErrInvalidAmount, v)
	}

	if !d.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", core.ErrInvalidAmount, d)
	}

	units, err := number.ToBaseUnits(d, asset.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %s accepts %d decimals, got %s", core.ErrTooManyDecimals, asset.Symbol, asset.Decimals, d)
	}

	if units.BitLen() > 256 {
		return nil, fmt.Errorf("%w: %s exceeds uint256", core.ErrInvalidAmount, d)
	}

	return units, nil
}

// PositionID parse a non negative integer position id
func PositionID(v string) (*big.Int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("%w: position id required", core.ErrInvalidParams)
	}

	id, ok := new(big.Int).SetString(v, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid position id %q", core.ErrInvalidParams, v)
	}

	return id, nil
}

func positionArgs(id, amount string, asset *core.Asset) (*big.Int, *big.Int, error) {
	positionID, err := PositionID(id)
	if err != nil {
		return nil, nil, err
	}

	units, err := Amount(amount, asset)
	if err != nil {
		return nil, nil, err
	}

	return positionID, units, nil
}

// NeedsApproval approval is skipped only when the known allowance covers the amount
func NeedsApproval(allowance, amount *big.Int) bool {
	return allowance == nil || allowance.Cmp(amount) < 0
}

func withApproval(token *core.Asset, spender common.Address, amount, allowance *big.Int, action *core.Call) ([]*core.Call, error) {
	if !NeedsApproval(allowance, amount) {
		return []*core.Call{action}, nil
	}

	approve, err := pack(token.Address, contracts.ERC20, contracts.MethodApprove, spender, amount)
	if err != nil {
		return nil, err
	}

	return []*core.Call{approve, action}, nil
}

func pack(to common.Address, a abi.ABI, method string, args ...interface{}) (*core.Call, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	return &core.Call{
		To:     to,
		Data:   data,
		Value:  (*hexutil.Big)(new(big.Int)),
		Method: method,
	}, nil
}
