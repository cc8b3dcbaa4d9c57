package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Action user action turned into contract calls
type Action string

const (
	// ActionCreatePosition deposit collateral and mint VCOP
	ActionCreatePosition Action = "create-position"
	// ActionAddCollateral top up a position
	ActionAddCollateral Action = "add-collateral"
	// ActionWithdrawCollateral take collateral out of a position
	ActionWithdrawCollateral Action = "withdraw-collateral"
	// ActionRepayDebt burn VCOP against a position
	ActionRepayDebt Action = "repay-debt"
	// ActionSwapVcopForCollateral PSM: VCOP in, collateral out
	ActionSwapVcopForCollateral Action = "swap-vcop-for-collateral"
	// ActionSwapCollateralForVcop PSM: collateral in, VCOP out
	ActionSwapCollateralForVcop Action = "swap-collateral-for-vcop"
)

// Actions all supported actions
var Actions = []Action{
	ActionCreatePosition,
	ActionAddCollateral,
	ActionWithdrawCollateral,
	ActionRepayDebt,
	ActionSwapVcopForCollateral,
	ActionSwapCollateralForVcop,
}

// Call raw contract call submitted by a wallet
type Call struct {
	To     common.Address `json:"to"`
	Data   hexutil.Bytes  `json:"data"`
	Value  *hexutil.Big   `json:"value"`
	Method string         `json:"method,omitempty"`
}

// ValueInt call value as big int, zero when unset
func (c *Call) ValueInt() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}

	return c.Value.ToInt()
}

// CallRequest high level action params as submitted by the dashboard
type CallRequest struct {
	Action Action `json:"action"`
	// wallet that will sign, used for the allowance lookup
	Owner      string `json:"owner"`
	PositionID string `json:"position_id,omitempty"`
	// collateral symbol, defaults to the PSM collateral
	Collateral string `json:"collateral,omitempty"`
	Amount     string `json:"amount"`
	// VCOP to mint when creating a position
	MintAmount string `json:"mint_amount,omitempty"`
}

// ICallService build the ordered call list of an action
type ICallService interface {
	Build(ctx context.Context, req *CallRequest) ([]*Call, error)
}
