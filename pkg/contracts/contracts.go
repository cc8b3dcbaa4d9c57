package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// method names
const (
	MethodApprove   = "approve"
	MethodAllowance = "allowance"
	MethodBalanceOf = "balanceOf"
	MethodDecimals  = "decimals"

	MethodCreatePosition     = "createPosition"
	MethodAddCollateral      = "addCollateral"
	MethodWithdrawCollateral = "withdrawCollateral"
	MethodRepayDebt          = "repayDebt"
	MethodPositionCount      = "positionCount"
	MethodPositions          = "positions"
	MethodCollateralRatio    = "getCurrentCollateralRatio"

	MethodSwapVcopForCollateral = "psmSwapVCOPForCollateral"
	MethodSwapCollateralForVcop = "psmSwapCollateralForVCOP"
	MethodPSMStats              = "getPSMStats"
	MethodPSMFee                = "psmFee"
	MethodQuoteCollateralOut    = "calculateCollateralForVCOPView"
	MethodQuoteVcopOut          = "calculateVCOPForCollateralView"

	MethodUsdToCopRate = "getUsdToCopRate"
)

const erc20JSON = `[
{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const collateralManagerJSON = `[
{"type":"function","name":"createPosition","stateMutability":"nonpayable","inputs":[{"name":"collateralToken","type":"address"},{"name":"collateralAmount","type":"uint256"},{"name":"vcopToMint","type":"uint256"}],"outputs":[]},
{"type":"function","name":"addCollateral","stateMutability":"nonpayable","inputs":[{"name":"positionId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"withdrawCollateral","stateMutability":"nonpayable","inputs":[{"name":"positionId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"repayDebt","stateMutability":"nonpayable","inputs":[{"name":"positionId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"positionCount","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"positions","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"positionId","type":"uint256"}],"outputs":[{"name":"collateralToken","type":"address"},{"name":"collateralAmount","type":"uint256"},{"name":"vcopMinted","type":"uint256"}]},
{"type":"function","name":"getCurrentCollateralRatio","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"positionId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const psmHookJSON = `[
{"type":"function","name":"psmSwapVCOPForCollateral","stateMutability":"nonpayable","inputs":[{"name":"vcopAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"psmSwapCollateralForVCOP","stateMutability":"nonpayable","inputs":[{"name":"collateralAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"getPSMStats","stateMutability":"view","inputs":[],"outputs":[{"name":"vcopReserve","type":"uint256"},{"name":"collateralReserve","type":"uint256"},{"name":"lastOperationTimestamp","type":"uint256"},{"name":"totalSwapsCount","type":"uint256"}]},
{"type":"function","name":"psmFee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"calculateCollateralForVCOPView","stateMutability":"view","inputs":[{"name":"vcopAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"calculateVCOPForCollateralView","stateMutability":"view","inputs":[{"name":"collateralAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const priceCalculatorJSON = `[
{"type":"function","name":"getUsdToCopRate","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	// ERC20 token abi subset
	ERC20 = mustParse(erc20JSON)
	// CollateralManager position manager abi subset
	CollateralManager = mustParse(collateralManagerJSON)
	// PSMHook peg stability hook abi subset
	PSMHook = mustParse(psmHookJSON)
	// PriceCalculator price calculator abi subset
	PriceCalculator = mustParse(priceCalculatorJSON)
)

func mustParse(v string) abi.ABI {
	a, err := abi.JSON(strings.NewReader(v))
	if err != nil {
		panic(err)
	}

	return a
}
