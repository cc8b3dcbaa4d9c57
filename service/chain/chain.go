package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"vcop/core"
	"vcop/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
)

var callCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vcop",
	Subsystem: "chain",
	Name:      "calls_total",
	Help:      "contract reads by method and result",
}, []string{"method", "result"})

func init() {
	prometheus.MustRegister(callCounter)
}

// Caller the subset of the ethereum rpc used for reads
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Config contract addresses
type Config struct {
	CollateralManager common.Address
	PSMHook           common.Address
	// optional
	PriceCalculator common.Address
}

type chainService struct {
	caller Caller
	cfg    Config
}

// New new chain read service
func New(caller Caller, cfg Config) core.IChainService {
	return &chainService{
		caller: caller,
		cfg:    cfg,
	}
}

func (s *chainService) call(ctx context.Context, to common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	output, err := s.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		callCounter.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}

	values, err := a.Unpack(method, output)
	if err != nil {
		callCounter.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}

	callCounter.WithLabelValues(method, "ok").Inc()
	return values, nil
}

func (s *chainService) callUint(ctx context.Context, to common.Address, a abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	values, err := s.call(ctx, to, a, method, args...)
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}

	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result %T", method, values[0])
	}

	return v, nil
}

func (s *chainService) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	return s.callUint(ctx, token, contracts.ERC20, contracts.MethodBalanceOf, owner)
}

func (s *chainService) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return s.callUint(ctx, token, contracts.ERC20, contracts.MethodAllowance, owner, spender)
}

func (s *chainService) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	values, err := s.call(ctx, token, contracts.ERC20, contracts.MethodDecimals)
	if err != nil {
		return 0, err
	}

	if len(values) == 0 {
		return 0, errors.New("decimals: empty result")
	}

	d, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected result %T", values[0])
	}

	return d, nil
}

func (s *chainService) PositionCount(ctx context.Context, owner common.Address) (uint64, error) {
	count, err := s.callUint(ctx, s.cfg.CollateralManager, contracts.CollateralManager, contracts.MethodPositionCount, owner)
	if err != nil {
		return 0, err
	}

	if !count.IsUint64() {
		return 0, fmt.Errorf("position count overflow: %s", count)
	}

	return count.Uint64(), nil
}

func (s *chainService) Position(ctx context.Context, owner common.Address, id uint64) (*core.RawPosition, error) {
	values, err := s.call(ctx, s.cfg.CollateralManager, contracts.CollateralManager, contracts.MethodPositions, owner, new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}

	if len(values) != 3 {
		return nil, fmt.Errorf("positions: want 3 values, got %d", len(values))
	}

	token, ok1 := values[0].(common.Address)
	amount, ok2 := values[1].(*big.Int)
	minted, ok3 := values[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("positions: unexpected result types")
	}

	return &core.RawPosition{
		CollateralToken:  token,
		CollateralAmount: amount,
		VcopMinted:       minted,
	}, nil
}

func (s *chainService) CollateralRatio(ctx context.Context, owner common.Address, id uint64) (*big.Int, error) {
	return s.callUint(ctx, s.cfg.CollateralManager, contracts.CollateralManager, contracts.MethodCollateralRatio, owner, new(big.Int).SetUint64(id))
}

func (s *chainService) PSMStats(ctx context.Context) (*core.RawPSMStats, error) {
	values, err := s.call(ctx, s.cfg.PSMHook, contracts.PSMHook, contracts.MethodPSMStats)
	if err != nil {
		return nil, err
	}

	if len(values) != 4 {
		return nil, fmt.Errorf("getPSMStats: want 4 values, got %d", len(values))
	}

	ints := make([]*big.Int, len(values))
	for idx, v := range values {
		i, ok := v.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("getPSMStats: unexpected result %T", v)
		}
		ints[idx] = i
	}

	return &core.RawPSMStats{
		VcopReserve:       ints[0],
		CollateralReserve: ints[1],
		LastOperation:     time.Unix(ints[2].Int64(), 0).UTC(),
		TotalSwaps:        ints[3],
	}, nil
}

func (s *chainService) PSMFee(ctx context.Context) (*big.Int, error) {
	return s.callUint(ctx, s.cfg.PSMHook, contracts.PSMHook, contracts.MethodPSMFee)
}

func (s *chainService) QuoteCollateralForVcop(ctx context.Context, vcopAmount *big.Int) (*big.Int, error) {
	return s.callUint(ctx, s.cfg.PSMHook, contracts.PSMHook, contracts.MethodQuoteCollateralOut, vcopAmount)
}

func (s *chainService) QuoteVcopForCollateral(ctx context.Context, collateralAmount *big.Int) (*big.Int, error) {
	return s.callUint(ctx, s.cfg.PSMHook, contracts.PSMHook, contracts.MethodQuoteVcopOut, collateralAmount)
}

func (s *chainService) UsdToCopRate(ctx context.Context) (*big.Int, error) {
	if s.cfg.PriceCalculator == (common.Address{}) {
		return nil, errors.New("price calculator not configured")
	}

	return s.callUint(ctx, s.cfg.PriceCalculator, contracts.PriceCalculator, contracts.MethodUsdToCopRate)
}
