package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vcop/core"
	"vcop/internal/risk"
	"vcop/service/asset"
	"vcop/service/preference"
	riskservice "vcop/service/risk"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prices map[string]decimal.Decimal

func (p prices) GetPriceUSD(ctx context.Context, a *core.Asset) (decimal.Decimal, error) {
	if v, ok := p[a.Symbol]; ok {
		return v, nil
	}

	return decimal.Zero, core.ErrPriceUnavailable
}

func (p prices) PullPriceTicker(ctx context.Context, a *core.Asset) (*core.PriceTicker, error) {
	return nil, core.ErrPriceUnavailable
}

type noPositions struct{}

func (noPositions) List(ctx context.Context, owner common.Address) ([]*core.Position, error) {
	return []*core.Position{}, nil
}

func (noPositions) Find(ctx context.Context, owner common.Address, id uint64) (*core.Position, error) {
	return nil, core.ErrPositionNotFound
}

type fixedPSM struct{}

func (fixedPSM) Stats(ctx context.Context) (*core.PSMStats, error) {
	return &core.PSMStats{TotalSwaps: 7}, nil
}

func (fixedPSM) Quote(ctx context.Context, action core.Action, amount decimal.Decimal) (*core.PSMQuote, error) {
	return &core.PSMQuote{Action: action, AmountIn: amount, AmountOut: amount.Mul(decimal.NewFromInt(4200))}, nil
}

type echoCalls struct{}

func (echoCalls) Build(ctx context.Context, req *core.CallRequest) ([]*core.Call, error) {
	if req.Amount == "" {
		return nil, core.ErrInvalidAmount
	}

	return []*core.Call{{To: common.HexToAddress("0x01"), Data: []byte{0x09}, Method: string(req.Action)}}, nil
}

type memoryProperties map[string]string

func (m memoryProperties) Get(ctx context.Context, key string) (string, error) {
	return m[key], nil
}

func (m memoryProperties) Save(ctx context.Context, key, value string) error {
	m[key] = value
	return nil
}

func newHandler() http.Handler {
	assets := asset.New([]*core.Asset{
		{Symbol: "USDC", Decimals: 6, Volatility: decimal.RequireFromString("0.05")},
		{Symbol: "VCOP", Decimals: 6},
		{Symbol: "WETH", Decimals: 18},
	})
	p := prices{"USDC": decimal.NewFromInt(1), "VCOP": decimal.NewFromInt(1)}
	risks := riskservice.New(assets, p, risk.DefaultParameters(), "VCOP")

	return Handle(assets, p, risks, noPositions{}, fixedPSM{}, echoCalls{}, preference.New(memoryProperties{}))
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &out))
	}

	return w, out
}

func TestPrices(t *testing.T) {
	h := newHandler()

	w, _ := do(t, h, http.MethodGet, "/prices", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "WETH", list[2]["symbol"])
	assert.NotEmpty(t, list[2]["error"])

	w, body := do(t, h, http.MethodGet, "/prices/usdc", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "USDC", body["symbol"])

	w, body = do(t, h, http.MethodGet, "/prices/WBTC", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(core.ErrAssetNotFound), body["code"])

	w, body = do(t, h, http.MethodGet, "/prices/WETH", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, float64(core.ErrPriceUnavailable), body["code"])
}

func TestRisk(t *testing.T) {
	h := newHandler()

	w, body := do(t, h, http.MethodGet, "/risk?collateral=USDC&collateral_amount=100&loan_amount=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, "HEALTHY", metrics["risk_level"])

	w, body = do(t, h, http.MethodGet, "/risk?collateral=USDC&collateral_amount=&loan_amount=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["metrics"])

	w, body = do(t, h, http.MethodGet, "/risk?collateral=USDC&collateral_amount=-1&loan_amount=50", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(core.ErrInvalidAmount), body["code"])
}

func TestPositions(t *testing.T) {
	h := newHandler()

	w, _ := do(t, h, http.MethodGet, "/positions/0x00000000000000000000000000000000000000aa", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w, _ = do(t, h, http.MethodGet, "/positions/bob", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPSM(t *testing.T) {
	h := newHandler()

	w, body := do(t, h, http.MethodGet, "/psm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), body["total_swaps"])

	w, body = do(t, h, http.MethodGet, "/psm/quote?action=swap-collateral-for-vcop&amount=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "8400", body["amount_out"])

	w, _ = do(t, h, http.MethodGet, "/psm/quote?action=swap-collateral-for-vcop&amount=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalls(t *testing.T) {
	h := newHandler()

	w, body := do(t, h, http.MethodPost, "/calls/add-collateral", `{"position_id":"1","amount":"10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "add-collateral", body["action"])
	assert.NotEmpty(t, body["id"])

	calls := body["calls"].([]interface{})
	require.Len(t, calls, 1)
	assert.Equal(t, "0x09", calls[0].(map[string]interface{})["data"])

	w, _ = do(t, h, http.MethodPost, "/calls/add-collateral", `{"position_id":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferences(t *testing.T) {
	h := newHandler()

	w, body := do(t, h, http.MethodPut, "/preferences/dark_mode", `{"value":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["dark_mode"])

	w, body = do(t, h, http.MethodGet, "/preferences/dark_mode", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["value"])

	w, _ = do(t, h, http.MethodPut, "/preferences/language", `{"value":"es"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodGet, "/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
