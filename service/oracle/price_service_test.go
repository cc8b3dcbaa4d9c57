package oracle

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vcop/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc = &core.Asset{Symbol: "USDC", Decimals: 6, Price: decimal.NewFromInt(1)}
	vcop = &core.Asset{Symbol: "VCOP", Decimals: 6}
)

type fakeSource struct {
	name  string
	price decimal.Decimal
	err   error
	pulls int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) PullPriceTicker(ctx context.Context, asset *core.Asset) (*core.PriceTicker, error) {
	atomic.AddInt32(&f.pulls, 1)
	if f.err != nil {
		return nil, f.err
	}

	return &core.PriceTicker{Provider: f.name, Price: f.price}, nil
}

type memoryPriceStore struct {
	prices map[string]*core.Price
}

func (m *memoryPriceStore) Save(ctx context.Context, price *core.Price) error {
	price.UpdatedAt = time.Now()
	m.prices[price.Symbol] = price
	return nil
}

func (m *memoryPriceStore) Find(ctx context.Context, symbol string) (*core.Price, error) {
	if p, ok := m.prices[symbol]; ok {
		return p, nil
	}

	return nil, errors.New("record not found")
}

func (m *memoryPriceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	for _, p := range m.prices {
		prices = append(prices, p)
	}

	return prices, nil
}

type fakeRate struct {
	core.IChainService
	rate *big.Int
}

func (f fakeRate) UsdToCopRate(ctx context.Context) (*big.Int, error) {
	return f.rate, nil
}

func TestSourceOrder(t *testing.T) {
	down := &fakeSource{name: "chain", err: errors.New("rpc down")}
	unsupported := &fakeSource{name: "skip", err: ErrUnsupported}
	rest := &fakeSource{name: "rest", price: decimal.RequireFromString("0.99")}
	store := &memoryPriceStore{prices: map[string]*core.Price{}}

	s := New(Config{}, store, down, unsupported, rest)
	ticker, err := s.PullPriceTicker(context.Background(), usdc)
	require.Nil(t, err)
	assert.Equal(t, "rest", ticker.Provider)
	assert.Equal(t, "0.99", ticker.Price.String())

	saved, err := store.Find(context.Background(), "USDC")
	require.Nil(t, err)
	assert.Equal(t, "rest", saved.Source)
	assert.Contains(t, string(saved.Content), `"provider":"rest"`)
}

func TestInvalidPriceSkipped(t *testing.T) {
	zero := &fakeSource{name: "zero", price: decimal.Zero}
	static := NewStaticSource()

	s := New(Config{}, nil, zero, static)
	price, err := s.GetPriceUSD(context.Background(), usdc)
	require.Nil(t, err)
	assert.Equal(t, "1", price.String())
}

func TestCache(t *testing.T) {
	source := &fakeSource{name: "rest", price: decimal.NewFromInt(2)}
	s := New(Config{CacheTTL: time.Minute}, nil, source)

	for i := 0; i < 3; i++ {
		price, err := s.GetPriceUSD(context.Background(), usdc)
		require.Nil(t, err)
		assert.Equal(t, "2", price.String())
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&source.pulls))
}

func TestFallback(t *testing.T) {
	down := &fakeSource{name: "chain", err: errors.New("rpc down")}
	store := &memoryPriceStore{prices: map[string]*core.Price{
		"VCOP": {Symbol: "VCOP", Price: decimal.RequireFromString("0.00024"), UpdatedAt: time.Now()},
	}}

	_, err := New(Config{}, store, down).PullPriceTicker(context.Background(), vcop)
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))

	ticker, err := New(Config{Fallback: true}, store, down).PullPriceTicker(context.Background(), vcop)
	require.Nil(t, err)
	assert.Equal(t, core.PriceSourceStore, ticker.Provider)
	assert.Equal(t, "0.00024", ticker.Price.String())

	_, err = New(Config{Fallback: true}, store).PullPriceTicker(context.Background(), usdc)
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))
}

func TestChainSource(t *testing.T) {
	source := NewChainSource(fakeRate{rate: big.NewInt(4_000_000_000)}, "VCOP")

	ticker, err := source.PullPriceTicker(context.Background(), vcop)
	require.Nil(t, err)
	assert.Equal(t, "0.00025", ticker.Price.String())

	_, err = source.PullPriceTicker(context.Background(), usdc)
	assert.True(t, errors.Is(err, ErrUnsupported))

	assert.True(t, StablePrice(big.NewInt(0)).IsZero())
}

func TestRestSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/tickers/USDC" || r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"msg":"not found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"USDC","price":"1.0002"}`))
	}))
	defer srv.Close()

	ticker, err := NewRestSource(srv.URL+"/", "secret").PullPriceTicker(context.Background(), usdc)
	require.Nil(t, err)
	assert.Equal(t, core.PriceSourceRest, ticker.Provider)
	assert.Equal(t, "1.0002", ticker.Price.String())

	_, err = NewRestSource(srv.URL, "wrong").PullPriceTicker(context.Background(), usdc)
	assert.NotNil(t, err)

	_, err = NewRestSource("", "").PullPriceTicker(context.Background(), usdc)
	assert.NotNil(t, err)
}
