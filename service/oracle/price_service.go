package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vcop/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var pullCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vcop",
	Subsystem: "oracle",
	Name:      "pulls_total",
	Help:      "price pulls by source and result",
}, []string{"source", "result"})

func init() {
	prometheus.MustRegister(pullCounter)
}

// Config price service config
type Config struct {
	CacheTTL time.Duration
	// serve the last stored price when every source fails
	Fallback bool
}

// PriceService price service
type PriceService struct {
	sources    []core.IPriceSource
	priceStore core.IPriceStore
	cfg        Config
	cache      gcache.Cache
	sf         *singleflight.Group
}

// New new oracle price service, priceStore may be nil
func New(cfg Config, priceStore core.IPriceStore, sources ...core.IPriceSource) *PriceService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}

	return &PriceService{
		sources:    sources,
		priceStore: priceStore,
		cfg:        cfg,
		cache:      gcache.New(256).LRU().Expiration(cfg.CacheTTL).Build(),
		sf:         &singleflight.Group{},
	}
}

// GetPriceUSD cached price of the asset
func (s *PriceService) GetPriceUSD(ctx context.Context, asset *core.Asset) (decimal.Decimal, error) {
	key := cacheKey(asset.Symbol)
	if v, err := s.cache.Get(key); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ticker, err := s.PullPriceTicker(ctx, asset)
		if err != nil {
			return nil, err
		}

		return ticker.Price, nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}

// PullPriceTicker ask every source in order, the first valid price wins
func (s *PriceService) PullPriceTicker(ctx context.Context, asset *core.Asset) (*core.PriceTicker, error) {
	log := logger.FromContext(ctx).WithField("symbol", asset.Symbol)

	var errs []string
	for _, source := range s.sources {
		ticker, err := source.PullPriceTicker(ctx, asset)
		if errors.Is(err, ErrUnsupported) {
			continue
		}

		if err == nil && !ticker.Price.IsPositive() {
			err = fmt.Errorf("%w: %s", core.ErrInvalidPrice, ticker.Price)
		}

		if err != nil {
			pullCounter.WithLabelValues(source.Name(), "error").Inc()
			log.WithError(err).Warnln("pull price from", source.Name())
			errs = append(errs, fmt.Sprintf("%s: %v", source.Name(), err))
			continue
		}

		pullCounter.WithLabelValues(source.Name(), "ok").Inc()
		ticker.Symbol = asset.Symbol
		s.cache.Set(cacheKey(asset.Symbol), ticker.Price)
		s.save(ctx, ticker)
		return ticker, nil
	}

	if s.cfg.Fallback && s.priceStore != nil {
		if price, err := s.priceStore.Find(ctx, asset.Symbol); err == nil && price.Price.IsPositive() {
			log.Warnln("serve stored price from", price.UpdatedAt)
			pullCounter.WithLabelValues(core.PriceSourceStore, "ok").Inc()
			return &core.PriceTicker{
				Provider:  core.PriceSourceStore,
				Symbol:    asset.Symbol,
				Price:     price.Price,
				Timestamp: price.UpdatedAt,
			}, nil
		}
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no source for %s", core.ErrPriceUnavailable, asset.Symbol)
	}

	return nil, fmt.Errorf("%w: %s", core.ErrPriceUnavailable, strings.Join(errs, "; "))
}

func (s *PriceService) save(ctx context.Context, ticker *core.PriceTicker) {
	if s.priceStore == nil {
		return
	}

	content, _ := json.Marshal(ticker)
	price := &core.Price{
		Symbol:  ticker.Symbol,
		Price:   ticker.Price,
		Source:  ticker.Provider,
		Content: content,
	}

	if err := s.priceStore.Save(ctx, price); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("prices.Save", ticker.Symbol)
	}
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("price:%s", strings.ToUpper(symbol))
}
