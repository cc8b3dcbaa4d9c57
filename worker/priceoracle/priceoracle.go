package priceoracle

import (
	"context"
	"sync/atomic"
	"time"

	"vcop/core"
	"vcop/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const parallel = 4

// Worker refresh the price of every asset
type Worker struct {
	worker.TickWorker
	assets core.IAssetService
	prices core.IPriceService
}

// New new price oracle worker
func New(delay time.Duration, assets core.IAssetService, prices core.IPriceService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{Name: "priceoracle", Delay: delay},
		assets:     assets,
		prices:     prices,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", w.Name)

	assets, err := w.assets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("list assets")
		return err
	}

	var (
		g      errgroup.Group
		failed int32
	)

	g.SetLimit(parallel)
	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			ticker, err := w.prices.PullPriceTicker(ctx, asset)
			if err != nil {
				atomic.AddInt32(&failed, 1)
				log.WithError(err).Errorln("pull price ticker:", asset.Symbol)
				return nil
			}

			log.Debugf("%s %s from %s", ticker.Symbol, ticker.Price, ticker.Provider)
			return nil
		})
	}

	_ = g.Wait()

	if n := atomic.LoadInt32(&failed); n > 0 {
		log.Warnf("%d/%d prices not refreshed", n, len(assets))
		if int(n) == len(assets) {
			return core.ErrPriceUnavailable
		}
	}

	return nil
}
