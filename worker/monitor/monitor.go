package monitor

import (
	"context"
	"strconv"
	"time"

	"vcop/core"
	"vcop/worker"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var healthGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "vcop",
	Subsystem: "position",
	Name:      "health_factor",
	Help:      "health factor of watched positions with debt",
}, []string{"owner", "id", "collateral"})

func init() {
	prometheus.MustRegister(healthGauge)
}

const parallel = 4

// Worker evaluate the risk of watched owners' positions
type Worker struct {
	worker.TickWorker
	positions core.IPositionService
	owners    []common.Address
}

// New new monitor worker
func New(delay time.Duration, positions core.IPositionService, owners []common.Address) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{Name: "monitor", Delay: delay},
		positions:  positions,
		owners:     owners,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	if len(w.owners) == 0 {
		logger.FromContext(ctx).WithField("worker", w.Name).Infoln("no owners to watch")
		<-ctx.Done()
		return nil
	}

	return w.StartTick(ctx, w.onWork)
}

func (w *Worker) onWork(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(parallel)

	for _, owner := range w.owners {
		owner := owner
		g.Go(func() error {
			return w.check(ctx, owner)
		})
	}

	return g.Wait()
}

func (w *Worker) check(ctx context.Context, owner common.Address) error {
	log := logger.FromContext(ctx).WithField("worker", w.Name).WithField("owner", owner.Hex())

	positions, err := w.positions.List(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("list positions")
		return err
	}

	for _, p := range positions {
		m := p.Metrics
		labels := []string{owner.Hex(), strconv.FormatUint(p.ID, 10), p.Collateral}
		if m == nil || m.Infinite {
			// repaid or closed, no health factor to report
			healthGauge.DeleteLabelValues(labels...)
			continue
		}

		healthFactor, _ := m.HealthFactor.Float64()
		healthGauge.WithLabelValues(labels...).Set(healthFactor)

		entry := log.WithField("position", p.ID).
			WithField("health_factor", m.HealthFactor.StringFixed(4)).
			WithField("level", m.RiskLevel.String())

		switch {
		case m.RiskLevel >= core.RiskLevelCritical:
			entry.Errorln("position close to liquidation")
		case m.RiskLevel >= core.RiskLevelWarning:
			entry.Warnln("position at risk")
		default:
			entry.Debugln("position healthy")
		}
	}

	return nil
}
