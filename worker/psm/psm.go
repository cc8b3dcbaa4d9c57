package psm

import (
	"context"
	"time"

	"vcop/core"
	"vcop/worker"

	"github.com/fox-one/pkg/logger"
)

// snapshots older than this are pruned
const retention = 7 * 24 * time.Hour

// Worker snapshot psm reserves
type Worker struct {
	worker.TickWorker
	psm      core.IPSMService
	psmStore core.IPSMStore
}

// New new psm worker
func New(delay time.Duration, psm core.IPSMService, psmStore core.IPSMStore) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{Name: "psm", Delay: delay},
		psm:        psm,
		psmStore:   psmStore,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", w.Name)

	stats, err := w.psm.Stats(ctx)
	if err != nil {
		return err
	}

	// served from the store, nothing new to record
	if stats.ID > 0 {
		log.Warnln("psm stats unavailable, last snapshot served")
		return nil
	}

	if err := w.psmStore.Create(ctx, stats); err != nil {
		log.WithError(err).Errorln("psmStore.Create")
		return err
	}

	if err := w.psmStore.DeleteBefore(ctx, time.Now().Add(-retention)); err != nil {
		log.WithError(err).Errorln("psmStore.DeleteBefore")
	}

	return nil
}
