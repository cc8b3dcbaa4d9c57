package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

var tickCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vcop",
	Subsystem: "worker",
	Name:      "ticks_total",
	Help:      "worker ticks by result: ok, error or skipped",
}, []string{"worker", "result"})

func init() {
	prometheus.MustRegister(tickCounter)
}

// Worker background job
type Worker interface {
	Run(ctx context.Context) error
}

// TickFunc one round of work
type TickFunc func(ctx context.Context) error

// TickWorker run a TickFunc every Delay until the context is cancelled.
// A tick that fires while the previous one is still running is skipped.
type TickWorker struct {
	Name  string
	Delay time.Duration

	running int32
}

// StartTick first tick runs immediately, blocks until ctx is done and the
// running tick has returned
func (w *TickWorker) StartTick(ctx context.Context, onTick TickFunc) error {
	delay := w.Delay
	if delay < time.Second {
		delay = time.Second
	}

	w.Tick(ctx, onTick)

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", delay), func() {
		w.Tick(ctx, onTick)
	}); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

// Tick run onTick unless a tick is in flight, reports whether it ran
func (w *TickWorker) Tick(ctx context.Context, onTick TickFunc) bool {
	if ctx.Err() != nil {
		return false
	}

	if !atomic.CompareAndSwapInt32(&w.running, 0, 1) {
		tickCounter.WithLabelValues(w.Name, "skipped").Inc()
		logger.FromContext(ctx).WithField("worker", w.Name).Debugln("previous tick still running, skip")
		return false
	}

	defer atomic.StoreInt32(&w.running, 0)

	if err := onTick(ctx); err != nil {
		tickCounter.WithLabelValues(w.Name, "error").Inc()
		return true
	}

	tickCounter.WithLabelValues(w.Name, "ok").Inc()
	return true
}

// IsRunning a tick is in flight
func (w *TickWorker) IsRunning() bool {
	return atomic.LoadInt32(&w.running) == 1
}
