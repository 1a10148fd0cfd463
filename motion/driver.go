package motion

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/utils"
)

// Driver steps an Executor once per tick from a background worker. Everything else that touches
// the executor must go through Do so that stepping and commands never interleave.
type Driver struct {
	mu      sync.Mutex
	exec    *Executor
	logger  logging.Logger
	workers utils.StoppableWorkers
	ticks   atomic.Uint64
}

// NewDriver starts stepping exec at its configured tick rate on clk. Close stops it.
func NewDriver(logger logging.Logger, exec *Executor, clk clock.Clock) *Driver {
	d := &Driver{exec: exec, logger: logger}
	ticker := clk.Ticker(exec.Config().TickDuration())
	d.workers = utils.NewStoppableWorkerWithTicker(ticker.C, ticker.Stop, d.tick)
	return d
}

func (d *Driver) tick(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hadFault := d.exec.HasFault()
	d.exec.Step()
	tick := d.ticks.Inc()
	if !hadFault && d.exec.HasFault() {
		d.logger.Warnw("driver stepped into a fault", "tick", tick, "error", d.exec.Fault())
	}
}

// Do runs f with exclusive access to the executor.
func (d *Driver) Do(f func(e *Executor)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f(d.exec)
}

// Ticks returns the number of ticks stepped so far.
func (d *Driver) Ticks() uint64 {
	return d.ticks.Load()
}

// Close stops stepping and waits for the worker to exit.
func (d *Driver) Close() {
	d.workers.Stop()
}
