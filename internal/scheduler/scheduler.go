package scheduler

import (
	"context"
	"sync"
	"time"

	"auction-bidder/utils"
)

// Refresher is the store surface the poller drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Poller triggers one immediate refresh on Start and another every interval
// until Stop. A failed refresh never pauses, lengthens or shortens the
// schedule; the next tick fires on time regardless.
type Poller struct {
	store    Refresher
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewPoller creates a poller refreshing store every interval.
func NewPoller(store Refresher, interval time.Duration) *Poller {
	return &Poller{
		store:    store,
		interval: interval,
	}
}

// Start begins the polling loop. Starting an already running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go p.run(ctx, p.stop, p.done)
}

// Stop halts the schedule. It returns only once the loop has exited, so no
// further refresh is triggered afterwards; a refresh already in flight
// completes first.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stop, done := p.stop, p.done
	p.mu.Unlock()

	close(stop)
	<-done
}

func (p *Poller) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refresh(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.store.Refresh(ctx); err != nil {
		utils.Warn("scheduler: refresh failed", map[string]any{
			"error": err.Error(),
		})
	}
}
