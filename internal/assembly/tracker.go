package assembly

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// tracker holds in-memory state for active builds: the latest progress
// snapshot, subscriber channels, and the cancel function for cooperative
// cancellation. Progress is monotonic; stale updates are dropped.
type tracker struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*run
}

type run struct {
	progress Progress
	subs     map[chan Progress]struct{}
	cancel   context.CancelFunc
}

func newTracker() *tracker {
	return &tracker{runs: make(map[uuid.UUID]*run)}
}

func (t *tracker) register(id uuid.UUID, cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs[id] = &run{
		progress: Progress{PackageID: id, Status: StatusPending},
		subs:     make(map[chan Progress]struct{}),
		cancel:   cancel,
	}
}

// update publishes a progress snapshot to all subscribers. Snapshots that
// would move progress backwards are ignored so watchers never see percent
// regress. Terminal snapshots close all subscriptions and drop the run.
func (t *tracker) update(id uuid.UUID, p Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[id]
	if !ok {
		return
	}

	if !Terminal(p.Status) && p.Percent < r.progress.Percent {
		return
	}
	r.progress = p

	for sub := range r.subs {
		select {
		case sub <- p:
		default:
		}
	}

	if Terminal(p.Status) {
		for sub := range r.subs {
			close(sub)
		}
		delete(t.runs, id)
	}
}

// current returns the latest progress snapshot for an active build. Returns
// false when no build is active for the id.
func (t *tracker) current(id uuid.UUID) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[id]
	if !ok {
		return Progress{}, false
	}
	return r.progress, true
}

// subscribe attaches a watcher to an active build. Returns false when no
// build is active for the id.
func (t *tracker) subscribe(id uuid.UUID) (chan Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[id]
	if !ok {
		return nil, false
	}

	sub := make(chan Progress, 16)
	sub <- r.progress
	r.subs[sub] = struct{}{}
	return sub, true
}

func (t *tracker) unsubscribe(id uuid.UUID, sub chan Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r, ok := t.runs[id]; ok {
		delete(r.subs, sub)
	}
}

// cancelRun invokes the run's cancel function. Returns false when no build
// is active for the id.
func (t *tracker) cancelRun(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[id]
	if !ok {
		return false
	}

	r.cancel()
	return true
}
