package journal

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/dockyard/core/logger"
	"github.com/kilianp07/dockyard/core/model"
)

// appendTimeout bounds a single Append call.
const appendTimeout = 5 * time.Second

// Recorder appends completed time records to a Store in the background.
// Its queue is unbounded so the caller never blocks on storage and no record
// is dropped; Close flushes whatever is still queued.
type Recorder struct {
	store Store
	log   logger.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []model.TimeRecord
	closed bool
	done   chan struct{}
}

// NewRecorder starts a recorder writing to store. A nil store yields a
// recorder that discards records.
func NewRecorder(store Store, log logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop{}
	}
	r := &Recorder{store: store, log: log, done: make(chan struct{})}
	r.cond = sync.NewCond(&r.mu)
	go r.loop()
	return r
}

// RecordCompleted queues rec for appending. Records arriving after Close are
// logged and discarded.
func (r *Recorder) RecordCompleted(rec model.TimeRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.log.Warnf("journal closed, record %s for %s not written", rec.ID, rec.DockID)
		return
	}
	r.queue = append(r.queue, rec)
	r.cond.Signal()
}

// Pending returns the number of queued records not yet appended.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

func (r *Recorder) loop() {
	defer close(r.done)
	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.closed {
			r.cond.Wait()
		}
		batch := r.queue
		r.queue = nil
		closed := r.closed
		r.mu.Unlock()

		for _, rec := range batch {
			r.append(rec)
		}
		if closed && len(batch) == 0 {
			return
		}
	}
}

func (r *Recorder) append(rec model.TimeRecord) {
	if r.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	if err := r.store.Append(ctx, rec); err != nil {
		r.log.Errorf("journal append %s: %v", rec.ID, err)
	}
}

// Close stops accepting records and waits until the queue is flushed.
// It does not close the underlying Store.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()
	<-r.done
}
