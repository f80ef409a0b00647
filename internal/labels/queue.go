// Package labels resolves human readable application names in the
// background, a few at a time, so listing hundreds of packages never
// floods the bridge.
package labels

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"ratectl/internal/script"
	"ratectl/pkg/logging"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchSize  = 3
	DefaultBatchDelay = 50 * time.Millisecond
)

// Config tunes the queue.
type Config struct {
	BatchSize  int
	BatchDelay time.Duration
}

// ResolvedFunc is notified once per package when its label is cached.
type ResolvedFunc func(pkg, label string)

// Queue resolves labels through the helper's get_app_info. Each package is
// looked up at most once; an empty answer caches the package id itself.
type Queue struct {
	client     *script.Client
	batchSize  int
	batchDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	labels    map[string]string
	pending   []string
	queued    map[string]bool // pending or in flight
	running   bool
	idle      chan struct{}
	observers []ResolvedFunc
}

// NewQueue creates an idle queue.
func NewQueue(client *script.Client, cfg Config) *Queue {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = DefaultBatchDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		client:     client,
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		ctx:        ctx,
		cancel:     cancel,
		labels:     make(map[string]string),
		queued:     make(map[string]bool),
	}
}

// OnResolved registers fn to run after each label is cached.
func (q *Queue) OnResolved(fn ResolvedFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.observers = append(q.observers, fn)
}

// Enqueue schedules pkg unless its label is known or it is already queued.
// The processing loop is started when idle.
func (q *Queue) Enqueue(pkg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.labels[pkg]; ok || q.queued[pkg] {
		return
	}
	q.pending = append(q.pending, pkg)
	q.queued[pkg] = true

	if !q.running && q.ctx.Err() == nil {
		q.running = true
		q.idle = make(chan struct{})
		go q.process(q.idle)
	}
}

// EnqueueAll enqueues every package in order.
func (q *Queue) EnqueueAll(pkgs []string) {
	for _, pkg := range pkgs {
		q.Enqueue(pkg)
	}
}

func (q *Queue) process(idle chan struct{}) {
	defer close(idle)

	for {
		batch := q.nextBatch()
		if batch == nil {
			return
		}

		var g errgroup.Group
		g.SetLimit(q.batchSize)
		for _, pkg := range batch {
			g.Go(func() error {
				q.resolve(pkg)
				return nil
			})
		}
		_ = g.Wait()

		select {
		case <-time.After(q.batchDelay):
		case <-q.ctx.Done():
		}
	}
}

// nextBatch takes up to batchSize packages from the front of the queue,
// clearing the running flag when there is nothing left.
func (q *Queue) nextBatch() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 || q.ctx.Err() != nil {
		q.running = false
		return nil
	}
	n := min(q.batchSize, len(q.pending))
	batch := q.pending[:n:n]
	q.pending = q.pending[n:]
	return batch
}

func (q *Queue) resolve(pkg string) {
	resp := q.client.Run(q.ctx, script.OpGetAppInfo, pkg)

	q.mu.Lock()
	delete(q.queued, pkg)
	if q.ctx.Err() != nil {
		q.mu.Unlock()
		return
	}
	label := strings.TrimSpace(resp)
	if label == "" {
		label = pkg
	}
	q.labels[pkg] = label
	observers := append([]ResolvedFunc(nil), q.observers...)
	q.mu.Unlock()

	logging.Debug("Labels", "%s -> %s", pkg, label)
	for _, fn := range observers {
		fn(pkg, label)
	}
}

// Label returns the cached label for pkg.
func (q *Queue) Label(pkg string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	label, ok := q.labels[pkg]
	return label, ok
}

// Labels returns a copy of every cached label.
func (q *Queue) Labels() map[string]string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return maps.Clone(q.labels)
}

// Pending returns how many packages are queued or in flight.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// Wait blocks until the queue is idle or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		if !q.running {
			q.mu.Unlock()
			return nil
		}
		idle := q.idle
		q.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops the processing loop. Lookups in flight are abandoned and
// their packages stay unresolved.
func (q *Queue) Close() {
	q.cancel()
}
