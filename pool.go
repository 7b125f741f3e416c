package pwalk

import "fmt"

// MaxParallelism is the upper clamp on worker count for all three drivers,
// chosen (per spec.md §4.C) to approximate the maximum concurrent in-flight
// metadata RPCs a networked-filer client typically sustains.
const MaxParallelism = 128

// ClampParallelism clamps n to [1, MaxParallelism].
func ClampParallelism(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxParallelism {
		return MaxParallelism
	}
	return n
}

// Action is the per-item callback run by a pool worker. push lets the
// action enqueue discovered subwork (spec.md §4.D's push_subwork); it is
// safe to call from any worker at any time.
type Action func(item Item, push func(Item))

// Pool is the bounded-concurrency worker pool of spec.md §4.C. It is
// goroutine-based rather than OS-thread-based: Go's runtime multiplexes
// goroutines onto OS threads itself, which is the idiomatic translation of
// the original fixed pthread pool (see spec.md §9 and SPEC_FULL.md's
// concurrency-model notes) without losing the bounded-parallelism property
// — exactly Parallelism goroutines run the Action loop concurrently.
type Pool struct {
	Worklist    *Worklist
	Parallelism int
	Action      Action
}

// NewPool builds a Pool with parallelism clamped to [1, MaxParallelism].
func NewPool(wl *Worklist, parallelism int, action Action) *Pool {
	return &Pool{
		Worklist:    wl,
		Parallelism: ClampParallelism(parallelism),
		Action:      action,
	}
}

// Run starts the pool and blocks until every worker has exited (i.e. until
// the worklist's termination predicate held and stayed held for all of
// them). It returns a non-nil error only for the two fatal conditions in
// spec.md §7: no worker could be started, or joining failed.
//
// Goroutines cannot fail to start the way pthread_create can; Run's
// pre-flight check (Parallelism resolving to < 1, which ClampParallelism
// never actually produces, or an explicitly zero pool) is what lets
// [ThreadStartFailure] still occur in this design, matching the original
// error taxonomy's shape even though the underlying failure mode differs.
func (p *Pool) Run() error {
	if p.Parallelism < 1 {
		return &ThreadStartFailure{Err: fmt.Errorf("no workers requested")}
	}

	push := func(item Item) { p.Worklist.Push(item) }

	done := make(chan struct{}, p.Parallelism)
	for i := 0; i < p.Parallelism; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			p.worker(push)
		}()
	}

	for i := 0; i < p.Parallelism; i++ {
		<-done
	}

	return nil
}

func (p *Pool) worker(push func(Item)) {
	for {
		item, ok := p.Worklist.PopOrShutdown()
		if !ok {
			return
		}
		p.Action(item, push)
		p.Worklist.Done()
	}
}

// RunBatched is plink's variant of Run: workers pop up to batchSize items
// at a time (spec.md §4.G) and the Action receives the whole batch as its
// Item.
func (p *Pool) RunBatched(batchSize int) error {
	if p.Parallelism < 1 {
		return &ThreadStartFailure{Err: fmt.Errorf("no workers requested")}
	}
	if batchSize < 1 {
		batchSize = 1
	}

	done := make(chan struct{}, p.Parallelism)
	for i := 0; i < p.Parallelism; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				batch, ok := p.Worklist.PopBatchOrShutdown(batchSize)
				if !ok {
					return
				}
				p.Action(batch, nil)
				p.Worklist.Done()
			}
		}()
	}

	for i := 0; i < p.Parallelism; i++ {
		<-done
	}

	return nil
}
