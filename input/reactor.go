//go:build linux

package input

import (
	"sync"
	"sync/atomic"

	"github.com/kungfusheep/bezel/internal/diag"
)

// subscriberChanCap bounds each subscriber's buffered channel; a slow
// subscriber that can't keep up sees events dropped and its Lagged count
// incremented, mirroring a bounded broadcast channel's backpressure
// (spec.md §5, "slow receivers get Lagged(n) and must skip").
const subscriberChanCap = 256

type liveness int32

const (
	livenessTerminated liveness = iota
	livenessRunning
)

// threadState is the data a running poller thread and its subscribers
// share, protected by globalState.mu.
type threadState struct {
	subs       map[uint64]*subscriberEntry
	nextSubID  uint64
	liveness   liveness
	waker      *Waker
	generation uint64
	stopPoller func()
}

type subscriberEntry struct {
	ch     chan PollerEvent
	lagged *uint64
}

// globalState is the process-global ThreadSafeGlobalState<Waker, Event>
// spec.md §4.2.2 describes: a mutex around an optional ThreadState.
// Grounded on the teacher's Screen singleton lifecycle in screen.go,
// generalized from a single reader to the resilient multi-subscriber
// broadcast the spec requires.
var globalState struct {
	mu    sync.Mutex
	state *threadState
}

// Factory builds a fresh poller + waker pair for the slow allocation path.
type Factory func(emit func(PollerEvent)) (run func(emit func(PollerEvent)), waker *Waker, stop func(), err error)

// SubscriberGuard wraps a receiver channel and, on Release, decrements the
// global subscriber count; if that drops it to zero, the poller thread is
// woken so it can notice and exit (spec.md §4.2.2, §5 cancellation rules).
type SubscriberGuard struct {
	id         uint64
	generation uint64
	Events     <-chan PollerEvent
	released   int32
}

// Lagged reports how many events this subscriber has dropped due to a full
// channel since it last checked.
func (g *SubscriberGuard) Lagged() uint64 {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	st := globalState.state
	if st == nil || st.generation != g.generation {
		return 0
	}
	entry, ok := st.subs[g.id]
	if !ok {
		return 0
	}
	return atomic.SwapUint64(entry.lagged, 0)
}

// Release drops this subscription. Safe to call more than once.
func (g *SubscriberGuard) Release() {
	if !atomic.CompareAndSwapInt32(&g.released, 0, 1) {
		return
	}
	globalState.mu.Lock()
	st := globalState.state
	if st == nil || st.generation != g.generation {
		globalState.mu.Unlock()
		return
	}
	delete(st.subs, g.id)
	empty := len(st.subs) == 0
	waker := st.waker
	globalState.mu.Unlock()
	if empty && waker != nil {
		waker.Wake()
	}
}

// Allocate returns a SubscriberGuard for the current poller generation,
// spawning a fresh poller thread via factory if none is running (spec.md
// §4.2.2's fast/slow path split).
func Allocate(factory Factory) (*SubscriberGuard, error) {
	globalState.mu.Lock()

	if globalState.state != nil && globalState.state.liveness == livenessRunning {
		// Fast path: subscribe a new receiver on the existing channel set.
		guard := subscribeLocked(globalState.state)
		globalState.mu.Unlock()
		return guard, nil
	}
	globalState.mu.Unlock()

	// Slow path: build a fresh (worker, waker) pair and spawn a new OS
	// thread running the worker's poll loop.
	st := &threadState{
		subs:       make(map[uint64]*subscriberEntry),
		liveness:   livenessRunning,
		generation: nextGeneration(),
	}

	emit := func(ev PollerEvent) { broadcast(st, ev) }
	run, waker, stop, err := factory(emit)
	if err != nil {
		return nil, err
	}
	st.waker = waker
	st.stopPoller = stop

	globalState.mu.Lock()
	globalState.state = st
	guard := subscribeLocked(st)
	globalState.mu.Unlock()

	go func() {
		defer terminationGuard(st)
		run(emit)
	}()

	return guard, nil
}

var generationCounter uint64

func nextGeneration() uint64 { return atomic.AddUint64(&generationCounter, 1) }

func subscribeLocked(st *threadState) *SubscriberGuard {
	id := st.nextSubID
	st.nextSubID++
	lagged := new(uint64)
	ch := make(chan PollerEvent, subscriberChanCap)
	st.subs[id] = &subscriberEntry{ch: ch, lagged: lagged}
	return &SubscriberGuard{id: id, generation: st.generation, Events: ch}
}

// broadcast fans ev out to every current subscriber without blocking; a
// subscriber whose channel is full has the event dropped and its Lagged
// counter bumped, rather than stalling the poller thread.
func broadcast(st *threadState, ev PollerEvent) {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	if globalState.state != st {
		return
	}
	for _, entry := range st.subs {
		select {
		case entry.ch <- ev:
		default:
			n := atomic.AddUint64(entry.lagged, 1)
			diag.Debug("input: subscriber lagged", "lagged_total", n)
		}
	}
}

// ReceiverCount reports how many subscribers the current poller generation
// has, used by the poller loop's "after handlers run, check broadcast
// receiver count; if zero, exit" step (spec.md §4.2.1).
func ReceiverCount() int {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	if globalState.state == nil {
		return 0
	}
	return len(globalState.state.subs)
}

// terminationGuard runs when the worker's poll loop returns (normally or
// via panic), setting liveness = Terminated so a subsequent Allocate call
// takes the slow path and spawns a fresh thread. This is the "guard that
// ensures even a panicking worker leaves the global state consistent"
// from spec.md §4.2.2.
func terminationGuard(st *threadState) {
	if r := recover(); r != nil {
		diag.Error("input: poller thread panicked", "recovered", r)
	}
	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	if globalState.state == st {
		st.liveness = livenessTerminated
		for _, entry := range st.subs {
			close(entry.ch)
		}
	}
}
