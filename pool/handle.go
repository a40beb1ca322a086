package pool

import (
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/russcam/elastic/api"
)

var Logger = logger.GetLogger("pool")

// --------------------------------------------------------------------------
// Wakeup Notifier
// --------------------------------------------------------------------------

// Notifier is the wakeup signal target a connection registers with the
// Handle so producers can prompt it to re-check the queue. Notify is
// invoked after every push, from arbitrary producer goroutines; it must
// be idempotent and must never block.
type Notifier interface {
	Notify()
}

// ChanNotifier signals a connection's event loop through a buffered
// channel. Notify never blocks: the signal is dropped when one is
// already pending, which is safe because a single pending signal is
// enough to trigger a re-check.
type ChanNotifier struct {
	ch chan struct{}
}

// NewChanNotifier creates a notifier with one pending-signal slot
func NewChanNotifier() *ChanNotifier {
	return &ChanNotifier{ch: make(chan struct{}, 1)}
}

func (n *ChanNotifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
		// a signal is already pending
	}
}

// C returns the channel the connection's event loop selects on
func (n *ChanNotifier) C() <-chan struct{} {
	return n.ch
}

// --------------------------------------------------------------------------
// Handle
// --------------------------------------------------------------------------

// Handle is the producer-facing side of the pool: it submits operations
// to the shared queue and fans a wakeup out to every registered
// connection. The fan-out deliberately over-notifies - only one
// connection wins the claim, but waking all of them minimizes dispatch
// latency and redundant wakeups are cheap and idempotent.
//
// A Handle is safe for concurrent use by any number of producers.
type Handle struct {
	queue *Queue

	mu        sync.RWMutex
	notifiers []Notifier
}

// NewHandle creates a handle with a fresh shared queue and no listeners.
func NewHandle() *Handle {
	h := &Handle{queue: NewQueue()}
	// The gauge walks the queue at scrape time. When a process creates
	// more than one handle, the first registered queue wins.
	metrics.GetOrCreateGauge("elastic_pool_queue_length", func() float64 {
		return float64(h.queue.Len())
	})
	return h
}

// AddListener registers a connection's notifier to be invoked after every
// push and returns the shared queue for that connection's machine to
// poll. Registration is append-only and normally happens once per
// connection at bootstrap; registering the same notifier twice merely
// duplicates wakeups, which is harmless.
func (h *Handle) AddListener(n Notifier) *Queue {
	h.mu.Lock()
	h.notifiers = append(h.notifiers, n)
	h.mu.Unlock()
	return h.queue
}

// Request pushes a message to the queue and returns a future resolving to
// the response. Request never blocks; the caller suspends only when it
// waits on the returned future.
func (h *Handle) Request(msg *api.Message) *Future {
	op, f := NewOperation(msg, true)
	h.post(op)
	return f
}

// Send pushes a message to the queue without tracking the response. The
// caller is never notified of completion or failure.
func (h *Handle) Send(msg *api.Message) {
	op, _ := NewOperation(msg, false)
	h.post(op)
}

// post makes the operation visible to the consumers and wakes them all.
// Wakeup delivery is best-effort: a missed signal is tolerated by the
// sleeping connection's timeout fallback.
func (h *Handle) post(op *Operation) {
	h.queue.Push(op)
	metricPushes.Inc()

	h.mu.RLock()
	for _, n := range h.notifiers {
		n.Notify()
		metricWakeups.Inc()
	}
	h.mu.RUnlock()
}
