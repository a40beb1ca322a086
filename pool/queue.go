package pool

import (
	"runtime"
	"sync/atomic"
)

// node represents a single element in the queue
type node struct {
	value *Operation
	next  atomic.Pointer[node]
}

// Queue is a lock-free multi-producer multi-consumer FIFO of pending
// operations. Implementation uses a linked list of nodes with atomic
// operations for concurrent push and pop without locks.
//
// Features and Guarantees:
//
//   - Lock-Free: atomic operations for high throughput and low latency even under high contention
//   - Unbounded Size: the queue can grow to any size as needed, limited only by available memory
//   - Thread-Safe: any number of goroutines may Push() and TryPop() concurrently
//   - Atomic Claim: each pushed operation is returned by TryPop() to at most one caller
//   - FIFO: pop order equals push order as observed across all producers
type Queue struct {
	head atomic.Pointer[node]
	tail atomic.Pointer[node]
}

// NewQueue creates a new empty queue
func NewQueue() *Queue {
	// Create a sentinel node (dummy node at the beginning)
	sentinel := &node{}

	q := &Queue{}

	// Set the initial head and tail to the sentinel node
	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	return q
}

// Push appends an operation to the tail of the queue. It never blocks and
// never fails; the operation is visible to concurrent TryPop callers as
// soon as Push returns.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *Queue) Push(op *Operation) {
	if op == nil {
		return
	}

	newNode := &node{value: op}

	var backoff uint8 = 0

	for {
		tailNode := q.tail.Load()

		// try to atomically append our node to the current tail
		next := tailNode.next.Load()
		if next == nil {
			// the tail has no next node yet, try to append our node
			if tailNode.next.CompareAndSwap(nil, newNode) {
				/*
				 Successfully appended, now try to update tail
				 Note: CAS may fail if another producer helps update tail,
				 but that's okay - tail will still be updated eventually
				*/
				q.tail.CompareAndSwap(tailNode, newNode)
				return
			}
		} else {
			// help update the tail pointer if another producer has already appended a node but hasn't updated the tail yet
			q.tail.CompareAndSwap(tailNode, next)
		}

		/*
		 Exponential backoff strategy to handle contention
		  - At low contention (<10 retries): spin to avoid thread scheduling overhead
		  - At higher contention: yield the processor to allow other goroutines to make progress
		  - Backoff increases exponentially with each retry, reducing the "thundering herd" problem
		    where all goroutines retry simultaneously after failure
		*/

		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// TryPop removes and returns the operation at the head of the queue, or
// (nil, false) when the queue is empty. It never blocks. Under arbitrary
// interleaving with concurrent pushes and pops, each operation is
// returned to exactly one caller.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *Queue) TryPop() (*Operation, bool) {
	var backoff uint8 = 0

	for {
		headNode := q.head.Load()
		tailNode := q.tail.Load()
		next := headNode.next.Load()

		if next == nil {
			// Queue is empty
			return nil, false
		}

		if headNode == tailNode {
			// The tail pointer is lagging behind an in-progress push,
			// help it along before claiming
			q.tail.CompareAndSwap(tailNode, next)
			continue
		}

		// Try to claim the head element by swinging the head pointer.
		// A successful CAS makes this caller the unique owner of next.
		if q.head.CompareAndSwap(headNode, next) {
			value := next.value

			// help go gc - safe to clear after the claim, next is now the sentinel
			next.value = nil

			return value, true
		}

		// Another consumer won the claim, back off and retry
		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// Len returns an approximate count of the number of operations in the queue.
// This is O(n) and should only be used for debugging.
func (q *Queue) Len() int {
	count := 0
	current := q.head.Load()

	for {
		next := current.next.Load()
		if next == nil {
			break
		}
		count++
		current = next
	}

	return count
}
