package pool

import (
	"sync/atomic"
	"time"
)

// DefaultSleepInterval bounds how long an idle connection waits before
// re-checking the queue when no wakeup signal was delivered.
const DefaultSleepInterval = 2000 * time.Millisecond

// --------------------------------------------------------------------------
// States and Actions
// --------------------------------------------------------------------------

// State identifies the dispatch state of one connection.
type State uint8

const (
	// StateIdle - the connection has no in-flight request and is about
	// to check the queue
	StateIdle State = iota
	// StateRequesting - a claimed operation is in flight on the wire
	StateRequesting
	// StateSleeping - the queue was empty; a timer is armed and the
	// connection waits for it or for a wakeup signal, whichever first
	StateSleeping
	// StateClosed - terminal, entered on an unrecoverable connection error
	StateClosed
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateSleeping:
		return "sleeping"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ActionKind identifies what the event loop must do after a transition.
type ActionKind uint8

const (
	// ActionNone - nothing to do, keep waiting for the next event
	ActionNone ActionKind = iota
	// ActionDispatch - hand Op to the wire engine as a new request
	ActionDispatch
	// ActionSleep - arm a timer for Delay and wait
	ActionSleep
	// ActionClose - tear the connection down
	ActionClose
)

// Action is the instruction a Machine returns to its event loop.
type Action struct {
	Kind  ActionKind
	Op    *Operation    // set for ActionDispatch
	Delay time.Duration // set for ActionSleep
}

// --------------------------------------------------------------------------
// Machine
// --------------------------------------------------------------------------

// Machine is the per-connection idle/dispatch state machine. It owns no
// queue state itself - it holds only a reference to the shared queue and
// its own state tag. Transitions are plain function calls with no I/O,
// so the machine can be tested without a live connection.
//
// Machine is not safe for concurrent use: transition methods must be
// called from the connection's own event loop goroutine. State may be
// read from any goroutine.
type Machine struct {
	queue *Queue
	state atomic.Uint32
	sleep time.Duration
}

// NewMachine creates a machine in the Idle state bound to the shared
// queue. A non-positive sleep interval selects DefaultSleepInterval.
func NewMachine(queue *Queue, sleep time.Duration) *Machine {
	if sleep <= 0 {
		sleep = DefaultSleepInterval
	}
	m := &Machine{
		queue: queue,
		sleep: sleep,
	}
	m.state.Store(uint32(StateIdle))
	return m
}

// State returns the machine's current state tag.
func (m *Machine) State() State {
	return State(m.state.Load())
}

func (m *Machine) setState(s State) {
	m.state.Store(uint32(s))
}

// OnIdle is invoked when the connection has no in-flight request: right
// after connection establishment and whenever the engine finishes a
// request cycle. It looks for an operation without blocking.
func (m *Machine) OnIdle() Action {
	return m.checkQueue()
}

// OnWakeup is invoked when an external wakeup signal arrives. A signal
// received while a request is in flight is ignored - the machine
// re-checks the queue when the engine reports the request done.
func (m *Machine) OnWakeup() Action {
	if m.State() == StateRequesting {
		return Action{Kind: ActionNone}
	}
	return m.checkQueue()
}

// OnTimeout is invoked when the armed sleep timer fires. This is the
// liveness fallback for a wakeup signal lost in the race between a
// producer's push and this connection's sleep.
func (m *Machine) OnTimeout() Action {
	if m.State() == StateRequesting {
		return Action{Kind: ActionNone}
	}
	metricSleepTimeouts.Inc()
	return m.checkQueue()
}

// OnDone is invoked when the engine reports the in-flight request
// finished and the connection is idle again.
func (m *Machine) OnDone() Action {
	if m.State() == StateClosed {
		return Action{Kind: ActionClose}
	}
	m.setState(StateIdle)
	return m.checkQueue()
}

// OnError is invoked on an unrecoverable protocol or connection error
// reported by the engine. The machine transitions to Closed; the event
// loop is responsible for resolving any in-flight operation's sink with
// ErrConnectionLost before discarding it.
func (m *Machine) OnError() Action {
	m.setState(StateClosed)
	metricConnectionsLost.Inc()
	return Action{Kind: ActionClose}
}

// checkQueue runs the Idle logic: claim the head of the queue if there is
// one, otherwise go to sleep for the configured interval.
func (m *Machine) checkQueue() Action {
	if m.State() == StateClosed {
		return Action{Kind: ActionClose}
	}

	if op, ok := m.queue.TryPop(); ok {
		m.setState(StateRequesting)
		metricClaims.Inc()
		return Action{Kind: ActionDispatch, Op: op}
	}

	m.setState(StateSleeping)
	return Action{Kind: ActionSleep, Delay: m.sleep}
}
