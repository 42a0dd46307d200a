package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Mode selects the sharing discipline for node access. It is chosen once per
// program, before any Values are created; graphs built under different modes
// must not be mixed.
type Mode int32

const (
	// ModeShared guards every node with a mutex, allowing independent
	// goroutines to build independent subgraphs over shared leaves.
	ModeShared Mode = iota

	// ModeSingleOwner drops locking in favor of a borrow flag. All graph
	// construction and backward passes must happen on one goroutine;
	// overlapping exclusive access panics with ErrAlreadyBorrowed.
	ModeSingleOwner
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeSingleOwner:
		return "single-owner"
	default:
		return fmt.Sprintf("unknown(%d)", int32(m))
	}
}

var mode atomic.Int32

// SetMode selects the sharing discipline for subsequently created Values.
// Call it once at program start; nodes capture the mode at construction, so
// switching while graphs are live splits them across disciplines.
func SetMode(m Mode) {
	mode.Store(int32(m))
}

// CurrentMode returns the mode applied to new Values.
func CurrentMode() Mode {
	return Mode(mode.Load())
}

// guard serializes exclusive access to a node's mutable fields.
type guard interface {
	lock()
	unlock()
}

func newGuard() guard {
	if CurrentMode() == ModeSingleOwner {
		return &borrowGuard{}
	}
	return &mutexGuard{}
}

// mutexGuard is the ModeShared discipline: plain mutual exclusion.
type mutexGuard struct {
	mu sync.Mutex
}

func (g *mutexGuard) lock()   { g.mu.Lock() }
func (g *mutexGuard) unlock() { g.mu.Unlock() }

// borrowGuard is the ModeSingleOwner discipline. Exclusive access windows
// are never supposed to overlap on one goroutine; if they do, the graph is
// malformed (a node reached back into itself while borrowed) and silently
// continuing would corrupt gradients. Fail fast instead.
type borrowGuard struct {
	held bool
}

func (g *borrowGuard) lock() {
	if g.held {
		panic(ErrAlreadyBorrowed)
	}
	g.held = true
}

func (g *borrowGuard) unlock() {
	g.held = false
}
