package hlocks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	golock "github.com/viney-shih/go-lock"
)

var ErrUnlockOfUnlocked = errors.New("unlock of unlocked mutex")

func NewMutex(name string) *Mutex {
	return &Mutex{name: name, m: golock.NewCASMutex()}
}

// Mutex is a non-reentrant mutual exclusion lock. Lock, Do, Scope, LockContext
// and TryLock all acquire the same underlying state, so any mix of them on a
// single Mutex is mutually exclusive.
type Mutex struct {
	name string
	m    *golock.CASMutex
	held atomic.Bool
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	m.m.Lock()
	m.held.Store(true)
}

// TryLock acquires the mutex if it is free and reports whether it did. It never blocks.
func (m *Mutex) TryLock() bool {
	if !m.m.TryLock() {
		return false
	}

	m.held.Store(true)

	return true
}

func (m *Mutex) LockContext(ctx context.Context) error {
	if m.TryLock() {
		return nil
	}

	hlog.From(ctx).Debug(fmt.Sprintf("Another worker locked %v, waiting...", m.name))

	if !m.m.TryLockWithContext(ctx) {
		return fmt.Errorf("acquire lock for %v: %w", m.name, context.Cause(ctx))
	}

	m.held.Store(true)

	return nil
}

// Unlock releases the mutex. Releasing a mutex that is not held panics with
// ErrUnlockOfUnlocked.
func (m *Mutex) Unlock() {
	if !m.held.CompareAndSwap(true, false) {
		panic(fmt.Errorf("%v: %w", m.name, ErrUnlockOfUnlocked))
	}

	m.m.Unlock()
}

// Do runs f with the mutex held. The mutex is released when f returns or panics.
func (m *Mutex) Do(f func()) {
	m.Lock()
	defer m.Unlock()

	f()
}

// Scope acquires the mutex and returns a Scope that releases it on Close.
//
//	defer m.Scope().Close()
func (m *Mutex) Scope() *Scope {
	m.Lock()

	return &Scope{m: m}
}

type Scope struct {
	m      *Mutex
	closed atomic.Bool
}

// Close releases the mutex the first time it is called, later calls do nothing.
func (s *Scope) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.m.Unlock()
}
