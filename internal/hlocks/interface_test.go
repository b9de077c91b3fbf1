package hlocks

import "context"

// Locker is the shape shared by the test helpers below.
type Locker interface {
	Lock()
	TryLock() bool
	LockContext(ctx context.Context) error
	Unlock()
}

var _ Locker = (*Mutex)(nil)
