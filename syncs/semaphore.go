package syncs

import "context"

type Semaphore chan struct{}

func NewSemaphore(n int) Semaphore {
	return make(chan struct{}, max(n, 1))
}

func (s Semaphore) Acquire() {
	s <- struct{}{}
}

// AcquireContext blocks until a slot is free or ctx is done.
func (s Semaphore) AcquireContext(ctx context.Context) error {
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

func (s Semaphore) Release() {
	<-s
}

// Go runs fn in a new goroutine holding a slot, and reports the acquire error.
func (s Semaphore) Go(ctx context.Context, fn func()) error {
	if err := s.AcquireContext(ctx); err != nil {
		return err
	}
	go func() {
		defer s.Release()
		fn()
	}()
	return nil
}
