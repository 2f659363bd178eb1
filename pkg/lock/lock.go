// Package lock serializes work per key (one mentor at a time).
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrLockTimeout the lock could not be acquired within the wait budget.
var ErrLockTimeout = errors.New("lock wait timed out")

// ── in-process ──

// Local is a keyed mutex for a single process. Idle keys are dropped.
type Local struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocal creates an empty Local locker.
func NewLocal() *Local {
	return &Local{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done.
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
	}, nil
}

func (l *Local) release(key string, s *slot) {
	l.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
	l.mu.Unlock()
}

// ── redis ──

// Store is the subset of the Redis client the distributed locker uses.
type Store interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	Unlock(ctx context.Context, key, token string) error
}

// Redis is a cross-process lock built on SET NX with an owner token.
type Redis struct {
	store  Store
	prefix string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedis creates a Redis locker. ttl bounds how long a crashed holder can
// block others; wait bounds how long Lock polls before giving up.
func NewRedis(store Store, ttl, wait time.Duration, logger *zap.Logger) *Redis {
	return &Redis{
		store:  store,
		prefix: "lock:mentor:",
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
		logger: logger,
	}
}

// Lock polls until the key is acquired, the wait budget runs out or ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	full := r.prefix + key
	deadline := time.Now().Add(r.wait)

	for {
		token, err := r.store.TryLock(ctx, full, r.ttl)
		if err != nil {
			return nil, err
		}
		if token != "" {
			var once sync.Once
			return func() {
				once.Do(func() {
					// the caller's context may already be cancelled
					uctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					if err := r.store.Unlock(uctx, full, token); err != nil {
						r.logger.Warn("release lock failed", zap.String("key", full), zap.Error(err))
					}
				})
			}, nil
		}

		if !time.Now().Before(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retry):
		}
	}
}
