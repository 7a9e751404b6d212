package lock

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// LocalLocker 进程内按用户加锁
// 单实例部署时使用,多实例需要改用Redis锁(lock_backend=redis)
type LocalLocker struct {
	mu    sync.Mutex
	locks map[uint]*entry
}

// entry 每个用户一个容量为1的信号量,refs为0时回收
type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// NewLocalLocker 创建进程内锁
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[uint]*entry)}
}

// Lock 获取用户锁,context取消或超时返回ErrLockTimeout
func (l *LocalLocker) Lock(ctx context.Context, userID uint) (func(), error) {
	e := l.acquireEntry(userID)
	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.releaseEntry(userID)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrLockTimeout
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.releaseEntry(userID)
		})
	}, nil
}

func (l *LocalLocker) acquireEntry(userID uint) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[userID]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.locks[userID] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) releaseEntry(userID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[userID]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.locks, userID)
	}
}

// size 当前持有或等待中的用户数
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
