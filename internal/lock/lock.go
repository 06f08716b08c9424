// Package lock сериализует операции удаления и восстановления номеров.
package lock

import (
	"context"
	"sync"
)

// Locker выдаёт эксклюзивный доступ к буферу восстановления.
// Возвращённую функцию unlock можно вызывать повторно.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker - мьютекс внутри процесса, уважающий отмену контекста.
type LocalLocker struct {
	ch chan struct{}
}

// NewLocalLocker создаёт локальный Locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{ch: make(chan struct{}, 1)}
}

func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l.ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
