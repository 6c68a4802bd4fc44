package memory

import (
	"context"
	"sync"
	"time"
)

// KeyLocker é o lock por contato em processo, usado sem Redis.
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// refs conta o dono e quem espera; em zero a entrada sai do mapa.
type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{locks: map[string]*keyLock{}}
}

// Lock bloqueia até obter a chave ou o contexto expirar. O ttl só vale
// para o lock distribuído.
func (l *KeyLocker) Lock(ctx context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}

func (l *KeyLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// Dedup marca chaves já vistas até expirarem.
type Dedup struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewDedup() *Dedup {
	return &Dedup{seen: map[string]time.Time{}, now: time.Now}
}

// FirstSeen devolve true na primeira marcação de key dentro do ttl.
func (d *Dedup) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if exp, ok := d.seen[key]; ok && now.Before(exp) {
		return false, nil
	}

	for k, exp := range d.seen {
		if !now.Before(exp) {
			delete(d.seen, k)
		}
	}
	d.seen[key] = now.Add(ttl)
	return true, nil
}
