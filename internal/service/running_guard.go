package service

import (
	"context"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// JobGuard: one run per key, drained on shutdown
// ─────────────────────────────────────────────────────────────

// JobGuard ensures only one job runs per key at a time (an export target,
// a seed reload) and lets shutdown wait for the in-flight ones.
// The zero value is ready to use.
type JobGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock marks key as running. It reports false when key already runs.
func (g *JobGuard) TryLock(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[key]; ok {
		return false
	}
	g.running[key] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock marks key as done. Only call it after a successful TryLock.
func (g *JobGuard) Unlock(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
	g.wg.Done()
}

// Running reports whether key is currently held.
func (g *JobGuard) Running(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[key]
	return ok
}

// WaitAll blocks until every running job finished or ctx is done.
func (g *JobGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
