// Package seqguard serializes "latest request wins" refreshes.
//
// A refresh begins by taking a token; when it finishes it commits the
// token, which succeeds only if no newer refresh began in the meantime.
// This prevents a slow, superseded fetch from overwriting state that
// already reflects a newer one.
package seqguard

import "sync"

// Guard hands out monotonically increasing tokens.
// The zero value is ready to use.
type Guard struct {
	mu     sync.Mutex
	next   uint64
	latest uint64
}

// Begin registers a new refresh and returns its token. Any token issued
// earlier is superseded from this point on.
func (g *Guard) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.latest = g.next
	return g.next
}

// Commit reports whether tok is still the latest refresh. A false
// return means the result belongs to a superseded request and must be
// discarded.
func (g *Guard) Commit(tok uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return tok == g.latest
}
