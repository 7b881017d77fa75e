package toc

import "sync"

// Anchor pairs a rendered heading with its in-page link.
type Anchor struct {
	Handle Handle
	Link   string
}

// AnchorStore holds the flat list of resolved anchors. A Resolver writes it
// and a Tracker reads it; every Replace bumps the version.
type AnchorStore struct {
	mu      sync.RWMutex
	anchors []Anchor
	version uint64
}

// Replace swaps in a new anchor list.
func (s *AnchorStore) Replace(anchors []Anchor) {
	cp := make([]Anchor, len(anchors))
	copy(cp, anchors)
	s.mu.Lock()
	s.anchors = cp
	s.version++
	s.mu.Unlock()
}

// Snapshot returns the current anchors and the version they belong to.
func (s *AnchorStore) Snapshot() ([]Anchor, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchors, s.version
}
