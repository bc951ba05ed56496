package banlist

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is the in-memory copy of the ban store that login checks
// read. Lookups never touch Redis: a slow or absent store can delay
// snapshot freshness but never a login.
type Snapshot struct {
	mu       sync.RWMutex
	names    map[string]string
	ips      map[string]string
	loadedAt time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		names: make(map[string]string),
		ips:   make(map[string]string),
	}
}

// Replace swaps in freshly loaded ban maps.
func (s *Snapshot) Replace(names, ips map[string]string) {
	if names == nil {
		names = make(map[string]string)
	}
	if ips == nil {
		ips = make(map[string]string)
	}

	s.mu.Lock()
	s.names = names
	s.ips = ips
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// NameBanned returns the ban reason when the name is banned.
func (s *Snapshot) NameBanned(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reason, ok := s.names[strings.ToLower(name)]
	return reason, ok
}

// IPBanned returns the ban reason when the address is banned.
func (s *Snapshot) IPBanned(ip string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reason, ok := s.ips[ip]
	return reason, ok
}

// Size returns the number of name and address bans.
func (s *Snapshot) Size() (names, ips int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names), len(s.ips)
}

// LoadedAt returns the last successful refresh time.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Refresher reloads the snapshot from the store. Concurrent refreshes
// collapse into one store read.
type Refresher struct {
	store    Store
	snapshot *Snapshot
	sf       singleflight.Group
}

// NewRefresher creates a refresher.
func NewRefresher(store Store, snapshot *Snapshot) *Refresher {
	return &Refresher{store: store, snapshot: snapshot}
}

// Refresh reloads name and address bans from the store.
func (r *Refresher) Refresh(ctx context.Context) error {
	_, err, _ := r.sf.Do("refresh", func() (any, error) {
		names, err := r.store.Names(ctx)
		if err != nil {
			return nil, err
		}
		ips, err := r.store.IPs(ctx)
		if err != nil {
			return nil, err
		}
		r.snapshot.Replace(names, ips)
		return nil, nil
	})
	return err
}
