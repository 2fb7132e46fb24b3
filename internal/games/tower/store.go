package tower

import "sync"

// BestScoreStore persists the best score under a key.
// BestScore reports ok=false when the key has never been written.
// SetBestScore must keep the larger of the stored and the new score.
type BestScoreStore interface {
	BestScore(key string) (score int, ok bool, err error)
	SetBestScore(key string, score int) error
}

// MemoryStore is an in-process BestScoreStore for headless runs and tests.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
	writes int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]int)}
}

// BestScore implements BestScoreStore.
func (m *MemoryStore) BestScore(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.scores[key]
	return v, ok, nil
}

// SetBestScore implements BestScoreStore. A lower score than the stored one
// is ignored.
func (m *MemoryStore) SetBestScore(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.scores[key]; !ok || score > cur {
		m.scores[key] = score
	}
	m.writes++
	return nil
}

// Writes returns how many times SetBestScore was called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
