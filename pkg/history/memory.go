package history

import (
	"context"
	"sync"

	"blackjack-server/pkg/playable/blackjack"
)

// Memory is a bounded in-process Recorder. The oldest rounds are dropped first.
type Memory struct {
	lock     sync.RWMutex
	capacity int
	rounds   []*blackjack.RoundResult
	seen     map[string]bool
}

var _ Recorder = (*Memory)(nil)

// NewMemory returns a recorder that keeps the last capacity rounds
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = DefaultRows
	}

	return &Memory{
		capacity: capacity,
		rounds:   make([]*blackjack.RoundResult, 0, capacity),
		seen:     make(map[string]bool),
	}
}

// Record implements Recorder
func (m *Memory) Record(_ context.Context, round *blackjack.RoundResult) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.seen[round.UUID] {
		return ErrDuplicateRound
	}

	m.rounds = append(m.rounds, round)
	m.seen[round.UUID] = true
	if len(m.rounds) > m.capacity {
		delete(m.seen, m.rounds[0].UUID)
		m.rounds = m.rounds[1:]
	}

	return nil
}

// Recent implements Recorder
func (m *Memory) Recent(_ context.Context, rows int) ([]*blackjack.RoundResult, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if rows > len(m.rounds) {
		rows = len(m.rounds)
	}

	recent := make([]*blackjack.RoundResult, 0, rows)
	for i := len(m.rounds) - 1; i >= 0 && len(recent) < rows; i-- {
		recent = append(recent, m.rounds[i])
	}

	return recent, nil
}
