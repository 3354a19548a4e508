package sequencer

import (
	"context"
	"sync"

	"github.com/envelope-zero/ledger/pkg/ledger"
)

// Mailbox hands snapshots from the Sequencer to readers on other goroutines.
//
// Only the latest snapshot is kept. Every published snapshot gets a version
// one higher than the one before, starting at 1.
type Mailbox struct {
	mu       sync.RWMutex
	snapshot ledger.Snapshot
	version  uint64
	changed  chan struct{} // Closed and replaced on every publish
}

// NewMailbox returns an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		changed: make(chan struct{}),
	}
}

// Publish replaces the latest snapshot and wakes up all waiting readers.
func (m *Mailbox) Publish(snapshot ledger.Snapshot) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snapshot
	m.version++

	close(m.changed)
	m.changed = make(chan struct{})

	return m.version
}

// Latest returns the latest snapshot and its version. Version 0 means
// nothing has been published yet.
func (m *Mailbox) Latest() (ledger.Snapshot, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot, m.version
}

// Version returns the version of the latest snapshot.
func (m *Mailbox) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.version
}

// Wait blocks until a snapshot newer than version after is published or the
// context is done.
func (m *Mailbox) Wait(ctx context.Context, after uint64) (ledger.Snapshot, uint64, error) {
	for {
		m.mu.RLock()
		snapshot, version, changed := m.snapshot, m.version, m.changed
		m.mu.RUnlock()

		if version > after {
			return snapshot, version, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ledger.Snapshot{}, version, ctx.Err()
		}
	}
}
