// Package sequencer executes ledger commands one at a time in the order they
// were submitted.
//
// The Sequencer is the only owner of the Ledger. Other goroutines submit
// commands and read snapshots from the Mailbox, they never touch the store.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/rs/zerolog/log"
)

// ErrStopped is returned when submitting to a Sequencer that is not running anymore.
var ErrStopped = errors.New("the sequencer has stopped")

// Sequencer is a single consumer queue of commands against a Ledger.
type Sequencer struct {
	ledger   *ledger.Ledger
	commands chan Command
	mailbox  *Mailbox
	done     chan struct{}

	// Only accessed by the goroutine running Run
	selectedAccount uint
	month           types.Month
}

// New returns a Sequencer for the ledger. Up to queueSize commands can be
// submitted without blocking while a command is executed.
func New(l *ledger.Ledger, mailbox *Mailbox, queueSize int) *Sequencer {
	return &Sequencer{
		ledger:   l,
		commands: make(chan Command, queueSize),
		mailbox:  mailbox,
		done:     make(chan struct{}),
		month:    l.CurrentMonth(),
	}
}

// Mailbox returns the mailbox snapshots are published to.
func (s *Sequencer) Mailbox() *Mailbox {
	return s.mailbox
}

// Submit validates the command and appends it to the queue.
//
// It blocks while the queue is full, until the context is done or the
// Sequencer has stopped.
func (s *Sequencer) Submit(ctx context.Context, c Command) error {
	if err := Validate(c); err != nil {
		return err
	}

	select {
	case <-s.done:
		return ErrStopped
	default:
	}

	select {
	case s.commands <- c:
		return nil
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run publishes the initial snapshot and then executes commands until a
// Terminate command is received.
//
// A command that fails is logged and does not publish a snapshot. Run only
// returns an error if the initial snapshot cannot be read.
func (s *Sequencer) Run() error {
	defer close(s.done)

	if err := s.publish(); err != nil {
		return fmt.Errorf("could not read the initial snapshot: %w", err)
	}

	log.Info().Str("month", s.month.String()).Msg("Sequencer started")

	for c := range s.commands {
		if _, ok := c.(Terminate); ok {
			log.Info().Msg("Sequencer terminated")
			return nil
		}

		s.execute(c)
	}

	return nil
}

func (s *Sequencer) execute(c Command) {
	start := time.Now()
	err := c.apply(s)
	observe(c, err, time.Since(start))

	if err != nil {
		log.Error().Str("command", c.Kind()).Err(err).Msg("Sequencer")
		return
	}

	log.Debug().Str("command", c.Kind()).Msg("Sequencer")

	if err := s.publish(); err != nil {
		log.Error().Str("command", c.Kind()).Err(err).Msg("Snapshot")
	}
}

func (s *Sequencer) publish() error {
	snapshot, err := s.ledger.Snapshot(s.month, s.selectedAccount)
	if err != nil {
		return err
	}

	s.mailbox.Publish(snapshot)
	return nil
}
