// Package history keeps an audit trail of settled blackjack rounds
package history

import (
	"context"
	"errors"

	"blackjack-server/pkg/playable/blackjack"
)

// DefaultRows is the number of rounds returned when the caller does not say
const DefaultRows = 25

// ErrDuplicateRound is returned when a round is recorded twice
var ErrDuplicateRound = errors.New("round already recorded")

// Recorder stores settled rounds
type Recorder interface {
	// Record stores a settled round
	Record(ctx context.Context, round *blackjack.RoundResult) error

	// Recent returns up to rows rounds, newest first
	Recent(ctx context.Context, rows int) ([]*blackjack.RoundResult, error)
}
