package blackjack

import (
	"blackjack-server/internal/rng"
)

// seatLimit is the most seats a single deck can serve in one round
const seatLimit = 7

// Options contains options for creating a new blackjack table
type Options struct {
	// MaxSeats is the number of players that can sit at the table
	MaxSeats int

	// StartingMoney is the balance a player receives when they join
	StartingMoney int

	// BetIncrement is the amount a single + or - changes the bet by
	BetIncrement int

	// HitSoft17 makes the dealer draw on a soft 17 instead of standing
	HitSoft17 bool

	// Generator shuffles the deck. If nil, crypto/rand is used
	Generator rng.Generator
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		MaxSeats:      5,
		StartingMoney: 100,
		BetIncrement:  1,
		HitSoft17:     false,
	}
}

func (o Options) validate() error {
	if o.MaxSeats < 1 || o.MaxSeats > seatLimit {
		return SeatCountError{Max: seatLimit, Got: o.MaxSeats}
	}

	if o.StartingMoney < 0 {
		return ErrInvalidAmount
	}

	if o.BetIncrement <= 0 {
		return ErrInvalidIncrement
	}

	return nil
}
