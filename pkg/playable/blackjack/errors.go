package blackjack

import (
	"errors"
	"fmt"
)

// ErrSeatNotFound is returned when an operation names a seat nobody is sitting in
var ErrSeatNotFound = errors.New("seat not found")

// ErrTableFull is returned when every seat is taken
var ErrTableFull = errors.New("table is full")

// ErrRoundInProgress is returned when a player tries to join after the lobby closed
var ErrRoundInProgress = errors.New("a round is in progress")

// ErrUnknownCommand is returned when a command token is outside the protocol vocabulary
var ErrUnknownCommand = errors.New("unknown command")

// ErrInvalidAmount is returned when a money amount is negative or not a number
var ErrInvalidAmount = errors.New("amount must be a non-negative integer")

// ErrInvalidIncrement is returned when the bet increment is not positive
var ErrInvalidIncrement = errors.New("bet increment must be > 0")

// SeatCountError is an error on the number of seats at the table
type SeatCountError struct {
	Max int
	Got int
}

func (s SeatCountError) Error() string {
	return fmt.Sprintf("expected 1–%d seats, got %d", s.Max, s.Got)
}
