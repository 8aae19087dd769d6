package history

import (
	"context"
	"database/sql"
	"errors"

	"blackjack-server/pkg/db"
	"blackjack-server/pkg/playable/blackjack"
	"github.com/lib/pq"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const roundColumns = `
rounds.id,
rounds.uuid,
rounds.deck_hash,
rounds.dealer_cards,
rounds.dealer_total,
rounds.dealer_natural,
rounds.started,
rounds.ended`

const seatColumns = `
round_seats.round_id,
round_seats.seat,
round_seats.name,
round_seats.bet,
round_seats.cards,
round_seats.total,
round_seats.natural,
round_seats.busted,
round_seats.outcome,
round_seats.delta,
round_seats.money`

// Postgres records rounds in the rounds and round_seats tables
type Postgres struct {
	db *sql.DB
}

var _ Recorder = (*Postgres)(nil)

// NewPostgres returns a recorder backed by the database
// The migrations in sql/ must have been run
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Record implements Recorder
func (p *Postgres) Record(ctx context.Context, round *blackjack.RoundResult) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const roundQuery = `
INSERT INTO rounds (uuid, deck_hash, dealer_cards, dealer_total, dealer_natural, started, ended)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	var id int64
	row := tx.QueryRowContext(ctx, roundQuery, round.UUID, round.DeckHash, round.DealerCards, round.DealerTotal,
		round.DealerNatural, round.Started.UTC(), round.Ended.UTC())
	if err := row.Scan(&id); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateRound
		}

		return err
	}

	const seatQuery = `
INSERT INTO round_seats (round_id, seat, name, bet, cards, total, natural, busted, outcome, delta, money)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, s := range round.Seats {
		if _, err := tx.ExecContext(ctx, seatQuery, id, s.Seat, s.Name, s.Bet, s.Cards, s.Total, s.Natural,
			s.Busted, s.Outcome.String(), s.Delta, s.Money); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent implements Recorder
func (p *Postgres) Recent(ctx context.Context, rows int) ([]*blackjack.RoundResult, error) {
	const roundQuery = `
SELECT ` + roundColumns + `
FROM rounds
ORDER BY id DESC
LIMIT $1`

	roundRows, err := p.db.QueryContext(ctx, roundQuery, rows)
	if err != nil {
		return nil, err
	}
	defer roundRows.Close()

	rounds := make([]*blackjack.RoundResult, 0, rows)
	byID := make(map[int64]*blackjack.RoundResult)
	ids := make([]int64, 0, rows)
	for roundRows.Next() {
		id, round, err := getRoundByRow(roundRows)
		if err != nil {
			return nil, err
		}

		rounds = append(rounds, round)
		byID[id] = round
		ids = append(ids, id)
	}

	if err := roundRows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return rounds, nil
	}

	const seatQuery = `
SELECT ` + seatColumns + `
FROM round_seats
WHERE round_id = ANY($1)
ORDER BY round_id, seat`

	seatRows, err := p.db.QueryContext(ctx, seatQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()

	for seatRows.Next() {
		id, seat, err := getSeatByRow(seatRows)
		if err != nil {
			return nil, err
		}

		if round, ok := byID[id]; ok {
			round.Seats = append(round.Seats, seat)
		}
	}

	return rounds, seatRows.Err()
}

func getRoundByRow(row db.Scanner) (int64, *blackjack.RoundResult, error) {
	var id int64
	round := &blackjack.RoundResult{Seats: make([]*blackjack.SeatResult, 0)}
	if err := row.Scan(&id, &round.UUID, &round.DeckHash, &round.DealerCards, &round.DealerTotal,
		&round.DealerNatural, &round.Started, &round.Ended); err != nil {
		return 0, nil, err
	}

	return id, round, nil
}

func getSeatByRow(row db.Scanner) (int64, *blackjack.SeatResult, error) {
	var id int64
	var outcome string
	var seat blackjack.SeatResult
	if err := row.Scan(&id, &seat.Seat, &seat.Name, &seat.Bet, &seat.Cards, &seat.Total, &seat.Natural,
		&seat.Busted, &outcome, &seat.Delta, &seat.Money); err != nil {
		return 0, nil, err
	}

	o, err := blackjack.ParseOutcome(outcome)
	if err != nil {
		return 0, nil, err
	}

	seat.Outcome = o
	return id, &seat, nil
}
