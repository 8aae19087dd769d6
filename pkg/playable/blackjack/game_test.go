package blackjack

import (
	"math/rand"
	"strings"
	"testing"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.MaxSeats = 0
	_, err := NewGame(logrus.StandardLogger(), opts)
	a.Equal(SeatCountError{Max: 7, Got: 0}, err)
	a.Equal("expected 1–7 seats, got 0", err.Error())

	opts = DefaultOptions()
	opts.BetIncrement = 0
	_, err = NewGame(logrus.StandardLogger(), opts)
	a.Equal(ErrInvalidIncrement, err)

	g, err := NewGame(logrus.StandardLogger(), DefaultOptions())
	a.NoError(err)
	a.Equal(PhaseLobby, g.Phase())
	a.Equal(NoTurn, g.CurrentTurn())
	a.Equal(0, g.SeatedCount())
	a.Equal(deck.Size, g.deck.CardsLeft())
}

func TestGame_Join(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b", "c")

	a.NoError(g.Leave(1))
	seat, err := g.Join("d")
	a.NoError(err)
	a.Equal(1, seat)

	seat, err = g.Join("   ")
	a.NoError(err)
	a.Equal(3, seat)
	a.NotEmpty(g.seats[3].Name)

	seat, err = g.Join(strings.Repeat("x", 40))
	a.NoError(err)
	a.Equal(4, seat)
	a.Equal(strings.Repeat("x", maxNameLength), g.seats[4].Name)

	_, err = g.Join("f")
	a.Equal(ErrTableFull, err)

	p, err := g.Player(0)
	a.NoError(err)
	a.Equal("a", p.Name)
	a.Equal(100, p.Money)
}

func TestGame_Join_roundInProgress(t *testing.T) {
	g := newTestGame(t, "a")
	readyAll(t, g)

	_, err := g.Join("b")
	assert.Equal(t, ErrRoundInProgress, err)
	assert.Equal(t, 1, g.SeatedCount())
}

func TestGame_Leave(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")

	a.Equal(ErrSeatNotFound, g.Leave(3))
	a.Equal(ErrSeatNotFound, g.Leave(-1))

	// the only player who wasn't ready leaves, so betting opens
	a.NoError(g.MarkReady(0))
	a.Equal(PhaseLobby, g.phase)
	a.NoError(g.Leave(1))
	a.Equal(PhaseBetting, g.phase)
	a.False(g.seats[0].Ready)

	a.NoError(g.Leave(0))
	a.Equal(PhaseLobby, g.phase)
	a.Equal(0, g.SeatedCount())
}

func TestGame_Leave_dealsWhenOthersConfirmed(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "10c,7c,9h,8h")

	a.NoError(g.AdjustBet(0, 10))
	a.NoError(g.ConfirmBet(0))
	a.NoError(g.AdjustBet(1, 10))
	a.NoError(g.Leave(1))

	a.Equal(PhasePlaying, g.phase)
	a.Equal(0, g.turn)
	a.Equal("9h,8h", cards(g, 0))
}

func TestGame_Leave_whileOnTheClock(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "10c,7c,2c,3c,2d,3d")
	betAll(t, g, 10)

	a.Equal(PhasePlaying, g.phase)
	a.Equal(0, g.turn)

	a.NoError(g.Leave(0))
	a.Equal(1, g.turn)
	a.Equal(PhasePlaying, g.phase)

	a.NoError(g.Stand(1))
	a.Equal(PhaseSettlement, g.phase)
	a.Equal(OutcomeLost, g.seats[1].Outcome)
	a.Equal(90, g.seats[1].Money)
}

func TestGame_Leave_lastPlayerResetsTable(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a")
	readyAll(t, g)
	stackDeck(g, "10c,7c,2c,3c")
	betAll(t, g, 10)

	a.NoError(g.Leave(0))
	a.Equal(PhaseLobby, g.phase)
	a.Equal(NoTurn, g.turn)
	a.Len(g.dealer.Hand, 0)
	a.Equal(deck.Size, g.deck.CardsLeft())
}

func TestGame_MarkReady(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")

	a.NoError(g.MarkReady(0))
	a.NoError(g.MarkReady(0))
	a.True(g.seats[0].Ready)
	a.Equal(PhaseLobby, g.phase)

	a.NoError(g.MarkReady(1))
	a.Equal(PhaseBetting, g.phase)
	a.False(g.seats[0].Ready)
	a.False(g.seats[1].Ready)

	// ready outside the lobby does nothing
	a.NoError(g.MarkReady(0))
	a.False(g.seats[0].Ready)

	a.Equal(ErrSeatNotFound, g.MarkReady(4))
}

func TestGame_AdjustBet(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")

	// not betting yet
	a.NoError(g.AdjustBet(0, 10))
	a.Equal(0, g.seats[0].Bet)

	readyAll(t, g)
	a.NoError(g.AdjustBet(0, 500))
	a.Equal(100, g.seats[0].Bet)
	a.Equal(0, g.seats[0].Money)

	a.NoError(g.AdjustBet(0, -1000))
	a.Equal(0, g.seats[0].Bet)
	a.Equal(100, g.seats[0].Money)

	// confirming a zero bet does nothing
	a.NoError(g.ConfirmBet(0))
	a.False(g.seats[0].Ready)

	a.NoError(g.AdjustBet(0, 5))
	a.NoError(g.ConfirmBet(0))
	a.True(g.seats[0].Ready)

	// a confirmed bet is locked
	a.NoError(g.AdjustBet(0, 5))
	a.Equal(5, g.seats[0].Bet)
	a.Equal(PhaseBetting, g.phase)
}

func TestGame_fullRound(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "10c,7d,9h,8h,10h,9s")
	betAll(t, g, 10)

	a.Equal(PhasePlaying, g.phase)
	a.Equal(0, g.turn)
	a.True(g.dealer.Hand[1].Hidden)
	a.Equal(90, g.seats[0].Money)
	a.Equal(10, g.seats[0].Bet)

	// out of turn is a no-op
	a.NoError(g.Hit(1))
	a.NoError(g.Stand(1))
	a.Equal("10h,9s", cards(g, 1))
	a.Equal(0, g.turn)

	a.NoError(g.Stand(0))
	a.Equal(1, g.turn)
	a.NoError(g.Stand(1))

	a.Equal(PhaseSettlement, g.phase)
	a.Equal(NoTurn, g.turn)
	a.False(g.dealer.Hand.HasHidden())
	a.Equal(17, g.dealer.Total())
	a.Equal(OutcomePush, g.seats[0].Outcome)
	a.Equal(100, g.seats[0].Money)
	a.Equal(OutcomeWon, g.seats[1].Outcome)
	a.Equal(110, g.seats[1].Money)

	results := g.TakeResults()
	if a.Len(results, 1) {
		r := results[0]
		a.NotEmpty(r.UUID)
		a.NotEmpty(r.DeckHash)
		a.Equal("10c,7d", r.DealerCards)
		a.Equal(17, r.DealerTotal)
		a.False(r.DealerNatural)
		a.Len(r.Seats, 2)
		a.Equal(&SeatResult{
			Seat:    1,
			Name:    "b",
			Bet:     10,
			Cards:   "10h,9s",
			Total:   19,
			Outcome: OutcomeWon,
			Delta:   10,
			Money:   110,
		}, r.Seats[1])
	}

	a.Len(g.TakeResults(), 0)

	a.NoError(g.Continue(0))
	a.Equal(PhaseSettlement, g.phase)
	a.NoError(g.Continue(1))
	a.Equal(PhaseLobby, g.phase)
	a.Equal(deck.Size, g.deck.CardsLeft())
	a.Len(g.dealer.Hand, 0)
	for _, p := range g.players() {
		a.Len(p.Hand, 0)
		a.Equal(OutcomeNone, p.Outcome)
		a.False(p.Ready)
	}
}

func TestGame_dealerNatural(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "1s,13s,13h,1h,9c,8c")
	betAll(t, g, 10)

	a.Equal(PhaseSettlement, g.phase)
	a.False(g.dealer.Hand.HasHidden())
	a.Equal(OutcomePush, g.seats[0].Outcome)
	a.True(g.seats[0].Natural)
	a.Equal(100, g.seats[0].Money)
	a.Equal(OutcomeLost, g.seats[1].Outcome)
	a.Equal(90, g.seats[1].Money)

	results := g.TakeResults()
	a.Len(results, 1)
	a.True(results[0].DealerNatural)
}

func TestGame_playerNatural(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "10c,7c,1h,13h,10d,8d")
	betAll(t, g, 10)

	// the natural is skipped
	a.Equal(PhasePlaying, g.phase)
	a.Equal(1, g.turn)
	a.True(g.seats[0].Natural)

	a.NoError(g.Stand(1))
	a.Equal(PhaseSettlement, g.phase)
	a.Equal(OutcomeWon, g.seats[0].Outcome)
	a.Equal(110, g.seats[0].Money)
	a.Equal(OutcomeWon, g.seats[1].Outcome)
}

func TestGame_everyoneNatural(t *testing.T) {
	g := newTestGame(t, "a")
	readyAll(t, g)
	stackDeck(g, "10c,7c,1h,13h")
	betAll(t, g, 10)

	assert.Equal(t, PhaseSettlement, g.phase)
	assert.Equal(t, OutcomeWon, g.seats[0].Outcome)
}

func TestGame_Hit(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a")
	readyAll(t, g)
	stackDeck(g, "10c,8c,10d,6d,5h,1c")
	betAll(t, g, 10)

	a.NoError(g.Hit(0))
	a.Equal(21, g.seats[0].Total())
	a.False(g.seats[0].Busted)
	a.Equal(0, g.turn)

	a.NoError(g.Hit(0))
	a.Equal(22, g.seats[0].Total())
	a.True(g.seats[0].Busted)

	// busting moves the clock on, which here means the dealer plays
	a.Equal(PhaseSettlement, g.phase)
	a.Equal(18, g.dealer.Total())
	a.Equal(OutcomeLost, g.seats[0].Outcome)
	a.Equal(90, g.seats[0].Money)
}

func TestGame_bustLosesEvenIfDealerBusts(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "10c,6c,10d,6d,10h,7h,13d,12s")
	betAll(t, g, 10)

	a.NoError(g.Hit(0))
	a.True(g.seats[0].Busted)
	a.Equal(1, g.turn)

	a.NoError(g.Stand(1))
	a.Equal(26, g.dealer.Total())
	a.Equal(OutcomeLost, g.seats[0].Outcome)
	a.Equal(OutcomeWon, g.seats[1].Outcome)
}

func TestGame_softSeventeen(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "a")
	readyAll(t, g)
	stackDeck(g, "1c,6c,10d,9d,2s")
	betAll(t, g, 10)
	a.NoError(g.Stand(0))
	a.Equal("1c,6c", deck.CardsToString(g.dealer.Hand))
	a.Equal(OutcomeWon, g.seats[0].Outcome)

	g = newTestGame(t, "a")
	g.options.HitSoft17 = true
	readyAll(t, g)
	stackDeck(g, "1c,6c,10d,9d,2s")
	betAll(t, g, 10)
	a.NoError(g.Stand(0))
	a.Equal("1c,6c,2s", deck.CardsToString(g.dealer.Hand))
	a.Equal(19, g.dealer.Total())
	a.Equal(OutcomePush, g.seats[0].Outcome)
}

func TestGame_restoresOnError(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a")
	readyAll(t, g)

	// exactly enough to deal, the dealer can't draw
	stackDeck(g, "2c,3c,10d,9d")
	betAll(t, g, 10)
	a.Equal(PhasePlaying, g.phase)

	err := g.Stand(0)
	a.Equal(deck.ErrEndOfDeck, err)
	a.Equal(PhasePlaying, g.phase)
	a.Equal(0, g.turn)
	a.Len(g.dealer.Hand, 2)
	a.True(g.dealer.Hand[1].Hidden)
	a.Equal(10, g.seats[0].Bet)
	a.Len(g.TakeResults(), 0)

	// and hitting fails the same way
	a.Equal(deck.ErrEndOfDeck, g.Hit(0))
	a.Equal("10d,9d", cards(g, 0))
}

func TestGame_dealWithoutEnoughCards(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a", "b")
	readyAll(t, g)
	stackDeck(g, "2c,3c,10d,9d")

	a.NoError(g.AdjustBet(0, 10))
	a.NoError(g.ConfirmBet(0))
	a.NoError(g.AdjustBet(1, 10))
	a.Equal(deck.ErrEndOfDeck, g.ConfirmBet(1))

	a.Equal(PhaseBetting, g.phase)
	a.False(g.seats[1].Ready)
	a.True(g.seats[0].Ready)
	a.Len(g.dealer.Hand, 0)
	a.Equal(4, g.deck.CardsLeft())
}

func TestGame_SetMoney(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a")

	a.Equal(ErrInvalidAmount, g.SetMoney(0, -1))
	a.Equal(ErrSeatNotFound, g.SetMoney(1, 10))
	a.NoError(g.SetMoney(0, 250))
	a.Equal(250, g.seats[0].Money)
}

func TestGame_Apply(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t, "a")

	a.NoError(g.Apply(0, Command{Action: ActionGet}))
	a.Equal(ErrSeatNotFound, g.Apply(1, Command{Action: ActionGet}))
	a.Equal(ErrUnknownCommand, g.Apply(0, Command{Action: Action(99)}))

	a.NoError(g.Apply(0, Command{Action: ActionReady}))
	a.Equal(PhaseBetting, g.phase)
	a.NoError(g.Apply(0, Command{Action: ActionIncreaseBet, Amount: 15}))
	a.NoError(g.Apply(0, Command{Action: ActionDecreaseBet, Amount: 5}))
	a.Equal(10, g.seats[0].Bet)

	stackDeck(g, "10c,7c,10d,5d,4s")
	a.NoError(g.Apply(0, Command{Action: ActionBet}))
	a.NoError(g.Apply(0, Command{Action: ActionHit}))
	a.Equal(19, g.seats[0].Total())
	a.NoError(g.Apply(0, Command{Action: ActionStand}))
	a.Equal(PhaseSettlement, g.phase)
	a.NoError(g.Apply(0, Command{Action: ActionContinue}))
	a.Equal(PhaseLobby, g.phase)
	a.Equal(110, g.seats[0].Money)
}

func TestGame_logMessages(t *testing.T) {
	g := newTestGame(t, "a")
	for i := 0; i < logMessageLimit*2; i++ {
		_ = g.SetMoney(0, i)
	}

	assert.Len(t, g.logMessages, logMessageLimit)
	assert.Equal(t, "{} now has ${49}", g.logMessages[logMessageLimit-1].Message)
}

// TestGame_randomRounds plays many shuffled rounds and checks the settlement arithmetic
// and the dealer's drawing rule hold for each of them
func TestGame_randomRounds(t *testing.T) {
	a := assert.New(t)
	choices := rand.New(rand.NewSource(1)) // nolint:gosec

	for _, hitSoft17 := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Generator = rng.NewSeeded(42)
		opts.HitSoft17 = hitSoft17
		g, err := NewGame(logrus.StandardLogger(), opts)
		a.NoError(err)
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			_, _ = g.Join(name)
		}

		for round := 0; round < 200; round++ {
			before := make(map[int]int)
			for _, p := range g.players() {
				if p.Money == 0 {
					a.NoError(g.SetMoney(p.Seat, 100))
				}

				before[p.Seat] = p.Money
				a.NoError(g.MarkReady(p.Seat))
			}

			for _, p := range g.players() {
				a.NoError(g.AdjustBet(p.Seat, 1+choices.Intn(p.Money)))
				a.NoError(g.ConfirmBet(p.Seat))
			}

			for g.phase == PhasePlaying {
				seat := g.turn
				if choices.Intn(2) == 0 {
					a.NoError(g.Hit(seat))
				} else {
					a.NoError(g.Stand(seat))
				}
			}

			if !a.Equal(PhaseSettlement, g.phase) {
				return
			}

			dealer := g.dealer.Hand
			total := Total(dealer)
			if !IsNatural(dealer) {
				a.True(total >= dealerStandsOn, deck.CardsToString(dealer))
				if len(dealer) > 2 {
					a.True((&Dealer{Hand: dealer[:len(dealer)-1]}).shouldHit(hitSoft17), deck.CardsToString(dealer))
				}

				a.False((&Dealer{Hand: dealer}).shouldHit(hitSoft17))
			}

			results := g.TakeResults()
			a.Len(results, 1)
			for _, s := range results[0].Seats {
				a.Equal(before[s.Seat]+s.Delta, s.Money)
				switch s.Outcome {
				case OutcomeWon:
					a.Equal(s.Bet, s.Delta)
				case OutcomePush:
					a.Equal(0, s.Delta)
				case OutcomeLost:
					a.Equal(-s.Bet, s.Delta)
				default:
					a.Fail("seat not settled", "seat %d", s.Seat)
				}

				if s.Busted {
					a.Equal(OutcomeLost, s.Outcome)
				}
			}

			for _, p := range g.players() {
				a.NoError(g.Continue(p.Seat))
			}

			a.Equal(PhaseLobby, g.phase)
		}
	}
}
