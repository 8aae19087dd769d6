package room

import (
	"context"
	"sync"

	"blackjack-server/pkg/history"
	"blackjack-server/pkg/playable/blackjack"
	"github.com/sirupsen/logrus"
)

// Dealer owns the blackjack table. Every command is applied under the table lock,
// and the snapshot for its reply is taken before the lock is released.
// Anything that does I/O is handed to the run loop.
type Dealer struct {
	logger    logrus.FieldLogger
	lock      sync.Mutex
	game      *blackjack.Game
	recorder  history.Recorder
	increment int

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer for the game
// Settled rounds are sent to recorder
func NewDealer(logger logrus.FieldLogger, game *blackjack.Game, recorder history.Recorder) *Dealer {
	return &Dealer{
		logger:        logger,
		game:          game,
		recorder:      recorder,
		increment:     game.Options().BetIncrement,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift stops the run loop
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// exec runs fn against the game under the lock, then queues any settled rounds for recording
func (d *Dealer) exec(fn func(g *blackjack.Game) error) error {
	d.lock.Lock()
	err := fn(d.game)
	results := d.game.TakeResults()
	d.lock.Unlock()

	for _, result := range results {
		d.record(result)
	}

	return err
}

func (d *Dealer) record(result *blackjack.RoundResult) {
	fn := func() {
		log := d.logger.WithField("round", result.UUID)
		if err := d.recorder.Record(context.Background(), result); err != nil {
			log.WithError(err).Error("could not record round")
			return
		}

		log.Debug("round recorded")
	}

	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
		d.logger.WithField("round", result.UUID).Warn("dealer is off shift, round not recorded")
	}
}

// Join seats a new player
func (d *Dealer) Join(name string) (seat int, err error) {
	err = d.exec(func(g *blackjack.Game) error {
		seat, err = g.Join(name)
		return err
	})

	return seat, err
}

// Leave frees the seat
func (d *Dealer) Leave(seat int) error {
	return d.exec(func(g *blackjack.Game) error {
		return g.Leave(seat)
	})
}

// Apply parses and applies a command token for the seat and returns the table as the seat now sees it.
// An unknown token is returned as an error wrapping blackjack.ErrUnknownCommand and leaves the table untouched.
func (d *Dealer) Apply(seat int, token string) (*blackjack.State, error) {
	cmd, err := blackjack.ParseCommand(token, d.increment)
	if err != nil {
		return nil, err
	}

	var state *blackjack.State
	err = d.exec(func(g *blackjack.Game) error {
		err := g.Apply(seat, cmd)
		state = g.State(seat)
		return err
	})

	return state, err
}

// SetMoney overrides the balance of the seat and returns the public view of the table
func (d *Dealer) SetMoney(seat int, amount int) (*blackjack.State, error) {
	var state *blackjack.State
	err := d.exec(func(g *blackjack.Game) error {
		err := g.SetMoney(seat, amount)
		state = g.PublicState()
		return err
	})

	return state, err
}

// State returns the table as the seat sees it
func (d *Dealer) State(seat int) *blackjack.State {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.State(seat)
}

// PublicState returns the table as a spectator sees it
func (d *Dealer) PublicState() *blackjack.State {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.PublicState()
}

// SeatedCount returns the number of seated players
func (d *Dealer) SeatedCount() int {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.SeatedCount()
}
