package room

import (
	"testing"
	"time"

	"blackjack-server/pkg/history"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"github.com/sirupsen/logrus"
)

// noShuffle deals the deck in canonical order: 1d, 2d, 3d...
type noShuffle struct{}

func (noShuffle) Intn(n int) int {
	return n - 1
}

func newTestDealer(t *testing.T, maxSeats int) (*Dealer, *history.Memory) {
	t.Helper()

	opts := blackjack.DefaultOptions()
	opts.MaxSeats = maxSeats
	opts.Generator = noShuffle{}
	game, err := blackjack.NewGame(logrus.StandardLogger(), opts)
	if err != nil {
		t.Fatal(err)
	}

	recorder := history.NewMemory(10)
	d := NewDealer(logrus.StandardLogger(), game, recorder)
	d.StartShift()
	t.Cleanup(d.EndShift)

	return d, recorder
}

// nextResponse waits for the next message queued for the client
func nextResponse(t *testing.T, c *Client) *playable.Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg.(*playable.Response)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a response")
	}

	return nil
}

func closeReason(c *Client) string {
	select {
	case reason := <-c.Close:
		return reason
	default:
		return ""
	}
}
