package mux

import (
	"net/http"

	"blackjack-server/pkg/history"
	"blackjack-server/pkg/room"
	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	pitBoss  *room.PitBoss
	recorder history.Recorder
}

// NewMux returns a new HTTP mux for the table run by pitBoss
func NewMux(version string, pitBoss *room.PitBoss, recorder history.Recorder) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		pitBoss:  pitBoss,
		recorder: recorder,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodGet).Path("/history").Handler(this.getHistory())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
