package blackjack

import (
	"blackjack-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages appends to the table log, keeping the most recent messages
func (g *Game) addLogMessages(messages ...*playable.LogMessage) {
	m := append(g.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	g.logMessages = m
}
