package config

import (
	"os"
	"testing"

	"blackjack-server/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("BJ_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("BJ_TABLE_STARTING_MONEY", "250")()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("friday", cfg.LobbyID)
	a.Equal(3, cfg.Table.MaxSeats)
	a.Equal(250, cfg.Table.StartingMoney)
	a.Equal(5, cfg.Table.BetIncrement)
	a.Equal("debug", cfg.Log.Level)

	// not in the file
	a.Equal(":5555", cfg.Addr)
	a.Equal(100, cfg.HistoryRows)

	// ensure that it's only loaded once
	_ = os.Setenv("BJ_TABLE_STARTING_MONEY", "300")
	// ensure we aren't using a pointer
	cfg.Table.StartingMoney = 1
	cfg = Instance()
	a.Equal(250, cfg.Table.StartingMoney)

	opts := cfg.TableOptions()
	a.Equal(3, opts.MaxSeats)
	a.Equal(250, opts.StartingMoney)
	a.Equal(5, opts.BetIncrement)
	a.False(opts.HitSoft17)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("BJ_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("BJ_LOBBY_ID", "monday")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "monday", cfg.LobbyID)
	assert.Equal(t, DefaultConfig().Table, cfg.Table)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_badEnv(t *testing.T) {
	defer util.SetEnv("BJ_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("BJ_TABLE_MAX_SEATS", "five")()

	assert.Error(t, Load())
}
