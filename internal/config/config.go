package config

import (
	"os"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/playable/blackjack"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool

	// Addr is the listen address of the HTTP server
	Addr string `yaml:"addr" envconfig:"addr"`

	// LobbyID must prefix every handshake
	LobbyID string `yaml:"lobbyId" envconfig:"lobby_id"`

	// AdminKeyHash is the argon2id hash of the admin key. If empty, admin sessions are disabled
	AdminKeyHash string `yaml:"adminKeyHash" envconfig:"admin_key_hash"`

	// PGDSN enables the Postgres round history. If empty, history is kept in memory
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	// HistoryRows is how many rounds the in-memory history keeps
	HistoryRows int `yaml:"historyRows" envconfig:"history_rows"`

	Table struct {
		MaxSeats      int  `yaml:"maxSeats" envconfig:"max_seats"`
		StartingMoney int  `yaml:"startingMoney" envconfig:"starting_money"`
		BetIncrement  int  `yaml:"betIncrement" envconfig:"bet_increment"`
		HitSoft17     bool `yaml:"hitSoft17" envconfig:"hit_soft_17"`
	} `yaml:"table"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	opts := blackjack.DefaultOptions()

	var cfg Config
	cfg.Addr = ":5555"
	cfg.MigrationsPath = "./sql"
	cfg.HistoryRows = 100
	cfg.Table.MaxSeats = opts.MaxSeats
	cfg.Table.StartingMoney = opts.StartingMoney
	cfg.Table.BetIncrement = opts.BetIncrement
	cfg.Table.HitSoft17 = opts.HitSoft17
	cfg.Log.Level = "info"

	return cfg
}

// TableOptions returns the options for the blackjack table
func (c Config) TableOptions() blackjack.Options {
	opts := blackjack.DefaultOptions()
	opts.MaxSeats = c.Table.MaxSeats
	opts.StartingMoney = c.Table.StartingMoney
	opts.BetIncrement = c.Table.BetIncrement
	opts.HitSoft17 = c.Table.HitSoft17
	return opts
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("bj", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
