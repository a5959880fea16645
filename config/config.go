package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                      = "debug"
	ConfigCPUProfile                 = "cpu-profile"
	ConfigHistoryFile                = "history-file"
	ConfigAutoplayGames              = "autoplay-games"
	ConfigAutoplayThreads            = "autoplay-threads"
	ConfigAutoplayOutput             = "autoplay-output"
	ConfigAutoplaySeed               = "autoplay-seed"
	ConfigAutoplaySeedFile           = "autoplay-seed-file"
	ConfigAutoplayRecordObservations = "autoplay-record-observations"
	ConfigAutoplayValidate           = "autoplay-validate"
	ConfigAutoplayDB                 = "autoplay-db"
)

type Config struct {
	sync.Mutex
	*viper.Viper
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("solitaire", pflag.ContinueOnError)
	flags.Bool(ConfigDebug, false, "debug logging on")
	flags.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	flags.String(ConfigHistoryFile, "/tmp/solitaire_history", "shell history file")
	flags.Int(ConfigAutoplayGames, 1000, "number of self-play games")
	flags.Int(ConfigAutoplayThreads, 4, "number of self-play worker threads")
	flags.String(ConfigAutoplayOutput, "/tmp/autoplay.csv", "where to write self-play results")
	flags.String(ConfigAutoplaySeed, "", "hex seed for self-play; random if empty")
	flags.String(ConfigAutoplaySeedFile, "", "replay the per-game seeds saved by an earlier run")
	flags.Bool(ConfigAutoplayRecordObservations, false, "also write observation vectors for every decision")
	flags.Bool(ConfigAutoplayValidate, false, "check board invariants after every action")
	flags.String(ConfigAutoplayDB, "", "also store every game's history in this SQLite file")
	return flags
}

// Load reads the configuration from args (--key=value), then from
// SOLITAIRE_ environment variables, then from an optional solitaire.yaml in
// the working directory. Earlier sources win. A .env file in the working
// directory is loaded into the environment first, without overriding
// variables that are already set.
func (c *Config) Load(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	c.Viper = viper.New()
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(flags); err != nil {
		return err
	}
	c.SetEnvPrefix("solitaire")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("solitaire")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// DefaultConfig has every key at its default and reads no environment.
// It is meant for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	flags := newFlagSet()
	// A fresh flag set with no arguments only has defaults to bind.
	_ = flags.Parse(nil)
	_ = c.BindPFlags(flags)
	return c
}

// SanitizedSettings is the full settings map, safe to write to a log.
func (c *Config) SanitizedSettings() map[string]any {
	c.Lock()
	defer c.Unlock()
	return c.AllSettings()
}
