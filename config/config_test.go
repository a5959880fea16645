package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetInt(ConfigAutoplayGames), 1000)
	is.Equal(c.GetInt(ConfigAutoplayThreads), 4)
	is.Equal(c.GetBool(ConfigDebug), false)
	is.Equal(c.GetString(ConfigAutoplaySeed), "")
}

func TestLoadArgsAndEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("SOLITAIRE_AUTOPLAY_THREADS", "9")
	c := &Config{}
	is.NoErr(c.Load([]string{"--autoplay-games=12", "--debug"}))
	is.Equal(c.GetInt(ConfigAutoplayGames), 12)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.GetInt(ConfigAutoplayThreads), 9)

	settings := c.SanitizedSettings()
	_, ok := settings[ConfigAutoplayGames]
	is.True(ok)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--no-such-flag"}) != nil)
}
